package services

import (
	"sort"
	"strings"

	"hotelbooking/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// ScoredHotel là khách sạn kèm điểm phù hợp với query
type ScoredHotel struct {
	Hotel models.Hotel `json:"hotel"`
	Score int          `json:"score"`
}

// Hàm chuẩn hóa chuỗi: bỏ dấu, chữ thường
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi, 1.0 là giống hệt
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// uniqueCities tạo danh sách thành phố đã chuẩn hóa cho closestmatch
func uniqueCities(hotels []models.Hotel) []string {
	seen := make(map[string]bool)
	var out []string
	for _, h := range hotels {
		city := normalizeInput(h.City)
		if city != "" && !seen[city] {
			seen[city] = true
			out = append(out, city)
		}
	}
	return out
}

// SearchHotels chấm điểm khách sạn theo tên và thành phố, bỏ qua dấu và
// lỗi gõ nhẹ. Kết quả có điểm > 0, sắp xếp giảm dần.
func SearchHotels(query string, hotels []models.Hotel) []ScoredHotel {
	q := normalizeInput(query)
	if q == "" {
		return nil
	}

	var cityMatch string
	if cities := uniqueCities(hotels); len(cities) > 0 {
		cityMatch = createMatcher(cities).Closest(q)
	}

	var scored []ScoredHotel
	for _, h := range hotels {
		score := 0
		name := normalizeInput(h.Name)
		city := normalizeInput(h.City)

		switch {
		case name != "" && strings.Contains(name, q):
			score += 20
		case calculateSimilarity(q, name) > 0.7:
			score += 12
		}
		if city != "" {
			if strings.Contains(q, city) || strings.Contains(city, q) {
				score += 15
			} else if city == cityMatch && calculateSimilarity(q, city) > 0.6 {
				score += 10
			}
		}
		if score > 0 {
			scored = append(scored, ScoredHotel{Hotel: h, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
