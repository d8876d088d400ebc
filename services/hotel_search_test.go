package services

import (
	"testing"

	"hotelbooking/models"
)

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Đà Nẵng ", "da nang"},
		{"Hội An", "hoi an"},
		{"SEASIDE", "seaside"},
	}
	for _, tt := range tests {
		if got := normalizeInput(tt.in); got != tt.want {
			t.Errorf("normalizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCalculateSimilarity(t *testing.T) {
	if got := calculateSimilarity("", ""); got != 1.0 {
		t.Errorf("calculateSimilarity(empty) = %v, want 1", got)
	}
	if got := calculateSimilarity("seaside", "seaside"); got != 1.0 {
		t.Errorf("calculateSimilarity(same) = %v, want 1", got)
	}
	if got := calculateSimilarity("seaside", "seasid"); got < 0.8 {
		t.Errorf("calculateSimilarity(typo) = %v, want >= 0.8", got)
	}
}

func TestSearchHotels(t *testing.T) {
	hotels := []models.Hotel{
		{ID: 1, Name: "Seaside Resort", City: "Đà Nẵng"},
		{ID: 2, Name: "Old Town Inn", City: "Hội An"},
		{ID: 3, Name: "Mountain Lodge", City: "Đà Lạt"},
	}

	got := SearchHotels("da nang", hotels)
	if len(got) == 0 || got[0].Hotel.ID != 1 {
		t.Fatalf("SearchHotels(da nang) = %+v, want hotel 1 first", got)
	}

	got = SearchHotels("old town", hotels)
	if len(got) == 0 || got[0].Hotel.ID != 2 {
		t.Errorf("SearchHotels(old town) = %+v, want hotel 2 first", got)
	}

	if got := SearchHotels("   ", hotels); got != nil {
		t.Errorf("SearchHotels(blank) = %+v, want nil", got)
	}
}
