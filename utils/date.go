package utils

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DayLayout là định dạng ngày dùng trong API và cache
const DayLayout = "2006-01-02"

// Day là một ngày lịch, không có giờ và múi giờ.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf lấy ngày lịch của t theo múi giờ của chính t
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// NewDay chuẩn hóa (year, month, day), ví dụ 2024-02-30 thành 2024-03-01
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDay parse chuỗi YYYY-MM-DD
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, strings.TrimSpace(s))
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// Time trả về nửa đêm UTC của ngày
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// DaysUntil là số ngày từ d tới o, âm nếu o trước d
func (d Day) DaysUntil(o Day) int {
	return int(o.Time().Sub(d.Time()).Hours() / 24)
}

func (d Day) IsZero() bool {
	return d == Day{}
}

func (d Day) Before(o Day) bool {
	return d.Compare(o) < 0
}

func (d Day) After(o Day) bool {
	return d.Compare(o) > 0
}

// Compare trả về -1, 0 hoặc +1.
func (d Day) Compare(o Day) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysBetween liệt kê mọi ngày trong [from, to], cả hai đầu đều tính.
// Trả về nil nếu to trước from.
func DaysBetween(from, to Day) []Day {
	if to.Before(from) {
		return nil
	}
	var days []Day
	for d := from; !d.After(to); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// DaySet là tập ngày đã giữ chỗ, khóa theo (year, month, day)
type DaySet map[Day]struct{}

func NewDaySet(days ...Day) DaySet {
	s := make(DaySet, len(days))
	s.Add(days...)
	return s
}

func (s DaySet) Add(days ...Day) {
	for _, d := range days {
		s[d] = struct{}{}
	}
}

// Remove xóa các ngày; ngày không có trong tập thì bỏ qua
func (s DaySet) Remove(days ...Day) {
	for _, d := range days {
		delete(s, d)
	}
}

func (s DaySet) Contains(d Day) bool {
	_, ok := s[d]
	return ok
}

// ContainsAny trả về ngày đầu tiên (theo thứ tự truyền vào) đã có trong tập
func (s DaySet) ContainsAny(days []Day) (Day, bool) {
	for _, d := range days {
		if s.Contains(d) {
			return d, true
		}
	}
	return Day{}, false
}

func (s DaySet) Clone() DaySet {
	c := make(DaySet, len(s))
	for d := range s {
		c[d] = struct{}{}
	}
	return c
}

// Sorted trả về các ngày theo thứ tự tăng dần
func (s DaySet) Sorted() []Day {
	days := make([]Day, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}
