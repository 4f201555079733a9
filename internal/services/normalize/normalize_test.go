package normalize

import (
	"reflect"
	"testing"
)

func TestCalculateRating(t *testing.T) {
	testCases := []struct {
		name     string
		views    uint64
		likes    uint64
		expected int
	}{
		{"zero views always zero", 0, 12345, 0},
		{"ten percent rate", 1000, 100, 5},
		{"five percent rate", 1000, 50, 4},
		{"two percent rate", 1000, 20, 3},
		{"one percent rate", 1000, 10, 2},
		{"below one percent", 1000, 5, 1},
		{"zero likes with views", 1000, 0, 1},
		{"rate above one hundred percent", 10, 100, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateRating(tc.views, tc.likes); got != tc.expected {
				t.Errorf("CalculateRating(%d, %d) = %d, expected %d", tc.views, tc.likes, got, tc.expected)
			}
		})
	}
}

func TestExtractHashtags(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		limit    int
		expected []string
	}{
		{
			name:     "basic extraction",
			text:     "check this out #golang #testing",
			limit:    10,
			expected: []string{"golang", "testing"},
		},
		{
			name:     "duplicates removed order preserved",
			text:     "#one #two #one #three",
			limit:    10,
			expected: []string{"one", "two", "three"},
		},
		{
			name:     "arabic script with digits",
			text:     "رائع #فن #فيديو123 #فن",
			limit:    10,
			expected: []string{"فن", "فيديو123"},
		},
		{
			name:     "cap respected",
			text:     "#a #b #c #d",
			limit:    2,
			expected: []string{"a", "b"},
		},
		{
			name:     "no hashtags",
			text:     "plain text only",
			limit:    10,
			expected: []string{},
		},
		{
			name:     "bare hash ignored",
			text:     "a # b #ok",
			limit:    10,
			expected: []string{"ok"},
		},
		{
			name:     "zero limit falls back to default",
			text:     "#1 #2 #3 #4 #5 #6 #7 #8 #9 #10 #11 #12",
			limit:    0,
			expected: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractHashtags(tc.text, tc.limit)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("ExtractHashtags(%q) = %v, expected %v", tc.text, got, tc.expected)
			}
		})
	}
}

func TestParseISO8601Duration(t *testing.T) {
	testCases := []struct {
		text     string
		expected uint32
	}{
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT0S", 0},
		{"PT10M", 600},
		{"PT2H", 7200},
		{"PT1H30S", 3630},
		{"", 0},
		{"garbage", 0},
		{"P1DT2H", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			if got := ParseISO8601Duration(tc.text); got != tc.expected {
				t.Errorf("ParseISO8601Duration(%q) = %d, expected %d", tc.text, got, tc.expected)
			}
		})
	}
}
