package normalize

import (
	"regexp"
	"strconv"
)

// DefaultHashtagLimit caps extracted hashtags unless a caller overrides it.
const DefaultHashtagLimit = 10

// hashtagRegex matches #word tokens across Unicode scripts (Latin, Arabic,
// digits and underscore).
var hashtagRegex = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

var durationRegex = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ExtractHashtags pulls #word tokens out of free text, preserving first-seen
// order, dropping duplicates and empty tokens, capped at limit. A limit of
// zero or less falls back to DefaultHashtagLimit.
func ExtractHashtags(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultHashtagLimit
	}

	seen := make(map[string]struct{})
	hashtags := []string{}

	for _, match := range hashtagRegex.FindAllStringSubmatch(text, -1) {
		tag := match[1]
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		hashtags = append(hashtags, tag)
		if len(hashtags) >= limit {
			break
		}
	}

	return hashtags
}

// CalculateRating derives a 0..5 score from the engagement rate
// (likes/views as a percentage). Zero views always rates zero.
func CalculateRating(views, likes uint64) int {
	if views == 0 {
		return 0
	}

	rate := float64(likes) / float64(views) * 100

	switch {
	case rate >= 10:
		return 5
	case rate >= 5:
		return 4
	case rate >= 2:
		return 3
	case rate >= 1:
		return 2
	default:
		return 1
	}
}

// ParseISO8601Duration parses the PT#H#M#S form used by YouTube's
// contentDetails.duration. Absent components default to zero; anything that
// does not match the form parses as zero seconds.
func ParseISO8601Duration(text string) uint32 {
	matches := durationRegex.FindStringSubmatch(text)
	if matches == nil {
		return 0
	}

	var seconds uint32
	multipliers := []uint32{3600, 60, 1}
	for i, m := range matches[1:] {
		if m == "" {
			continue
		}
		if v, err := strconv.ParseUint(m, 10, 32); err == nil {
			seconds += uint32(v) * multipliers[i]
		}
	}

	return seconds
}
