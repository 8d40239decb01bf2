package config

import (
	"strconv"
	"strings"

	"github.com/vovakirdan/tickrun/internal/core"
)

// ScanInts extracts every integer from s. Runs of digits and '-' form a
// token, any other character separates tokens. Tokens that are not valid
// integers (a lone "-", "3-4") are dropped.
func ScanInts(s string) []int {
	var nums []int
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		if n, err := strconv.Atoi(s[start:end]); err == nil {
			nums = append(nums, n)
		}
		start = -1
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch >= '0' && ch <= '9') || ch == '-' {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(s))
	return nums
}

// ParseObstacles decodes "x0,y0 x1,y1 ..." into unit rects. Integers are
// paired in order; a trailing unpaired integer is discarded.
func ParseObstacles(s string) []core.Rect {
	nums := ScanInts(s)
	rects := make([]core.Rect, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		rects = append(rects, core.UnitRect(float64(nums[i]), float64(nums[i+1])))
	}
	return rects
}

// AudioRoute is one decoded audio_map entry.
type AudioRoute struct {
	Event    string
	Category string
	Priority int
}

// DefaultAudioPriority is used when an audio_map entry omits the priority.
const DefaultAudioPriority = 5

// ParseAudioMap decodes "event:category[:priority];..." entries.
// Empty entries and entries with fewer than two parts are dropped; a missing
// or unparsable priority becomes DefaultAudioPriority.
func ParseAudioMap(s string) []AudioRoute {
	var routes []AudioRoute
	for _, item := range strings.Split(s, ";") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if len(parts) < 2 {
			continue
		}

		route := AudioRoute{
			Event:    strings.TrimSpace(parts[0]),
			Category: strings.TrimSpace(parts[1]),
			Priority: DefaultAudioPriority,
		}
		if len(parts) >= 3 {
			if p, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil {
				route.Priority = p
			}
		}
		routes = append(routes, route)
	}
	return routes
}
