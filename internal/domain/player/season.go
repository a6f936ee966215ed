package player

import (
	"regexp"
	"strconv"
	"strings"
)

// seasonPattern accepts "2023", "2023/24", "2023-2024" and similar labels.
var seasonPattern = regexp.MustCompile(`^\s*(\d{4})(?:\s*[/-]\s*(\d{2}|\d{4}))?`)

type seasonKey struct {
	start  int
	end    int
	parsed bool
}

func parseSeason(label string) seasonKey {
	match := seasonPattern.FindStringSubmatch(label)
	if match == nil {
		return seasonKey{}
	}

	start, _ := strconv.Atoi(match[1])
	end := start
	if match[2] != "" {
		tail, _ := strconv.Atoi(match[2])
		if len(match[2]) == 2 {
			tail += start / 100 * 100
			if tail < start {
				tail += 100
			}
		}
		end = tail
	}
	return seasonKey{start: start, end: end, parsed: true}
}

// CompareSeasons orders season labels by leading year, then by closing year.
// Unparsable labels sort before every parsable one and compare as plain strings among themselves.
func CompareSeasons(a, b string) int {
	ka, kb := parseSeason(a), parseSeason(b)
	switch {
	case ka.parsed && !kb.parsed:
		return 1
	case !ka.parsed && kb.parsed:
		return -1
	case !ka.parsed && !kb.parsed:
		return strings.Compare(strings.TrimSpace(a), strings.TrimSpace(b))
	}

	if ka.start != kb.start {
		if ka.start < kb.start {
			return -1
		}
		return 1
	}
	if ka.end != kb.end {
		if ka.end < kb.end {
			return -1
		}
		return 1
	}
	return 0
}

// LatestSeason picks the newest season record. When two records compare equal the later one in stats wins.
func LatestSeason(stats []SeasonStatistic) (SeasonStatistic, bool) {
	if len(stats) == 0 {
		return SeasonStatistic{}, false
	}

	latest := stats[0]
	for _, stat := range stats[1:] {
		if CompareSeasons(stat.Season, latest.Season) >= 0 {
			latest = stat
		}
	}
	return latest, true
}
