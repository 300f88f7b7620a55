package analytics

import (
	"sort"

	"moodlog-backend/domain/config"
	"moodlog-backend/domain/core/entities"
	pkgerrors "moodlog-backend/pkg/errors"
)

// weekdayNames is indexed by ISO weekday, Monday first
var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayMood aggregates mood for one day of the week. AverageMood is nil
// when no entry fell on that day; absence of data is never reported as a
// zero score.
type WeekdayMood struct {
	Day         string
	AverageMood *float64
	EntryCount  int
}

// TagCount is one tag with its occurrence count. Tags are counted
// case-sensitively, so "work" and "Work" are distinct.
type TagCount struct {
	Tag   string
	Count int
}

// PatternReport captures habit patterns over the whole journal
type PatternReport struct {
	EntryCount   int
	WeekdayMoods [7]WeekdayMood
	TopTags      []TagCount
}

// PatternAnalyzer computes weekday and tag patterns
type PatternAnalyzer struct {
	cfg *config.DomainConfig
}

// NewPatternAnalyzer creates a pattern analyzer
func NewPatternAnalyzer(cfg *config.DomainConfig) *PatternAnalyzer {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &PatternAnalyzer{cfg: cfg}
}

// Analyze computes the pattern report for the given entries. An empty input
// yields an explicit no-data error.
func (a *PatternAnalyzer) Analyze(entries []*entities.Entry) (*PatternReport, error) {
	if len(entries) == 0 {
		return nil, pkgerrors.ErrNoEntries()
	}

	report := &PatternReport{EntryCount: len(entries)}

	var moodSums [7]float64
	var counts [7]int
	tagCounts := make(map[string]int)
	tagOrder := make([]string, 0)

	for _, entry := range entries {
		day := entry.ISOWeekday()
		moodSums[day] += float64(entry.MoodScore())
		counts[day]++

		for _, tag := range entry.GetTags() {
			if _, seen := tagCounts[tag]; !seen {
				tagOrder = append(tagOrder, tag)
			}
			tagCounts[tag]++
		}
	}

	for day := 0; day < 7; day++ {
		report.WeekdayMoods[day] = WeekdayMood{
			Day:        weekdayNames[day],
			EntryCount: counts[day],
		}
		if counts[day] > 0 {
			avg := moodSums[day] / float64(counts[day])
			report.WeekdayMoods[day].AverageMood = &avg
		}
	}

	report.TopTags = topTags(tagCounts, tagOrder, a.cfg.TopTagCount)
	return report, nil
}

// topTags ranks tags by count descending. The candidate list is built in
// first-encountered order and sorted stably, so ties keep that order.
func topTags(counts map[string]int, order []string, limit int) []TagCount {
	ranked := make([]TagCount, 0, len(order))
	for _, tag := range order {
		ranked = append(ranked, TagCount{Tag: tag, Count: counts[tag]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
