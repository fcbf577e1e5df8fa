package services

import (
	"math"
	"sort"
	"time"

	"daybook/internal/models"
)

// The aggregation helpers in this file are pure functions over entry
// slices. They carry all grouping and distribution logic so the views
// stay independent of the storage engine's query language.

const dayKeyLayout = "2006-01-02"

// maxStreakDays caps the streak distribution at the most recent
// distinct calendar days.
const maxStreakDays = 365

// projectCalendarEntry reduces an entry to the calendar/dashboard field set.
func projectCalendarEntry(e models.Entry) CalendarEntry {
	return CalendarEntry{
		ID:         e.ID,
		Title:      e.Title,
		Mood:       e.Mood,
		Category:   e.Category,
		EntryDate:  e.EntryDate,
		WordCount:  e.WordCount,
		IsFavorite: e.IsFavorite,
	}
}

// groupByDay buckets entries under their YYYY-MM-DD entry date, preserving
// the slice's scan order within each bucket.
func groupByDay(entries []models.Entry) map[string][]CalendarEntry {
	groups := make(map[string][]CalendarEntry)
	for _, e := range entries {
		key := e.EntryDate.Format(dayKeyLayout)
		groups[key] = append(groups[key], projectCalendarEntry(e))
	}
	return groups
}

// moodDistribution counts entries per mood, descending by count.
// Ties break alphabetically so the ordering is deterministic.
func moodDistribution(entries []models.Entry) []MoodCount {
	counts := make(map[models.Mood]int64)
	for _, e := range entries {
		counts[e.Mood]++
	}

	dist := make([]MoodCount, 0, len(counts))
	for mood, count := range counts {
		dist = append(dist, MoodCount{Mood: mood, Count: count})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Mood < dist[j].Mood
	})
	return dist
}

// categoryDistribution counts entries per category, descending by count.
func categoryDistribution(entries []models.Entry) []CategoryCount {
	counts := make(map[models.EntryCategory]int64)
	for _, e := range entries {
		counts[e.Category]++
	}

	dist := make([]CategoryCount, 0, len(counts))
	for category, count := range counts {
		dist = append(dist, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Category < dist[j].Category
	})
	return dist
}

// monthlyActivity sums entry counts and word counts per year-month for the
// trailing 12 months ending at now, ascending chronologically. Months with
// no entries are omitted.
func monthlyActivity(entries []models.Entry, now time.Time) []MonthlyActivity {
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)

	type bucket struct {
		count int64
		words int64
	}
	buckets := make(map[string]bucket)
	for _, e := range entries {
		if e.EntryDate.Before(windowStart) || e.EntryDate.After(now) {
			continue
		}
		key := e.EntryDate.Format("2006-01")
		b := buckets[key]
		b.count++
		b.words += int64(e.WordCount)
		buckets[key] = b
	}

	months := make([]string, 0, len(buckets))
	for key := range buckets {
		months = append(months, key)
	}
	sort.Strings(months)

	activity := make([]MonthlyActivity, 0, len(months))
	for _, key := range months {
		activity = append(activity, MonthlyActivity{
			Month: key,
			Count: buckets[key].count,
			Words: buckets[key].words,
		})
	}
	return activity
}

// streakData counts entries per calendar day, descending by day, capped at
// the most recent 365 distinct days.
func streakData(entries []models.Entry) []DayCount {
	counts := make(map[string]int64)
	for _, e := range entries {
		counts[e.EntryDate.Format(dayKeyLayout)]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	if len(days) > maxStreakDays {
		days = days[:maxStreakDays]
	}

	data := make([]DayCount, 0, len(days))
	for _, day := range days {
		data = append(data, DayCount{Date: day, Count: counts[day]})
	}
	return data
}

// totalWords sums word counts, treating absent counts as zero.
func totalWords(entries []models.Entry) int64 {
	var total int64
	for _, e := range entries {
		total += int64(e.WordCount)
	}
	return total
}

// averageWords is the integer-rounded mean word count, zero without entries.
func averageWords(words, count int64) int64 {
	if count == 0 {
		return 0
	}
	return int64(math.Round(float64(words) / float64(count)))
}

// currentStreak is the number of consecutive calendar days with at least
// one entry, ending at the most recent entry day.
func currentStreak(entries []models.Entry) int {
	if len(entries) == 0 {
		return 0
	}

	days := make(map[string]bool)
	latest := entries[0].EntryDate
	for _, e := range entries {
		days[e.EntryDate.Format(dayKeyLayout)] = true
		if e.EntryDate.After(latest) {
			latest = e.EntryDate
		}
	}

	streak := 0
	day := time.Date(latest.Year(), latest.Month(), latest.Day(), 0, 0, 0, 0, latest.Location())
	for days[day.Format(dayKeyLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// lastEntryDate is the date of the most recently dated entry, nil if none.
func lastEntryDate(entries []models.Entry) *time.Time {
	if len(entries) == 0 {
		return nil
	}
	latest := entries[0].EntryDate
	for _, e := range entries[1:] {
		if e.EntryDate.After(latest) {
			latest = e.EntryDate
		}
	}
	return &latest
}
