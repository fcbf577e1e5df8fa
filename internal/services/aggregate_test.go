package services

import (
	"fmt"
	"testing"
	"time"

	"daybook/internal/models"
)

func entryOn(date time.Time, words int) models.Entry {
	return models.Entry{EntryDate: date, WordCount: words}
}

func moodEntry(mood models.Mood) models.Entry {
	return models.Entry{Mood: mood, EntryDate: time.Now()}
}

func TestGroupByDay(t *testing.T) {
	jan5morning := time.Date(2024, 1, 5, 8, 0, 0, 0, time.Local)
	jan5evening := time.Date(2024, 1, 5, 21, 0, 0, 0, time.Local)
	jan6 := time.Date(2024, 1, 6, 12, 0, 0, 0, time.Local)

	groups := groupByDay([]models.Entry{
		entryOn(jan5morning, 10),
		entryOn(jan5evening, 20),
		entryOn(jan6, 30),
	})

	if len(groups) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(groups))
	}
	if len(groups["2024-01-05"]) != 2 {
		t.Errorf("expected 2 entries on 2024-01-05, got %d", len(groups["2024-01-05"]))
	}
	if len(groups["2024-01-06"]) != 1 {
		t.Errorf("expected 1 entry on 2024-01-06, got %d", len(groups["2024-01-06"]))
	}

	// Scan order preserved within a bucket.
	if groups["2024-01-05"][0].WordCount != 10 || groups["2024-01-05"][1].WordCount != 20 {
		t.Error("expected bucket to preserve input order")
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	groups := groupByDay(nil)
	if groups == nil {
		t.Fatal("expected empty map, got nil")
	}
	if len(groups) != 0 {
		t.Errorf("expected empty map, got %d buckets", len(groups))
	}
}

func TestMoodDistribution(t *testing.T) {
	dist := moodDistribution([]models.Entry{
		moodEntry(models.MoodHappy),
		moodEntry(models.MoodHappy),
		moodEntry(models.MoodSad),
		moodEntry(models.MoodCalm),
		moodEntry(models.MoodCalm),
	})

	if len(dist) != 3 {
		t.Fatalf("expected 3 moods, got %d", len(dist))
	}

	// Descending by count, ties alphabetical.
	if dist[0].Mood != models.MoodCalm || dist[0].Count != 2 {
		t.Errorf("expected calm x2 first, got %s x%d", dist[0].Mood, dist[0].Count)
	}
	if dist[1].Mood != models.MoodHappy || dist[1].Count != 2 {
		t.Errorf("expected happy x2 second, got %s x%d", dist[1].Mood, dist[1].Count)
	}
	if dist[2].Mood != models.MoodSad || dist[2].Count != 1 {
		t.Errorf("expected sad x1 last, got %s x%d", dist[2].Mood, dist[2].Count)
	}
}

func TestCategoryDistribution(t *testing.T) {
	entries := []models.Entry{
		{Category: models.CategoryWork},
		{Category: models.CategoryWork},
		{Category: models.CategoryTravel},
	}

	dist := categoryDistribution(entries)
	if len(dist) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(dist))
	}
	if dist[0].Category != models.CategoryWork || dist[0].Count != 2 {
		t.Errorf("expected work x2 first, got %s x%d", dist[0].Category, dist[0].Count)
	}
}

func TestMonthlyActivity(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

	entries := []models.Entry{
		entryOn(time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local), 100),
		entryOn(time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local), 50),
		entryOn(time.Date(2024, 3, 2, 9, 0, 0, 0, time.Local), 30),
		// Before the trailing 12 month window.
		entryOn(time.Date(2023, 6, 30, 9, 0, 0, 0, time.Local), 999),
		// After now.
		entryOn(time.Date(2024, 7, 1, 9, 0, 0, 0, time.Local), 999),
	}

	activity := monthlyActivity(entries, now)

	if len(activity) != 2 {
		t.Fatalf("expected 2 active months, got %d: %+v", len(activity), activity)
	}
	if activity[0].Month != "2024-03" || activity[0].Count != 1 || activity[0].Words != 30 {
		t.Errorf("unexpected first month: %+v", activity[0])
	}
	if activity[1].Month != "2024-06" || activity[1].Count != 2 || activity[1].Words != 150 {
		t.Errorf("unexpected second month: %+v", activity[1])
	}
}

func TestMonthlyActivityWindowStart(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

	// July 2023 is the earliest month inside the window.
	inWindow := entryOn(time.Date(2023, 7, 1, 0, 0, 0, 0, time.Local), 10)
	activity := monthlyActivity([]models.Entry{inWindow}, now)

	if len(activity) != 1 || activity[0].Month != "2023-07" {
		t.Fatalf("expected 2023-07 inside the window, got %+v", activity)
	}
}

func TestStreakData(t *testing.T) {
	t.Run("per_day_counts_descending", func(t *testing.T) {
		data := streakData([]models.Entry{
			entryOn(time.Date(2024, 1, 5, 8, 0, 0, 0, time.Local), 1),
			entryOn(time.Date(2024, 1, 5, 20, 0, 0, 0, time.Local), 1),
			entryOn(time.Date(2024, 1, 7, 8, 0, 0, 0, time.Local), 1),
		})

		if len(data) != 2 {
			t.Fatalf("expected 2 days, got %d", len(data))
		}
		if data[0].Date != "2024-01-07" || data[0].Count != 1 {
			t.Errorf("unexpected first day: %+v", data[0])
		}
		if data[1].Date != "2024-01-05" || data[1].Count != 2 {
			t.Errorf("unexpected second day: %+v", data[1])
		}
	})

	t.Run("capped_at_365_days", func(t *testing.T) {
		start := time.Date(2023, 1, 1, 12, 0, 0, 0, time.Local)
		entries := make([]models.Entry, 0, 400)
		for i := 0; i < 400; i++ {
			entries = append(entries, entryOn(start.AddDate(0, 0, i), 1))
		}

		data := streakData(entries)
		if len(data) != 365 {
			t.Fatalf("expected 365 days, got %d", len(data))
		}
		// Most recent day survives the cap.
		want := start.AddDate(0, 0, 399).Format("2006-01-02")
		if data[0].Date != want {
			t.Errorf("expected most recent day %s first, got %s", want, data[0].Date)
		}
	})
}

func TestAverageWords(t *testing.T) {
	tests := []struct {
		words, count, want int64
	}{
		{0, 0, 0},
		{100, 4, 25},
		{10, 3, 3},  // 3.33 rounds down
		{11, 2, 6},  // 5.5 rounds up
		{100, 1, 100},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_over_%d", tt.words, tt.count), func(t *testing.T) {
			if got := averageWords(tt.words, tt.count); got != tt.want {
				t.Errorf("averageWords(%d, %d) = %d, want %d", tt.words, tt.count, got, tt.want)
			}
		})
	}
}

func TestCurrentStreak(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local).AddDate(0, 0, offset)
	}

	t.Run("no_entries", func(t *testing.T) {
		if got := currentStreak(nil); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})

	t.Run("consecutive_run", func(t *testing.T) {
		entries := []models.Entry{
			entryOn(day(0), 1),
			entryOn(day(-1), 1),
			entryOn(day(-2), 1),
			// Gap at day(-3) breaks the run.
			entryOn(day(-4), 1),
		}
		if got := currentStreak(entries); got != 3 {
			t.Errorf("expected streak 3, got %d", got)
		}
	})

	t.Run("multiple_entries_same_day", func(t *testing.T) {
		entries := []models.Entry{
			entryOn(day(0), 1),
			entryOn(day(0), 1),
			entryOn(day(-1), 1),
		}
		if got := currentStreak(entries); got != 2 {
			t.Errorf("expected streak 2, got %d", got)
		}
	})

	t.Run("single_old_entry", func(t *testing.T) {
		entries := []models.Entry{entryOn(day(-30), 1)}
		if got := currentStreak(entries); got != 1 {
			t.Errorf("expected streak 1, got %d", got)
		}
	})
}

func TestLastEntryDate(t *testing.T) {
	if got := lastEntryDate(nil); got != nil {
		t.Errorf("expected nil for no entries, got %v", got)
	}

	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	late := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)
	got := lastEntryDate([]models.Entry{entryOn(early, 1), entryOn(late, 1)})
	if got == nil || !got.Equal(late) {
		t.Errorf("expected %v, got %v", late, got)
	}
}

func TestTotalWords(t *testing.T) {
	entries := []models.Entry{entryOn(time.Now(), 10), entryOn(time.Now(), 0), entryOn(time.Now(), 32)}
	if got := totalWords(entries); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}
