package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "daybook/internal/errors"
	"daybook/internal/models"
)

// statsService computes read-only aggregation views and maintains the
// per-user derived stats.
type statsService struct {
	db *gorm.DB
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(db *gorm.DB) StatsServicer {
	return &statsService{db: db}
}

// Calendar returns the user's entries for the given month grouped by
// calendar date, projected to the reduced field set.
func (s *statsService) Calendar(userID string, year, month int) (*CalendarView, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidMonth
	}
	if year < 1970 || year > 2100 {
		return nil, apperrors.ErrInvalidYear
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Millisecond)

	var entries []models.Entry
	if err := s.db.
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, monthStart, monthEnd).
		Order("entry_date ASC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &CalendarView{
		Year:         year,
		Month:        month,
		Entries:      groupByDay(entries),
		TotalEntries: int64(len(entries)),
	}, nil
}

// Summary computes the full statistics view for a user. All grouping runs
// over a single scan of the user's entries.
func (s *statsService) Summary(userID string) (*SummaryStats, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	var entries []models.Entry
	if err := s.db.
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := int64(len(entries))
	words := totalWords(entries)

	return &SummaryStats{
		TotalEntries:         total,
		TotalWords:           words,
		MoodDistribution:     moodDistribution(entries),
		CategoryDistribution: categoryDistribution(entries),
		MonthlyActivity:      monthlyActivity(entries, time.Now()),
		StreakData:           streakData(entries),
		AverageWordsPerEntry: averageWords(words, total),
		UserStats:            snapshotOf(user),
	}, nil
}

// Dashboard returns the five most recent entries, whether an entry exists
// for today, and a freshly recomputed stats snapshot.
func (s *statsService) Dashboard(userID string) (*DashboardView, error) {
	var recent []models.Entry
	if err := s.db.
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	recentEntries := make([]CalendarEntry, 0, len(recent))
	for _, e := range recent {
		recentEntries = append(recentEntries, projectCalendarEntry(e))
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var todayCount int64
	if err := s.db.Model(&models.Entry{}).
		Where("user_id = ? AND entry_date >= ? AND entry_date < ?", userID, dayStart, dayEnd).
		Count(&todayCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.RecomputeUserStats(userID); err != nil {
		return nil, err
	}
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	return &DashboardView{
		RecentEntries: recentEntries,
		HasEntryToday: todayCount > 0,
		UserStats:     snapshotOf(user),
	}, nil
}

// RecomputeUserStats rebuilds the owner's derived stats from a full scan of
// their entries. It is the consumer of entry lifecycle events; a stale
// snapshot from a concurrent write self-heals on the next mutation.
func (s *statsService) RecomputeUserStats(userID string) error {
	user, err := s.getUser(userID)
	if err != nil {
		return err
	}

	var entries []models.Entry
	if err := s.db.
		Select("entry_date", "word_count").
		Where("user_id = ?", userID).
		Find(&entries).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{
		"total_entries":   int64(len(entries)),
		"total_words":     totalWords(entries),
		"current_streak":  currentStreak(entries),
		"last_entry_date": lastEntryDate(entries),
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *statsService) getUser(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

func snapshotOf(user *models.User) StatsSnapshot {
	return StatsSnapshot{
		TotalEntries:  user.TotalEntries,
		TotalWords:    user.TotalWords,
		CurrentStreak: user.CurrentStreak,
		LastEntryDate: user.LastEntryDate,
	}
}
