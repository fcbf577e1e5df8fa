package services

import (
	"time"

	"daybook/internal/models"
	"daybook/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	UpdatePreferences(userID string, prefs PreferenceUpdate) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// PreferenceUpdate holds optional preference changes; nil fields are left untouched.
type PreferenceUpdate struct {
	Theme           *string
	DefaultMood     *models.Mood
	DefaultCategory *models.EntryCategory
}

// EntryFilter holds optional filter parameters for listing entries.
// Absent fields never narrow the result set.
type EntryFilter struct {
	Mood       *models.Mood
	Category   *models.EntryCategory
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
	IsFavorite *bool
	SortBy     string
	SortOrder  string
}

// EntryInput carries the caller-supplied fields for creating an entry.
// WordCount and ReadingTime are always derived from Content, never accepted.
type EntryInput struct {
	Title     string
	Content   string
	Mood      models.Mood
	Category  models.EntryCategory
	Tags      []string
	EntryDate time.Time
	IsPrivate *bool
	Location  string
	Weather   string
	Sentiment *float64
}

// EntryUpdateFields holds optional changes for updating an entry;
// nil fields are left untouched.
type EntryUpdateFields struct {
	Title     *string
	Content   *string
	Mood      *models.Mood
	Category  *models.EntryCategory
	Tags      *[]string
	EntryDate *time.Time
	IsPrivate *bool
	Location  *string
	Weather   *string
	Sentiment *float64
}

// EntryServicer defines the contract for entry-related business logic.
// Every operation is scoped to the owning user.
type EntryServicer interface {
	CreateEntry(userID string, input EntryInput) (*models.Entry, error)
	GetUserEntries(userID string, page pagination.PageRequest, filter EntryFilter) (*pagination.Page[models.Entry], error)
	GetEntryByID(userID, entryID string) (*models.Entry, error)
	UpdateEntry(userID, entryID string, fields EntryUpdateFields) (*models.Entry, error)
	ToggleFavorite(userID, entryID string) (*models.Entry, error)
	DeleteEntry(userID, entryID string) error
}

// CalendarEntry is the reduced entry projection used by calendar and
// dashboard views.
type CalendarEntry struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Mood       models.Mood          `json:"mood"`
	Category   models.EntryCategory `json:"category"`
	EntryDate  time.Time            `json:"entry_date"`
	WordCount  int                  `json:"word_count"`
	IsFavorite bool                 `json:"is_favorite"`
}

// CalendarView groups a month's entries by calendar date.
type CalendarView struct {
	Year         int                        `json:"year"`
	Month        int                        `json:"month"`
	Entries      map[string][]CalendarEntry `json:"entries"`
	TotalEntries int64                      `json:"total_entries"`
}

// MoodCount is one bucket of the mood distribution.
type MoodCount struct {
	Mood  models.Mood `json:"mood"`
	Count int64       `json:"count"`
}

// CategoryCount is one bucket of the category distribution.
type CategoryCount struct {
	Category models.EntryCategory `json:"category"`
	Count    int64                `json:"count"`
}

// MonthlyActivity is the entry count and word sum for one year-month.
type MonthlyActivity struct {
	Month string `json:"month"` // YYYY-MM
	Count int64  `json:"count"`
	Words int64  `json:"words"`
}

// DayCount is the entry count for one calendar day.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// StatsSnapshot is the derived per-user stats block.
type StatsSnapshot struct {
	TotalEntries  int64      `json:"total_entries"`
	TotalWords    int64      `json:"total_words"`
	CurrentStreak int        `json:"current_streak"`
	LastEntryDate *time.Time `json:"last_entry_date"`
}

// SummaryStats is the full statistics view for one user.
type SummaryStats struct {
	TotalEntries         int64             `json:"total_entries"`
	TotalWords           int64             `json:"total_words"`
	MoodDistribution     []MoodCount       `json:"mood_distribution"`
	CategoryDistribution []CategoryCount   `json:"category_distribution"`
	MonthlyActivity      []MonthlyActivity `json:"monthly_activity"`
	StreakData           []DayCount        `json:"streak_data"`
	AverageWordsPerEntry int64             `json:"average_words_per_entry"`
	UserStats            StatsSnapshot     `json:"user_stats"`
}

// DashboardView is the landing-page summary for one user.
type DashboardView struct {
	RecentEntries []CalendarEntry `json:"recent_entries"`
	HasEntryToday bool            `json:"has_entry_today"`
	UserStats     StatsSnapshot   `json:"user_stats"`
}

// StatsServicer defines the contract for read-only aggregation views and
// the stats recomputation triggered by entry lifecycle events.
type StatsServicer interface {
	Calendar(userID string, year, month int) (*CalendarView, error)
	Summary(userID string) (*SummaryStats, error)
	Dashboard(userID string) (*DashboardView, error)
	RecomputeUserStats(userID string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
