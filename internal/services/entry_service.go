package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "daybook/internal/errors"
	"daybook/internal/events"
	"daybook/internal/models"
	"daybook/internal/pagination"
)

// wordsPerMinute is the reading speed used to derive reading time.
const wordsPerMinute = 200

const (
	maxTitleLen   = 200
	maxContentLen = 10000
	maxTags       = 10
	maxTagLen     = 30
)

// entryService handles entry-related business logic.
type entryService struct {
	db         *gorm.DB
	dispatcher *events.Dispatcher
}

// NewEntryService creates a new EntryServicer. The dispatcher receives an
// event after every successful entry mutation.
func NewEntryService(db *gorm.DB, dispatcher *events.Dispatcher) EntryServicer {
	return &entryService{db: db, dispatcher: dispatcher}
}

// deriveContentFields computes the word count and reading time for content.
// Words are non-empty whitespace-delimited tokens; reading time is the
// ceiling of words/200. Both are zero for empty content.
func deriveContentFields(content string) (wordCount, readingTime int) {
	wordCount = len(strings.Fields(content))
	if wordCount > 0 {
		readingTime = (wordCount + wordsPerMinute - 1) / wordsPerMinute
	}
	return wordCount, readingTime
}

func validateTitle(title string) error {
	if title == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if len(title) > maxTitleLen {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "title must be at most 200 characters")
	}
	return nil
}

func validateContent(content string) error {
	if content == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "content is required")
	}
	if len(content) > maxContentLen {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "content must be at most 10000 characters")
	}
	return nil
}

func validateTags(tags []string) error {
	if len(tags) > maxTags {
		return apperrors.ErrTooManyTags
	}
	for _, tag := range tags {
		if tag == "" || len(tag) > maxTagLen {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "tags must be 1-30 characters")
		}
	}
	return nil
}

// CreateEntry validates and persists a new entry, then dispatches an
// entry.created event so the owner's stats get recomputed.
func (s *entryService) CreateEntry(userID string, input EntryInput) (*models.Entry, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateContent(input.Content); err != nil {
		return nil, err
	}
	if !input.Mood.IsValid() {
		return nil, apperrors.ErrInvalidMood
	}
	if !input.Category.IsValid() {
		return nil, apperrors.ErrInvalidCategory
	}
	if err := validateTags(input.Tags); err != nil {
		return nil, err
	}

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	isPrivate := true
	if input.IsPrivate != nil {
		isPrivate = *input.IsPrivate
	}

	wordCount, readingTime := deriveContentFields(input.Content)

	entry := &models.Entry{
		UserID:      userID,
		Title:       input.Title,
		Content:     input.Content,
		Mood:        input.Mood,
		Category:    input.Category,
		Tags:        input.Tags,
		WordCount:   wordCount,
		ReadingTime: readingTime,
		EntryDate:   entryDate,
		IsPrivate:   isPrivate,
		Location:    input.Location,
		Weather:     input.Weather,
		Sentiment:   input.Sentiment,
		Version:     1,
	}

	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.dispatcher.Dispatch(events.EntryEvent{Type: events.EntryCreated, UserID: userID, EntryID: entry.ID})
	return entry, nil
}

// GetUserEntries returns a filtered, paginated page of the user's entries.
// With an active search, results rank by field-weighted relevance; otherwise
// they follow the requested sort (entry_date descending by default).
func (s *entryService) GetUserEntries(userID string, page pagination.PageRequest, filter EntryFilter) (*pagination.Page[models.Entry], error) {
	if filter.Mood != nil && !filter.Mood.IsValid() {
		return nil, apperrors.ErrInvalidMood
	}
	if filter.Category != nil && !filter.Category.IsValid() {
		return nil, apperrors.ErrInvalidCategory
	}

	orderExpr, err := buildOrder(filter)
	if err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Entry{}).Where("user_id = ?", userID)
	base = applyEntryFilters(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.Entry
	if err := base.Clauses(orderExpr).
		Scopes(pagination.Paginate(page)).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPage(entries, page.Page, page.Limit, total)
	return &result, nil
}

// applyEntryFilters narrows the query by each supplied filter; absent
// filters are no-ops. Date bounds are inclusive.
func applyEntryFilters(q *gorm.DB, f EntryFilter) *gorm.DB {
	if f.Mood != nil {
		q = q.Where("mood = ?", *f.Mood)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.StartDate != nil {
		q = q.Where("entry_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("entry_date <= ?", *f.EndDate)
	}
	if f.IsFavorite != nil {
		q = q.Where("is_favorite = ?", *f.IsFavorite)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags) LIKE ?)",
			pattern, pattern, pattern)
	}
	return q
}

// sortColumns is the allowlist mapping sort parameters to columns.
var sortColumns = map[string]string{
	"entry_date": "entry_date",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
	"word_count": "word_count",
	"mood":       "mood",
	"category":   "category",
}

// buildOrder resolves the ORDER BY clause for a listing. Search relevance
// scores title matches heaviest, then content, then tags, with entry date
// as the tiebreak.
func buildOrder(f EntryFilter) (clause.OrderBy, error) {
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		return clause.OrderBy{
			Expression: clause.Expr{
				SQL: "(CASE WHEN LOWER(title) LIKE ? THEN 3 ELSE 0 END" +
					" + CASE WHEN LOWER(content) LIKE ? THEN 2 ELSE 0 END" +
					" + CASE WHEN LOWER(tags) LIKE ? THEN 1 ELSE 0 END) DESC, entry_date DESC",
				Vars:               []interface{}{pattern, pattern, pattern},
				WithoutParentheses: true,
			},
		}, nil
	}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = "entry_date"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return clause.OrderBy{}, apperrors.ErrInvalidSort
	}

	direction := strings.ToLower(f.SortOrder)
	switch direction {
	case "":
		direction = "desc"
	case "asc", "desc":
	default:
		return clause.OrderBy{}, apperrors.ErrInvalidSort
	}

	return clause.OrderBy{
		Columns: []clause.OrderByColumn{{
			Column: clause.Column{Name: column},
			Desc:   direction == "desc",
		}},
	}, nil
}

// GetEntryByID retrieves an entry scoped to its owner. Entries belonging
// to other users surface as not found.
func (s *entryService) GetEntryByID(userID, entryID string) (*models.Entry, error) {
	var entry models.Entry
	if err := s.db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// UpdateEntry applies the supplied field changes, re-deriving word count and
// reading time whenever content changes, and bumps the version counter.
func (s *entryService) UpdateEntry(userID, entryID string, fields EntryUpdateFields) (*models.Entry, error) {
	entry, err := s.GetEntryByID(userID, entryID)
	if err != nil {
		return nil, err
	}

	changed := false

	if fields.Title != nil {
		if err := validateTitle(*fields.Title); err != nil {
			return nil, err
		}
		entry.Title = *fields.Title
		changed = true
	}
	if fields.Content != nil {
		if err := validateContent(*fields.Content); err != nil {
			return nil, err
		}
		entry.Content = *fields.Content
		entry.WordCount, entry.ReadingTime = deriveContentFields(*fields.Content)
		changed = true
	}
	if fields.Mood != nil {
		if !fields.Mood.IsValid() {
			return nil, apperrors.ErrInvalidMood
		}
		entry.Mood = *fields.Mood
		changed = true
	}
	if fields.Category != nil {
		if !fields.Category.IsValid() {
			return nil, apperrors.ErrInvalidCategory
		}
		entry.Category = *fields.Category
		changed = true
	}
	if fields.Tags != nil {
		if err := validateTags(*fields.Tags); err != nil {
			return nil, err
		}
		entry.Tags = *fields.Tags
		changed = true
	}
	if fields.EntryDate != nil {
		entry.EntryDate = *fields.EntryDate
		changed = true
	}
	if fields.IsPrivate != nil {
		entry.IsPrivate = *fields.IsPrivate
		changed = true
	}
	if fields.Location != nil {
		entry.Location = *fields.Location
		changed = true
	}
	if fields.Weather != nil {
		entry.Weather = *fields.Weather
		changed = true
	}
	if fields.Sentiment != nil {
		entry.Sentiment = fields.Sentiment
		changed = true
	}

	if !changed {
		return entry, nil
	}
	entry.Version++

	if err := s.db.Save(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.dispatcher.Dispatch(events.EntryEvent{Type: events.EntryUpdated, UserID: userID, EntryID: entryID})
	return entry, nil
}

// ToggleFavorite flips the favorite flag. Applying it twice restores the
// original state.
func (s *entryService) ToggleFavorite(userID, entryID string) (*models.Entry, error) {
	entry, err := s.GetEntryByID(userID, entryID)
	if err != nil {
		return nil, err
	}

	entry.IsFavorite = !entry.IsFavorite
	entry.Version++

	if err := s.db.Save(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.dispatcher.Dispatch(events.EntryEvent{Type: events.EntryUpdated, UserID: userID, EntryID: entryID})
	return entry, nil
}

// DeleteEntry soft-deletes an owned entry and dispatches an entry.deleted
// event so the owner's stats get recomputed.
func (s *entryService) DeleteEntry(userID, entryID string) error {
	entry, err := s.GetEntryByID(userID, entryID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.dispatcher.Dispatch(events.EntryEvent{Type: events.EntryDeleted, UserID: userID, EntryID: entryID})
	return nil
}
