package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "daybook/internal/errors"
	"daybook/internal/models"
	"daybook/internal/pagination"
	"daybook/internal/services"
)

// EntryHandler handles entry-related requests.
type EntryHandler struct {
	entryService services.EntryServicer
	auditService services.AuditServicer
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService services.EntryServicer, auditService services.AuditServicer) *EntryHandler {
	return &EntryHandler{entryService: entryService, auditService: auditService}
}

// CreateEntryRequest represents the request payload for creating an entry.
// Word count and reading time are derived server-side and cannot be supplied.
type CreateEntryRequest struct {
	Title     string   `json:"title" binding:"required,min=1,max=200"`
	Content   string   `json:"content" binding:"required,min=1,max=10000"`
	Mood      string   `json:"mood" binding:"required,mood"`
	Category  string   `json:"category" binding:"required,entry_category"`
	Tags      []string `json:"tags" binding:"omitempty,max=10,dive,min=1,max=30"`
	EntryDate *string  `json:"entry_date"`
	IsPrivate *bool    `json:"is_private"`
	Location  string   `json:"location" binding:"max=200"`
	Weather   string   `json:"weather" binding:"max=100"`
	Sentiment *float64 `json:"sentiment"`
}

// CreateEntry handles the creation of a new journal entry
// @Summary     Create an entry
// @Description Create a new dated journal entry; word count and reading time are derived from content
// @Tags        entries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateEntryRequest true "Entry details"
// @Success     201 {object} models.Entry "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries [post]
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.EntryInput{
		Title:     req.Title,
		Content:   req.Content,
		Mood:      models.Mood(req.Mood),
		Category:  models.EntryCategory(req.Category),
		Tags:      req.Tags,
		IsPrivate: req.IsPrivate,
		Location:  req.Location,
		Weather:   req.Weather,
		Sentiment: req.Sentiment,
	}
	if req.EntryDate != nil && *req.EntryDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.EntryDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid entry_date format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		input.EntryDate = parsed
	}

	entry, err := h.entryService.CreateEntry(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ENTRY", "entry", entry.ID, c.ClientIP(),
		map[string]interface{}{"mood": req.Mood, "category": req.Category})

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// GetUserEntries handles the filtered, paginated entry listing
// @Summary     List entries
// @Description Get a paginated list of the authenticated user's entries with optional filters and weighted search
// @Tags        entries
// @Produce     json
// @Security    BearerAuth
// @Param       page       query int    false "Page number (default 1)"
// @Param       limit      query int    false "Items per page (default 10, max 100)"
// @Param       mood       query string false "Filter by mood"
// @Param       category   query string false "Filter by category"
// @Param       search     query string false "Free-text search over title, content, and tags"
// @Param       start_date query string false "Inclusive start date (RFC3339 or YYYY-MM-DD)"
// @Param       end_date   query string false "Inclusive end date (RFC3339 or YYYY-MM-DD)"
// @Param       is_favorite query bool  false "Filter by favorite flag"
// @Param       sort_by    query string false "Sort field (default entry_date)"
// @Param       sort_order query string false "Sort direction: asc or desc (default desc)"
// @Success     200 {object} pagination.Page[models.Entry] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries [get]
func (h *EntryHandler) GetUserEntries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseEntryFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.entryService.GetUserEntries(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseEntryFilter(c *gin.Context) (services.EntryFilter, error) {
	var filter services.EntryFilter

	if v := c.Query("mood"); v != "" {
		mood := models.Mood(v)
		if !mood.IsValid() {
			return filter, apperrors.ErrInvalidMood
		}
		filter.Mood = &mood
	}

	if v := c.Query("category"); v != "" {
		category := models.EntryCategory(v)
		if !category.IsValid() {
			return filter, apperrors.ErrInvalidCategory
		}
		filter.Category = &category
	}

	filter.Search = c.Query("search")

	if v := c.Query("start_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.StartDate = &t
	}

	if v := c.Query("end_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.EndDate = &t
	}

	if v := c.Query("is_favorite"); v != "" {
		fav, err := strconv.ParseBool(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid is_favorite, must be true or false")
		}
		filter.IsFavorite = &fav
	}

	filter.SortBy = c.Query("sort_by")
	filter.SortOrder = c.Query("sort_order")

	return filter, nil
}

// GetEntryByID handles the retrieval of a single entry
// @Summary     Get entry by ID
// @Description Get one of the authenticated user's entries by ID
// @Tags        entries
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} models.Entry "Entry details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries/{id} [get]
func (h *EntryHandler) GetEntryByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.entryService.GetEntryByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// UpdateEntryRequest represents the request payload for updating an entry.
type UpdateEntryRequest struct {
	Title     *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Content   *string   `json:"content" binding:"omitempty,min=1,max=10000"`
	Mood      *string   `json:"mood" binding:"omitempty,mood"`
	Category  *string   `json:"category" binding:"omitempty,entry_category"`
	Tags      *[]string `json:"tags" binding:"omitempty,max=10,dive,min=1,max=30"`
	EntryDate *string   `json:"entry_date"`
	IsPrivate *bool     `json:"is_private"`
	Location  *string   `json:"location" binding:"omitempty,max=200"`
	Weather   *string   `json:"weather" binding:"omitempty,max=100"`
	Sentiment *float64  `json:"sentiment"`
}

// UpdateEntry handles updating an existing entry
// @Summary     Update entry
// @Description Update fields of an existing entry; changed content re-derives word count and reading time
// @Tags        entries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Entry ID"
// @Param       request body UpdateEntryRequest true "Fields to update"
// @Success     200 {object} models.Entry "Updated entry"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries/{id} [put]
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	entryID := c.Param("id")

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.EntryUpdateFields{
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		IsPrivate: req.IsPrivate,
		Location:  req.Location,
		Weather:   req.Weather,
		Sentiment: req.Sentiment,
	}
	if req.Mood != nil {
		mood := models.Mood(*req.Mood)
		fields.Mood = &mood
	}
	if req.Category != nil {
		category := models.EntryCategory(*req.Category)
		fields.Category = &category
	}
	if req.EntryDate != nil && *req.EntryDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.EntryDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid entry_date format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		fields.EntryDate = &parsed
	}

	entry, err := h.entryService.UpdateEntry(userID, entryID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ENTRY", "entry", entryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// ToggleFavorite handles flipping an entry's favorite flag
// @Summary     Toggle favorite
// @Description Flip the favorite flag of an entry; toggling twice restores the original state
// @Tags        entries
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} models.Entry "Updated entry"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries/{id}/favorite [patch]
func (h *EntryHandler) ToggleFavorite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	entryID := c.Param("id")

	entry, err := h.entryService.ToggleFavorite(userID, entryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "TOGGLE_FAVORITE", "entry", entryID, c.ClientIP(),
		map[string]interface{}{"is_favorite": entry.IsFavorite})

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// DeleteEntry handles the deletion of an entry
// @Summary     Delete entry
// @Description Delete one of the authenticated user's entries by ID
// @Tags        entries
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Entry ID"
// @Success     200 {object} MessageResponse "Entry deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries/{id} [delete]
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	entryID := c.Param("id")

	if err := h.entryService.DeleteEntry(userID, entryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ENTRY", "entry", entryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}
