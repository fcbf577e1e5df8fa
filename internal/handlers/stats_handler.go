package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "daybook/internal/errors"
	"daybook/internal/services"
)

// StatsHandler handles aggregation view requests.
type StatsHandler struct {
	statsService services.StatsServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetCalendar handles the month calendar view
// @Summary     Calendar view
// @Description Get the month's entries grouped by calendar date, reduced field set
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int true "Year (1970-2100)"
// @Param       month query int true "Month (1-12)"
// @Success     200 {object} services.CalendarView "Calendar groups"
// @Failure     400 {object} ErrorResponse "Invalid year or month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/calendar [get]
func (h *StatsHandler) GetCalendar(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year"))
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid month"))
		return
	}

	view, err := h.statsService.Calendar(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetSummary handles the statistics summary view
// @Summary     Summary statistics
// @Description Get totals, mood/category distributions, monthly activity, and streak data
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.SummaryStats "Summary statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/summary [get]
func (h *StatsHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.statsService.Summary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetDashboard handles the dashboard view
// @Summary     Dashboard
// @Description Get recent entries, today's entry flag, and a fresh stats snapshot
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DashboardView "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/dashboard [get]
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.statsService.Dashboard(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
