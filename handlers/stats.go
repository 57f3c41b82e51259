package handlers

import (
	"log"
	"net/http"
	"time"

	"yoklama_backend/models"
	"yoklama_backend/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatsHandler struct {
	store store.Store
}

func NewStatsHandler(s store.Store) *StatsHandler {
	return &StatsHandler{store: s}
}

// weekWindow resolves ?week= to the Monday-to-Sunday window containing it.
func weekWindow(c *gin.Context) (time.Time, bool) {
	week := c.Query("week")
	if week == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week is required"})
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(models.DateLayout, week, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid week, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return models.StartOfWeek(t), true
}

func (h *StatsHandler) fetchWeek(c *gin.Context, weekStart time.Time) ([]models.AttendanceRecord, bool) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return nil, false
	}

	from := weekStart.Format(models.DateLayout)
	to := weekStart.AddDate(0, 0, 6).Format(models.DateLayout)
	records, err := h.store.FetchAttendanceRange(courseID, from, to)
	if err != nil {
		log.Printf("Error fetching attendance range: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return nil, false
	}
	return records, true
}

// GetWeeklyStats returns the single aggregate for the week containing ?week=.
func (h *StatsHandler) GetWeeklyStats(c *gin.Context) {
	weekStart, ok := weekWindow(c)
	if !ok {
		return
	}

	records, ok := h.fetchWeek(c, weekStart)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, []models.WeeklyStat{models.WeeklyTotals(records, weekStart)})
}

// GetDailyStats returns the per-day breakdown for the week containing ?week=.
func (h *StatsHandler) GetDailyStats(c *gin.Context) {
	weekStart, ok := weekWindow(c)
	if !ok {
		return
	}

	records, ok := h.fetchWeek(c, weekStart)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.DailyBreakdown(records, weekStart))
}

type studentStat struct {
	Student models.Student         `json:"student"`
	Stats   models.AttendanceStats `json:"stats"`
}

// GetStudentStats returns the running totals of every registered student.
func (h *StatsHandler) GetStudentStats(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	roster, err := h.store.FetchRoster(courseID)
	if err != nil {
		log.Printf("Error fetching roster: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}

	records, err := h.store.FetchAttendanceByCourse(courseID)
	if err != nil {
		log.Printf("Error fetching attendance: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}

	stats := models.ComputeAttendanceStats(records)
	result := make([]studentStat, 0, len(roster))
	for _, student := range roster {
		result = append(result, studentStat{Student: student, Stats: stats[student.ID]})
	}

	c.JSON(http.StatusOK, result)
}
