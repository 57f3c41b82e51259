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

type AttendanceHandler struct {
	store store.Store
	now   func() time.Time
}

func NewAttendanceHandler(s store.Store) *AttendanceHandler {
	return &AttendanceHandler{store: s, now: time.Now}
}

type sessionResponse struct {
	Date    string               `json:"date"`
	Taken   bool                 `json:"taken"`
	Entries []models.SessionView `json:"entries"`
	// ActiveSlot is the course's slot running right now, nil outside class
	// hours. A nil slot means no attendance may be taken at the moment,
	// which the caller renders as information, not as an error.
	ActiveSlot *models.ScheduleSlot `json:"active_slot"`
}

// GetSession returns the reconciled roster for one course and date: every
// registered student with their status for that date (unset when no record
// exists) and their running totals. Defaults to today when ?date= is absent.
func (h *AttendanceHandler) GetSession(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	date := c.Query("date")
	if date == "" {
		date = h.now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	roster, err := h.store.FetchRoster(courseID)
	if err != nil {
		log.Printf("Error fetching roster: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}

	records, err := h.store.FetchAttendance(courseID, date)
	if err != nil {
		log.Printf("Error fetching attendance: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}

	allRecords, err := h.store.FetchAttendanceByCourse(courseID)
	if err != nil {
		log.Printf("Error fetching attendance history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}

	stats := models.ComputeAttendanceStats(allRecords)
	views := models.ReconcileSession(roster, records, stats)

	// Only a session for today can have a currently running slot.
	var activeSlot *models.ScheduleSlot
	now := h.now()
	if date == now.Format(models.DateLayout) {
		slots, err := h.store.FetchScheduleByCourse(courseID)
		if err != nil {
			log.Printf("Error fetching course schedule: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
			return
		}
		if slot, ok := models.ActiveSlot(slots, models.WeekdayName(now.Weekday()), now); ok {
			activeSlot = &slot
		}
	}

	c.JSON(http.StatusOK, sessionResponse{
		Date:       date,
		Taken:      len(records) > 0,
		Entries:    views,
		ActiveSlot: activeSlot,
	})
}

// SubmitAttendance upserts a batch of attendance entries keyed on
// (student, course, date). An empty batch is rejected before any store
// call; a store failure leaves nothing marked as taken so the submission
// can simply be retried.
func (h *AttendanceHandler) SubmitAttendance(c *gin.Context) {
	var req models.SubmitAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrEmptyPayload.Error()})
		return
	}

	for _, entry := range req.Entries {
		if _, err := time.Parse(models.DateLayout, entry.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
	}

	if err := h.store.UpsertAttendance(req.Entries); err != nil {
		log.Printf("Error upserting attendance: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attendance saved", "count": len(req.Entries)})
}

// GetAttendances returns the raw records for ?course_id= and ?date=.
func (h *AttendanceHandler) GetAttendances(c *gin.Context) {
	courseID, err := uuid.Parse(c.Query("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course_id"})
		return
	}

	date := c.Query("date")
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	records, err := h.store.FetchAttendance(courseID, date)
	if err != nil {
		log.Printf("Error fetching attendance: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetAttendanceDates returns the sorted distinct dates a course has records
// for, used by the week selector.
func (h *AttendanceHandler) GetAttendanceDates(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	records, err := h.store.FetchAttendanceByCourse(courseID)
	if err != nil {
		log.Printf("Error fetching attendance dates: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance dates"})
		return
	}

	c.JSON(http.StatusOK, models.DistinctRecordDates(records))
}
