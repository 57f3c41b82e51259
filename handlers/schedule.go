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

type ScheduleHandler struct {
	store store.Store
	now   func() time.Time
}

func NewScheduleHandler(s store.Store) *ScheduleHandler {
	return &ScheduleHandler{store: s, now: time.Now}
}

// GetSchedule returns the full weekly schedule for a term.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is required"})
		return
	}

	slots, err := h.store.FetchScheduleByTerm(term)
	if err != nil {
		log.Printf("Error fetching schedule: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// GetCourseSchedule returns every weekly slot of one course.
func (h *ScheduleHandler) GetCourseSchedule(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	slots, err := h.store.FetchScheduleByCourse(courseID)
	if err != nil {
		log.Printf("Error fetching course schedule: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

type todaySlot struct {
	models.SlotWithCourse
	Phase string `json:"phase"`
}

// GetTodaySchedule returns today's slots for a term sorted by start time,
// each annotated with its phase relative to now.
func (h *ScheduleHandler) GetTodaySchedule(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is required"})
		return
	}

	now := h.now()
	slots, err := h.store.FetchTodaySchedule(term, models.WeekdayName(now.Weekday()))
	if err != nil {
		log.Printf("Error fetching today schedule: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
		return
	}

	annotated := make([]todaySlot, 0, len(slots))
	for _, slot := range slots {
		phase, err := models.ClassifySlot(slot.ScheduleSlot, now)
		if err != nil {
			log.Printf("Skipping slot %s with bad times: %v", slot.ID, err)
			continue
		}
		annotated = append(annotated, todaySlot{SlotWithCourse: slot, Phase: phase.String()})
	}

	c.JSON(http.StatusOK, annotated)
}

// GetPendingAttendance lists today's slots whose course has no attendance
// recorded for today. An empty list is a normal answer, not an error.
func (h *ScheduleHandler) GetPendingAttendance(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is required"})
		return
	}

	now := h.now()
	today := now.Format(models.DateLayout)
	slots, err := h.store.FetchTodaySchedule(term, models.WeekdayName(now.Weekday()))
	if err != nil {
		log.Printf("Error fetching today schedule: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
		return
	}

	pending := make([]models.SlotWithCourse, 0, len(slots))
	for _, slot := range slots {
		records, err := h.store.FetchAttendance(slot.CourseID, today)
		if err != nil {
			log.Printf("Error checking attendance for course %s: %v", slot.CourseID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check attendance"})
			return
		}
		if len(records) == 0 {
			pending = append(pending, slot)
		}
	}

	c.JSON(http.StatusOK, pending)
}

func (h *ScheduleHandler) CreateScheduleSlot(c *gin.Context) {
	var req models.CreateScheduleSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidClockRange(req.StartTime, req.EndTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be before end_time"})
		return
	}

	slot, err := h.store.CreateScheduleSlot(req)
	if err != nil {
		log.Printf("Error creating schedule slot: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule slot"})
		return
	}

	c.JSON(http.StatusCreated, slot)
}
