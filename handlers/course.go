package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"yoklama_backend/models"
	"yoklama_backend/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseHandler struct {
	store store.Store
}

func NewCourseHandler(s store.Store) *CourseHandler {
	return &CourseHandler{store: s}
}

// GetTerms lists the distinct terms courses exist for.
func (h *CourseHandler) GetTerms(c *gin.Context) {
	terms, err := h.store.FetchAllTerms()
	if err != nil {
		log.Printf("Error fetching terms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch terms"})
		return
	}
	c.JSON(http.StatusOK, terms)
}

// GetCourses lists courses, optionally filtered by ?term=.
func (h *CourseHandler) GetCourses(c *gin.Context) {
	courses, err := h.store.FetchCourses(c.Query("term"))
	if err != nil {
		log.Printf("Error fetching courses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) GetCourseByID(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}

	course, err := h.store.FetchCourseByID(courseID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	} else if err != nil {
		log.Printf("Error fetching course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch course"})
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req models.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.store.CreateCourse(req)
	if err != nil {
		log.Printf("Error creating course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	c.JSON(http.StatusCreated, course)
}

// GetCourseStudents returns the course roster in registration order.
func (h *CourseHandler) GetCourseStudents(c *gin.Context) {
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

	c.JSON(http.StatusOK, roster)
}
