package store

import (
	"yoklama_backend/models"

	"github.com/google/uuid"
)

// Store is the data-store contract the handlers depend on. A Postgres
// implementation backs the server; an in-memory one backs the tests.
type Store interface {
	FetchAllTerms() ([]string, error)
	FetchCourses(term string) ([]models.Course, error)
	FetchCourseByID(id uuid.UUID) (*models.Course, error)
	CreateCourse(req models.CreateCourseRequest) (*models.Course, error)

	FetchRoster(courseID uuid.UUID) ([]models.Student, error)

	FetchScheduleByTerm(term string) ([]models.SlotWithCourse, error)
	FetchScheduleByCourse(courseID uuid.UUID) ([]models.ScheduleSlot, error)
	FetchTodaySchedule(term, weekday string) ([]models.SlotWithCourse, error)
	CreateScheduleSlot(req models.CreateScheduleSlotRequest) (*models.ScheduleSlot, error)

	FetchAttendance(courseID uuid.UUID, date string) ([]models.AttendanceRecord, error)
	FetchAttendanceRange(courseID uuid.UUID, from, to string) ([]models.AttendanceRecord, error)
	FetchAttendanceByCourse(courseID uuid.UUID) ([]models.AttendanceRecord, error)
	UpsertAttendance(entries []models.AttendanceEntry) error
}
