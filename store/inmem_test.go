package store

import (
	"testing"

	"yoklama_backend/models"

	"github.com/google/uuid"
)

func TestInMemUpsertAttendance(t *testing.T) {
	s := NewInMem()
	studentID := uuid.New()
	courseID := uuid.New()

	entry := models.AttendanceEntry{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      "2024-03-04",
		Status:    "Katıldı",
	}

	if err := s.UpsertAttendance([]models.AttendanceEntry{entry}); err != nil {
		t.Fatalf("UpsertAttendance() error = %v", err)
	}

	// Submitting the identical batch again must not duplicate rows.
	if err := s.UpsertAttendance([]models.AttendanceEntry{entry}); err != nil {
		t.Fatalf("UpsertAttendance() error = %v", err)
	}

	records, err := s.FetchAttendance(courseID, "2024-03-04")
	if err != nil {
		t.Fatalf("FetchAttendance() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records after duplicate submit, want 1", len(records))
	}

	// A resubmission with a different status overwrites, never appends.
	entry.Status = "Geç Kaldı"
	if err := s.UpsertAttendance([]models.AttendanceEntry{entry}); err != nil {
		t.Fatalf("UpsertAttendance() error = %v", err)
	}

	records, _ = s.FetchAttendance(courseID, "2024-03-04")
	if len(records) != 1 {
		t.Fatalf("got %d records after overwrite, want 1", len(records))
	}
	if records[0].Status != "Geç Kaldı" {
		t.Errorf("status = %q, want last write to win", records[0].Status)
	}

	// A different date is a different key.
	entry.Date = "2024-03-11"
	if err := s.UpsertAttendance([]models.AttendanceEntry{entry}); err != nil {
		t.Fatalf("UpsertAttendance() error = %v", err)
	}
	all, _ := s.FetchAttendanceByCourse(courseID)
	if len(all) != 2 {
		t.Errorf("got %d records across dates, want 2", len(all))
	}
}

func TestInMemRosterOrder(t *testing.T) {
	s := NewInMem()
	courseID := uuid.New()

	first := models.Student{ID: uuid.New(), Name: "Ayşe Yılmaz"}
	second := models.Student{ID: uuid.New(), Name: "Mehmet Demir"}
	s.AddStudent(first, courseID)
	s.AddStudent(second, courseID)

	roster, err := s.FetchRoster(courseID)
	if err != nil {
		t.Fatalf("FetchRoster() error = %v", err)
	}
	if len(roster) != 2 || roster[0].ID != first.ID || roster[1].ID != second.ID {
		t.Errorf("FetchRoster() did not preserve registration order: %+v", roster)
	}
}

func TestInMemTermsAndCourses(t *testing.T) {
	s := NewInMem()
	s.AddCourse(models.Course{ID: uuid.New(), Name: "Veri Yapıları", Term: "2024 Bahar"})
	s.AddCourse(models.Course{ID: uuid.New(), Name: "Fizik I", Term: "2023 Güz"})
	s.AddCourse(models.Course{ID: uuid.New(), Name: "Fizik II", Term: "2024 Bahar"})

	terms, err := s.FetchAllTerms()
	if err != nil {
		t.Fatalf("FetchAllTerms() error = %v", err)
	}
	if len(terms) != 2 {
		t.Fatalf("got %d terms, want 2 distinct", len(terms))
	}

	courses, err := s.FetchCourses("2024 Bahar")
	if err != nil {
		t.Fatalf("FetchCourses() error = %v", err)
	}
	if len(courses) != 2 {
		t.Errorf("got %d courses for term, want 2", len(courses))
	}
}
