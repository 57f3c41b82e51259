package models

import "github.com/google/uuid"

// AttendanceRecord is one stored attendance row. At most one record exists
// per (student, course, date); the database enforces this with a unique
// constraint and submissions upsert against it.
type AttendanceRecord struct {
	StudentID uuid.UUID `json:"student_id"`
	CourseID  uuid.UUID `json:"course_id"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
}

// AttendanceEntry is one row of a submission payload.
type AttendanceEntry struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
	CourseID  uuid.UUID `json:"course_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	Status    string    `json:"status" binding:"required,oneof=Katıldı 'Geç Kaldı' Katılmadı"`
}

type SubmitAttendanceRequest struct {
	Entries []AttendanceEntry `json:"entries" binding:"dive"`
}
