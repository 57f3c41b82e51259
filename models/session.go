package models

import "github.com/google/uuid"

// AttendanceStats are a student's running totals within one course.
type AttendanceStats struct {
	Attended int `json:"attended"`
	Late     int `json:"late"`
	Absent   int `json:"absent"`
}

// SessionView is one roster row for a course session on a target date:
// the student, their recorded status for that date (StatusUnset when no
// record exists yet) and their running totals. It is recomputed on every
// fetch and never stored.
type SessionView struct {
	Student Student         `json:"student"`
	Status  Status          `json:"status"`
	Stats   AttendanceStats `json:"stats"`
}

// ReconcileSession merges the roster with the existing records for one
// course+date and the per-student totals. Output order follows roster order
// regardless of record order; students without a record get StatusUnset and
// students without totals get zeros. Pure function, no side effects.
func ReconcileSession(roster []Student, records []AttendanceRecord, statsByStudent map[uuid.UUID]AttendanceStats) []SessionView {
	statusByStudent := make(map[uuid.UUID]Status, len(records))
	for _, record := range records {
		status, ok := ParseStatus(record.Status)
		if !ok {
			continue
		}
		if _, seen := statusByStudent[record.StudentID]; seen {
			continue
		}
		statusByStudent[record.StudentID] = status
	}

	views := make([]SessionView, 0, len(roster))
	for _, student := range roster {
		views = append(views, SessionView{
			Student: student,
			Status:  statusByStudent[student.ID],
			Stats:   statsByStudent[student.ID],
		})
	}
	return views
}

// ComputeAttendanceStats folds attendance records into per-student totals.
// Records with a status outside the known set are skipped, never counted
// and never an error.
func ComputeAttendanceStats(records []AttendanceRecord) map[uuid.UUID]AttendanceStats {
	stats := make(map[uuid.UUID]AttendanceStats)
	for _, record := range records {
		status, ok := ParseStatus(record.Status)
		if !ok {
			continue
		}
		s := stats[record.StudentID]
		switch status {
		case StatusAttended:
			s.Attended++
		case StatusLate:
			s.Late++
		case StatusAbsent:
			s.Absent++
		}
		stats[record.StudentID] = s
	}
	return stats
}
