package store

import (
	"database/sql"
	"fmt"
	"time"

	"yoklama_backend/models"

	"github.com/google/uuid"
)

// Postgres implements Store on top of database/sql with the lib/pq driver.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) FetchAllTerms() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT term FROM courses ORDER BY term`)
	if err != nil {
		return nil, &models.StoreError{Op: "fetch terms", Err: err}
	}
	defer rows.Close()

	terms := []string{}
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, &models.StoreError{Op: "scan term", Err: err}
		}
		terms = append(terms, term)
	}
	return terms, rows.Err()
}

func (s *Postgres) FetchCourses(term string) ([]models.Course, error) {
	query := `
        SELECT id, name, code, term, room, created_at
        FROM courses
    `
	params := []interface{}{}

	if term != "" {
		query += " WHERE term = $1 ORDER BY name"
		params = append(params, term)
	} else {
		query += " ORDER BY created_at DESC"
	}

	rows, err := s.db.Query(query, params...)
	if err != nil {
		return nil, &models.StoreError{Op: "fetch courses", Err: err}
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.Code, &course.Term, &course.Room, &course.CreatedAt); err != nil {
			return nil, &models.StoreError{Op: "scan course", Err: err}
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (s *Postgres) FetchCourseByID(id uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := s.db.QueryRow(`
        SELECT id, name, code, term, room, created_at
        FROM courses
        WHERE id = $1
    `, id).Scan(&course.ID, &course.Name, &course.Code, &course.Term, &course.Room, &course.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, &models.StoreError{Op: "fetch course", Err: err}
	}
	return &course, nil
}

func (s *Postgres) CreateCourse(req models.CreateCourseRequest) (*models.Course, error) {
	var course models.Course
	err := s.db.QueryRow(`
        INSERT INTO courses (name, code, term, room)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, code, term, room, created_at
    `, req.Name, req.Code, req.Term, req.Room).Scan(
		&course.ID, &course.Name, &course.Code, &course.Term, &course.Room, &course.CreatedAt,
	)
	if err != nil {
		return nil, &models.StoreError{Op: "create course", Err: err}
	}
	return &course, nil
}

// FetchRoster returns the students registered to a course in registration
// order (the insertion order of student_courses).
func (s *Postgres) FetchRoster(courseID uuid.UUID) ([]models.Student, error) {
	rows, err := s.db.Query(`
        SELECT st.id, st.name, st.email, st.number
        FROM student_courses sc
        JOIN students st ON st.id = sc.student_id
        WHERE sc.course_id = $1
        ORDER BY sc.id
    `, courseID)
	if err != nil {
		return nil, &models.StoreError{Op: "fetch roster", Err: err}
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.Email, &student.Number); err != nil {
			return nil, &models.StoreError{Op: "scan student", Err: err}
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

const slotWithCourseQuery = `
    SELECT cs.id, cs.course_id, cs.term, cs.weekday, to_char(cs.start_time, 'HH24:MI'), to_char(cs.end_time, 'HH24:MI'), cs.room,
           c.id, c.name, c.code, c.term, c.room, c.created_at
    FROM course_schedule cs
    JOIN courses c ON c.id = cs.course_id
`

func (s *Postgres) scanSlotsWithCourse(rows *sql.Rows) ([]models.SlotWithCourse, error) {
	slots := []models.SlotWithCourse{}
	for rows.Next() {
		var slot models.SlotWithCourse
		err := rows.Scan(
			&slot.ID, &slot.CourseID, &slot.Term, &slot.Weekday, &slot.StartTime, &slot.EndTime, &slot.Room,
			&slot.Course.ID, &slot.Course.Name, &slot.Course.Code, &slot.Course.Term, &slot.Course.Room, &slot.Course.CreatedAt,
		)
		if err != nil {
			return nil, &models.StoreError{Op: "scan schedule slot", Err: err}
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (s *Postgres) FetchScheduleByTerm(term string) ([]models.SlotWithCourse, error) {
	rows, err := s.db.Query(slotWithCourseQuery+`
        WHERE cs.term = $1
        ORDER BY cs.weekday, cs.start_time
    `, term)
	if err != nil {
		return nil, &models.StoreError{Op: "fetch schedule", Err: err}
	}
	defer rows.Close()
	return s.scanSlotsWithCourse(rows)
}

func (s *Postgres) FetchTodaySchedule(term, weekday string) ([]models.SlotWithCourse, error) {
	rows, err := s.db.Query(slotWithCourseQuery+`
        WHERE cs.term = $1 AND cs.weekday = $2
        ORDER BY cs.start_time
    `, term, weekday)
	if err != nil {
		return nil, &models.StoreError{Op: "fetch today schedule", Err: err}
	}
	defer rows.Close()
	return s.scanSlotsWithCourse(rows)
}

func (s *Postgres) FetchScheduleByCourse(courseID uuid.UUID) ([]models.ScheduleSlot, error) {
	rows, err := s.db.Query(`
        SELECT id, course_id, term, weekday, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), room
        FROM course_schedule
        WHERE course_id = $1
        ORDER BY weekday, start_time
    `, courseID)
	if err != nil {
		return nil, &models.StoreError{Op: "fetch course schedule", Err: err}
	}
	defer rows.Close()

	slots := []models.ScheduleSlot{}
	for rows.Next() {
		var slot models.ScheduleSlot
		if err := rows.Scan(&slot.ID, &slot.CourseID, &slot.Term, &slot.Weekday, &slot.StartTime, &slot.EndTime, &slot.Room); err != nil {
			return nil, &models.StoreError{Op: "scan course schedule", Err: err}
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (s *Postgres) CreateScheduleSlot(req models.CreateScheduleSlotRequest) (*models.ScheduleSlot, error) {
	var slot models.ScheduleSlot
	err := s.db.QueryRow(`
        INSERT INTO course_schedule (course_id, term, weekday, start_time, end_time, room)
        SELECT c.id, c.term, $2, $3, $4, $5
        FROM courses c
        WHERE c.id = $1
        RETURNING id, course_id, term, weekday, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), room
    `, req.CourseID, req.Weekday, req.StartTime, req.EndTime, req.Room).Scan(
		&slot.ID, &slot.CourseID, &slot.Term, &slot.Weekday, &slot.StartTime, &slot.EndTime, &slot.Room,
	)
	if err != nil {
		return nil, &models.StoreError{Op: "create schedule slot", Err: err}
	}
	return &slot, nil
}

func (s *Postgres) fetchAttendanceRows(query string, params ...interface{}) ([]models.AttendanceRecord, error) {
	rows, err := s.db.Query(query, params...)
	if err != nil {
		return nil, &models.StoreError{Op: "fetch attendance", Err: err}
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		var record models.AttendanceRecord
		var date time.Time
		if err := rows.Scan(&record.StudentID, &record.CourseID, &date, &record.Status); err != nil {
			return nil, &models.StoreError{Op: "scan attendance", Err: err}
		}
		record.Date = date.Format(models.DateLayout)
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Postgres) FetchAttendance(courseID uuid.UUID, date string) ([]models.AttendanceRecord, error) {
	return s.fetchAttendanceRows(`
        SELECT student_id, course_id, date, status
        FROM attendances
        WHERE course_id = $1 AND date = $2
        ORDER BY date
    `, courseID, date)
}

func (s *Postgres) FetchAttendanceRange(courseID uuid.UUID, from, to string) ([]models.AttendanceRecord, error) {
	return s.fetchAttendanceRows(`
        SELECT student_id, course_id, date, status
        FROM attendances
        WHERE course_id = $1 AND date >= $2 AND date <= $3
        ORDER BY date
    `, courseID, from, to)
}

func (s *Postgres) FetchAttendanceByCourse(courseID uuid.UUID) ([]models.AttendanceRecord, error) {
	return s.fetchAttendanceRows(`
        SELECT student_id, course_id, date, status
        FROM attendances
        WHERE course_id = $1
        ORDER BY date
    `, courseID)
}

// UpsertAttendance writes a batch of entries in one transaction, keyed on
// (student_id, course_id, date). An existing record is overwritten, never
// duplicated, so resubmitting the same batch is safe.
func (s *Postgres) UpsertAttendance(entries []models.AttendanceEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &models.StoreError{Op: "begin upsert", Err: err}
	}

	for _, entry := range entries {
		_, err := tx.Exec(`
            INSERT INTO attendances (student_id, course_id, date, status)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (student_id, course_id, date)
            DO UPDATE SET status = EXCLUDED.status
        `, entry.StudentID, entry.CourseID, entry.Date, entry.Status)
		if err != nil {
			tx.Rollback()
			return &models.StoreError{Op: fmt.Sprintf("upsert attendance for %s", entry.StudentID), Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &models.StoreError{Op: "commit upsert", Err: err}
	}
	return nil
}
