package db

import (
	"database/sql"
	"fmt"
)

// SeedData populates the database with a demo term, two courses with weekly
// schedules and a handful of enrolled students.
func SeedData(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		tx.Rollback()
		return fmt.Errorf("error checking courses: %w", err)
	}
	if count > 0 {
		tx.Rollback()
		return nil
	}

	courses := []struct {
		name, code, term, room string
	}{
		{"Veri Yapıları", "BLM202", "2024 Bahar", "D-101"},
		{"İşletim Sistemleri", "BLM301", "2024 Bahar", "D-204"},
	}

	courseIDs := make([]string, 0, len(courses))
	for _, course := range courses {
		var id string
		err = tx.QueryRow(
			`INSERT INTO courses (name, code, term, room) VALUES ($1, $2, $3, $4) RETURNING id`,
			course.name, course.code, course.term, course.room,
		).Scan(&id)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error seeding courses: %w", err)
		}
		courseIDs = append(courseIDs, id)
	}

	schedules := []struct {
		courseIdx           int
		weekday, start, end string
	}{
		{0, "Pazartesi", "09:00", "09:50"},
		{0, "Çarşamba", "13:00", "14:50"},
		{1, "Salı", "10:00", "11:50"},
	}
	for _, s := range schedules {
		_, err = tx.Exec(
			`INSERT INTO course_schedule (course_id, term, weekday, start_time, end_time, room)
			 SELECT id, term, $2, $3, $4, room FROM courses WHERE id = $1`,
			courseIDs[s.courseIdx], s.weekday, s.start, s.end,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error seeding schedule: %w", err)
		}
	}

	students := []struct {
		name, email, number string
	}{
		{"Ayşe Yılmaz", "ayse.yilmaz@ornek.edu.tr", "2021001"},
		{"Mehmet Demir", "mehmet.demir@ornek.edu.tr", "2021002"},
		{"Elif Kaya", "elif.kaya@ornek.edu.tr", "2021003"},
	}
	for _, student := range students {
		var id string
		err = tx.QueryRow(
			`INSERT INTO students (name, email, number) VALUES ($1, $2, $3) RETURNING id`,
			student.name, student.email, student.number,
		).Scan(&id)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error seeding students: %w", err)
		}
		for _, courseID := range courseIDs {
			_, err = tx.Exec(
				`INSERT INTO student_courses (student_id, course_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				id, courseID,
			)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("error seeding registrations: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}
