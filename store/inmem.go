package store

import (
	"database/sql"
	"sort"
	"sync"

	"yoklama_backend/models"

	"github.com/google/uuid"
)

// InMem is an in-memory Store used by tests. Rosters keep their insertion
// order; attendance upserts are keyed on (student, course, date) like the
// database unique constraint.
type InMem struct {
	mu       sync.RWMutex
	courses  []models.Course
	students map[uuid.UUID]models.Student
	rosters  map[uuid.UUID][]uuid.UUID
	slots    []models.ScheduleSlot
	records  []models.AttendanceRecord
}

func NewInMem() *InMem {
	return &InMem{
		students: make(map[uuid.UUID]models.Student),
		rosters:  make(map[uuid.UUID][]uuid.UUID),
	}
}

// AddCourse registers a course fixture.
func (s *InMem) AddCourse(course models.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = append(s.courses, course)
}

// AddStudent registers a student fixture and enrolls it in a course.
func (s *InMem) AddStudent(student models.Student, courseID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[student.ID] = student
	s.rosters[courseID] = append(s.rosters[courseID], student.ID)
}

// AddSlot registers a schedule slot fixture.
func (s *InMem) AddSlot(slot models.ScheduleSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = append(s.slots, slot)
}

func (s *InMem) FetchAllTerms() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	terms := []string{}
	for _, course := range s.courses {
		if _, ok := seen[course.Term]; ok {
			continue
		}
		seen[course.Term] = struct{}{}
		terms = append(terms, course.Term)
	}
	sort.Strings(terms)
	return terms, nil
}

func (s *InMem) FetchCourses(term string) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	courses := []models.Course{}
	for _, course := range s.courses {
		if term == "" || course.Term == term {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

func (s *InMem) FetchCourseByID(id uuid.UUID) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, course := range s.courses {
		if course.ID == id {
			c := course
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *InMem) CreateCourse(req models.CreateCourseRequest) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	course := models.Course{
		ID:   uuid.New(),
		Name: req.Name,
		Code: req.Code,
		Term: req.Term,
		Room: req.Room,
	}
	s.courses = append(s.courses, course)
	return &course, nil
}

func (s *InMem) FetchRoster(courseID uuid.UUID) ([]models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roster := []models.Student{}
	for _, studentID := range s.rosters[courseID] {
		roster = append(roster, s.students[studentID])
	}
	return roster, nil
}

func (s *InMem) courseByID(id uuid.UUID) (models.Course, bool) {
	for _, course := range s.courses {
		if course.ID == id {
			return course, true
		}
	}
	return models.Course{}, false
}

func (s *InMem) FetchScheduleByTerm(term string) ([]models.SlotWithCourse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slots := []models.SlotWithCourse{}
	for _, slot := range s.slots {
		if slot.Term != term {
			continue
		}
		course, _ := s.courseByID(slot.CourseID)
		slots = append(slots, models.SlotWithCourse{ScheduleSlot: slot, Course: course})
	}
	return slots, nil
}

func (s *InMem) FetchScheduleByCourse(courseID uuid.UUID) ([]models.ScheduleSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slots := []models.ScheduleSlot{}
	for _, slot := range s.slots {
		if slot.CourseID == courseID {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

func (s *InMem) FetchTodaySchedule(term, weekday string) ([]models.SlotWithCourse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slots := []models.SlotWithCourse{}
	for _, slot := range s.slots {
		if slot.Term != term || slot.Weekday != weekday {
			continue
		}
		course, _ := s.courseByID(slot.CourseID)
		slots = append(slots, models.SlotWithCourse{ScheduleSlot: slot, Course: course})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
	return slots, nil
}

func (s *InMem) CreateScheduleSlot(req models.CreateScheduleSlotRequest) (*models.ScheduleSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.courseByID(req.CourseID)
	if !ok {
		return nil, sql.ErrNoRows
	}
	slot := models.ScheduleSlot{
		ID:        uuid.New(),
		CourseID:  req.CourseID,
		Term:      course.Term,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Room:      req.Room,
	}
	s.slots = append(s.slots, slot)
	return &slot, nil
}

func (s *InMem) FetchAttendance(courseID uuid.UUID, date string) ([]models.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := []models.AttendanceRecord{}
	for _, record := range s.records {
		if record.CourseID == courseID && record.Date == date {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *InMem) FetchAttendanceRange(courseID uuid.UUID, from, to string) ([]models.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := []models.AttendanceRecord{}
	for _, record := range s.records {
		if record.CourseID == courseID && record.Date >= from && record.Date <= to {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *InMem) FetchAttendanceByCourse(courseID uuid.UUID) ([]models.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := []models.AttendanceRecord{}
	for _, record := range s.records {
		if record.CourseID == courseID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *InMem) UpsertAttendance(entries []models.AttendanceEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range entries {
		updated := false
		for i, record := range s.records {
			if record.StudentID == entry.StudentID && record.CourseID == entry.CourseID && record.Date == entry.Date {
				s.records[i].Status = entry.Status
				updated = true
				break
			}
		}
		if !updated {
			s.records = append(s.records, models.AttendanceRecord{
				StudentID: entry.StudentID,
				CourseID:  entry.CourseID,
				Date:      entry.Date,
				Status:    entry.Status,
			})
		}
	}
	return nil
}
