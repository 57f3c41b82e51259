package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yoklama_backend/models"
	"yoklama_backend/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestRouter(s store.Store, now func() time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	attendanceHandler := NewAttendanceHandler(s)
	attendanceHandler.now = now
	scheduleHandler := NewScheduleHandler(s)
	scheduleHandler.now = now

	r.GET("/courses/:id/session", attendanceHandler.GetSession)
	r.POST("/attendances", attendanceHandler.SubmitAttendance)
	r.GET("/attendances", attendanceHandler.GetAttendances)
	r.GET("/courses/:id/attendance/dates", attendanceHandler.GetAttendanceDates)
	r.GET("/schedule/today", scheduleHandler.GetTodaySchedule)
	r.GET("/schedule/pending", scheduleHandler.GetPendingAttendance)
	return r
}

type fixture struct {
	store    *store.InMem
	course   models.Course
	students []models.Student
}

func newFixture() fixture {
	s := store.NewInMem()
	course := models.Course{ID: uuid.New(), Name: "Veri Yapıları", Code: "BLM202", Term: "2024 Bahar", Room: "D-101"}
	s.AddCourse(course)

	students := []models.Student{
		{ID: uuid.New(), Name: "Ayşe Yılmaz", Number: "2021001"},
		{ID: uuid.New(), Name: "Mehmet Demir", Number: "2021002"},
	}
	for _, student := range students {
		s.AddStudent(student, course.ID)
	}

	s.AddSlot(models.ScheduleSlot{
		ID:        uuid.New(),
		CourseID:  course.ID,
		Term:      course.Term,
		Weekday:   "Pazartesi",
		StartTime: "09:00",
		EndTime:   "09:50",
		Room:      course.Room,
	})
	return fixture{store: s, course: course, students: students}
}

// 2024-03-04 09:30 local, a Monday mid-lesson.
func mondayMorning() time.Time {
	return time.Date(2024, 3, 4, 9, 30, 0, 0, time.Local)
}

func TestGetSessionEmpty(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.store, mondayMorning)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courses/"+f.course.ID.String()+"/session?date=2024-03-04", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Date    string `json:"date"`
		Taken   bool   `json:"taken"`
		Entries []struct {
			Student models.Student `json:"student"`
			Status  string         `json:"status"`
		} `json:"entries"`
		ActiveSlot *models.ScheduleSlot `json:"active_slot"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}

	if resp.Taken {
		t.Error("taken = true for a session with no records")
	}
	if resp.ActiveSlot == nil {
		t.Error("active_slot = nil, want the 09:00-09:50 slot at 09:30")
	} else if resp.ActiveSlot.StartTime != "09:00" {
		t.Errorf("active_slot start = %q, want 09:00", resp.ActiveSlot.StartTime)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("got %d entries, want 2 (whole roster)", len(resp.Entries))
	}
	if resp.Entries[0].Student.ID != f.students[0].ID {
		t.Error("entries are not in roster order")
	}
	for _, entry := range resp.Entries {
		if entry.Status != "" {
			t.Errorf("status = %q, want unset for unrecorded session", entry.Status)
		}
	}
}

func TestGetSessionPastDateHasNoActiveSlot(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.store, mondayMorning)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courses/"+f.course.ID.String()+"/session?date=2024-02-26", nil)
	r.ServeHTTP(w, req)

	var resp struct {
		ActiveSlot *models.ScheduleSlot `json:"active_slot"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.ActiveSlot != nil {
		t.Error("active_slot set for a session on a past date")
	}
}

func TestSubmitAttendanceEmptyPayload(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.store, mondayMorning)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(`{"entries":[]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for empty payload", w.Code)
	}
	if records, _ := f.store.FetchAttendanceByCourse(f.course.ID); len(records) != 0 {
		t.Error("empty payload must not reach the store")
	}
}

func TestSubmitAttendanceRejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.store, mondayMorning)

	body := `{"entries":[{"student_id":"` + f.students[0].ID.String() +
		`","course_id":"` + f.course.ID.String() +
		`","date":"2024-03-04","status":"present"}]}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for status outside the known set", w.Code)
	}
}

func submitBody(f fixture, date string, statuses []string) string {
	entries := make([]models.AttendanceEntry, 0, len(statuses))
	for i, status := range statuses {
		entries = append(entries, models.AttendanceEntry{
			StudentID: f.students[i].ID,
			CourseID:  f.course.ID,
			Date:      date,
			Status:    status,
		})
	}
	raw, _ := json.Marshal(models.SubmitAttendanceRequest{Entries: entries})
	return string(raw)
}

func TestSubmitThenGetSession(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.store, mondayMorning)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(submitBody(f, "2024-03-04", []string{"Katıldı", "Katılmadı"})))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/courses/"+f.course.ID.String()+"/session?date=2024-03-04", nil)
	r.ServeHTTP(w, req)

	var resp struct {
		Taken   bool `json:"taken"`
		Entries []struct {
			Status string `json:"status"`
			Stats  models.AttendanceStats
		} `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}

	if !resp.Taken {
		t.Error("taken = false after a submission")
	}
	if resp.Entries[0].Status != "Katıldı" || resp.Entries[1].Status != "Katılmadı" {
		t.Errorf("statuses = %q, %q; want submitted values back", resp.Entries[0].Status, resp.Entries[1].Status)
	}
}

func TestSubmitTwiceIsIdempotent(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.store, mondayMorning)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(submitBody(f, "2024-03-04", []string{"Katıldı", "Katılmadı"})))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("submit %d status = %d, want 200", i+1, w.Code)
		}
	}

	records, _ := f.store.FetchAttendance(f.course.ID, "2024-03-04")
	if len(records) != 2 {
		t.Errorf("got %d records after double submit, want 2 (one per student)", len(records))
	}
}

func TestGetAttendanceDates(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.store, mondayMorning)

	for _, date := range []string{"2024-03-11", "2024-03-04"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(submitBody(f, date, []string{"Katıldı"})))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courses/"+f.course.ID.String()+"/attendance/dates", nil)
	r.ServeHTTP(w, req)

	var dates []string
	if err := json.Unmarshal(w.Body.Bytes(), &dates); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2024-03-04" || dates[1] != "2024-03-11" {
		t.Errorf("dates = %v, want ascending distinct dates", dates)
	}
}

func TestGetTodaySchedulePhases(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.store, mondayMorning)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/schedule/today?term=2024+Bahar", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var slots []struct {
		Weekday string `json:"weekday"`
		Phase   string `json:"phase"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &slots); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
	if slots[0].Phase != "during" {
		t.Errorf("phase = %q, want during at 09:30", slots[0].Phase)
	}
}

func TestGetPendingAttendance(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f.store, mondayMorning)

	// No records yet: the Monday slot is pending.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/schedule/pending?term=2024+Bahar", nil)
	r.ServeHTTP(w, req)

	var pending []models.SlotWithCourse
	if err := json.Unmarshal(w.Body.Bytes(), &pending); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("got %d pending slots, want 1", len(pending))
	}

	// After submitting today's attendance the list empties out.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(submitBody(f, "2024-03-04", []string{"Katıldı", "Katılmadı"})))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/schedule/pending?term=2024+Bahar", nil)
	r.ServeHTTP(w, req)

	pending = nil
	if err := json.Unmarshal(w.Body.Bytes(), &pending); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("got %d pending slots after submission, want 0", len(pending))
	}
}
