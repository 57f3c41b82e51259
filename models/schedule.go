package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used everywhere: query params,
// attendance rows and stat labels.
const DateLayout = "2006-01-02"

// ScheduleSlot is one weekly recurring class meeting. Weekday is stored as
// the Turkish long day name ("Pazartesi"...) and the times as local HH:MM
// strings, exactly as the database keeps them.
type ScheduleSlot struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	Term      string    `json:"term"`
	Weekday   string    `json:"weekday"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Room      string    `json:"room"`
}

// SlotWithCourse embeds the course a slot belongs to, for schedule listings.
type SlotWithCourse struct {
	ScheduleSlot
	Course Course `json:"course"`
}

type CreateScheduleSlotRequest struct {
	CourseID  uuid.UUID `json:"course_id" binding:"required"`
	Weekday   string    `json:"weekday" binding:"required,oneof=Pazartesi Salı Çarşamba Perşembe Cuma Cumartesi Pazar"`
	StartTime string    `json:"start_time" binding:"required"`
	EndTime   string    `json:"end_time" binding:"required"`
	Room      string    `json:"room"`
}

// SlotPhase classifies a slot relative to a point in time.
type SlotPhase int

const (
	SlotBefore SlotPhase = iota
	SlotDuring
	SlotAfter
)

func (p SlotPhase) String() string {
	switch p {
	case SlotBefore:
		return "before"
	case SlotDuring:
		return "during"
	case SlotAfter:
		return "after"
	}
	return "unknown"
}

var weekdayNames = [7]string{
	"Pazar",
	"Pazartesi",
	"Salı",
	"Çarşamba",
	"Perşembe",
	"Cuma",
	"Cumartesi",
}

// WeekdayName returns the Turkish day name matching the weekday values
// stored in course_schedule.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[int(d)]
}

// parseClock reads an HH:MM string (HH:MM:SS is accepted since Postgres
// TIME columns scan that way; the seconds are discarded).
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid clock value %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// ValidClockRange reports whether start and end are well-formed clock
// values with start strictly before end on the same day.
func ValidClockRange(start, end string) bool {
	startHour, startMin, err := parseClock(start)
	if err != nil {
		return false
	}
	endHour, endMin, err := parseClock(end)
	if err != nil {
		return false
	}
	return startHour*60+startMin < endHour*60+endMin
}

// ClassifySlot places now relative to the slot's window on now's calendar
// day. The end minute is inclusive through its final second, so a 09:00-09:50
// slot is During until 09:50:59. Slots must start and end on the same day;
// a slot recorded across midnight classifies as After for most of its real
// duration.
func ClassifySlot(slot ScheduleSlot, now time.Time) (SlotPhase, error) {
	startHour, startMin, err := parseClock(slot.StartTime)
	if err != nil {
		return SlotBefore, err
	}
	endHour, endMin, err := parseClock(slot.EndTime)
	if err != nil {
		return SlotBefore, err
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), startHour, startMin, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), now.Day(), endHour, endMin, 59, int(999*time.Millisecond), now.Location())

	if now.Before(start) {
		return SlotBefore, nil
	}
	if now.After(end) {
		return SlotAfter, nil
	}
	return SlotDuring, nil
}

// ActiveSlot returns the first slot on the given weekday that is During at
// now. First match wins; overlapping slots are not resolved further. A false
// result means no attendance may be taken right now, which is not an error.
func ActiveSlot(slots []ScheduleSlot, weekday string, now time.Time) (ScheduleSlot, bool) {
	for _, slot := range slots {
		if slot.Weekday != weekday {
			continue
		}
		phase, err := ClassifySlot(slot, now)
		if err != nil {
			continue
		}
		if phase == SlotDuring {
			return slot, true
		}
	}
	return ScheduleSlot{}, false
}
