package models

import (
	"sort"
	"time"
)

// WeeklyStat is the aggregate over one Monday-to-Sunday window. The JSON
// field names are the display strings the charts bind to, matching the
// stored status values.
type WeeklyStat struct {
	Week     string `json:"week"`
	Attended int    `json:"Katıldı"`
	Late     int    `json:"Geç Kaldı"`
	Absent   int    `json:"Katılmadı"`
}

// DailyStat is the aggregate for one calendar day inside a week window.
type DailyStat struct {
	Date     string `json:"date"`
	Attended int    `json:"Katıldı"`
	Late     int    `json:"Geç Kaldı"`
	Absent   int    `json:"Katılmadı"`
}

// StartOfWeek returns the Monday of the week containing t, at midnight in
// t's location.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// inWeek reports whether an attendance date falls inside the 7-day window
// starting at weekStart. Dates compare as YYYY-MM-DD strings.
func inWeek(date string, weekStart time.Time) bool {
	start := weekStart.Format(DateLayout)
	end := weekStart.AddDate(0, 0, 6).Format(DateLayout)
	return date >= start && date <= end
}

// WeeklyTotals folds the records falling inside the week starting at
// weekStart into a single aggregate labeled with the window bounds.
// Unknown statuses are ignored.
func WeeklyTotals(records []AttendanceRecord, weekStart time.Time) WeeklyStat {
	stat := WeeklyStat{
		Week: weekStart.Format(DateLayout) + " - " + weekStart.AddDate(0, 0, 6).Format(DateLayout),
	}
	for _, record := range records {
		if !inWeek(record.Date, weekStart) {
			continue
		}
		switch status, _ := ParseStatus(record.Status); status {
		case StatusAttended:
			stat.Attended++
		case StatusLate:
			stat.Late++
		case StatusAbsent:
			stat.Absent++
		}
	}
	return stat
}

// DailyBreakdown groups the records of the week starting at weekStart by
// exact date, ascending. Days with no records are omitted rather than
// zero-filled; the week selector only offers days that were actually held.
func DailyBreakdown(records []AttendanceRecord, weekStart time.Time) []DailyStat {
	grouped := make(map[string]DailyStat)
	for _, record := range records {
		if !inWeek(record.Date, weekStart) {
			continue
		}
		day := grouped[record.Date]
		day.Date = record.Date
		switch status, _ := ParseStatus(record.Status); status {
		case StatusAttended:
			day.Attended++
		case StatusLate:
			day.Late++
		case StatusAbsent:
			day.Absent++
		}
		grouped[record.Date] = day
	}

	days := make([]DailyStat, 0, len(grouped))
	for _, day := range grouped {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// DistinctRecordDates returns the sorted set of dates that have at least
// one attendance record, used to populate the week selector.
func DistinctRecordDates(records []AttendanceRecord) []string {
	seen := make(map[string]struct{}, len(records))
	dates := make([]string, 0, len(records))
	for _, record := range records {
		if _, ok := seen[record.Date]; ok {
			continue
		}
		seen[record.Date] = struct{}{}
		dates = append(dates, record.Date)
	}
	sort.Strings(dates)
	return dates
}
