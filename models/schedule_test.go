package models

import (
	"testing"
	"time"
)

func mondaySlot() ScheduleSlot {
	return ScheduleSlot{
		Weekday:   "Pazartesi",
		StartTime: "09:00",
		EndTime:   "09:50",
		Room:      "D-101",
	}
}

// 2024-03-04 is a Monday.
func monday(hour, min, sec int) time.Time {
	return time.Date(2024, 3, 4, hour, min, sec, 0, time.Local)
}

func TestClassifySlot(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want SlotPhase
	}{
		{
			name: "well before start",
			now:  monday(7, 0, 0),
			want: SlotBefore,
		},
		{
			name: "one second before start",
			now:  monday(8, 59, 59),
			want: SlotBefore,
		},
		{
			name: "exactly at start",
			now:  monday(9, 0, 0),
			want: SlotDuring,
		},
		{
			name: "mid lesson",
			now:  monday(9, 30, 0),
			want: SlotDuring,
		},
		{
			name: "final second of end minute is still during",
			now:  monday(9, 50, 59),
			want: SlotDuring,
		},
		{
			name: "one minute after end",
			now:  monday(9, 51, 0),
			want: SlotAfter,
		},
		{
			name: "well after end",
			now:  monday(10, 1, 0),
			want: SlotAfter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifySlot(mondaySlot(), tt.now)
			if err != nil {
				t.Fatalf("ClassifySlot() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ClassifySlot() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifySlotAcceptsSecondsInClock(t *testing.T) {
	slot := ScheduleSlot{Weekday: "Pazartesi", StartTime: "09:00:00", EndTime: "09:50:00"}
	got, err := ClassifySlot(slot, monday(9, 30, 0))
	if err != nil {
		t.Fatalf("ClassifySlot() error = %v", err)
	}
	if got != SlotDuring {
		t.Errorf("ClassifySlot() = %v, want SlotDuring", got)
	}
}

func TestClassifySlotBadClock(t *testing.T) {
	slot := ScheduleSlot{Weekday: "Pazartesi", StartTime: "morning", EndTime: "09:50"}
	if _, err := ClassifySlot(slot, monday(9, 0, 0)); err == nil {
		t.Error("ClassifySlot() expected error for malformed start time")
	}
}

func TestActiveSlot(t *testing.T) {
	first := mondaySlot()
	overlapping := ScheduleSlot{Weekday: "Pazartesi", StartTime: "09:30", EndTime: "10:20", Room: "D-102"}
	tuesday := ScheduleSlot{Weekday: "Salı", StartTime: "09:00", EndTime: "09:50"}
	slots := []ScheduleSlot{tuesday, first, overlapping}

	t.Run("first matching slot wins on overlap", func(t *testing.T) {
		got, ok := ActiveSlot(slots, "Pazartesi", monday(9, 40, 0))
		if !ok {
			t.Fatal("ActiveSlot() found no slot")
		}
		if got.Room != "D-101" {
			t.Errorf("ActiveSlot() room = %q, want first slot D-101", got.Room)
		}
	})

	t.Run("wrong weekday filtered out", func(t *testing.T) {
		if _, ok := ActiveSlot([]ScheduleSlot{tuesday}, "Pazartesi", monday(9, 30, 0)); ok {
			t.Error("ActiveSlot() matched a slot on another weekday")
		}
	})

	t.Run("no slot active outside hours", func(t *testing.T) {
		if _, ok := ActiveSlot(slots, "Pazartesi", monday(13, 0, 0)); ok {
			t.Error("ActiveSlot() matched after every slot ended")
		}
	})
}

func TestWeekdayName(t *testing.T) {
	tests := []struct {
		day  time.Weekday
		want string
	}{
		{time.Sunday, "Pazar"},
		{time.Monday, "Pazartesi"},
		{time.Wednesday, "Çarşamba"},
		{time.Saturday, "Cumartesi"},
	}
	for _, tt := range tests {
		if got := WeekdayName(tt.day); got != tt.want {
			t.Errorf("WeekdayName(%v) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestValidClockRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"normal range", "09:00", "09:50", true},
		{"start equals end", "09:00", "09:00", false},
		{"end before start", "10:00", "09:00", false},
		{"crosses midnight rejected", "23:00", "00:50", false},
		{"malformed start", "9am", "10:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidClockRange(tt.start, tt.end); got != tt.want {
				t.Errorf("ValidClockRange(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
