package domain

import (
	"strings"
	"time"
)

const (
	notePrefix     = "note-"
	noteSuffix     = ".txt"
	noteTimeLayout = "20060102_15_04_05"
)

// NoteFileName returns the file name of a mistake note created at t
func NoteFileName(t time.Time) string {
	return notePrefix + t.Format(noteTimeLayout) + noteSuffix
}

// NoteTime extracts the creation time from a note file name
func NoteTime(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, notePrefix) || !strings.HasSuffix(name, noteSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, notePrefix), noteSuffix)
	t, err := time.ParseInLocation(noteTimeLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NoteLabel returns a user-friendly label for a note created at t
func NoteLabel(t time.Time, now time.Time) string {
	if sameDay(t, now) {
		return "Today " + t.Format("15:04")
	}
	if sameDay(t, now.AddDate(0, 0, -1)) {
		return "Yesterday " + t.Format("15:04")
	}
	return t.Format("2 Jan 2006 15:04")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
