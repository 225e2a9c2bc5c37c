// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

// Package datekey converts calendar dates to the canonical storage key for
// daily plans and to the encodings used in links and headings. Plans are
// stored one per teacher per day with the document ID YYYY-MM-DD.
//
// All conversions use the date's local calendar components. Going through
// UTC shifts the day for anyone west of Greenwich, so never do that here.
package datekey

import (
	"fmt"
	"regexp"
	"time"
)

// paramPattern is the shareable-link encoding, e.g. 09.03.2024.
var paramPattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// Key returns the canonical zero-padded YYYY-MM-DD storage key for t.
func Key(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseKey parses a canonical YYYY-MM-DD key back into a local date.
func ParseKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("datekey: parsing key %q: %w", key, err)
	}
	return t, nil
}

// Pretty returns the heading form of the date, e.g. "September 3, 2024".
func Pretty(t time.Time) string {
	return fmt.Sprintf("%s %d, %d", t.Month().String(), t.Day(), t.Year())
}

// Weekday returns the long weekday name, e.g. "Tuesday".
func Weekday(t time.Time) string {
	return t.Weekday().String()
}

// Param returns the MM.DD.YYYY encoding used in bookmarkable URLs.
func Param(t time.Time) string {
	return fmt.Sprintf("%02d.%02d.%04d", int(t.Month()), t.Day(), t.Year())
}

// ParseParam parses an MM.DD.YYYY link parameter. Malformed input reports
// ok=false rather than an error; callers fall back to today.
func ParseParam(s string) (time.Time, bool) {
	if !paramPattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("01.02.2006", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MondayOf returns the Monday of the week containing t. Sundays anchor to
// the Monday before, matching the week-at-a-glance view.
func MondayOf(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	wd := int(d.Weekday())
	diff := 1 - wd
	if wd == 0 {
		diff = -6
	}
	return d.AddDate(0, 0, diff)
}

// AddDays returns t shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same local calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
