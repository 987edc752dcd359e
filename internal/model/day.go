package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Day identifies a weekday, Monday first.
type Day int

// Days in canonical order.
const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
	DayCount = 7
)

var dayNames = [DayCount]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Days lists every weekday in canonical order.
var Days = [DayCount]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether d is one of the seven weekdays.
func (d Day) Valid() bool {
	return d >= 0 && d < DayCount
}

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("day(%d)", int(d))
	}
	return dayNames[d]
}

// Short returns a three-letter label such as "Mon".
func (d Day) Short() string {
	s := d.String()
	if !d.Valid() {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:3]
}

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid day %d", int(d))
	}
	return []byte(dayNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDay resolves a weekday by full name or three-letter prefix.
func ParseDay(name string) (Day, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) >= 3 {
		for i, n := range dayNames {
			if n == name || n[:3] == name {
				return Day(i), nil
			}
		}
	}
	return 0, fmt.Errorf("unknown day %q (available: %s)", name, strings.Join(dayNames[:], ", "))
}

// DayOf maps a time.Weekday onto the Monday-first Day.
func DayOf(wd time.Weekday) Day {
	return Day((int(wd) + 6) % 7)
}

// Week holds one SkillMinutes per weekday.
type Week [DayCount]SkillMinutes

// Get returns one day/skill cell, or 0 when either index is invalid.
func (w Week) Get(d Day, s Skill) int {
	if !d.Valid() {
		return 0
	}
	return w[d].Get(s)
}

// DayTotal sums every skill on one day.
func (w Week) DayTotal(d Day) int {
	if !d.Valid() {
		return 0
	}
	return w[d].Sum()
}

type weekJSON struct {
	Monday    SkillMinutes `json:"monday"`
	Tuesday   SkillMinutes `json:"tuesday"`
	Wednesday SkillMinutes `json:"wednesday"`
	Thursday  SkillMinutes `json:"thursday"`
	Friday    SkillMinutes `json:"friday"`
	Saturday  SkillMinutes `json:"saturday"`
	Sunday    SkillMinutes `json:"sunday"`
}

// MarshalJSON encodes the week as an object keyed by weekday name.
func (w Week) MarshalJSON() ([]byte, error) {
	return json.Marshal(weekJSON{w[Monday], w[Tuesday], w[Wednesday], w[Thursday], w[Friday], w[Saturday], w[Sunday]})
}

// UnmarshalJSON decodes an object keyed by weekday name.
func (w *Week) UnmarshalJSON(data []byte) error {
	var raw weekJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*w = Week{raw.Monday, raw.Tuesday, raw.Wednesday, raw.Thursday, raw.Friday, raw.Saturday, raw.Sunday}
	return nil
}
