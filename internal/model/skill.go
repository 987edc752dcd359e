package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Skill identifies one of the tracked language skills.
type Skill int

// Skills in canonical order.
const (
	Listening Skill = iota
	Reading
	Writing
	Speaking
	Fluency
	Pronunciation
	SkillCount = 6
)

var skillNames = [SkillCount]string{"listening", "reading", "writing", "speaking", "fluency", "pronunciation"}

// Skills lists every skill in canonical order.
var Skills = [SkillCount]Skill{Listening, Reading, Writing, Speaking, Fluency, Pronunciation}

// Valid reports whether s is one of the six skills.
func (s Skill) Valid() bool {
	return s >= 0 && s < SkillCount
}

func (s Skill) String() string {
	if !s.Valid() {
		return fmt.Sprintf("skill(%d)", int(s))
	}
	return skillNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Skill) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid skill %d", int(s))
	}
	return []byte(skillNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Skill) UnmarshalText(text []byte) error {
	parsed, err := ParseSkill(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSkill resolves a skill name, case-insensitively.
func ParseSkill(name string) (Skill, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range skillNames {
		if n == name {
			return Skill(i), nil
		}
	}
	return 0, fmt.Errorf("unknown skill %q (available: %s)", name, strings.Join(skillNames[:], ", "))
}

// SkillMinutes holds one integer per skill. It backs percentages, goals and daily minutes.
type SkillMinutes [SkillCount]int

// Get returns the value for a skill, or 0 for an invalid skill.
func (m SkillMinutes) Get(s Skill) int {
	if !s.Valid() {
		return 0
	}
	return m[s]
}

// With returns a copy of m with the skill set to v.
func (m SkillMinutes) With(s Skill, v int) SkillMinutes {
	if s.Valid() {
		m[s] = v
	}
	return m
}

// Sum adds every skill's value.
func (m SkillMinutes) Sum() int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

type skillMinutesJSON struct {
	Listening     int `json:"listening"`
	Reading       int `json:"reading"`
	Writing       int `json:"writing"`
	Speaking      int `json:"speaking"`
	Fluency       int `json:"fluency"`
	Pronunciation int `json:"pronunciation"`
}

// MarshalJSON encodes the record as an object keyed by skill name.
func (m SkillMinutes) MarshalJSON() ([]byte, error) {
	return json.Marshal(skillMinutesJSON{
		Listening:     m[Listening],
		Reading:       m[Reading],
		Writing:       m[Writing],
		Speaking:      m[Speaking],
		Fluency:       m[Fluency],
		Pronunciation: m[Pronunciation],
	})
}

// UnmarshalJSON decodes an object keyed by skill name. Missing skills are zero.
func (m *SkillMinutes) UnmarshalJSON(data []byte) error {
	var raw skillMinutesJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = SkillMinutes{raw.Listening, raw.Reading, raw.Writing, raw.Speaking, raw.Fluency, raw.Pronunciation}
	return nil
}

type successRatesJSON struct {
	Listening     float64 `json:"listening"`
	Reading       float64 `json:"reading"`
	Writing       float64 `json:"writing"`
	Speaking      float64 `json:"speaking"`
	Fluency       float64 `json:"fluency"`
	Pronunciation float64 `json:"pronunciation"`
}

// MarshalJSON encodes the rates as an object keyed by skill name.
func (r SuccessRates) MarshalJSON() ([]byte, error) {
	return json.Marshal(successRatesJSON{
		Listening:     r[Listening],
		Reading:       r[Reading],
		Writing:       r[Writing],
		Speaking:      r[Speaking],
		Fluency:       r[Fluency],
		Pronunciation: r[Pronunciation],
	})
}

// UnmarshalJSON decodes an object keyed by skill name.
func (r *SuccessRates) UnmarshalJSON(data []byte) error {
	var raw successRatesJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = SuccessRates{raw.Listening, raw.Reading, raw.Writing, raw.Speaking, raw.Fluency, raw.Pronunciation}
	return nil
}
