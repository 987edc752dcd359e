// Package planio reads and writes schedule plans as YAML or JSON documents.
package planio

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/skilltrack/internal/model"
	"github.com/verte-zerg/skilltrack/internal/plan"
)

// Format is a document encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks a format from a file extension, defaulting to YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

type skillRow struct {
	Listening     int `yaml:"listening" json:"listening"`
	Reading       int `yaml:"reading" json:"reading"`
	Writing       int `yaml:"writing" json:"writing"`
	Speaking      int `yaml:"speaking" json:"speaking"`
	Fluency       int `yaml:"fluency" json:"fluency"`
	Pronunciation int `yaml:"pronunciation" json:"pronunciation"`
}

func rowFrom(m model.SkillMinutes) skillRow {
	return skillRow{m[model.Listening], m[model.Reading], m[model.Writing], m[model.Speaking], m[model.Fluency], m[model.Pronunciation]}
}

func (r skillRow) minutes() model.SkillMinutes {
	return model.SkillMinutes{r.Listening, r.Reading, r.Writing, r.Speaking, r.Fluency, r.Pronunciation}
}

// Document is the exported form of a plan, with the goals it was built for.
type Document struct {
	Goals     skillRow `yaml:"goals" json:"goals"`
	Monday    skillRow `yaml:"monday" json:"monday"`
	Tuesday   skillRow `yaml:"tuesday" json:"tuesday"`
	Wednesday skillRow `yaml:"wednesday" json:"wednesday"`
	Thursday  skillRow `yaml:"thursday" json:"thursday"`
	Friday    skillRow `yaml:"friday" json:"friday"`
	Saturday  skillRow `yaml:"saturday" json:"saturday"`
	Sunday    skillRow `yaml:"sunday" json:"sunday"`
}

// NewDocument converts a plan and its goals into a Document.
func NewDocument(p model.WeeklySchedulePlan, g model.WeeklyGoals) Document {
	return Document{
		Goals:     rowFrom(g),
		Monday:    rowFrom(p[model.Monday]),
		Tuesday:   rowFrom(p[model.Tuesday]),
		Wednesday: rowFrom(p[model.Wednesday]),
		Thursday:  rowFrom(p[model.Thursday]),
		Friday:    rowFrom(p[model.Friday]),
		Saturday:  rowFrom(p[model.Saturday]),
		Sunday:    rowFrom(p[model.Sunday]),
	}
}

// Plan returns the document's plan with every cell clamped to the editable range.
func (d Document) Plan() model.WeeklySchedulePlan {
	rows := [model.DayCount]skillRow{d.Monday, d.Tuesday, d.Wednesday, d.Thursday, d.Friday, d.Saturday, d.Sunday}
	var p model.WeeklySchedulePlan
	for _, day := range model.Days {
		for _, s := range model.Skills {
			p = plan.UpdateCell(p, day, s, rows[day].minutes().Get(s))
		}
	}
	return p
}

// Write encodes a plan to w.
func Write(w io.Writer, format Format, p model.WeeklySchedulePlan, g model.WeeklyGoals) error {
	doc := NewDocument(p, g)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported plan format %q", format)
	}
}

// Read decodes a plan from r. Goals in the document are informational and are not returned.
func Read(r io.Reader, format Format) (model.WeeklySchedulePlan, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return model.WeeklySchedulePlan{}, fmt.Errorf("failed to decode plan: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return model.WeeklySchedulePlan{}, fmt.Errorf("failed to decode plan: %w", err)
		}
	default:
		return model.WeeklySchedulePlan{}, fmt.Errorf("unsupported plan format %q", format)
	}
	return doc.Plan(), nil
}
