package models

import (
	"encoding/json"
	"strings"
)

// SummaryBlock is the contact/summary object stored in the summary column:
// contact fields plus the generated narrative.
type SummaryBlock struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
	Summary   string `json:"summary"`
}

// EducationEntry is one education item.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// ExperienceEntry is one internship, job, or legacy combined-experience
// item. Description carries newline-separated bullet text.
type ExperienceEntry struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// ProjectEntry is one project item.
type ProjectEntry struct {
	Title       string `json:"title"`
	TechStack   string `json:"techStack"`
	Description string `json:"description"`
}

// ResumeDraft is the client-authored resume content for create and update.
// The legacy Experience list coexists with the split Internship and
// JobExperience lists: new lists win, legacy is a read-only fallback for
// pre-migration data.
type ResumeDraft struct {
	Title         *string           `json:"title"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Mobile        string            `json:"mobile"`
	LinkedIn      string            `json:"linkedin"`
	GitHub        string            `json:"github"`
	Portfolio     string            `json:"portfolio"`
	Summary       string            `json:"summary"`
	Skills        []string          `json:"skills"`
	Experience    []ExperienceEntry `json:"experience"`
	Education     []EducationEntry  `json:"education"`
	Internship    []ExperienceEntry `json:"internship"`
	JobExperience []ExperienceEntry `json:"jobExperience"`
	Projects      []ProjectEntry    `json:"projects"`
}

// SummaryBlock folds the draft's contact fields and narrative into the
// object persisted in the summary column.
func (d *ResumeDraft) SummaryBlock() SummaryBlock {
	return SummaryBlock{
		Name:      d.Name,
		Email:     d.Email,
		Mobile:    d.Mobile,
		LinkedIn:  d.LinkedIn,
		GitHub:    d.GitHub,
		Portfolio: d.Portfolio,
		Summary:   d.Summary,
	}
}

// ColumnJSON serializes the draft value for one JSON-typed resumes column.
// Absent lists normalize to empty arrays, never null. The second return is
// false for column names the draft does not own.
func (d *ResumeDraft) ColumnJSON(column string) (string, bool) {
	switch column {
	case "summary":
		return marshalJSON(d.SummaryBlock()), true
	case "experience":
		return marshalList(d.Experience), true
	case "education":
		return marshalList(d.Education), true
	case "skills":
		return marshalList(d.Skills), true
	case "internship":
		return marshalList(d.Internship), true
	case "job_experience":
		return marshalList(d.JobExperience), true
	case "projects":
		return marshalList(d.Projects), true
	default:
		return "", false
	}
}

func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func marshalList[T any](items []T) string {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// JSONColumn is one decoded JSON-typed column. Rows written before a
// migration, or by older builds, may hold text that is not valid JSON;
// reads keep the raw text instead of failing (tolerant read). Present is
// set by the scanners, so a column the live table does not have stays
// zero and drops out of payloads entirely (omitzero).
type JSONColumn[T any] struct {
	Value   T
	Raw     string
	Valid   bool
	Present bool
}

// MarshalJSON emits the decoded value when the stored text parsed, the raw
// text as a JSON string when it did not, and null otherwise.
func (c JSONColumn[T]) MarshalJSON() ([]byte, error) {
	if c.Valid {
		return json.Marshal(c.Value)
	}
	if c.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(c.Raw)
}

// IsZero reports a column that was never scanned from the row.
func (c JSONColumn[T]) IsZero() bool { return !c.Present }

// ObjectColumn decodes an object-valued column. Empty input stays invalid
// and marshals back to null.
func ObjectColumn[T any](raw string) JSONColumn[T] {
	return decodeColumn[T](raw, "")
}

// ListColumn decodes a list-valued column. Empty input normalizes to an
// empty list, never null.
func ListColumn[T any](raw string) JSONColumn[[]T] {
	return decodeColumn[[]T](raw, "[]")
}

func decodeColumn[T any](raw, emptyAs string) JSONColumn[T] {
	c := JSONColumn[T]{Raw: raw, Present: true}
	text := raw
	if strings.TrimSpace(text) == "" {
		if emptyAs == "" {
			return c
		}
		text = emptyAs
	}
	if err := json.Unmarshal([]byte(text), &c.Value); err != nil {
		return c
	}
	c.Valid = true
	return c
}

// GeneratedResume is the structured output of the text-generation service:
// a narrative summary plus echoed/expanded sections whose description
// fields carry newline-separated bullet text.
type GeneratedResume struct {
	Summary       string            `json:"summary"`
	Skills        []string          `json:"skills"`
	Education     []EducationEntry  `json:"education,omitempty"`
	Internship    []ExperienceEntry `json:"internship,omitempty"`
	JobExperience []ExperienceEntry `json:"jobExperience,omitempty"`
	Experience    []ExperienceEntry `json:"experience,omitempty"`
	Projects      []ProjectEntry    `json:"projects,omitempty"`
}
