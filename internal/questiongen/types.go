package questiongen

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Section names the exam section a question is generated for. It selects
// the section block of the prompt and the shape of the returned question.
type Section string

const (
	SectionDataInterpretation Section = "data_interpretation"
	SectionLogicalReasoning   Section = "logical_reasoning"
	SectionProgramming        Section = "programming"
	SectionTechnical          Section = "technical"
	SectionAptitude           Section = "aptitude"
	SectionTechnicalAptitude  Section = "technical_aptitude"
)

// Visualizations are the chart kinds a data interpretation question may use.
var Visualizations = []string{"pie", "line", "bar", "table"}

// Request holds the parameters of a single generation request. All fields
// are free-form; missing values are treated as empty strings.
type Request struct {
	Topic               string `json:"topic"`
	SkillTags           string `json:"skill_tags"`
	QuestionType        string `json:"question_type"`
	Difficulty          string `json:"difficulty"`
	Section             string `json:"section"`
	ProgrammingLanguage string `json:"programming_language,omitempty"`
}

// UnmarshalJSON accepts "question_section" as an alias for "section" (the
// web client sends that key) and skill tags as either a string or a list of
// strings.
func (r *Request) UnmarshalJSON(data []byte) error {
	var aux struct {
		Topic               string          `json:"topic"`
		SkillTags           json.RawMessage `json:"skill_tags"`
		QuestionType        string          `json:"question_type"`
		Difficulty          string          `json:"difficulty"`
		Section             string          `json:"section"`
		QuestionSection     string          `json:"question_section"`
		ProgrammingLanguage string          `json:"programming_language"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	tags, err := decodeSkillTags(aux.SkillTags)
	if err != nil {
		return err
	}

	*r = Request{
		Topic:               aux.Topic,
		SkillTags:           tags,
		QuestionType:        aux.QuestionType,
		Difficulty:          aux.Difficulty,
		Section:             aux.Section,
		ProgrammingLanguage: aux.ProgrammingLanguage,
	}
	if r.Section == "" {
		r.Section = aux.QuestionSection
	}
	return nil
}

func decodeSkillTags(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return "", fmt.Errorf("skill_tags must be a string or a list of strings")
	}
	return strings.Join(list, ", "), nil
}

// PromptSpec is the prompt built for one request together with the section
// block that was chosen.
type PromptSpec struct {
	Prompt  string
	Section Section
}

// Question is the object recovered from the model reply. Fields holds every
// key the model produced; the accessors read the well-known ones.
type Question struct {
	Section Section
	Fields  map[string]any
}

// Text returns the question stem.
func (q *Question) Text() string {
	s, _ := q.Fields["question"].(string)
	return s
}

// Options returns the answer options as strings. Non-string options are
// formatted with fmt.
func (q *Question) Options() []string {
	raw, _ := q.Fields["options"].([]any)
	out := make([]string, len(raw))
	for i, o := range raw {
		out[i] = stringify(o)
	}
	return out
}

// Answer returns the correct answer.
func (q *Question) Answer() string {
	return stringify(q.Fields["answer"])
}

// Explanation returns the worked solution. A list of steps is joined with
// newlines.
func (q *Question) Explanation() string {
	if steps, ok := q.Fields["explanation"].([]any); ok {
		parts := make([]string, len(steps))
		for i, s := range steps {
			parts[i] = stringify(s)
		}
		return strings.Join(parts, "\n")
	}
	return stringify(q.Fields["explanation"])
}

// Table is a header row plus data rows, used for chart data and sample
// test cases.
type Table struct {
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
}

// DataSet is the data payload of a data interpretation question.
type DataSet struct {
	Type    string `json:"type"`
	Context string `json:"dataContext"`
	Table   Table  `json:"tableData"`
}

// DataSet returns the chart data of a data interpretation question. ok is
// false for other sections or when data is not an object. Missing or
// oddly typed members are read as empty values.
func (q *Question) DataSet() (*DataSet, bool) {
	if q.Section != SectionDataInterpretation {
		return nil, false
	}
	data, ok := q.Fields["data"].(map[string]any)
	if !ok {
		return nil, false
	}
	ds := &DataSet{
		Type:    strings.ToLower(stringify(data["type"])),
		Context: stringify(data["dataContext"]),
	}
	if t, ok := tableFrom(data["tableData"]); ok {
		ds.Table = *t
	}
	return ds, true
}

// Programming is the payload of a programming question.
type Programming struct {
	SolutionCode string `json:"solution_code"`
	StarterCode  string `json:"starter_code,omitempty"`
	SampleTests  *Table `json:"sample_test_cases,omitempty"`
}

// Programming returns the code payload of a programming question. ok is
// false for other sections or when no solution code was produced. A null
// or non-string starter_code reads as empty.
func (q *Question) Programming() (*Programming, bool) {
	if q.Section != SectionProgramming {
		return nil, false
	}
	code, _ := q.Fields["solution_code"].(string)
	if code == "" {
		return nil, false
	}
	p := &Programming{SolutionCode: code}
	p.StarterCode, _ = q.Fields["starter_code"].(string)
	if t, ok := tableFrom(q.Fields["sample_test_cases"]); ok {
		p.SampleTests = t
	}
	return p, true
}

// tableFrom reads a {headers, rows} object. Headers of any type are
// stringified. Array rows are kept as is; object rows are laid out in
// header order, or in key order when their keys do not match the headers.
func tableFrom(v any) (*Table, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	t := &Table{}
	if hs, ok := m["headers"].([]any); ok {
		t.Headers = make([]string, len(hs))
		for i, h := range hs {
			t.Headers[i] = stringify(h)
		}
	}
	rows, _ := m["rows"].([]any)
	for _, r := range rows {
		switch row := r.(type) {
		case []any:
			t.Rows = append(t.Rows, row)
		case map[string]any:
			t.Rows = append(t.Rows, objectRow(row, t.Headers))
		default:
			t.Rows = append(t.Rows, []any{row})
		}
	}
	return t, true
}

func objectRow(row map[string]any, headers []string) []any {
	if len(headers) == len(row) {
		out := make([]any, len(headers))
		matched := true
		for i, h := range headers {
			v, ok := row[h]
			if !ok {
				matched = false
				break
			}
			out[i] = v
		}
		if matched {
			return out
		}
	}
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = row[k]
	}
	return out
}

// Metadata is stamped onto every generated question. Values echo the
// request so clients can correlate results.
type Metadata struct {
	Difficulty   string
	QuestionType string
	Section      string
	SkillTags    string
	CreatedAt    time.Time
	ID           string
}

// createdAtLayout renders UTC timestamps with microseconds and a Z suffix.
const createdAtLayout = "2006-01-02T15:04:05.000000Z"

// Envelope is the result returned to callers: the question plus metadata.
type Envelope struct {
	Question Question
	Metadata Metadata
}

// Map flattens the envelope into one object. Metadata keys overwrite any
// same-named keys the model produced.
func (e *Envelope) Map() map[string]any {
	out := make(map[string]any, len(e.Question.Fields)+6)
	for k, v := range e.Question.Fields {
		out[k] = v
	}
	out["difficulty"] = e.Metadata.Difficulty
	out["question_type"] = e.Metadata.QuestionType
	out["section"] = e.Metadata.Section
	out["skill_tags"] = e.Metadata.SkillTags
	out["created_at"] = e.Metadata.CreatedAt.UTC().Format(createdAtLayout)
	out["id"] = e.Metadata.ID
	return out
}

// MarshalJSON encodes the flattened envelope.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Map())
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
