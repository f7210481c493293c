package render

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/synapt/synapt/internal/questiongen"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;:]*m`)

func plain(s string) string { return ansi.ReplaceAllString(s, "") }

func envelope(section questiongen.Section, fields map[string]any) *questiongen.Envelope {
	return &questiongen.Envelope{
		Question: questiongen.Question{Section: section, Fields: fields},
		Metadata: questiongen.Metadata{
			Difficulty:   "easy",
			QuestionType: "mcq",
			Section:      string(section),
			SkillTags:    "addition",
			CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			ID:           "q-1",
		},
	}
}

func TestQuestion_MCQ(t *testing.T) {
	env := envelope(questiongen.SectionAptitude, map[string]any{
		"question":    "What is 2 + 3?",
		"options":     []any{"4", "5", "6"},
		"answer":      "5",
		"explanation": "Add the numbers.",
	})

	out := plain(Question(env, 60))

	assert.Contains(t, out, "Aptitude")
	assert.Contains(t, out, "What is 2 + 3?")
	assert.Contains(t, out, "A. 4")
	assert.Contains(t, out, "B. 5 ✓")
	assert.Contains(t, out, "C. 6")
	assert.Contains(t, out, "Answer: 5")
	assert.Contains(t, out, "Add the numbers.")
	assert.Contains(t, out, "easy · mcq · addition · q-1")
}

func TestQuestion_DataInterpretation(t *testing.T) {
	env := envelope(questiongen.SectionDataInterpretation, map[string]any{
		"question":    "Which quarter peaked?",
		"options":     []any{"Q1", "Q2"},
		"answer":      "Q2",
		"explanation": "Q2 is larger.",
		"data": map[string]any{
			"type":        "Bar",
			"dataContext": "Quarterly revenue",
			"tableData": map[string]any{
				"headers": []any{"Quarter", "Revenue"},
				"rows":    []any{[]any{"Q1", 10}, []any{"Q2", 12}},
			},
		},
	})

	out := plain(Question(env, 0))

	assert.Contains(t, out, "Data Interpretation")
	assert.Contains(t, out, "Quarterly revenue")
	assert.Contains(t, out, "Quarter  Revenue")
	assert.Contains(t, out, "Q2       12")
	assert.Contains(t, out, "chart: bar")
}

func TestQuestion_Programming(t *testing.T) {
	env := envelope(questiongen.SectionProgramming, map[string]any{
		"question":      "Reverse a string.",
		"options":       []any{},
		"answer":        "See solution",
		"explanation":   []any{"Walk from the end.", "Append each rune."},
		"solution_code": "func rev(s string) string { return s }",
		"starter_code":  "func rev(s string) string {}",
		"sample_test_cases": map[string]any{
			"headers": []any{"input", "output"},
			"rows":    []any{[]any{"ab", "ba"}},
		},
	})

	out := plain(Question(env, 100))

	assert.Contains(t, out, "Starter code")
	assert.Contains(t, out, "func rev(s string) string {}")
	assert.Contains(t, out, "Solution")
	assert.Contains(t, out, "Sample test cases")
	assert.Contains(t, out, "ab     ba")
	assert.Contains(t, out, "Walk from the end.")
	assert.Contains(t, out, "Append each rune.")
}

func TestTable(t *testing.T) {
	t.Run("ragged rows", func(t *testing.T) {
		out := plain(Table(&questiongen.Table{
			Headers: []string{"a"},
			Rows:    [][]any{{"1", "long"}, {"22"}},
		}))
		lines := strings.Split(out, "\n")
		assert.Len(t, lines, 4)
		assert.Equal(t, "a", lines[0])
		assert.Equal(t, "──  ────", lines[1])
		assert.Equal(t, "1   long", lines[2])
		assert.Equal(t, "22", lines[3])
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Table(&questiongen.Table{}))
	})
}

func TestFailureLine(t *testing.T) {
	assert.Equal(t, "✗ Error contacting LLM API: boom", plain(FailureLine(errors.New("Error contacting LLM API: boom"))))
}

func TestOptionLabel(t *testing.T) {
	assert.Equal(t, "A", optionLabel(0))
	assert.Equal(t, "Z", optionLabel(25))
	assert.Equal(t, "27", optionLabel(26))
}
