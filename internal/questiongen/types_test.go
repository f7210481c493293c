package questiongen

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Request
	}{
		{
			name: "section key",
			body: `{"topic":"Arrays","section":"technical","difficulty":"easy"}`,
			want: Request{Topic: "Arrays", Section: "technical", Difficulty: "easy"},
		},
		{
			name: "question_section alias",
			body: `{"topic":"Sales","question_section":"data_interpretation"}`,
			want: Request{Topic: "Sales", Section: "data_interpretation"},
		},
		{
			name: "section wins over alias",
			body: `{"section":"programming","question_section":"aptitude","programming_language":"Go"}`,
			want: Request{Section: "programming", ProgrammingLanguage: "Go"},
		},
		{
			name: "skill tags as list",
			body: `{"skill_tags":["loops","recursion"]}`,
			want: Request{SkillTags: "loops, recursion"},
		},
		{
			name: "unknown keys ignored",
			body: `{"topic":"x","extra":42}`,
			want: Request{Topic: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Request
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequest_UnmarshalJSON_Invalid(t *testing.T) {
	var r Request
	assert.Error(t, json.Unmarshal([]byte(`{"skill_tags": 7}`), &r))
	assert.Error(t, json.Unmarshal([]byte(`{"topic": ["a"]}`), &r))
	assert.Error(t, json.Unmarshal([]byte(`not json`), &r))
}

func TestQuestion_Accessors(t *testing.T) {
	q := Question{
		Section: SectionTechnicalAptitude,
		Fields: map[string]any{
			"question":    "What is 6 * 7?",
			"options":     []any{"42", json.Number("41")},
			"answer":      json.Number("42"),
			"explanation": []any{"Multiply 6 by 7.", "The product is 42."},
		},
	}

	assert.Equal(t, "What is 6 * 7?", q.Text())
	assert.Equal(t, []string{"42", "41"}, q.Options())
	assert.Equal(t, "42", q.Answer())
	assert.Equal(t, "Multiply 6 by 7.\nThe product is 42.", q.Explanation())

	_, ok := q.DataSet()
	assert.False(t, ok)
	_, ok = q.Programming()
	assert.False(t, ok)
}

func TestQuestion_DataSet(t *testing.T) {
	q := Question{
		Section: SectionDataInterpretation,
		Fields: map[string]any{
			"question": "Which month sold most?",
			"data": map[string]any{
				"type":        "BAR",
				"dataContext": "Units sold per month",
				"tableData": map[string]any{
					"headers": []any{"Month", "Units"},
					"rows":    []any{[]any{"Jan", json.Number("30")}, []any{"Feb", json.Number("45")}},
				},
			},
		},
	}

	ds, ok := q.DataSet()
	require.True(t, ok)
	assert.Equal(t, "bar", ds.Type)
	assert.Equal(t, "Units sold per month", ds.Context)
	assert.Equal(t, []string{"Month", "Units"}, ds.Table.Headers)
	require.Len(t, ds.Table.Rows, 2)
	assert.Equal(t, "Feb", ds.Table.Rows[1][0])
}

func TestQuestion_Programming(t *testing.T) {
	q := Question{
		Section: SectionProgramming,
		Fields: map[string]any{
			"question":      "Reverse a string.",
			"solution_code": "func reverse(s string) string { ... }",
			"sample_test_cases": map[string]any{
				"headers": []any{"Sample Input", "Sample Output"},
				"rows":    []any{[]any{"'hello'", "'olleh'"}},
			},
		},
	}

	p, ok := q.Programming()
	require.True(t, ok)
	assert.Contains(t, p.SolutionCode, "reverse")
	assert.Empty(t, p.StarterCode)
	require.NotNil(t, p.SampleTests)
	assert.Equal(t, []string{"Sample Input", "Sample Output"}, p.SampleTests.Headers)

	delete(q.Fields, "solution_code")
	_, ok = q.Programming()
	assert.False(t, ok)
}

func TestQuestion_LenientPayloads(t *testing.T) {
	t.Run("null starter code and object rows", func(t *testing.T) {
		q := Question{
			Section: SectionProgramming,
			Fields: map[string]any{
				"solution_code": "def f(): pass",
				"starter_code":  nil,
				"sample_test_cases": map[string]any{
					"headers": []any{"Sample Input", "Sample Output"},
					"rows": []any{
						map[string]any{"input": "3", "output": "6"},
						map[string]any{"Sample Input": "1", "Sample Output": "2"},
					},
				},
			},
		}

		p, ok := q.Programming()
		require.True(t, ok)
		assert.Empty(t, p.StarterCode)
		require.NotNil(t, p.SampleTests)
		assert.Equal(t, [][]any{{"3", "6"}, {"1", "2"}}, p.SampleTests.Rows)
	})

	t.Run("numeric headers", func(t *testing.T) {
		q := Question{
			Section: SectionDataInterpretation,
			Fields: map[string]any{
				"data": map[string]any{
					"type": "line",
					"tableData": map[string]any{
						"headers": []any{"Region", json.Number("2021"), json.Number("2022")},
						"rows":    []any{[]any{"North", json.Number("4"), json.Number("5")}},
					},
				},
			},
		}

		ds, ok := q.DataSet()
		require.True(t, ok)
		assert.Equal(t, []string{"Region", "2021", "2022"}, ds.Table.Headers)
		assert.Empty(t, ds.Context)
	})

	t.Run("data not an object", func(t *testing.T) {
		q := Question{Section: SectionDataInterpretation, Fields: map[string]any{"data": "pie"}}
		_, ok := q.DataSet()
		assert.False(t, ok)
	})
}

func TestEnvelope_MetadataOverwritesModelKeys(t *testing.T) {
	created := time.Date(2026, 5, 4, 3, 2, 1, 123456000, time.UTC)
	env := Envelope{
		Question: Question{Fields: map[string]any{
			"question":   "Q",
			"id":         "model-id",
			"difficulty": "impossible",
			"hint":       "kept",
		}},
		Metadata: Metadata{
			Difficulty:   "easy",
			QuestionType: "mcq",
			Section:      "technical",
			SkillTags:    "arrays",
			CreatedAt:    created,
			ID:           "server-id",
		},
	}

	b, err := json.Marshal(env)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "server-id", got["id"])
	assert.Equal(t, "easy", got["difficulty"])
	assert.Equal(t, "kept", got["hint"])
	assert.Equal(t, "2026-05-04T03:02:01.123456Z", got["created_at"])

	// The question's own fields are not mutated by the merge.
	assert.Equal(t, "model-id", env.Question.Fields["id"])
}
