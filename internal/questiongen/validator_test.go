package questiongen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseFields() map[string]any {
	return map[string]any{
		"question":    "Q",
		"options":     []any{"a", "b"},
		"answer":      "a",
		"explanation": "E",
	}
}

func TestSchemaValidator(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		mutate  func(map[string]any)
		wantErr bool
	}{
		{"valid base", SectionTechnicalAptitude, func(map[string]any) {}, false},
		{"missing question", SectionTechnicalAptitude, func(f map[string]any) { delete(f, "question") }, true},
		{"empty question", SectionTechnicalAptitude, func(f map[string]any) { f["question"] = "" }, true},
		{"missing explanation", SectionLogicalReasoning, func(f map[string]any) { delete(f, "explanation") }, true},
		{"options not array", SectionTechnicalAptitude, func(f map[string]any) { f["options"] = "a, b" }, true},
		{"empty options", SectionTechnicalAptitude, func(f map[string]any) { f["options"] = []any{} }, false},
		{"numeric answer", SectionTechnicalAptitude, func(f map[string]any) { f["answer"] = json.Number("4") }, false},
		{"extra keys allowed", SectionTechnicalAptitude, func(f map[string]any) { f["hint"] = map[string]any{"x": 1.0} }, false},
		{"data optional", SectionDataInterpretation, func(map[string]any) {}, false},
		{"data of any shape", SectionDataInterpretation, func(f map[string]any) { f["data"] = "pie" }, false},
		{"numeric table headers", SectionDataInterpretation, func(f map[string]any) {
			f["data"] = map[string]any{"type": "bar", "tableData": map[string]any{"headers": []any{"Region", json.Number("2021")}}}
		}, false},
		{"null starter code", SectionProgramming, func(f map[string]any) {
			f["solution_code"] = "print(1)"
			f["starter_code"] = nil
		}, false},
		{"object test rows", SectionProgramming, func(f map[string]any) {
			f["sample_test_cases"] = map[string]any{"rows": []any{map[string]any{"input": "1", "output": "2"}}}
		}, false},
		{"missing answer in programming", SectionProgramming, func(f map[string]any) { delete(f, "answer") }, true},
	}

	v := &SchemaValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := baseFields()
			tt.mutate(f)
			verr := v.Validate(&Question{Section: tt.section, Fields: f})
			if tt.wantErr {
				require.NotNil(t, verr)
				assert.Equal(t, "schema", verr.Validator)
			} else {
				assert.Nil(t, verr)
			}
		})
	}
}

func TestQuestionSchema_RequiredKeys(t *testing.T) {
	def := QuestionSchema()
	assert.Equal(t, []any{"question", "options", "answer", "explanation"}, def["required"])
}

func TestCompiledSchema_Once(t *testing.T) {
	a, err := compiledSchema()
	require.NoError(t, err)
	b, err := compiledSchema()
	require.NoError(t, err)
	assert.Same(t, a, b)
}
