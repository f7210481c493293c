package jsonextract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Fenced(t *testing.T) {
	text := "Here is the question you asked for.\n```json\n" +
		`{"question":"Q","options":[],"answer":"A","explanation":"E"}` +
		"\n```\nLet me know if you need another."

	obj, ok := Extract(text)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"question":    "Q",
		"options":     []any{},
		"answer":      "A",
		"explanation": "E",
	}, obj)
}

func TestExtract_Bare(t *testing.T) {
	obj, ok := Extract(`{"question":"Q2","options":["a","b"],"answer":"a","explanation":"E2"}`)
	require.True(t, ok)
	assert.Equal(t, "Q2", obj["question"])
	assert.Equal(t, []any{"a", "b"}, obj["options"])
	assert.Equal(t, "a", obj["answer"])
	assert.Equal(t, "E2", obj["explanation"])
}

func TestExtract_Embedded(t *testing.T) {
	text := `Sure! Here you go: {"question":"Q3","options":[],"answer":"x","explanation":"E3"} Hope that helps.`

	obj, strategy, ok := ExtractWith(text, DefaultStrategies()...)
	require.True(t, ok)
	assert.Equal(t, StrategyBraceScan, strategy)
	assert.Equal(t, "Q3", obj["question"])
	assert.Equal(t, "x", obj["answer"])
}

func TestExtract_Failure(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no braces", "I cannot comply with this request."},
		{"empty", ""},
		{"unbalanced", `Here: {"question": "Q"`},
		{"array only", `["a", "b"]`},
		{"string only", `"just a string"`},
		{"number only", `42`},
		{"stray closing braces", "}}} nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, ok := Extract(tt.text)
			assert.False(t, ok)
			assert.Nil(t, obj)
		})
	}
}

func TestExtract_StrategyOrder(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		strategy string
		question string
	}{
		{
			name:     "fence beats surrounding object",
			text:     "{\"question\":\"outer\"} ```json\n{\"question\":\"fenced\"}\n```",
			strategy: StrategyFenced,
			question: "fenced",
		},
		{
			name:     "bare object with whitespace",
			text:     "\n\n  {\"question\":\"bare\"}  \n",
			strategy: StrategyDirect,
			question: "bare",
		},
		{
			name:     "broken fence with a later object",
			text:     "```json\n{\"question\": oops}\n``` then {\"question\":\"later\"}",
			strategy: "",
		},
		{
			name:     "unlabelled fence recovered by brace scan",
			text:     "```\n{\"question\":\"plain fence\"}\n```",
			strategy: StrategyBraceScan,
			question: "plain fence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, strategy, ok := ExtractWith(tt.text, DefaultStrategies()...)
			if tt.strategy == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.strategy, strategy)
			assert.Equal(t, tt.question, obj["question"])
		})
	}
}

func TestBraceScan_SingleStart(t *testing.T) {
	// The first depth-zero span is invalid; the scan extends the same span
	// rather than restarting at the later, valid object.
	obj, ok := BraceScan(`{not json} and then {"question":"Q"}`)
	assert.False(t, ok)
	assert.Nil(t, obj)
}

func TestBraceScan_ExtendsToLaterZeroCrossing(t *testing.T) {
	// The brace inside the string value closes the first span early; that
	// candidate fails and the next zero crossing yields the full object.
	text := `prefix {"a": "}{", "b": 2} suffix`
	obj, ok := BraceScan(text)
	require.True(t, ok)
	assert.Equal(t, "}{", obj["a"])
	assert.Equal(t, json.Number("2"), obj["b"])
}

func TestBraceScan_NestedObject(t *testing.T) {
	text := `Result: {"question":"Q","data":{"type":"bar","tableData":{"headers":["Month","Units"],"rows":[["Jan",3]]}}} done`
	obj, ok := BraceScan(text)
	require.True(t, ok)

	data, ok := obj["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bar", data["type"])
}

func TestExtract_PreservesIntegers(t *testing.T) {
	obj, ok := Extract(`{"question":"Q","count":12345678901234567}`)
	require.True(t, ok)
	assert.Equal(t, json.Number("12345678901234567"), obj["count"])
}

func TestDirect_RejectsTrailingData(t *testing.T) {
	_, ok := Direct(`{"a":1} {"b":2}`)
	assert.False(t, ok)
}

func TestExtractWith_CustomStrategy(t *testing.T) {
	panicky := StrategyFunc{Label: "panicky", Fn: func(string) (map[string]any, bool) {
		panic("boom")
	}}
	constant := StrategyFunc{Label: "constant", Fn: func(string) (map[string]any, bool) {
		return map[string]any{"question": "fixed"}, true
	}}

	obj, strategy, ok := ExtractWith("anything", panicky, constant)
	require.True(t, ok)
	assert.Equal(t, "constant", strategy)
	assert.Equal(t, "fixed", obj["question"])

	_, _, ok = ExtractWith("anything")
	assert.False(t, ok)
}

func TestExtract_Deterministic(t *testing.T) {
	text := "```json\n{\"question\":\"Q\",\"options\":[\"1\",\"2\"]}\n```"
	first, ok := Extract(text)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := Extract(text)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}
