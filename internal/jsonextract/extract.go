// Package jsonextract recovers a single JSON object from free-form model
// output. Replies may wrap the object in a markdown fence, return it bare,
// or bury it in conversational text; each case is handled by a Strategy.
package jsonextract

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
)

// Strategy tries to recover one JSON object from text. It must not panic;
// a strategy that finds nothing returns ok == false.
type Strategy interface {
	Name() string
	Extract(text string) (obj map[string]any, ok bool)
}

// StrategyFunc adapts a plain function to the Strategy interface.
type StrategyFunc struct {
	Label string
	Fn    func(text string) (map[string]any, bool)
}

func (s StrategyFunc) Name() string { return s.Label }

func (s StrategyFunc) Extract(text string) (map[string]any, bool) { return s.Fn(text) }

// Names of the built-in strategies, in the order DefaultStrategies runs them.
const (
	StrategyFenced    = "fenced"
	StrategyDirect    = "direct"
	StrategyBraceScan = "brace-scan"
)

// fencedJSON matches a ```json block holding an object. (?s) lets . span
// newlines; the lazy body stops at the first closing fence.
var fencedJSON = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

// DefaultStrategies returns the fenced, direct and brace-scan strategies in
// that order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		StrategyFunc{Label: StrategyFenced, Fn: Fenced},
		StrategyFunc{Label: StrategyDirect, Fn: Direct},
		StrategyFunc{Label: StrategyBraceScan, Fn: BraceScan},
	}
}

// Extract runs the default strategies and returns the first object found.
func Extract(text string) (map[string]any, bool) {
	obj, _, ok := ExtractWith(text, DefaultStrategies()...)
	return obj, ok
}

// ExtractWith runs strategies in order and stops at the first success.
// It also reports the name of the strategy that produced the object.
func ExtractWith(text string, strategies ...Strategy) (obj map[string]any, strategy string, ok bool) {
	for _, s := range strategies {
		if obj, ok := safeExtract(s, text); ok {
			return obj, s.Name(), true
		}
	}
	return nil, "", false
}

// safeExtract shields the chain from a misbehaving custom strategy.
func safeExtract(s Strategy, text string) (obj map[string]any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			obj, ok = nil, false
		}
	}()
	return s.Extract(text)
}

// Fenced parses the first ```json fenced block. A block that does not hold
// a valid object is treated as not found.
func Fenced(text string) (map[string]any, bool) {
	m := fencedJSON.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return decodeObject(m[1])
}

// Direct parses the whole text as one JSON object. Surrounding whitespace
// is allowed; anything else is not.
func Direct(text string) (map[string]any, bool) {
	return decodeObject(text)
}

// BraceScan walks forward from the first '{', tracking brace depth. Each
// time the depth returns to zero, the span from that first brace to the
// current '}' is tried as an object. The start never moves to a later '{'.
func BraceScan(text string) (map[string]any, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, false
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				if obj, ok := decodeObject(text[start : i+1]); ok {
					return obj, true
				}
			}
		}
	}
	return nil, false
}

// decodeObject parses s as exactly one JSON object. Numbers are kept as
// json.Number so integers survive a round trip unchanged.
func decodeObject(s string) (map[string]any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return obj, true
}
