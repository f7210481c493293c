// Package render formats generated questions for the terminal.
package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/synapt/synapt/internal/questiongen"
)

// DefaultWidth is used when the caller passes a non-positive width.
const DefaultWidth = 80

// Question renders an envelope as a card: the stem, lettered options with
// the answer highlighted, section specific payloads, the explanation and a
// metadata footer.
func Question(env *questiongen.Envelope, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	inner := width - Card.GetHorizontalFrameSize()
	if inner < 20 {
		inner = 20
	}
	wrap := lipgloss.NewStyle().Width(inner)
	q := &env.Question

	var b strings.Builder
	b.WriteString(Title.Render(sectionTitle(q.Section)))
	b.WriteString("\n\n")
	b.WriteString(wrap.Inherit(Body).Render(q.Text()))
	b.WriteString("\n")

	if ds, ok := q.DataSet(); ok {
		b.WriteString("\n")
		if ds.Context != "" {
			b.WriteString(Hint.Render(ds.Context))
			b.WriteString("\n")
		}
		b.WriteString(Table(&ds.Table))
		if ds.Type != "" {
			b.WriteString("\n")
			b.WriteString(Hint.Render("chart: " + ds.Type))
		}
		b.WriteString("\n")
	}

	if opts := q.Options(); len(opts) > 0 {
		b.WriteString("\n")
		answer := q.Answer()
		for i, opt := range opts {
			line := fmt.Sprintf("%s. %s", optionLabel(i), opt)
			if opt == answer {
				b.WriteString(Correct.Render(line + " ✓"))
			} else {
				b.WriteString(Body.Render(line))
			}
			b.WriteString("\n")
		}
	}

	if p, ok := q.Programming(); ok {
		if p.StarterCode != "" {
			b.WriteString("\n")
			b.WriteString(Label.Render("Starter code"))
			b.WriteString("\n")
			b.WriteString(Code.Render(p.StarterCode))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(Label.Render("Solution"))
		b.WriteString("\n")
		b.WriteString(Code.Render(p.SolutionCode))
		b.WriteString("\n")
		if p.SampleTests != nil && len(p.SampleTests.Rows) > 0 {
			b.WriteString("\n")
			b.WriteString(Label.Render("Sample test cases"))
			b.WriteString("\n")
			b.WriteString(Table(p.SampleTests))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(Label.Render("Answer: "))
	b.WriteString(Correct.Render(q.Answer()))
	b.WriteString("\n\n")
	b.WriteString(Label.Render("Explanation"))
	b.WriteString("\n")
	b.WriteString(wrap.Inherit(Body).Render(q.Explanation()))
	b.WriteString("\n\n")
	b.WriteString(Hint.Render(footer(env.Metadata)))

	return Card.Width(width).Render(b.String())
}

// Table renders headers and rows as aligned columns.
func Table(t *questiongen.Table) string {
	cols := len(t.Headers)
	for _, r := range t.Rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if cols == 0 {
		return ""
	}

	cells := make([][]string, 0, len(t.Rows)+1)
	header := make([]string, cols)
	copy(header, t.Headers)
	cells = append(cells, header)
	for _, r := range t.Rows {
		row := make([]string, cols)
		for i, v := range r {
			if v != nil {
				row[i] = fmt.Sprint(v)
			}
		}
		cells = append(cells, row)
	}

	widths := make([]int, cols)
	for _, row := range cells {
		for i, c := range row {
			if w := lipgloss.Width(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for ri, row := range cells {
		parts := make([]string, cols)
		for i, c := range row {
			parts[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
		}
		line := strings.TrimRight(strings.Join(parts, "  "), " ")
		if ri == 0 {
			b.WriteString(Label.Render(line))
			b.WriteString("\n")
			sep := make([]string, cols)
			for i, w := range widths {
				sep[i] = strings.Repeat("─", w)
			}
			b.WriteString(Hint.Render(strings.Join(sep, "  ")))
		} else {
			b.WriteString(Body.Render(line))
		}
		if ri < len(cells)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FailureLine renders an error line.
func FailureLine(err error) string {
	return Failure.Render("✗ " + err.Error())
}

func optionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprint(i + 1)
}

func sectionTitle(s questiongen.Section) string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func footer(m questiongen.Metadata) string {
	parts := []string{m.Difficulty, m.QuestionType}
	if m.SkillTags != "" {
		parts = append(parts, m.SkillTags)
	}
	if m.ID != "" {
		parts = append(parts, m.ID)
	}
	return strings.Join(parts, " · ")
}
