package questiongen

import (
	"fmt"
	"strings"
)

const defaultDifficulty = "medium"

// BuildPrompt turns a request into the instruction text sent to the model.
// It never fails and is deterministic: any randomness (such as the chart
// kind) is left to the model through the instructions.
func BuildPrompt(req Request) PromptSpec {
	questionType := strings.ToLower(req.QuestionType)
	section := strings.ToLower(req.Section)
	difficulty := capitalize(orDefault(req.Difficulty, defaultDifficulty))
	resolved := ResolveSection(req)

	var b strings.Builder
	writeBaseBlock(&b, req, questionType, difficulty, section)

	switch resolved {
	case SectionDataInterpretation:
		writeDataInterpretationBlock(&b)
	case SectionLogicalReasoning:
		writeLogicalReasoningBlock(&b)
	case SectionProgramming:
		writeProgrammingBlock(&b, req.ProgrammingLanguage, difficulty)
	default:
		writeGeneralBlock(&b)
	}

	writeClosingBlock(&b)

	return PromptSpec{
		Prompt:  strings.TrimSpace(b.String()),
		Section: resolved,
	}
}

// ResolveSection returns the section block BuildPrompt uses for req. The
// programming block needs a language; without one, and for any section
// not listed, the general technical/aptitude block applies.
func ResolveSection(req Request) Section {
	switch Section(strings.ToLower(req.Section)) {
	case SectionDataInterpretation:
		return SectionDataInterpretation
	case SectionLogicalReasoning:
		return SectionLogicalReasoning
	case SectionProgramming:
		if req.ProgrammingLanguage != "" {
			return SectionProgramming
		}
	}
	return SectionTechnicalAptitude
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}

func writeBaseBlock(b *strings.Builder, req Request, questionType, difficulty, section string) {
	b.WriteString("You are an exam question generator for campus placement tests. ")
	b.WriteString("Your whole reply must be a single valid JSON object.\n")
	fmt.Fprintf(b, "Generate one question of type '%s'.\n", questionType)
	fmt.Fprintf(b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(b, "Skill Tags: %s\n", req.SkillTags)
	fmt.Fprintf(b, "Difficulty: %s\n", difficulty)
	fmt.Fprintf(b, "Section: %s\n\n", section)
}

func writeDataInterpretationBlock(b *strings.Builder) {
	fmt.Fprintf(b, "- Start by choosing ONE visualization type at random from this list: ['%s'].\n",
		strings.Join(Visualizations, "', '"))
	b.WriteString("- The JSON object MUST contain a 'data' object with these keys:\n")
	b.WriteString("  1. 'type': the visualization type you chose (for example \"bar\").\n")
	b.WriteString("  2. 'dataContext': a short title or description of the data (for example \"Monthly Website Visitors\").\n")
	b.WriteString("  3. 'tableData': the data behind the chart as a table, with two keys:\n")
	b.WriteString("     - 'headers': an array of column titles (strings).\n")
	b.WriteString("     - 'rows': an array of rows, each row an array of cell values.\n")
	b.WriteString("- The columns and rows must suit the chosen visualization: a 'pie' needs a category and a share, a 'line' needs an ordered axis such as time.\n")
	b.WriteString("- The 'question' must be answerable only from the data you generated.\n\n")
}

func writeLogicalReasoningBlock(b *strings.Builder) {
	b.WriteString("You design demanding logical reasoning questions for placement exams aimed at fresh graduates.\n")
	b.WriteString("First pick a logical reasoning sub-topic such as coding-decoding, seating arrangement, direction sense, blood relations or syllogisms.\n")
	b.WriteString("Then write a scenario that needs several steps of deduction:\n")
	b.WriteString("- A premise section that sets up all the facts (for example \"Six friends sit in a row facing north...\").\n")
	b.WriteString("- A question section that asks what must be worked out from the premise (for example \"Who sits second from the right?\").\n")
	b.WriteString("Give the answer and an explanation that walks through every deduction in order.\n\n")
}

func writeProgrammingBlock(b *strings.Builder, language, difficulty string) {
	fmt.Fprintf(b, "- Programming Language: %q\n", language)
	fmt.Fprintf(b, "- The problem statement, the algorithm it needs and the test cases MUST fit the '%s' difficulty level.\n", difficulty)
	b.WriteString("- An 'Easy' problem must be solvable with fundamental constructs such as loops, conditionals and basic collections.\n")
	b.WriteString("- A 'Hard' problem must need advanced algorithms (dynamic programming, graph algorithms, greedy proofs) and careful handling of edge cases.\n")
	b.WriteString("- The 'question' is a clear, self-contained programming problem description.\n")
	b.WriteString("- The 'explanation' MUST have three labelled parts:\n")
	b.WriteString("  1. Approach: the core idea or algorithm in one or two sentences.\n")
	b.WriteString("  2. Step-by-step Logic: how the solution reaches the answer, step by step.\n")
	b.WriteString("  3. Complexity Analysis: time and space complexity in Big-O notation.\n")
	fmt.Fprintf(b, "- The JSON object MUST contain a 'solution_code' key with a correct, complete and commented solution in %s.\n", language)
	b.WriteString("- It MAY contain a 'starter_code' key with boilerplate for the candidate.\n")
	b.WriteString("- The JSON object MUST contain a 'sample_test_cases' object with:\n")
	b.WriteString("  1. 'headers': exactly [\"Sample Input\", \"Sample Output\"].\n")
	fmt.Fprintf(b, "  2. 'rows': an array of [input, output] pairs whose complexity matches the '%s' level; harder levels include edge cases such as empty input or very large values.\n\n", difficulty)
}

func writeGeneralBlock(b *strings.Builder) {
	b.WriteString("Write a technical/aptitude question that takes several steps of reasoning or calculation to solve.\n\n")
}

func writeClosingBlock(b *strings.Builder) {
	b.WriteString("Format your entire reply as a JSON object with at least these keys:\n")
	b.WriteString("\"question\": the question stem as a string.\n")
	b.WriteString("\"options\": an array of answer options, or an empty array when options do not apply.\n")
	b.WriteString("\"answer\": the correct answer as a string.\n")
	b.WriteString("\"explanation\": the solution as an ordered sequence of steps: first step, then second step, then third step if needed.\n")
	b.WriteString("Return only this JSON object, with no text or commentary before or after it.\n")
}
