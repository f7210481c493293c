package cmd

import (
	"encoding/json"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/synapt/synapt/internal/render"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one question and print it",
	Example: `  synapt generate --topic "Binary search" --section technical --difficulty hard
  synapt generate -t Recursion -s programming -l go --json`,
	RunE: runGenerate,
}

func init() {
	addRequestFlags(generateCmd)
	generateCmd.Flags().Bool("json", false, "Print the envelope as JSON")
	generateCmd.Flags().Int("width", render.DefaultWidth, "Render width in columns")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)
	if err := setupLogging(cmd, v); err != nil {
		return err
	}

	svc, closeRepo, err := newService(cmd.Context(), v, "cli-generate")
	if err != nil {
		return err
	}
	defer closeRepo()

	env, err := svc.Generate(cmd.Context(), requestFromViper(v))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if v.GetBool("json") {
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return fmt.Errorf("encode question: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	_, err = lipgloss.Fprintln(out, render.Question(env, v.GetInt("width")))
	return err
}
