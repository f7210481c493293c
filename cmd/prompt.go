package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synapt/synapt/internal/questiongen"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt that would be sent to the LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)
		spec := questiongen.BuildPrompt(requestFromViper(v))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# section: %s\n\n", spec.Section)
		_, err := fmt.Fprintln(out, spec.Prompt)
		return err
	},
}

func init() {
	addRequestFlags(promptCmd)
}
