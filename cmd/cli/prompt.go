package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/llm"
)

var promptProvider string

var promptCmd = &cobra.Command{
	Use:   "prompt [file]",
	Short: "Print the review prompt that would be sent to the model",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := readSources(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		return renderReviewPrompt(cmd.OutOrStdout(), viper.GetViper(), llm.ModelProvider(promptProvider), sources[0].Code)
	},
}

// renderReviewPrompt writes the review prompt for code. The language comes
// from v, so the --language flag, REVIEWER_AI_LANGUAGE and config.yaml all
// apply in that order.
func renderReviewPrompt(w io.Writer, v *viper.Viper, provider llm.ModelProvider, code string) error {
	if err := config.Read(v); err != nil {
		return err
	}

	pm, err := llm.NewPromptManager()
	if err != nil {
		return fmt.Errorf("failed to load prompts: %w", err)
	}

	out, err := pm.Render(llm.CodeReviewPrompt, provider, core.ReviewPromptData{
		Language: v.GetString("ai.language"),
		Code:     code,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}

func init() { //nolint:gochecknoinits // Cobra command registration
	promptCmd.Flags().StringVar(&promptProvider, "for", string(llm.DefaultProvider), "prompt variant to render, e.g. default or gemini")
	rootCmd.AddCommand(promptCmd)
}
