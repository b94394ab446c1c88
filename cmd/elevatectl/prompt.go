package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"elevate-backend/internal/bootstrap"
	"elevate-backend/internal/llm"
	"elevate-backend/internal/normalize"
	"elevate-backend/internal/shared/config"
)

func newPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt [name]",
		Short: "Run a catalog prompt against the configured AI provider",
		Example: "  elevatectl prompt quiz.generate --set Topic=Percentages --set Count=5 --shape array\n" +
			"  elevatectl prompt --list",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list"); list {
				names := llm.PromptNames()
				sort.Strings(names)
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("prompt name is required (see --list)")
			}

			sets, _ := cmd.Flags().GetStringArray("set")
			vars, err := parseVars(sets)
			if err != nil {
				return err
			}
			req, err := llm.Prompt(args[0], vars)
			if err != nil {
				return err
			}

			cfg := config.Load()
			if p, _ := cmd.Flags().GetString("provider"); p != "" {
				cfg.LLM.Provider = p
			}
			if m, _ := cmd.Flags().GetString("model"); m != "" {
				cfg.LLM.Model = m
			}
			client, err := bootstrap.NewLLMClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			shape, _ := cmd.Flags().GetString("shape")
			out, _ := cmd.Flags().GetString("out")
			return runPrompt(cmd, client, req, shape, out)
		},
	}
	cmd.Flags().Bool("list", false, "List prompt names and exit")
	cmd.Flags().StringArray("set", nil, "Template variable as Key=Value (repeatable)")
	cmd.Flags().String("shape", "", "Normalize the reply: array, object, or empty for raw text")
	cmd.Flags().String("provider", "", "Override LLM_PROVIDER")
	cmd.Flags().String("model", "", "Override LLM_MODEL")
	cmd.Flags().String("out", "", "Also write the reply to this file")
	return cmd
}

func runPrompt(cmd *cobra.Command, client llm.Client, req llm.Request, shape, outPath string) error {
	text, err := client.Complete(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("llm %s: %w", req.Operation, err)
	}
	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	switch shape {
	case "":
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	case "array":
		return writeJSON(cmd, normalize.Array(text))
	case "object":
		return writeJSON(cmd, normalize.Object(text))
	default:
		return fmt.Errorf("unknown shape %q (want array or object)", shape)
	}
}

// parseVars turns Key=Value pairs into template data. Templates fail on
// missing keys, so every referenced variable has to be set.
func parseVars(sets []string) (map[string]any, error) {
	vars := make(map[string]any, len(sets))
	for _, kv := range sets {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q (want Key=Value)", kv)
		}
		vars[k] = v
	}
	return vars, nil
}
