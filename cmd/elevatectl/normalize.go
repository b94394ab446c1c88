package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"elevate-backend/internal/normalize"
)

func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "normalize",
		Short:   "Normalize an AI reply into an array or object",
		Example: "  echo '```json\n{\"a\":1}\n```' | elevatectl normalize --shape object",
		RunE: func(cmd *cobra.Command, args []string) error {
			shape, _ := cmd.Flags().GetString("shape")
			verbose, _ := cmd.Flags().GetBool("verbose")

			raw, err := readInput(cmd)
			if err != nil {
				return err
			}
			var s normalize.Shape
			switch shape {
			case "array":
				s = normalize.ShapeArray
			case "object":
				s = normalize.ShapeObject
			default:
				return fmt.Errorf("unknown shape %q (want array or object)", shape)
			}

			text := string(raw)
			if verbose {
				res := normalize.Extract(text)
				fmt.Fprintf(cmd.ErrOrStderr(), "source: %s\n", res.Source())
			}
			return writeJSON(cmd, normalize.Normalize(text, s))
		},
	}
	cmd.Flags().String("shape", "object", "Expected shape: array or object")
	cmd.Flags().BoolP("verbose", "v", false, "Print the extraction step to stderr")
	return cmd
}
