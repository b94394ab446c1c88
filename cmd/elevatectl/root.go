package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "elevatectl",
		Short:        "Offline tools for the Elevate backend",
		Long:         "elevatectl runs the response normalizer, quiz scorer, speech metrics and prompt catalog without the API server.",
		SilenceUsage: true,
		Version:      version,
	}
	root.PersistentFlags().StringP("file", "f", "", "Read input from file instead of stdin")

	root.AddCommand(newNormalizeCmd())
	root.AddCommand(newScoreCmd())
	root.AddCommand(newFillersCmd())
	root.AddCommand(newPromptCmd())
	return root
}

// openInput returns the --file reader or stdin.
func openInput(cmd *cobra.Command) (io.ReadCloser, error) {
	if p, _ := cmd.Flags().GetString("file"); p != "" {
		return os.Open(p)
	}
	return io.NopCloser(cmd.InOrStdin()), nil
}

func readInput(cmd *cobra.Command) ([]byte, error) {
	in, err := openInput(cmd)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return io.ReadAll(in)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
