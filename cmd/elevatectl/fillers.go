package main

import (
	"bufio"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"elevate-backend/internal/interview"
)

func newFillersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fillers",
		Short: "Count filler words and speaking pace of a transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			live, _ := cmd.Flags().GetBool("live")
			elapsed, _ := cmd.Flags().GetDuration("elapsed")
			if live {
				return runLiveFillers(cmd, time.Now)
			}
			raw, err := readInput(cmd)
			if err != nil {
				return err
			}
			return writeJSON(cmd, interview.MetricsFor(string(raw), elapsed))
		},
	}
	cmd.Flags().Bool("live", false, "Treat each input line as a new transcript chunk and print running metrics")
	cmd.Flags().Duration("elapsed", 0, "Speaking time of the transcript, e.g. 90s")
	return cmd
}

// runLiveFillers feeds stdin line by line into a speech tracker; EOF stops it.
func runLiveFillers(cmd *cobra.Command, now func() time.Time) error {
	in, err := openInput(cmd)
	if err != nil {
		return err
	}
	defer in.Close()

	var tracker interview.SpeechTracker
	tracker.Start(now())
	var transcript strings.Builder
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if transcript.Len() > 0 {
			transcript.WriteByte(' ')
		}
		transcript.WriteString(line)
		if err := writeJSON(cmd, tracker.Update(transcript.String(), now())); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return writeJSON(cmd, tracker.Stop())
}
