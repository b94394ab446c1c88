package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"elevate-backend/internal/quiz"
)

type scoreInput struct {
	Questions []quiz.Question `json:"questions"`
	Answers   map[string]any  `json:"answers"`
}

type scoreOutput struct {
	Score  int      `json:"score"`
	Total  int      `json:"total"`
	Missed []string `json:"missed"`
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Score a quiz from {questions, answers} JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd)
			if err != nil {
				return err
			}
			var in scoreInput
			if err := json.Unmarshal(raw, &in); err != nil {
				return fmt.Errorf("decode input: %w", err)
			}
			answers, _, err := quiz.ParseAnswers(in.Answers)
			if err != nil {
				return err
			}
			res := quiz.Score(in.Questions, answers)
			missed := quiz.Missed(in.Questions, answers)
			if missed == nil {
				missed = []string{}
			}
			return writeJSON(cmd, scoreOutput{Score: res.Score, Total: res.Total, Missed: missed})
		},
	}
}
