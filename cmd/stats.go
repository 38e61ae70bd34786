package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weihanlin/gsatbot/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completed-quiz statistics per subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		stats, err := s.EventRepo().QuizStatsBySubject(context.Background())
		if err != nil {
			return fmt.Errorf("query quiz stats: %w", err)
		}

		if len(stats) == 0 {
			fmt.Println("No completed quizzes yet.")
			return nil
		}

		fmt.Println("Completed Quizzes by Subject")
		fmt.Println(strings.Repeat("─", 60))
		fmt.Printf("%-14s  %8s  %10s  %8s  %8s\n",
			"Subject", "Quizzes", "Questions", "Correct", "Rate")
		fmt.Println(strings.Repeat("─", 60))

		var totalQuizzes, totalQuestions, totalCorrect int
		for _, st := range stats {
			fmt.Printf("%-14s  %8d  %10d  %8d  %7s\n",
				st.Subject, st.Quizzes, st.QuestionsTotal, st.Correct, rate(st.Correct, st.QuestionsTotal))
			totalQuizzes += st.Quizzes
			totalQuestions += st.QuestionsTotal
			totalCorrect += st.Correct
		}

		fmt.Println(strings.Repeat("─", 60))
		fmt.Printf("%-14s  %8d  %10d  %8d  %7s\n",
			"TOTAL", totalQuizzes, totalQuestions, totalCorrect, rate(totalCorrect, totalQuestions))

		return nil
	},
}

func rate(correct, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", correct*100/total)
}
