package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/weihanlin/gsatbot/internal/llm"
	"github.com/weihanlin/gsatbot/internal/quizgen"
	"github.com/weihanlin/gsatbot/internal/topic"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate and answer questions in the terminal (no database, no Discord)",
	Long: `Generate a question set and answer it interactively.

This is a stateless developer tool for evaluating question quality and
tuning prompts. Nothing is persisted and no Discord connection is made.`,
	RunE: runPreview,
}

var (
	previewTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	previewCorrect = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))
	previewWrong   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F43F5E"))
	previewHint    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

func init() {
	previewCmd.Flags().String("words", "", "Comma-separated target words (skips CSV sampling)")
	previewCmd.Flags().Int("level", 0, "Vocabulary level 1-6 (0 = all levels)")
	previewCmd.Flags().String("subject", "", "Social subject: history, geography, or civics")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
}

func runPreview(cmd *cobra.Command, args []string) error {
	wordsFlag, _ := cmd.Flags().GetString("words")
	level, _ := cmd.Flags().GetInt("level")
	subjectFlag, _ := cmd.Flags().GetString("subject")
	count, _ := cmd.Flags().GetInt("count")
	if count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", count)
	}

	_ = godotenv.Load()
	ctx := cmd.Context()

	// No EventRepo: preview requests are not logged.
	provider, err := llm.NewProviderFromEnv(ctx, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	gen := quizgen.New(provider, quizgen.DefaultConfig())

	input, err := previewInput(wordsFlag, subjectFlag, level, count)
	if err != nil {
		return err
	}

	fmt.Printf("Generating %d questions with %s...\n\n", input.TopicCount(), provider.ModelID())
	questions, err := gen.GenerateSet(ctx, input)
	if err != nil {
		return fmt.Errorf("generate questions: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	var correct int

	for i, q := range questions {
		fmt.Println(previewTitle.Render(fmt.Sprintf("── Question %d/%d ──", i+1, len(questions))))
		fmt.Println(q.Text)
		for _, label := range quizgen.ChoiceLabels {
			fmt.Printf("  (%s) %s\n", label, q.Choices[label])
		}

		fmt.Print("\nYour answer (A-D, enter to skip): ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if answer == "" {
			fmt.Println(previewHint.Render("(skipped)"))
			fmt.Println()
			continue
		}

		if q.IsCorrect(answer) {
			correct++
			fmt.Println(previewCorrect.Render("✓ Correct!"))
		} else {
			fmt.Printf("%s Answer: %s\n", previewWrong.Render("✗ Wrong."), q.Answer)
		}
		fmt.Println(previewHint.Render("詳解: " + q.Explanation))
		fmt.Println()
	}

	fmt.Println(previewTitle.Render(fmt.Sprintf("── Summary: %d/%d correct ──", correct, len(questions))))
	return nil
}

// previewInput builds the generation input from the flags: explicit words
// beat CSV sampling, and a subject switches to social-studies mode.
func previewInput(wordsFlag, subjectFlag string, level, count int) (quizgen.GenerateInput, error) {
	if subjectFlag != "" {
		subject, err := topic.ParseSubject(subjectFlag)
		if err != nil {
			return quizgen.GenerateInput{}, err
		}
		topics, err := topic.SampleSocialTopics(count, subject)
		if err != nil {
			return quizgen.GenerateInput{}, err
		}
		return quizgen.GenerateInput{Kind: quizgen.KindSocial, Subject: subject, Topics: topics}, nil
	}

	if wordsFlag != "" {
		var words []string
		for _, w := range strings.Split(wordsFlag, ",") {
			if w = strings.TrimSpace(w); w != "" {
				words = append(words, w)
			}
		}
		if len(words) == 0 {
			return quizgen.GenerateInput{}, fmt.Errorf("no usable words in --words")
		}
		return quizgen.GenerateInput{Kind: quizgen.KindVocabulary, Words: words}, nil
	}

	vocabPath := os.Getenv("GSATBOT_VOCAB")
	if vocabPath == "" {
		vocabPath = defaultVocabPath
	}
	vocab, err := topic.LoadVocabulary(vocabPath)
	if err != nil {
		return quizgen.GenerateInput{}, fmt.Errorf("load vocabulary: %w", err)
	}
	words, err := vocab.Sample(count, level)
	if err != nil {
		return quizgen.GenerateInput{}, fmt.Errorf("sample words: %w", err)
	}
	return quizgen.GenerateInput{Kind: quizgen.KindVocabulary, Words: words}, nil
}
