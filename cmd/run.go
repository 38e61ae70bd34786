package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/weihanlin/gsatbot/internal/bot"
	"github.com/weihanlin/gsatbot/internal/llm"
	"github.com/weihanlin/gsatbot/internal/quiz"
	"github.com/weihanlin/gsatbot/internal/quizgen"
	"github.com/weihanlin/gsatbot/internal/store"
	"github.com/weihanlin/gsatbot/internal/topic"
)

const defaultVocabPath = "學測6000字.csv"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Discord bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBot(cmd)
	},
}

// runBot opens the store, builds dependencies, connects to Discord, and
// blocks until SIGINT/SIGTERM.
func runBot(cmd *cobra.Command) error {
	ctx := cmd.Context()

	// Optional; real deployments set env vars directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		token = os.Getenv("GSATBOT_DISCORD_TOKEN")
	}
	if token == "" {
		return errors.New("DISCORD_TOKEN is not set")
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	eventRepo := st.EventRepo()

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	vocabPath := os.Getenv("GSATBOT_VOCAB")
	if vocabPath == "" {
		vocabPath = defaultVocabPath
	}
	vocab, err := topic.LoadVocabulary(vocabPath)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}

	registry := quiz.NewRegistry(quiz.DefaultTimeout)
	generator := quizgen.New(provider, quizgen.DefaultConfig())

	b, err := bot.New(bot.Config{
		Token:   token,
		GuildID: os.Getenv("GSATBOT_GUILD"),
	}, registry, generator, vocab, eventRepo, logger)
	if err != nil {
		return err
	}

	if err := b.Start(); err != nil {
		return err
	}
	defer b.Close()

	logger.Info("bot is running",
		"model", provider.ModelID(),
		"vocabulary", vocab.Len(),
		"db", dbPath)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	return nil
}
