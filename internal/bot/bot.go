// Package bot is the Discord surface: slash commands, button components,
// and embed rendering over the quiz state machine.
package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/weihanlin/gsatbot/internal/quiz"
	"github.com/weihanlin/gsatbot/internal/quizgen"
	"github.com/weihanlin/gsatbot/internal/store"
	"github.com/weihanlin/gsatbot/internal/topic"
)

// Config holds the Discord-side settings.
type Config struct {
	// Token is the bot token (without the "Bot " prefix).
	Token string

	// GuildID, when set, registers commands on a single guild instead of
	// globally. Guild commands propagate instantly, which is what you want
	// during development.
	GuildID string
}

// messageRef locates the last quiz message rendered for an owner, so the
// expiry handler can edit it after the interaction token is gone.
type messageRef struct {
	channelID string
	messageID string
}

// Bot wires the Discord gateway to the quiz registry, the question
// generator, and the event store.
type Bot struct {
	dg       *discordgo.Session
	registry *quiz.Registry
	gen      quizgen.Generator
	vocab    *topic.Vocabulary
	events   store.EventRepo
	guildID  string
	log      *slog.Logger

	mu   sync.Mutex
	refs map[string]messageRef
}

// New builds the bot and installs its gateway handlers. Call Start to
// connect.
func New(cfg Config, registry *quiz.Registry, gen quizgen.Generator, vocab *topic.Vocabulary, events store.EventRepo, logger *slog.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("discord token is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	b := &Bot{
		dg:       dg,
		registry: registry,
		gen:      gen,
		vocab:    vocab,
		events:   events,
		guildID:  cfg.GuildID,
		log:      logger,
		refs:     make(map[string]messageRef),
	}

	registry.OnExpire(b.handleExpiry)
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onInteraction)

	return b, nil
}

// Start opens the gateway connection and registers the slash commands.
func (b *Bot) Start() error {
	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}

	_, err := b.dg.ApplicationCommandBulkOverwrite(b.dg.State.User.ID, b.guildID, commandDefinitions())
	if err != nil {
		b.dg.Close()
		return fmt.Errorf("register commands: %w", err)
	}

	return nil
}

// Close disconnects from the gateway. Live sessions are abandoned; they are
// not persisted.
func (b *Bot) Close() error {
	return b.dg.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("connected to discord",
		"user", r.User.Username,
		"guilds", len(r.Guilds))
}

func (b *Bot) setRef(owner, channelID, messageID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refs[owner] = messageRef{channelID: channelID, messageID: messageID}
}

func (b *Bot) clearRef(owner string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.refs, owner)
}

// takeRef removes and returns the owner's message ref.
func (b *Bot) takeRef(owner string) (messageRef, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ref, ok := b.refs[owner]
	if ok {
		delete(b.refs, owner)
	}
	return ref, ok
}
