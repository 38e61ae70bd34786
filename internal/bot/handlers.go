package bot

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/weihanlin/gsatbot/internal/quiz"
	"github.com/weihanlin/gsatbot/internal/quizgen"
	"github.com/weihanlin/gsatbot/internal/store"
	"github.com/weihanlin/gsatbot/internal/topic"
)

// generateTimeout bounds one question-set generation. Interaction tokens
// stay valid for 15 minutes after a deferred response, so the LLM is the
// only thing in a hurry here.
const generateTimeout = 2 * time.Minute

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "vocabulary":
			b.handleVocabulary(s, i)
		case "social":
			b.handleSocial(s, i)
		case "help":
			b.respondEphemeral(s, i, helpText)
		}
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i)
	}
}

// interactionUser returns the acting user's ID for both guild and DM
// interactions.
func interactionUser(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (b *Bot) handleVocabulary(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commandOptions(i)
	count := intOption(opts, "questions", defaultQuestions)
	level := intOption(opts, "level", 0)

	if count < 1 || count > maxVocabulary || level < 0 || level > topic.MaxLevel {
		b.respondEphemeral(s, i, "參數超出範圍，請重新輸入。")
		return
	}

	b.startQuiz(s, i, quiz.Meta{Kind: quizgen.KindVocabulary, Level: level}, count)
}

func (b *Bot) handleSocial(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commandOptions(i)
	count := intOption(opts, "questions", defaultQuestions)

	subject, err := topic.ParseSubject(stringOption(opts, "subject"))
	if err != nil {
		b.respondEphemeral(s, i, "未知的科目。")
		return
	}
	if count < 1 || count > maxSocial {
		b.respondEphemeral(s, i, "參數超出範圍，請重新輸入。")
		return
	}

	b.startQuiz(s, i, quiz.Meta{Kind: quizgen.KindSocial, Subject: subject}, count)
}

// startQuiz runs the whole start flow: registry admission, deferred
// response, topic sampling, generation, and the first question render.
func (b *Bot) startQuiz(s *discordgo.Session, i *discordgo.InteractionCreate, meta quiz.Meta, count int) {
	owner := interactionUser(i)
	if owner == "" {
		return
	}

	sess, err := b.registry.TryCreate(owner, meta)
	if err != nil {
		if errors.Is(err, quiz.ErrAlreadyActive) {
			b.respondEphemeral(s, i, "你已經有一場進行中的測驗，請先完成或按「停止測驗」。")
		}
		return
	}

	// Generation takes seconds; acknowledge now, edit when the set is ready.
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		b.log.Error("deferred response failed", "user", owner, "error", err)
		b.registry.Remove(owner)
		return
	}

	input, err := b.buildInput(meta, count)
	if err != nil {
		b.abortStart(s, i, sess, "找不到符合條件的單字，請換個級別再試一次。")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	questions, err := b.gen.GenerateSet(ctx, input)
	if err != nil {
		b.log.Error("question generation failed", "user", owner, "error", err)
		b.abortStart(s, i, sess, "題目產生失敗，請稍後再試一次。")
		return
	}

	first, err := sess.Begin(questions)
	if err != nil {
		b.abortStart(s, i, sess, "題目產生失敗，請稍後再試一次。")
		return
	}

	embeds := []*discordgo.MessageEmbed{questionEmbed(&first.Question, first.Index, first.Total, meta)}
	comps := questionComponents(&first.Question, owner, sess.ID())
	msg, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &embeds,
		Components: &comps,
	})
	if err != nil {
		// The session keeps running and will expire on its own; the user
		// just never saw the question.
		b.log.Error("question render failed", "user", owner, "error", err)
	} else {
		b.setRef(owner, msg.ChannelID, msg.ID)
	}

	b.logQuizEvent(sess, store.QuizStarted)
}

// buildInput samples the raw material for a question set.
func (b *Bot) buildInput(meta quiz.Meta, count int) (quizgen.GenerateInput, error) {
	if meta.Kind == quizgen.KindSocial {
		topics, err := topic.SampleSocialTopics(count, meta.Subject)
		if err != nil {
			return quizgen.GenerateInput{}, err
		}
		return quizgen.GenerateInput{Kind: quizgen.KindSocial, Subject: meta.Subject, Topics: topics}, nil
	}

	words, err := b.vocab.Sample(count, meta.Level)
	if err != nil {
		return quizgen.GenerateInput{}, err
	}
	return quizgen.GenerateInput{Kind: quizgen.KindVocabulary, Words: words}, nil
}

// abortStart tears down a session that never reached its first question.
func (b *Bot) abortStart(s *discordgo.Session, i *discordgo.InteractionCreate, sess *quiz.Session, message string) {
	b.registry.Remove(sess.Owner())
	b.logQuizEvent(sess, store.QuizFailed)

	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	})
	if err != nil {
		b.log.Error("abort render failed", "user", sess.Owner(), "error", err)
	}
}

func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	act, ok := parseCustomID(i.MessageComponentData().CustomID)
	if !ok || act.kind == "done" {
		b.ackSilent(s, i)
		return
	}

	actor := interactionUser(i)
	if actor != act.owner {
		b.respondEphemeral(s, i, "這不是你的測驗！")
		return
	}

	sess, ok := b.registry.Get(actor)
	if !ok {
		b.respondEphemeral(s, i, "這場測驗已經結束了。")
		return
	}
	// Buttons on a message from a previous quiz must not act on this one.
	if sess.ID() != act.session {
		b.respondEphemeral(s, i, "這場測驗已經結束了。")
		return
	}
	meta := sess.Meta()

	switch act.kind {
	case "ans":
		res, err := sess.Submit(actor, act.label)
		if err != nil {
			// Double-click or a click that raced the timer.
			b.ackSilent(s, i)
			return
		}
		comps := resultComponents(&res.Question, actor, sess.ID())
		if res.Finished {
			comps = terminalComponents()
		}
		b.updateMessage(s, i, resultEmbed(res, meta), comps)
		if res.Finished {
			b.clearRef(actor)
			b.logQuizEvent(sess, store.QuizCompleted)
		} else {
			b.setRefFrom(actor, i)
		}

	case "next":
		res, err := sess.Next(actor)
		if err != nil {
			b.ackSilent(s, i)
			return
		}
		b.updateMessage(s, i, questionEmbed(&res.Question, res.Index, res.Total, meta), questionComponents(&res.Question, actor, sess.ID()))
		b.setRefFrom(actor, i)

	case "stop":
		res, err := sess.Stop(actor)
		if err != nil {
			b.ackSilent(s, i)
			return
		}
		b.updateMessage(s, i, stoppedEmbed(res, meta), terminalComponents())
		b.clearRef(actor)
		b.logQuizEvent(sess, store.QuizStopped)
	}
}

// handleExpiry runs on the session timer goroutine when a timeout window
// elapses. The interaction token is long gone, so the tracked message is
// edited directly.
func (b *Bot) handleExpiry(sess *quiz.Session) {
	owner := sess.Owner()
	if ref, ok := b.takeRef(owner); ok {
		embeds := []*discordgo.MessageEmbed{expiredEmbed(sess)}
		comps := terminalComponents()
		_, err := b.dg.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    ref.channelID,
			ID:         ref.messageID,
			Embeds:     &embeds,
			Components: &comps,
		})
		if err != nil {
			b.log.Warn("expiry render failed", "user", owner, "error", err)
		}
	}

	b.logQuizEvent(sess, store.QuizExpired)
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.log.Warn("ephemeral response failed", "error", err)
	}
}

// ackSilent acknowledges a component click without changing anything.
func (b *Bot) ackSilent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		b.log.Warn("component ack failed", "error", err)
	}
}

func (b *Bot) updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, comps []discordgo.MessageComponent) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: comps,
		},
	})
	if err != nil {
		b.log.Error("message update failed", "error", err)
	}
}

func (b *Bot) setRefFrom(owner string, i *discordgo.InteractionCreate) {
	if i.Message != nil {
		b.setRef(owner, i.ChannelID, i.Message.ID)
	}
}

// logQuizEvent appends a lifecycle event. Failures are logged and swallowed;
// the quiz never depends on the event store.
func (b *Bot) logQuizEvent(sess *quiz.Session, action string) {
	if b.events == nil {
		return
	}

	meta := sess.Meta()
	subject := "vocabulary"
	if meta.Kind == quizgen.KindSocial {
		subject = string(meta.Subject)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := b.events.AppendQuizEvent(ctx, store.QuizEventData{
		SessionID:      sess.ID(),
		UserID:         sess.Owner(),
		Action:         action,
		Subject:        subject,
		Level:          meta.Level,
		QuestionsTotal: sess.Total(),
		Correct:        sess.Score(),
		DurationSecs:   int(sess.Elapsed().Seconds()),
	})
	if err != nil {
		b.log.Warn("quiz event append failed", "action", action, "error", err)
	}
}
