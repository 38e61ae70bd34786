package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/weihanlin/gsatbot/internal/quiz"
	"github.com/weihanlin/gsatbot/internal/quizgen"
)

const (
	colorQuestion = 0x3498db
	colorCorrect  = 0x2ecc71
	colorWrong    = 0xe74c3c
	colorNeutral  = 0x95a5a6
)

// maxFieldValue is Discord's embed field value limit.
const maxFieldValue = 1024

// escapeUnderscores keeps vocabulary blanks like "______" from rendering as
// italics in Discord markdown.
func escapeUnderscores(s string) string {
	return strings.ReplaceAll(s, "_", `\_`)
}

func truncateField(s string) string {
	runes := []rune(s)
	if len(runes) <= maxFieldValue {
		return s
	}
	return string(runes[:maxFieldValue-1]) + "…"
}

// quizTitle names the quiz for embed footers and the start message.
func quizTitle(meta quiz.Meta) string {
	if meta.Kind == quizgen.KindSocial {
		return fmt.Sprintf("社會科測驗（%s）", meta.Subject.DisplayName())
	}
	if meta.Level > 0 {
		return fmt.Sprintf("英文單字測驗（第 %d 級）", meta.Level)
	}
	return "英文單字測驗（全部級別）"
}

func choiceLines(q *quizgen.Question) string {
	var b strings.Builder
	for _, label := range quizgen.ChoiceLabels {
		fmt.Fprintf(&b, "**(%s)** %s\n", label, escapeUnderscores(q.Choices[label]))
	}
	return strings.TrimRight(b.String(), "\n")
}

// questionEmbed renders an open question.
func questionEmbed(q *quizgen.Question, index, total int, meta quiz.Meta) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("第 %d / %d 題", index+1, total),
		Description: escapeUnderscores(q.Text) + "\n\n" + choiceLines(q),
		Color:       colorQuestion,
		Footer: &discordgo.MessageEmbedFooter{
			Text: quizTitle(meta) + "・每題作答時間 3 分鐘",
		},
	}
}

// resultEmbed renders an answer result: every choice annotated, 詳解, and the
// running (or final) score.
func resultEmbed(res *quiz.AnswerResult, meta quiz.Meta) *discordgo.MessageEmbed {
	title := "答對了！"
	color := colorCorrect
	if !res.Correct {
		title = "答錯了！"
		color = colorWrong
	}

	var b strings.Builder
	b.WriteString(escapeUnderscores(res.Question.Text))
	b.WriteString("\n\n")
	for _, label := range quizgen.ChoiceLabels {
		marker := "▪️"
		switch {
		case label == res.Question.Answer:
			marker = "✅"
		case label == res.Chosen && !res.Correct:
			marker = "❌"
		}
		fmt.Fprintf(&b, "%s **(%s)** %s\n", marker, label, escapeUnderscores(res.Question.Choices[label]))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("第 %d / %d 題：%s", res.Index+1, res.Total, title),
		Description: strings.TrimRight(b.String(), "\n"),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "詳解", Value: truncateField(res.Question.Explanation)},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: quizTitle(meta)},
	}

	if res.Finished {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "測驗結束！最終成績",
			Value: scoreLine(res.Score, res.Total),
		})
	} else {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "目前得分",
			Value:  fmt.Sprintf("%d / %d", res.Score, res.Index+1),
			Inline: true,
		})
	}
	return embed
}

func scoreLine(score, total int) string {
	pct := 0
	if total > 0 {
		pct = score * 100 / total
	}
	return fmt.Sprintf("%d / %d（%d%%）", score, total, pct)
}

// stoppedEmbed renders an early stop.
func stoppedEmbed(res *quiz.StopResult, meta quiz.Meta) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "測驗已停止",
		Description: fmt.Sprintf("已作答 %d / %d 題。", res.Answered, res.Total),
		Color:       colorNeutral,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "得分", Value: fmt.Sprintf("%d / %d", res.Score, res.Answered)},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: quizTitle(meta)},
	}
}

// expiredEmbed renders a timeout.
func expiredEmbed(s *quiz.Session) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "測驗逾時",
		Description: "超過 3 分鐘未操作，測驗已自動結束。",
		Color:       colorNeutral,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "得分", Value: fmt.Sprintf("%d / %d", s.Score(), s.Answered())},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: quizTitle(s.Meta())},
	}
}
