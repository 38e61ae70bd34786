package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weihanlin/gsatbot/internal/quiz"
	"github.com/weihanlin/gsatbot/internal/quizgen"
	"github.com/weihanlin/gsatbot/internal/topic"
)

func sampleQuestion() quizgen.Question {
	return quizgen.Question{
		Text: "If you put a ______ under a leaking faucet, you will be surprised.",
		Choices: map[string]string{
			"A": "border", "B": "timer", "C": "container", "D": "marker",
		},
		Answer:      "C",
		Explanation: "container 意為容器。",
	}
}

func TestQuestionEmbed(t *testing.T) {
	q := sampleQuestion()
	embed := questionEmbed(&q, 2, 5, quiz.Meta{Kind: quizgen.KindVocabulary, Level: 4})

	assert.Equal(t, "第 3 / 5 題", embed.Title)
	assert.Equal(t, colorQuestion, embed.Color)
	assert.Contains(t, embed.Description, `\_\_\_\_\_\_`)
	assert.Contains(t, embed.Description, "**(C)** container")
	assert.Contains(t, embed.Footer.Text, "第 4 級")
}

func TestResultEmbedCorrect(t *testing.T) {
	embed := resultEmbed(&quiz.AnswerResult{
		Question: sampleQuestion(),
		Chosen:   "C",
		Correct:  true,
		Score:    1,
		Index:    0,
		Total:    5,
	}, quiz.Meta{Kind: quizgen.KindVocabulary})

	assert.Contains(t, embed.Title, "答對了")
	assert.Equal(t, colorCorrect, embed.Color)
	assert.Contains(t, embed.Description, "✅ **(C)**")
	assert.NotContains(t, embed.Description, "❌")

	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "詳解", embed.Fields[0].Name)
	assert.Equal(t, "目前得分", embed.Fields[1].Name)
	assert.Equal(t, "1 / 1", embed.Fields[1].Value)
}

func TestResultEmbedWrongMarksBoth(t *testing.T) {
	embed := resultEmbed(&quiz.AnswerResult{
		Question: sampleQuestion(),
		Chosen:   "A",
		Correct:  false,
		Score:    0,
		Index:    1,
		Total:    5,
	}, quiz.Meta{Kind: quizgen.KindVocabulary})

	assert.Contains(t, embed.Title, "答錯了")
	assert.Equal(t, colorWrong, embed.Color)
	assert.Contains(t, embed.Description, "❌ **(A)**")
	assert.Contains(t, embed.Description, "✅ **(C)**")
}

func TestResultEmbedFinal(t *testing.T) {
	embed := resultEmbed(&quiz.AnswerResult{
		Question: sampleQuestion(),
		Chosen:   "C",
		Correct:  true,
		Score:    4,
		Index:    4,
		Total:    5,
		Finished: true,
	}, quiz.Meta{Kind: quizgen.KindSocial, Subject: topic.SubjectHistory})

	require.Len(t, embed.Fields, 2)
	assert.Contains(t, embed.Fields[1].Name, "最終成績")
	assert.Equal(t, "4 / 5（80%）", embed.Fields[1].Value)
	assert.Contains(t, embed.Footer.Text, "歷史")
}

func TestResultEmbedTruncatesLongExplanation(t *testing.T) {
	q := sampleQuestion()
	q.Explanation = strings.Repeat("解", 2000)

	embed := resultEmbed(&quiz.AnswerResult{
		Question: q,
		Chosen:   "C",
		Correct:  true,
		Score:    1,
		Total:    1,
		Finished: true,
	}, quiz.Meta{})

	assert.LessOrEqual(t, len([]rune(embed.Fields[0].Value)), maxFieldValue)
}

func TestStoppedEmbed(t *testing.T) {
	embed := stoppedEmbed(&quiz.StopResult{Score: 2, Answered: 3, Total: 10},
		quiz.Meta{Kind: quizgen.KindSocial, Subject: topic.SubjectCivics})

	assert.Equal(t, "測驗已停止", embed.Title)
	assert.Contains(t, embed.Description, "3 / 10")
	assert.Contains(t, embed.Footer.Text, "公民與社會")
}

func TestQuizTitle(t *testing.T) {
	assert.Equal(t, "英文單字測驗（全部級別）", quizTitle(quiz.Meta{Kind: quizgen.KindVocabulary}))
	assert.Equal(t, "英文單字測驗（第 2 級）", quizTitle(quiz.Meta{Kind: quizgen.KindVocabulary, Level: 2}))
	assert.Equal(t, "社會科測驗（地理）", quizTitle(quiz.Meta{Kind: quizgen.KindSocial, Subject: topic.SubjectGeography}))
}

func TestScoreLine(t *testing.T) {
	assert.Equal(t, "3 / 4（75%）", scoreLine(3, 4))
	assert.Equal(t, "0 / 0（0%）", scoreLine(0, 0))
}
