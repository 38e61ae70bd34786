package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weihanlin/gsatbot/internal/quiz"
	"github.com/weihanlin/gsatbot/internal/quizgen"
)

func TestCustomIDRoundTrip(t *testing.T) {
	act, ok := parseCustomID(answerCustomID("B", "123456789", "sess-1"))
	require.True(t, ok)
	assert.Equal(t, "ans", act.kind)
	assert.Equal(t, "B", act.label)
	assert.Equal(t, "123456789", act.owner)
	assert.Equal(t, "sess-1", act.session)

	act, ok = parseCustomID(nextCustomID("42", "sess-1"))
	require.True(t, ok)
	assert.Equal(t, "next", act.kind)
	assert.Equal(t, "42", act.owner)
	assert.Equal(t, "sess-1", act.session)

	act, ok = parseCustomID(stopCustomID("42", "sess-1"))
	require.True(t, ok)
	assert.Equal(t, "stop", act.kind)
	assert.Equal(t, "42", act.owner)
	assert.Equal(t, "sess-1", act.session)
}

func TestParseCustomIDRejectsForeign(t *testing.T) {
	for _, id := range []string{
		"",
		"quiz",
		"otherbot:ans:A:1:s",
		"quiz:unknown:1",
		"quiz:ans:A",
		"quiz:ans:A:1",
		"quiz:next",
		"quiz:next:42",
	} {
		_, ok := parseCustomID(id)
		assert.False(t, ok, "id %q should be rejected", id)
	}
}

// Buttons are tagged with the session that rendered them, so a click on a
// leftover message from an earlier quiz identifies a different session than
// the one currently registered and fails the dispatch guard.
func TestStaleCustomIDTargetsOldSession(t *testing.T) {
	reg := quiz.NewRegistry(time.Minute)

	old, err := reg.TryCreate("42", quiz.Meta{Kind: quizgen.KindVocabulary})
	require.NoError(t, err)
	staleID := answerCustomID("A", "42", old.ID())
	reg.Remove("42")

	current, err := reg.TryCreate("42", quiz.Meta{Kind: quizgen.KindVocabulary})
	require.NoError(t, err)

	act, ok := parseCustomID(staleID)
	require.True(t, ok)
	assert.NotEqual(t, current.ID(), act.session)
	assert.Equal(t, old.ID(), act.session)
}

func TestButtonLabelCap(t *testing.T) {
	short := buttonLabel("A", "container")
	assert.Equal(t, "(A) container", short)

	long := buttonLabel("B", strings.Repeat("龍", 100))
	assert.LessOrEqual(t, len([]rune(long)), maxButtonLabel)
	assert.True(t, strings.HasSuffix(long, "…"))
}

func TestQuestionComponents(t *testing.T) {
	q := &quizgen.Question{
		Choices: map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
		Answer:  "A",
	}

	comps := questionComponents(q, "owner1", "sess-1")
	require.Len(t, comps, 2)

	answers := comps[0].(discordgo.ActionsRow).Components
	require.Len(t, answers, 4)
	for i, label := range quizgen.ChoiceLabels {
		btn := answers[i].(discordgo.Button)
		assert.Equal(t, answerCustomID(label, "owner1", "sess-1"), btn.CustomID)
		assert.False(t, btn.Disabled)
	}

	controls := comps[1].(discordgo.ActionsRow).Components
	require.Len(t, controls, 1)
	assert.Equal(t, stopCustomID("owner1", "sess-1"), controls[0].(discordgo.Button).CustomID)
}

func TestResultComponentsDisableAnswers(t *testing.T) {
	q := &quizgen.Question{
		Choices: map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
		Answer:  "A",
	}

	comps := resultComponents(q, "owner1", "sess-1")
	require.Len(t, comps, 2)

	for _, c := range comps[0].(discordgo.ActionsRow).Components {
		assert.True(t, c.(discordgo.Button).Disabled)
	}

	controls := comps[1].(discordgo.ActionsRow).Components
	require.Len(t, controls, 2)
	assert.Equal(t, nextCustomID("owner1", "sess-1"), controls[0].(discordgo.Button).CustomID)
	assert.Equal(t, stopCustomID("owner1", "sess-1"), controls[1].(discordgo.Button).CustomID)
}

func TestTerminalComponentsDisabled(t *testing.T) {
	comps := terminalComponents()
	require.Len(t, comps, 1)
	row := comps[0].(discordgo.ActionsRow).Components
	require.Len(t, row, 1)
	assert.True(t, row[0].(discordgo.Button).Disabled)
}
