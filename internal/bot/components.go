package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/weihanlin/gsatbot/internal/quizgen"
)

// Custom IDs carry the action, the owning user's ID, and the session ID so
// clicks can be routed without any server-side message state. The session ID
// keeps buttons on an old quiz message from acting on a newer session:
//
//	quiz:ans:A:<owner>:<session>  quiz:next:<owner>:<session>  quiz:stop:<owner>:<session>
const customIDPrefix = "quiz"

// maxButtonLabel is Discord's button label limit.
const maxButtonLabel = 80

type componentAction struct {
	kind    string // "ans", "next", "stop", "done"
	label   string // answer label for "ans"
	owner   string
	session string
}

func answerCustomID(label, owner, session string) string {
	return strings.Join([]string{customIDPrefix, "ans", label, owner, session}, ":")
}

func nextCustomID(owner, session string) string {
	return strings.Join([]string{customIDPrefix, "next", owner, session}, ":")
}

func stopCustomID(owner, session string) string {
	return strings.Join([]string{customIDPrefix, "stop", owner, session}, ":")
}

// parseCustomID decodes a component custom ID. Unknown IDs (including those
// of other bots on shared test servers) return false.
func parseCustomID(id string) (componentAction, bool) {
	parts := strings.Split(id, ":")
	if len(parts) < 2 || parts[0] != customIDPrefix {
		return componentAction{}, false
	}
	switch parts[1] {
	case "ans":
		if len(parts) != 5 {
			return componentAction{}, false
		}
		return componentAction{kind: "ans", label: parts[2], owner: parts[3], session: parts[4]}, true
	case "next", "stop":
		if len(parts) != 4 {
			return componentAction{}, false
		}
		return componentAction{kind: parts[1], owner: parts[2], session: parts[3]}, true
	case "done":
		return componentAction{kind: "done"}, true
	}
	return componentAction{}, false
}

// buttonLabel renders "(A) choice text" within Discord's length limit.
func buttonLabel(label, text string) string {
	s := fmt.Sprintf("(%s) %s", label, text)
	runes := []rune(s)
	if len(runes) > maxButtonLabel {
		s = string(runes[:maxButtonLabel-1]) + "…"
	}
	return s
}

// questionComponents builds the answer row plus the stop row for an open
// question.
func questionComponents(q *quizgen.Question, owner, session string) []discordgo.MessageComponent {
	answers := make([]discordgo.MessageComponent, 0, len(quizgen.ChoiceLabels))
	for _, label := range quizgen.ChoiceLabels {
		answers = append(answers, discordgo.Button{
			Label:    buttonLabel(label, q.Choices[label]),
			Style:    discordgo.PrimaryButton,
			CustomID: answerCustomID(label, owner, session),
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: answers},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "停止測驗",
				Style:    discordgo.DangerButton,
				CustomID: stopCustomID(owner, session),
			},
		}},
	}
}

// resultComponents builds the controls shown with a non-final answer result:
// the answered question's buttons disabled, plus next and stop.
func resultComponents(q *quizgen.Question, owner, session string) []discordgo.MessageComponent {
	answers := make([]discordgo.MessageComponent, 0, len(quizgen.ChoiceLabels))
	for _, label := range quizgen.ChoiceLabels {
		answers = append(answers, discordgo.Button{
			Label:    buttonLabel(label, q.Choices[label]),
			Style:    discordgo.SecondaryButton,
			CustomID: answerCustomID(label, owner, session),
			Disabled: true,
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: answers},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "下一題",
				Style:    discordgo.SuccessButton,
				CustomID: nextCustomID(owner, session),
			},
			discordgo.Button{
				Label:    "停止測驗",
				Style:    discordgo.DangerButton,
				CustomID: stopCustomID(owner, session),
			},
		}},
	}
}

// terminalComponents is the single disabled control shown once a session has
// ended for any reason.
func terminalComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "測驗已結束",
				Style:    discordgo.SecondaryButton,
				CustomID: customIDPrefix + ":done",
				Disabled: true,
			},
		}},
	}
}
