package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/weihanlin/gsatbot/internal/topic"
)

// Question-count bounds per command. Vocabulary sets run larger because each
// word maps to exactly one question.
const (
	defaultQuestions = 5
	maxVocabulary    = 20
	maxSocial        = 10
)

func commandDefinitions() []*discordgo.ApplicationCommand {
	one := float64(1)
	minLevel := float64(topic.MinLevel)

	subjectChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(topic.Subjects))
	for _, s := range topic.Subjects {
		subjectChoices = append(subjectChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  s.DisplayName(),
			Value: string(s),
		})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "vocabulary",
			Description: "開始英文單字測驗（學測 6000 字）",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "questions",
					Description: "題數（1-20，預設 5）",
					MinValue:    &one,
					MaxValue:    maxVocabulary,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "level",
					Description: "單字級別（1-6，不填則全部級別）",
					MinValue:    &minLevel,
					MaxValue:    topic.MaxLevel,
				},
			},
		},
		{
			Name:        "social",
			Description: "開始社會科測驗",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "subject",
					Description: "科目",
					Required:    true,
					Choices:     subjectChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "questions",
					Description: "題數（1-10，預設 5）",
					MinValue:    &one,
					MaxValue:    maxSocial,
				},
			},
		},
		{
			Name:        "help",
			Description: "使用說明",
		},
	}
}

// commandOptions flattens an interaction's options by name.
func commandOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	data := i.ApplicationCommandData()
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	for _, opt := range data.Options {
		opts[opt.Name] = opt
	}
	return opts
}

func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string, fallback int) int {
	if opt, ok := opts[name]; ok {
		return int(opt.IntValue())
	}
	return fallback
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

const helpText = `**GSAT 練習機器人**

` + "`/vocabulary`" + ` 開始英文單字測驗，從學測 6000 字表隨機抽字出題。
　　` + "`questions`" + `：題數 1-20（預設 5）
　　` + "`level`" + `：限定單字級別 1-6（不填則全部級別）
` + "`/social`" + ` 開始社會科測驗（歷史／地理／公民與社會）。
　　` + "`questions`" + `：題數 1-10（預設 5）

每題有 3 分鐘作答時間，逾時自動結束。
每人同時只能進行一場測驗，按「停止測驗」可隨時結束。`
