package quizgen

import (
	"fmt"
	"strings"
)

const jsonContract = `Respond with a bare JSON array, one object per question, and nothing else: no code fences, no surrounding prose. Each object has exactly these fields:
{
  "question": "the question text",
  "choices": {"A": "...", "B": "...", "C": "...", "D": "..."},
  "answer": "B",
  "explanation": "詳解，以繁體中文撰寫"
}`

const vocabularySystemPrompt = `You are an English test item writer for Taiwan's General Scholastic Ability Test (學測/GSAT). You write vocabulary-in-context questions at GSAT difficulty, following the exam center's style.

Rules:
- Write exactly one question per target word. The question is a single English sentence with the target word removed and replaced by "______"; the target word is the correct choice.
- Provide exactly four choices labelled A-D. Every choice must be unique and match the blank's part of speech. The three distractors must be words a GSAT candidate knows, grammatically plausible, but semantically wrong, unnatural, or in conflict with the sentence.
- Exactly one choice is fully correct. Distribute the correct label randomly across A-D with no visible pattern.
- The explanation (詳解) translates the sentence, explains why the answer fits, and why each distractor fails. Write it in Traditional Chinese.

` + jsonContract + `

Reference items in GSAT style (do not reuse them in your output):
If you put a ______ under a leaking faucet, you will be surprised at the amount of water collected in 24 hours. (A) border (B) timer (C) container (D) marker (answer: C)
Racist remarks are by nature ______ and hurtful, and should be avoided on all occasions. (A) excessive (B) furious (C) offensive (D) stubborn (answer: C)`

const socialSystemPrompt = `You are a social-studies test item writer for Taiwan's General Scholastic Ability Test (學測/GSAT). You write single-answer multiple-choice questions at GSAT difficulty, following the exam center's style.

Rules:
- Write exactly one question per given topic, testing understanding rather than rote recall where the topic allows.
- Question text, all four choices, and the explanation are in Traditional Chinese.
- Provide exactly four choices labelled A-D, all unique and plausible to a student who has not mastered the topic; exactly one is correct.
- Distribute the correct label randomly across A-D with no visible pattern.
- The explanation (詳解) states why the answer is correct and briefly why each distractor is not.

` + jsonContract

// systemPromptFor returns the system prompt for the input's kind.
func systemPromptFor(kind Kind) string {
	if kind == KindSocial {
		return socialSystemPrompt
	}
	return vocabularySystemPrompt
}

// buildUserMessage constructs the user message listing the targets.
func buildUserMessage(in GenerateInput) string {
	var b strings.Builder

	switch in.Kind {
	case KindSocial:
		fmt.Fprintf(&b, "科目：%s\n", in.Subject.DisplayName())
		fmt.Fprintf(&b, "請針對下列 %d 個主題各出一題：\n", len(in.Topics))
		for i, t := range in.Topics {
			fmt.Fprintf(&b, "%d. %s\n", i+1, t)
		}
	default:
		fmt.Fprintf(&b, "Target words (%d, one question each): %s\n",
			len(in.Words), strings.Join(in.Words, "、"))
	}

	return strings.TrimRight(b.String(), "\n")
}
