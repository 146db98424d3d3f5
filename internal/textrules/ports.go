package textrules

import "context"

// Правила подстановки применяются к ответу ассистента перед синтезом речи:
// буквы — посимвольно, слова — по токенам.

type LetterRule struct {
	From string `json:"from"` // 1 rune
	To   string `json:"to"`   // 1 rune
}

type WordRule struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Repo interface {
	ListLetterRules(ctx context.Context) ([]LetterRule, error)
	ListWordRules(ctx context.Context) ([]WordRule, error)

	AddLetterRule(ctx context.Context, from, to string) error
	AddWordRule(ctx context.Context, from, to string) error

	DeleteLetterRule(ctx context.Context, from string) error
	DeleteWordRule(ctx context.Context, from string) error
}

type Service interface {
	Process(ctx context.Context, text string) (string, error)
}
