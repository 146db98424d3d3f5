package notificator

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Infra struct {
	bot          *tgbotapi.BotAPI
	adminChatIDs []int64
}

func NewInfra(bot *tgbotapi.BotAPI, adminChatIDs []int64) *Infra {
	return &Infra{bot: bot, adminChatIDs: adminChatIDs}
}

// SetBot — позволяет передать бота ПОСЛЕ того, как он инициализировался
func (i *Infra) SetBot(bot *tgbotapi.BotAPI) {
	i.bot = bot
}

func (i *Infra) Notify(ctx context.Context, err error, details string) error {
	text := fmt.Sprintf(
		"❗ Ошибка в ассистенте\n\nОшибка: %v\n\nДетали: %s",
		err,
		details,
	)
	return i.send(text)
}

func (i *Infra) Alert(ctx context.Context, text string) error {
	return i.send("🚨 " + text)
}

func (i *Infra) send(text string) error {
	if i.bot == nil || len(i.adminChatIDs) == 0 {
		// бот не настроен — пишем в лог и не считаем это ошибкой
		log.Printf("[notificator] (no bot) %s", text)
		return nil
	}

	for _, chatID := range i.adminChatIDs {
		_, sendErr := i.bot.Send(tgbotapi.NewMessage(chatID, text))
		if sendErr != nil {
			log.Printf("[notificator] send fail to %d: %v", chatID, sendErr)
			return sendErr
		}
	}

	return nil
}
