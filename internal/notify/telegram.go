package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	log "github.com/sirupsen/logrus"
)

// sendTimeout bounds how long a purchase response can wait on Telegram.
const sendTimeout = 3 * time.Second

// Telegram posts purchase notifications to an operations chat.
type Telegram struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := telego.NewBot(token, telego.WithDiscardLogger())
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) PurchaseMade(ctx context.Context, buyerName, itemName string, price int64) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	text := fmt.Sprintf("🛒 %s bought %q for %d coins", buyerName, itemName, price)

	_, err := t.bot.SendMessage(ctx, tu.Message(tu.ID(t.chatID), text))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"buyer": buyerName,
			"item":  itemName,
		}).Warn("purchase notification failed")
	}
}
