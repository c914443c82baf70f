// Package telegram одобряет и отклоняет заявки на вступление в каналы через Telegram Bot API.
package telegram

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/config"
)

// Bot обёртка над tgbotapi для модерации заявок на вступление.
type Bot struct {
	api *tgbotapi.BotAPI
}

// New создаёт клиента и проверяет токен вызовом getMe.
func New(cfg config.Telegram) (*Bot, error) {
	const op = "telegram.New"
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	api, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, endpoint, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Bot{api: api}, nil
}

// Username имя бота, полученное при старте.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// Approve пускает пользователя userID в чат chatID.
func (b *Bot) Approve(chatID, userID int64) error {
	const op = "telegram.Approve"
	_, err := b.api.Request(tgbotapi.ApproveChatJoinRequestConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
		UserID:     userID,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Decline отклоняет заявку пользователя userID в чат chatID.
func (b *Bot) Decline(chatID, userID int64) error {
	const op = "telegram.Decline"
	_, err := b.api.Request(tgbotapi.DeclineChatJoinRequest{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
		UserID:     userID,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DecodeUpdate читает Update из тела вебхука.
func DecodeUpdate(r io.Reader) (*tgbotapi.Update, error) {
	const op = "telegram.DecodeUpdate"
	var upd tgbotapi.Update
	if err := json.NewDecoder(r).Decode(&upd); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &upd, nil
}
