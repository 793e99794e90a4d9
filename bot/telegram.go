package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"weatherbot/observability"
)

const startCommand = "start"

// Sender delivers an outbound message. *tgbotapi.BotAPI implements it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram relays Telegram updates to a Handler over long polling.
type Telegram struct {
	api         *tgbotapi.BotAPI
	sender      Sender
	handler     *Handler
	username    string
	pollTimeout int
	logger      *slog.Logger
	metrics     *observability.Metrics
	polling     atomic.Bool
}

// NewTelegram authenticates with the bot token. A configured username that
// differs from the token's bot is logged and replaced by the real one.
func NewTelegram(token, username string, pollTimeout int, handler *Handler, logger *slog.Logger, metrics *observability.Metrics) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	if username != "" && !strings.EqualFold(username, api.Self.UserName) {
		logger.Warn("BOT_USERNAME does not match token", "configured", username, "actual", api.Self.UserName)
	}

	return &Telegram{
		api:         api,
		sender:      api,
		handler:     handler,
		username:    api.Self.UserName,
		pollTimeout: pollTimeout,
		logger:      logger,
		metrics:     metrics,
	}, nil
}

// Run polls for updates until ctx is cancelled.
func (t *Telegram) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = t.pollTimeout

	updates := t.api.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		t.api.StopReceivingUpdates()
	}()

	t.logger.Info("polling for updates", "bot", t.username)
	return t.Serve(ctx, updates)
}

// Serve handles updates one at a time until ctx is done or the channel closes.
func (t *Telegram) Serve(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	t.setPolling(true)
	defer t.setPolling(false)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.dispatch(ctx, update)
		}
	}
}

func (t *Telegram) dispatch(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	logger := t.logger.With("request_id", uuid.NewString())

	var reply string
	switch {
	case msg.IsCommand() && msg.Command() == startCommand:
		reply = t.handler.Start()
	case msg.IsCommand():
		return
	default:
		text := t.stripMention(msg.Text)
		if text == "" {
			return
		}
		logger.Debug("message received", "chat_id", msg.Chat.ID, "text", text)
		reply = t.handler.Reply(ctx, text)
	}

	if _, err := t.sender.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
		t.onError(logger, msg.Chat.ID, err)
	}
}

// stripMention removes "@botname" so group messages like "@weather_bot 560006" work.
func (t *Telegram) stripMention(text string) string {
	if t.username != "" {
		text = strings.ReplaceAll(text, "@"+t.username, "")
	}
	return strings.TrimSpace(text)
}

// onError is the transport error hook: log and move on to the next update.
func (t *Telegram) onError(logger *slog.Logger, chatID int64, err error) {
	if t.metrics != nil {
		t.metrics.RepliesFailed.Inc()
	}
	logger.Error("update caused error", "chat_id", chatID, "error", err)
}

func (t *Telegram) setPolling(on bool) {
	if t.metrics != nil {
		if on {
			t.metrics.BotPolling.Set(1)
		} else {
			t.metrics.BotPolling.Set(0)
		}
	}
	t.polling.Store(on)
}

// CheckReadiness reports whether the bot is currently polling.
func (t *Telegram) CheckReadiness(_ context.Context) error {
	if !t.polling.Load() {
		return errors.New("bot is not polling")
	}
	return nil
}
