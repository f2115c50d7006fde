package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/massfitdev/massfit-bot/internal/basket"
	"github.com/massfitdev/massfit-bot/internal/broadcast"
	"github.com/massfitdev/massfit-bot/internal/catalog"
	"github.com/massfitdev/massfit-bot/internal/orders"
	"github.com/massfitdev/massfit-bot/internal/session"
	"github.com/massfitdev/massfit-bot/internal/stats"
	"github.com/massfitdev/massfit-bot/internal/users"
	"github.com/massfitdev/massfit-bot/pkg/config"
	"github.com/massfitdev/massfit-bot/pkg/geocode"
	"github.com/massfitdev/massfit-bot/pkg/logger"
	"github.com/massfitdev/massfit-bot/pkg/metrics"
)

// API is the slice of the Telegram client the bot depends on.
// *tgbotapi.BotAPI satisfies it.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetChatMember(cfg tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Deps carries everything the bot needs. All fields are required except
// Metrics and Geocoder.
type Deps struct {
	API            API
	Config         config.BotConfig
	BroadcastDelay time.Duration
	Logger         *logger.Logger
	Metrics        *metrics.BotMetrics
	Sessions       *session.Store
	Users          *users.Repository
	Catalog        catalog.Service
	Baskets        basket.Service
	Orders         orders.Service
	Stats          *stats.Service
	Geocoder       *geocode.Client
}

// Bot drives the long-polling update loop and owns every handler.
type Bot struct {
	api       API
	cfg       config.BotConfig
	logg      *logger.Logger
	metrics   *metrics.BotMetrics
	sessions  *session.Store
	users     *users.Repository
	catalog   catalog.Service
	baskets   basket.Service
	orders    orders.Service
	stats     *stats.Service
	broadcast *broadcast.Service
	geocoder  *geocode.Client
}

func New(deps Deps) (*Bot, error) {
	if deps.API == nil {
		return nil, fmt.Errorf("telegram api is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	if deps.Baskets == nil {
		return nil, fmt.Errorf("basket service is required")
	}
	if deps.Orders == nil {
		return nil, fmt.Errorf("orders service is required")
	}
	if deps.Stats == nil {
		return nil, fmt.Errorf("stats service is required")
	}

	b := &Bot{
		api:      deps.API,
		cfg:      deps.Config,
		logg:     deps.Logger,
		metrics:  deps.Metrics,
		sessions: deps.Sessions,
		users:    deps.Users,
		catalog:  deps.Catalog,
		baskets:  deps.Baskets,
		orders:   deps.Orders,
		stats:    deps.Stats,
		geocoder: deps.Geocoder,
	}

	// The bot itself delivers broadcast payloads.
	svc, err := broadcast.NewService(b, deps.Metrics, deps.Logger, deps.BroadcastDelay)
	if err != nil {
		return nil, err
	}
	b.broadcast = svc

	return b, nil
}

// Run consumes updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(updateCfg)
	b.logg.Info(ctx, "bot update loop started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logg.Info(ctx, "bot update loop stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// SendBroadcast implements broadcast.Sender. Media captions carry the admin
// header; content without a caption slot gets the header as a separate
// message first.
func (b *Bot) SendBroadcast(_ context.Context, chatID int64, msg broadcast.Message) error {
	caption := broadcastHeader + msg.Text
	if msg.Text == "" {
		caption = broadcastHeader
	}

	var chattable tgbotapi.Chattable
	switch msg.Type {
	case broadcast.ContentText:
		out := tgbotapi.NewMessage(chatID, broadcastHeader+msg.Text)
		out.ParseMode = tgbotapi.ModeHTML
		chattable = out
	case broadcast.ContentPhoto:
		out := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(msg.FileID))
		out.Caption = caption
		out.ParseMode = tgbotapi.ModeHTML
		chattable = out
	case broadcast.ContentVideo:
		out := tgbotapi.NewVideo(chatID, tgbotapi.FileID(msg.FileID))
		out.Caption = caption
		out.ParseMode = tgbotapi.ModeHTML
		chattable = out
	case broadcast.ContentAnimation:
		out := tgbotapi.NewAnimation(chatID, tgbotapi.FileID(msg.FileID))
		out.Caption = caption
		out.ParseMode = tgbotapi.ModeHTML
		chattable = out
	case broadcast.ContentDocument:
		out := tgbotapi.NewDocument(chatID, tgbotapi.FileID(msg.FileID))
		out.Caption = caption
		out.ParseMode = tgbotapi.ModeHTML
		chattable = out
	case broadcast.ContentAudio:
		out := tgbotapi.NewAudio(chatID, tgbotapi.FileID(msg.FileID))
		out.Caption = caption
		out.ParseMode = tgbotapi.ModeHTML
		chattable = out
	case broadcast.ContentVoice:
		header := tgbotapi.NewMessage(chatID, broadcastHeader)
		header.ParseMode = tgbotapi.ModeHTML
		if _, err := b.api.Send(header); err != nil {
			return err
		}
		chattable = tgbotapi.NewVoice(chatID, tgbotapi.FileID(msg.FileID))
	default:
		return fmt.Errorf("unsupported broadcast content type %q", msg.Type)
	}

	_, err := b.api.Send(chattable)
	return err
}

func (b *Bot) send(chatID int64, text string, markup interface{}) error {
	out := tgbotapi.NewMessage(chatID, text)
	out.ParseMode = tgbotapi.ModeHTML
	out.ReplyMarkup = markup
	_, err := b.api.Send(out)
	return err
}

func (b *Bot) sendPhoto(chatID int64, fileID, caption string, markup interface{}) error {
	out := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	out.Caption = caption
	out.ParseMode = tgbotapi.ModeHTML
	out.ReplyMarkup = markup
	_, err := b.api.Send(out)
	return err
}

func (b *Bot) edit(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	var out tgbotapi.EditMessageTextConfig
	if markup != nil {
		out = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *markup)
	} else {
		out = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	out.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(out)
	return err
}

func (b *Bot) delete(chatID int64, messageID int) {
	_, _ = b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
}

// respond replaces the message that carried the pressed button. Messages with
// a photo cannot be edited into text, so those get deleted and re-sent.
func (b *Bot) respond(cq *tgbotapi.CallbackQuery, text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	chatID := cq.Message.Chat.ID
	if len(cq.Message.Photo) > 0 {
		b.delete(chatID, cq.Message.MessageID)
		var reply interface{}
		if markup != nil {
			reply = *markup
		}
		return b.send(chatID, text, reply)
	}
	return b.edit(chatID, cq.Message.MessageID, text, markup)
}

func (b *Bot) answer(callbackID, text string, alert bool) {
	var cb tgbotapi.CallbackConfig
	if alert {
		cb = tgbotapi.NewCallbackWithAlert(callbackID, text)
	} else {
		cb = tgbotapi.NewCallback(callbackID, text)
	}
	_, _ = b.api.Request(cb)
}
