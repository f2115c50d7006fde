package broadcast

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/logger"
)

// ContentType tags the media kind captured from the admin.
type ContentType string

const (
	ContentText      ContentType = "text"
	ContentPhoto     ContentType = "photo"
	ContentVideo     ContentType = "video"
	ContentDocument  ContentType = "document"
	ContentAudio     ContentType = "audio"
	ContentVoice     ContentType = "voice"
	ContentAnimation ContentType = "animation"
)

// Message is the captured broadcast payload. FileID is the Telegram file
// reference for media kinds; Text doubles as the caption.
type Message struct {
	Type   ContentType
	Text   string
	FileID string
}

// Sender delivers one copy of the message to one chat.
type Sender interface {
	SendBroadcast(ctx context.Context, chatID int64, msg Message) error
}

type sendRecorder interface {
	IncBroadcastSend(result string)
}

// Summary is the outcome of one broadcast run.
type Summary struct {
	RunID  string
	Sent   int
	Failed int
}

// Service relays one admin message to every known user.
type Service struct {
	sender  Sender
	metrics sendRecorder
	logg    *logger.Logger
	delay   time.Duration
}

// NewService constructs the broadcast service.
func NewService(sender Sender, metrics sendRecorder, logg *logger.Logger, delay time.Duration) (*Service, error) {
	if sender == nil {
		return nil, fmt.Errorf("sender required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{sender: sender, metrics: metrics, logg: logg, delay: delay}, nil
}

// Run sends msg to every user sequentially with the configured inter-send
// delay. Failed sends are logged, counted, and skipped; there are no
// retries and no persisted progress. Cancelling the context stops the run.
func (s *Service) Run(ctx context.Context, users []models.User, msg Message) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	ctx = s.logg.WithFields(ctx, map[string]any{"broadcast_run_id": summary.RunID, "recipients": len(users)})
	s.logg.Info(ctx, "broadcast run started")

	var sendErrs error
	for i, user := range users {
		if err := ctx.Err(); err != nil {
			s.logg.Warn(ctx, "broadcast run interrupted")
			return summary, err
		}

		if err := s.sender.SendBroadcast(ctx, user.TgID, msg); err != nil {
			summary.Failed++
			sendErrs = multierr.Append(sendErrs, fmt.Errorf("chat %d: %w", user.TgID, err))
			if s.metrics != nil {
				s.metrics.IncBroadcastSend("failed")
			}
		} else {
			summary.Sent++
			if s.metrics != nil {
				s.metrics.IncBroadcastSend("ok")
			}
		}

		if s.delay > 0 && i < len(users)-1 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				s.logg.Warn(ctx, "broadcast run interrupted")
				return summary, ctx.Err()
			}
		}
	}

	if sendErrs != nil {
		s.logg.Warn(ctx, fmt.Sprintf("broadcast finished with %d failed sends: %v", summary.Failed, sendErrs))
	} else {
		s.logg.Info(ctx, "broadcast run finished")
	}
	return summary, nil
}
