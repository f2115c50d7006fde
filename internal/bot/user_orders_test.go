package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massfitdev/massfit-bot/internal/session"
	"github.com/massfitdev/massfit-bot/pkg/redis"
)

type fakeTransport struct {
	sent []tgbotapi.Chattable
}

func (f *fakeTransport) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeTransport) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeTransport) GetChatMember(tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error) {
	return tgbotapi.ChatMember{}, nil
}

func (f *fakeTransport) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel { return nil }

func (f *fakeTransport) StopReceivingUpdates() {}

func (f *fakeTransport) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent)
	msg, ok := f.sent[len(f.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok, "last send was not a text message")
	return msg.Text
}

type memoryKV struct {
	data map[string]string
}

func (m *memoryKV) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	val, ok := m.data[key]
	if !ok {
		return "", redis.Nil
	}
	return val, nil
}

func (m *memoryKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryKV) SessionKey(chatID int64) string {
	return fmt.Sprintf("session:%d", chatID)
}

func newAddressTestBot(t *testing.T) (*Bot, *fakeTransport) {
	t.Helper()
	store, err := session.NewStore(&memoryKV{data: map[string]string{}})
	require.NoError(t, err)
	api := &fakeTransport{}
	return &Bot{api: api, sessions: store}, api
}

func TestDeliveryAddressShortCyrillicReprompted(t *testing.T) {
	b, api := newAddressTestBot(t)

	// 9 characters but 18 bytes; must still count as too short.
	msg := &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 77}, Text: strings.Repeat("Ю", 9)}
	require.NoError(t, b.processDeliveryAddress(context.Background(), msg))

	assert.Contains(t, api.lastText(t), "Manzil juda qisqa")
}

func TestDeliveryAddressCyrillicAcceptedUnderLimit(t *testing.T) {
	b, api := newAddressTestBot(t)
	ctx := context.Background()

	// 300 characters is within the 500-character limit even at 600 bytes.
	address := strings.Repeat("Юнусобод ш", 30)
	msg := &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 77}, Text: address}
	require.NoError(t, b.processDeliveryAddress(ctx, msg))

	assert.Contains(t, api.lastText(t), "Manzil qabul qilindi")

	state, err := b.sessions.Get(ctx, 77)
	require.NoError(t, err)
	assert.Equal(t, address, state.Field(fieldAddress))
}

func TestDeliveryAddressOverCharacterLimitRejected(t *testing.T) {
	b, api := newAddressTestBot(t)

	msg := &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 77}, Text: strings.Repeat("Ю", 501)}
	require.NoError(t, b.processDeliveryAddress(context.Background(), msg))

	assert.Contains(t, api.lastText(t), "Manzil juda uzun")
}
