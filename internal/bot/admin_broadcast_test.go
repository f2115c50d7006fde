package bot

import (
	"strings"
	"testing"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massfitdev/massfit-bot/internal/broadcast"
)

func TestBroadcastPayloadText(t *testing.T) {
	msg := &tgbotapi.Message{Text: "salom hammaga"}

	payload, preview, ok := broadcastPayload(msg)
	require.True(t, ok)
	assert.Equal(t, broadcast.ContentText, payload.Type)
	assert.Equal(t, "salom hammaga", payload.Text)
	assert.Contains(t, preview, "salom hammaga")
}

func TestBroadcastPayloadTruncatesLongText(t *testing.T) {
	msg := &tgbotapi.Message{Text: strings.Repeat("a", 150)}

	_, preview, ok := broadcastPayload(msg)
	require.True(t, ok)
	assert.Contains(t, preview, strings.Repeat("a", 100)+"...")
	assert.NotContains(t, preview, strings.Repeat("a", 101))
}

func TestBroadcastPayloadTruncatesOnRuneBoundary(t *testing.T) {
	msg := &tgbotapi.Message{Text: strings.Repeat("Ю", 150)}

	_, preview, ok := broadcastPayload(msg)
	require.True(t, ok)
	assert.True(t, utf8.ValidString(preview))
	assert.Contains(t, preview, strings.Repeat("Ю", 100)+"...")
	assert.NotContains(t, preview, strings.Repeat("Ю", 101))
}

func TestBroadcastPayloadPhotoUsesLargestSize(t *testing.T) {
	msg := &tgbotapi.Message{
		Photo:   []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}},
		Caption: "yangi menyu",
	}

	payload, preview, ok := broadcastPayload(msg)
	require.True(t, ok)
	assert.Equal(t, broadcast.ContentPhoto, payload.Type)
	assert.Equal(t, "large", payload.FileID)
	assert.Equal(t, "yangi menyu", payload.Text)
	assert.Contains(t, preview, "Rasm")
	assert.Contains(t, preview, "yangi menyu")
}

func TestBroadcastPayloadVoice(t *testing.T) {
	msg := &tgbotapi.Message{Voice: &tgbotapi.Voice{FileID: "v1"}}

	payload, _, ok := broadcastPayload(msg)
	require.True(t, ok)
	assert.Equal(t, broadcast.ContentVoice, payload.Type)
	assert.Equal(t, "v1", payload.FileID)
}

func TestBroadcastPayloadRejectsUnsupported(t *testing.T) {
	msg := &tgbotapi.Message{Sticker: &tgbotapi.Sticker{FileID: "s1"}}

	_, _, ok := broadcastPayload(msg)
	assert.False(t, ok)
}
