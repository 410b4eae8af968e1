package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/windoze95/cardapio-api/internal/ai"
	"github.com/windoze95/cardapio-api/internal/config"
	"github.com/windoze95/cardapio-api/internal/menu"
)

// MaxAudioBytes caps a single recorded order.
const MaxAudioBytes = 10 << 20

// ErrAudioTooLarge is returned for recordings above MaxAudioBytes.
var ErrAudioTooLarge = errors.New("audio exceeds maximum size")

// VoiceService transcribes spoken orders and prices them.
type VoiceService struct {
	Cfg            *config.Config
	SpeechProvider ai.SpeechProvider
	Orders         *OrderService
}

// VoiceQuote is a Quote plus the transcript it was computed from.
type VoiceQuote struct {
	Transcript string `json:"transcript"`
	Quote
}

// NewVoiceService creates a new VoiceService.
func NewVoiceService(cfg *config.Config, speechProvider ai.SpeechProvider, orders *OrderService) *VoiceService {
	return &VoiceService{
		Cfg:            cfg,
		SpeechProvider: speechProvider,
		Orders:         orders,
	}
}

// QuoteAudio transcribes audio and prices the transcript.
func (s *VoiceService) QuoteAudio(ctx context.Context, channel string, audioData []byte, filename string) (*VoiceQuote, error) {
	if len(audioData) > MaxAudioBytes {
		return nil, ErrAudioTooLarge
	}

	transcript, err := s.SpeechProvider.TranscribeAudio(ctx, ai.TranscriptionRequest{
		Audio:    audioData,
		Filename: filename,
		Hint:     MenuHint(s.Orders.Catalog()),
	})
	if err != nil {
		return nil, fmt.Errorf("transcribe audio: %w", err)
	}

	return &VoiceQuote{
		Transcript: transcript,
		Quote:      s.Orders.Quote(ctx, channel, transcript),
	}, nil
}

// MenuHint lists the menu names as a recognition prompt.
func MenuHint(catalog *menu.Catalog) string {
	names := make([]string, catalog.Len())
	for i := range names {
		names[i] = catalog.Entry(i).Name
	}
	return strings.Join(names, ", ")
}
