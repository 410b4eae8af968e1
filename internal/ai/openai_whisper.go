package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/windoze95/cardapio-api/internal/logger"
	"go.uber.org/zap"
)

// DefaultLanguage is the ISO-639-1 code orders are spoken in.
const DefaultLanguage = "pt"

const defaultAudioFilename = "audio.webm"

// ErrEmptyAudio is returned when there is nothing to transcribe.
var ErrEmptyAudio = errors.New("audio data is empty")

// WhisperProvider implements SpeechProvider using OpenAI Whisper.
type WhisperProvider struct {
	client     *openai.Client
	language   string
	maxRetries int
	retryWait  time.Duration
}

// WhisperOption configures a WhisperProvider.
type WhisperOption func(*WhisperProvider)

// WithBaseURL points the client at a different API host.
func WithBaseURL(apiKey, baseURL string) WhisperOption {
	return func(p *WhisperProvider) {
		cfg := openai.DefaultConfig(apiKey)
		cfg.BaseURL = baseURL
		p.client = openai.NewClientWithConfig(cfg)
	}
}

// WithRetryWait overrides the base wait between retries.
func WithRetryWait(d time.Duration) WhisperOption {
	return func(p *WhisperProvider) { p.retryWait = d }
}

// NewWhisperProvider creates a new Whisper speech-to-text provider.
func NewWhisperProvider(apiKey string, opts ...WhisperOption) *WhisperProvider {
	p := &WhisperProvider{
		client:     openai.NewClient(apiKey),
		language:   DefaultLanguage,
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TranscribeAudio transcribes a spoken order to text using Whisper.
func (p *WhisperProvider) TranscribeAudio(ctx context.Context, req TranscriptionRequest) (string, error) {
	if len(req.Audio) == 0 {
		return "", ErrEmptyAudio
	}

	filename := filepath.Base(req.Filename)
	if filename == "." || filename == "/" || filepath.Ext(filename) == "" {
		filename = defaultAudioFilename
	}

	var lastErr error
	for i := 0; i < p.maxRetries; i++ {
		resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    openai.Whisper1,
			Reader:   bytes.NewReader(req.Audio),
			FilePath: filename,
			Language: p.language,
			Prompt:   req.Hint,
		})
		if err == nil {
			text := strings.TrimSpace(resp.Text)
			if text == "" {
				return "", errors.New("Whisper returned empty transcription")
			}
			return text, nil
		}

		lastErr = err
		shouldRetry, waitTime := classifyOpenAIError(err)
		if !shouldRetry {
			return "", fmt.Errorf("Whisper API error: %w", err)
		}
		if p.retryWait > 0 {
			waitTime = p.retryWait
		}

		logger.Get().Warn("Whisper API error, retrying",
			zap.Error(err),
			zap.Int("attempt", i+1),
		)

		if i < p.maxRetries-1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(waitTime * time.Duration(i+1)):
			}
		}
	}

	return "", fmt.Errorf("Whisper API: exhausted %d retries: %w", p.maxRetries, lastErr)
}

// classifyOpenAIError determines whether an OpenAI API error is retryable.
func classifyOpenAIError(err error) (shouldRetry bool, waitTime time.Duration) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return true, 2 * time.Second
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
			return true, 2 * time.Second
		default:
			return false, 0
		}
	}
	return false, 0
}
