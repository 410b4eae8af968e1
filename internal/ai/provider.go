package ai

import "context"

// SpeechProvider handles speech-to-text (Whisper).
type SpeechProvider interface {
	TranscribeAudio(ctx context.Context, req TranscriptionRequest) (string, error)
}

// TranscriptionRequest holds one recorded order to transcribe.
type TranscriptionRequest struct {
	Audio []byte
	// Filename carries the container extension (audio.webm, audio.m4a);
	// Whisper infers the format from it.
	Filename string
	// Hint biases recognition toward menu vocabulary.
	Hint string
}
