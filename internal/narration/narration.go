// Package narration reads assistant turns aloud and turns the child's
// recorded voice into text.
package narration

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/homeworkpal/internal/metrics"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Speaker converts text to audio.
type Speaker interface {
	Speak(ctx context.Context, text string) ([]byte, error)
}

// Transcriber converts recorded speech to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// ErrDisabled is returned by Transcribe when no voice backend is configured.
var ErrDisabled = errors.New("narration disabled")

// Config holds OpenAI audio settings.
type Config struct {
	APIKey  string
	BaseURL string

	// Voice is the TTS voice name. Defaults to "alloy".
	Voice string
}

// OpenAIVoice implements Speaker and Transcriber with the OpenAI audio API.
type OpenAIVoice struct {
	client *openai.Client
	voice  openai.SpeechVoice
}

// NewOpenAIVoice creates an OpenAI-backed voice.
func NewOpenAIVoice(cfg Config) (*OpenAIVoice, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required for narration")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	voice := openai.VoiceAlloy
	if cfg.Voice != "" {
		voice = openai.SpeechVoice(cfg.Voice)
	}
	return &OpenAIVoice{client: openai.NewClientWithConfig(config), voice: voice}, nil
}

func (v *OpenAIVoice) Speak(ctx context.Context, text string) ([]byte, error) {
	resp, err := v.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          v.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()
	return io.ReadAll(resp)
}

func (v *OpenAIVoice) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if filename == "" {
		filename = "answer.webm"
	}
	resp, err := v.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   audio,
		Language: "en",
	})
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// Service narrates turns. It never fails: when narration is off or the
// speaker errors, the audio is empty.
type Service struct {
	speaker     Speaker
	transcriber Transcriber
	logger      *zap.Logger
}

// NewService creates a Service. Either backend may be nil.
func NewService(speaker Speaker, transcriber Transcriber, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{speaker: speaker, transcriber: transcriber, logger: logger}
}

// Enabled reports whether turns will be read aloud.
func (s *Service) Enabled() bool {
	return s != nil && s.speaker != nil
}

// Audio returns the spoken form of text, or nil.
func (s *Service) Audio(ctx context.Context, text string) []byte {
	if !s.Enabled() || strings.TrimSpace(text) == "" {
		return nil
	}
	audio, err := s.speaker.Speak(ctx, text)
	if err != nil {
		metrics.NarrationFailed()
		s.logger.Warn("narration failed, continuing without audio", zap.Error(err))
		return nil
	}
	return audio
}

// AudioDataURI returns text's audio as a base64 data URI, or "".
func (s *Service) AudioDataURI(ctx context.Context, text string) string {
	audio := s.Audio(ctx, text)
	if len(audio) == 0 {
		return ""
	}
	return "data:audio/mpeg;base64," + base64.StdEncoding.EncodeToString(audio)
}

// Transcribe converts a voice answer to text.
func (s *Service) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if s == nil || s.transcriber == nil {
		return "", ErrDisabled
	}
	return s.transcriber.Transcribe(ctx, audio, filename)
}
