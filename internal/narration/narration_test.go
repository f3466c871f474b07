package narration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestVoice(t *testing.T, handler http.HandlerFunc) *OpenAIVoice {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	v, err := NewOpenAIVoice(Config{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIVoice: %v", err)
	}
	return v
}

func TestOpenAIVoice_Speak(t *testing.T) {
	var got map[string]any
	v := newTestVoice(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3fake"))
	})

	audio, err := v.Speak(t.Context(), "Correct! 🎉 What is 5 - 3?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(audio) != "ID3fake" {
		t.Errorf("unexpected audio %q", audio)
	}
	if got["model"] != "tts-1" || got["voice"] != "alloy" {
		t.Errorf("unexpected request: %v", got)
	}
}

func TestOpenAIVoice_Transcribe(t *testing.T) {
	v := newTestVoice(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"text": "  hey diddle diddle \n"})
	})

	text, err := v.Transcribe(t.Context(), strings.NewReader("RIFF...."), "answer.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hey diddle diddle" {
		t.Errorf("unexpected transcript %q", text)
	}
}

func TestNewOpenAIVoice_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIVoice(Config{}); err == nil {
		t.Fatal("expected error without API key")
	}
}

type fakeSpeaker struct {
	audio []byte
	err   error
	calls int
}

func (f *fakeSpeaker) Speak(context.Context, string) ([]byte, error) {
	f.calls++
	return f.audio, f.err
}

func TestService_FailureIsEmptyAudio(t *testing.T) {
	svc := NewService(&fakeSpeaker{err: errors.New("quota")}, nil, nil)
	if got := svc.AudioDataURI(t.Context(), "hello"); got != "" {
		t.Errorf("expected empty audio, got %q", got)
	}
}

func TestService_DataURI(t *testing.T) {
	svc := NewService(&fakeSpeaker{audio: []byte("abc")}, nil, nil)
	if got := svc.AudioDataURI(t.Context(), "hello"); got != "data:audio/mpeg;base64,YWJj" {
		t.Errorf("unexpected data URI %q", got)
	}
}

func TestService_DisabledAndBlank(t *testing.T) {
	var nilSvc *Service
	if nilSvc.Enabled() || NewService(nil, nil, nil).Enabled() {
		t.Error("expected narration disabled")
	}

	sp := &fakeSpeaker{audio: []byte("abc")}
	svc := NewService(sp, nil, nil)
	if svc.Audio(t.Context(), "   ") != nil || sp.calls != 0 {
		t.Error("blank text should not be narrated")
	}

	if _, err := svc.Transcribe(t.Context(), strings.NewReader(""), ""); !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}
