package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterAppTitle       = "Homework Pal"
)

// NewOpenRouterProvider returns an OpenAI-compatible provider pointed at
// OpenRouter. Model names such as "google/gemini-2.0-flash-exp" are sent
// as given.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	if clientCfg.BaseURL == "" {
		clientCfg.BaseURL = defaultOpenRouterBaseURL
	}
	clientCfg.HTTPClient = &http.Client{Transport: appTitleTransport{next: http.DefaultTransport}}
	return newOpenAIProvider(clientCfg, cfg.Model), nil
}

// appTitleTransport adds OpenRouter's app attribution header so usage
// shows up under the app name in the OpenRouter dashboard.
type appTitleTransport struct {
	next http.RoundTripper
}

func (t appTitleTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Title", openRouterAppTitle)
	return t.next.RoundTrip(r)
}
