package content

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"shortsfactory/config"
	"shortsfactory/types"
)

// CohereProvider generates scripts with the Cohere Chat API. It is the
// fallback when OpenAI is unavailable or rejects the request.
type CohereProvider struct {
	client *cohereclient.Client
	model  string
}

func NewCohereProvider(apiKey string) *CohereProvider {
	// Force HTTP/1.1 to avoid HTTP/2 protocol errors against the Cohere API
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	return &CohereProvider{
		client: cohereclient.NewClient(
			cohereclient.WithToken(apiKey),
			cohereclient.WithHTTPClient(httpClient),
		),
		model: config.GetEnvOrDefault("COHERE_MODEL", "command-r"),
	}
}

func (p *CohereProvider) Name() string { return "cohere" }

func (p *CohereProvider) Generate(ctx context.Context, topic string, targetDuration float64) (*types.GeneratedContent, error) {
	preamble := "Eres un guionista de videos cortos virales en español. Respondes solo con JSON."
	resp, err := p.client.Chat(ctx, &cohere.ChatRequest{
		Message:  buildPrompt(topic, targetDuration),
		Model:    &p.model,
		Preamble: &preamble,
	})
	if err != nil {
		return nil, fmt.Errorf("cohere chat failed: %w", err)
	}
	return parseResponse(resp.Text, topic)
}
