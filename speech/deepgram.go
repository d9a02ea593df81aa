package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"shortsfactory/config"
)

const deepgramSpeakURL = "https://api.deepgram.com/v1/speak"

// DeepgramSynthesizer calls the Deepgram text-to-speech REST API.
// Docs: https://developers.deepgram.com/reference/text-to-speech-api
type DeepgramSynthesizer struct {
	apiKey   string
	voice    string
	endpoint string
	client   *http.Client
}

func NewDeepgramSynthesizer(apiKey string) *DeepgramSynthesizer {
	return &DeepgramSynthesizer{
		apiKey:   apiKey,
		voice:    config.GetEnvOrDefault("DEEPGRAM_VOICE", "aura-2-celeste-es"),
		endpoint: deepgramSpeakURL,
		client:   http.DefaultClient,
	}
}

func (d *DeepgramSynthesizer) Name() string { return "deepgram" }

func (d *DeepgramSynthesizer) Synthesize(ctx context.Context, script, outputPath string) error {
	payload, err := json.Marshal(map[string]string{"text": script})
	if err != nil {
		return err
	}

	endpoint := d.endpoint + "?" + url.Values{"model": {d.voice}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("deepgram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("deepgram returned status %d: %s", resp.StatusCode, string(body))
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}
	return nil
}
