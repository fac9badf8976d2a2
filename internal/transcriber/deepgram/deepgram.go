// Package deepgram implements transcription via Deepgram's pre-recorded
// listen API over plain HTTP.
package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"audioscribe/internal/config"
	"audioscribe/internal/transcriber"
)

const defaultBaseURL = "https://api.deepgram.com"

// Client calls the Deepgram /v1/listen endpoint with raw audio bytes.
type Client struct {
	baseURL string
	apiKey  string
	opts    config.TranscribeOptions
	client  *http.Client
}

// NewClient creates a Deepgram client. An empty baseURL selects the public
// API endpoint.
func NewClient(baseURL, apiKey string, opts config.TranscribeOptions) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		opts:    opts,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// listenResponse mirrors the subset of the Deepgram response we consume.
type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (*transcriber.Result, error) {
	endpoint := fmt.Sprintf("%s/v1/listen?%s", c.baseURL, c.queryParams())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", mimeType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deepgram request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read deepgram response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deepgram returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed listenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse deepgram response: %w", err)
	}

	result := &transcriber.Result{}
	for _, ch := range parsed.Results.Channels {
		channel := transcriber.Channel{}
		for _, alt := range ch.Alternatives {
			channel.Alternatives = append(channel.Alternatives, transcriber.Alternative{
				Transcript: alt.Transcript,
				Confidence: alt.Confidence,
			})
		}
		result.Channels = append(result.Channels, channel)
	}
	if len(result.Channels) == 0 {
		return nil, transcriber.ErrNoTranscript
	}
	return result, nil
}

func (c *Client) queryParams() string {
	params := url.Values{}
	if c.opts.Model != "" {
		params.Set("model", c.opts.Model)
	}
	if c.opts.Language != "" {
		params.Set("language", c.opts.Language)
	}
	params.Set("smart_format", strconv.FormatBool(c.opts.SmartFormat))
	return params.Encode()
}
