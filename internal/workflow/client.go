package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"
)

// Audio is the pending payload staged for transcription, from either an
// uploaded file or a finished recording.
type Audio struct {
	Name     string
	MIMEType string
	Data     []byte
}

// GatewayClient posts staged audio to the transcription gateway as a
// single-field multipart body.
type GatewayClient struct {
	baseURL string
	client  *http.Client
}

// NewGatewayClient creates a client for the gateway at baseURL, e.g.
// "http://localhost:3030".
func NewGatewayClient(baseURL string) *GatewayClient {
	return &GatewayClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

// Transcribe uploads the audio and returns the transcript field of the
// gateway's response. Any non-200 status or malformed body is an error.
func (c *GatewayClient) Transcribe(ctx context.Context, audio *Audio) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="audio"; filename=%q`, audio.Name))
	header.Set("Content-Type", audio.MIMEType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("create multipart field: %w", err)
	}
	if _, err := part.Write(audio.Data); err != nil {
		return "", fmt.Errorf("write audio payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcribe", &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Transcript *string `json:"transcript"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if parsed.Transcript == nil {
		return "", fmt.Errorf("response has no transcript field")
	}
	return *parsed.Transcript, nil
}
