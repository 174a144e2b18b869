package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client talks to the OpenAI API with plain net/http.
// An empty APIKey disables it; callers fall back to canned responses.
type Client struct {
	APIKey             string
	Model              string
	TranscriptionModel string
	HTTPClient         *http.Client
}

func New(apiKey, model, transcriptionModel string) *Client {
	return &Client{
		APIKey:             apiKey,
		Model:              model,
		TranscriptionModel: transcriptionModel,
		HTTPClient:         &http.Client{Timeout: 60 * time.Second},
	}
}

// Available reports whether AI calls can be made at all.
func (c *Client) Available() bool {
	return c != nil && c.APIKey != ""
}

// Invoke sends one user prompt to chat completions and returns the text.
func (c *Client) Invoke(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("ai client not configured")
	}

	body := map[string]interface{}{
		"model":      c.Model,
		"max_tokens": maxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST",
		"https://api.openai.com/v1/chat/completions",
		bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai: status %d: %s", res.StatusCode, raw)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("ai: empty response")
	}

	return out.Choices[0].Message.Content, nil
}

// Transcribe uploads an audio file to the transcription endpoint and
// returns the recognized text.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("ai client not configured")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", err
	}
	_ = mw.WriteField("model", c.TranscriptionModel)
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		"https://api.openai.com/v1/audio/transcriptions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai: transcription status %d: %s", res.StatusCode, raw)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}
