package openrouteradvisor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

type (
	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	chatRequest struct {
		Model       string        `json:"model"`
		Messages    []chatMessage `json:"messages"`
		Temperature float64       `json:"temperature"`
		MaxTokens   int           `json:"max_tokens"`
	}

	chatResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *apiError `json:"error"`
	}

	apiError struct {
		Message string `json:"message"`
	}
)

// chat sends a single-turn completion request and returns the raw content of
// the first choice.
func (svc *service) chat(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	if svc.apiKey == "" {
		return "", errors.New("advisor API key not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model:       svc.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+svc.apiKey)
	req.Header.Set("HTTP-Referer", svc.referer)
	req.Header.Set("X-Title", svc.title)

	res, err := svc.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling advisor")
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading advisor response")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return "", errors.Errorf("advisor: HTTP %d: %s", res.StatusCode, strings.TrimSpace(string(resBody)))
	}

	var cr chatResponse
	if err := json.Unmarshal(resBody, &cr); err != nil {
		return "", errors.Wrap(err, "decoding advisor response")
	}
	if cr.Error != nil {
		return "", errors.Errorf("advisor: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return "", errors.New("advisor returned an empty response")
	}
	return cr.Choices[0].Message.Content, nil
}
