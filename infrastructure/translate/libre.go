// ABOUTME: LibreTranslate client implements the translation capability over HTTP
// ABOUTME: Uses POST /translate and POST /detect on any LibreTranslate-compatible endpoint

package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"newsdesk-api/core/errors"
	"newsdesk-api/core/interfaces"
	"newsdesk-api/core/translation"
)

const apiName = "translate"

// maxErrorBody caps how much of a failed response is kept in the error
const maxErrorBody = 512

// LibreClient talks to a LibreTranslate-compatible service
type LibreClient struct {
	http     interfaces.HTTPClient
	endpoint string
	apiKey   string
}

// NewLibreClient creates a client for endpoint, e.g. "https://translate.example.com"
func NewLibreClient(client interfaces.HTTPClient, endpoint, apiKey string) *LibreClient {
	return &LibreClient{
		http:     client,
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

type detectRequest struct {
	Q      string `json:"q"`
	APIKey string `json:"api_key,omitempty"`
}

type detection struct {
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

// Translate rewrites text from sourceLang into targetLang
func (c *LibreClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	var out translateResponse
	err := c.post(ctx, "/translate", translateRequest{
		Q:      text,
		Source: sourceLang,
		Target: targetLang,
		Format: "text",
		APIKey: c.apiKey,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", &errors.ExternalAPIError{StatusCode: http.StatusOK, Message: out.Error, API: apiName}
	}
	if out.TranslatedText == "" {
		return "", errors.ErrEmptyResult
	}
	return out.TranslatedText, nil
}

// DetectIsTargetLanguage reports whether the most likely language of text is targetLang
func (c *LibreClient) DetectIsTargetLanguage(ctx context.Context, text, targetLang string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, nil
	}

	var out []detection
	if err := c.post(ctx, "/detect", detectRequest{Q: text, APIKey: c.apiKey}, &out); err != nil {
		return false, err
	}
	if len(out) == 0 {
		return false, errors.ErrEmptyResult
	}

	best := out[0]
	for _, d := range out[1:] {
		if d.Confidence > best.Confidence {
			best = d
		}
	}
	return translation.SameLanguage(best.Language, targetLang), nil
}

func (c *LibreClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := c.http.Post(ctx, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s request failed: %w", apiName, err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body(), maxErrorBody))
		return &errors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    strings.TrimSpace(string(msg)),
			API:        apiName,
		}
	}

	if err := json.NewDecoder(resp.Body()).Decode(out); err != nil {
		return &errors.MalformedResponseError{API: apiName, Cause: err}
	}
	return nil
}
