package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"freshreceipt-backend/internal/utils"
)

type (
	// OCRProvider submits a receipt image reference to an external OCR
	// service and returns the decoded raw response. The response schema is
	// an opaque provider contract; callers go through Extract to read it.
	OCRProvider interface {
		Submit(ctx context.Context, imageURL string) (map[string]interface{}, error)
	}

	veryfiProvider struct {
		baseURL  string
		clientID string
		username string
		apiKey   string
		client   *http.Client
	}
)

func NewVeryfiProvider() OCRProvider {
	return &veryfiProvider{
		baseURL:  utils.GetConfig("VERYFI_URL"),
		clientID: utils.GetConfig("VERYFI_CLIENT_ID"),
		username: utils.GetConfig("VERYFI_USERNAME"),
		apiKey:   utils.GetConfig("VERYFI_API_KEY"),
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *veryfiProvider) Submit(ctx context.Context, imageURL string) (map[string]interface{}, error) {
	payload := map[string]interface{}{
		"file_url":      imageURL,
		"categories":    []string{},
		"tags":          []string{},
		"compute":       true,
		"country":       "US",
		"document_type": "receipt",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("CLIENT-ID", p.clientID)
	req.Header.Set("AUTHORIZATION", fmt.Sprintf("apikey %s:%s", p.username, p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Veryfi API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("veryfi API error: %d - %s", resp.StatusCode, string(respBody))
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode Veryfi response: %w", err)
	}

	return raw, nil
}
