// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sunnahth/hadith-api/internal/platform/constants"
)

// # Gemini Client

// GeminiClient implements [Client] against the Gemini generateContent REST
// endpoint. Responses are requested as application/json so the parsers
// mostly see clean objects.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient constructs a Gemini backed [Client].
func NewGeminiClient(apiKey, model, baseURL string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: constants.OracleRequestTimeout,
		},
	}
}

// # Wire Schemas

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"response_mime_type"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// # Client Implementation

/*
Generate sends one generateContent call.

Description: HTTP 429 and the RESOURCE_EXHAUSTED status both surface as
[ErrRateLimited]; the enrichment loop owns the backoff policy, this client
never sleeps.

Returns:
  - string: Raw model output text
  - error: ErrRateLimited or *ProviderError
*/
func (client *GeminiClient) Generate(context context.Context, request Request) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: request.Prompt}}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:      request.Temperature,
			ResponseMimeType: "application/json",
		},
	}
	if request.System != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: request.System}}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Message: "failed to encode request", Cause: err}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", client.baseURL, client.model, client.apiKey)
	httpRequest, err := http.NewRequestWithContext(context, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Message: "failed to build request", Cause: err}
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	httpResponse, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Message: "request failed", Cause: err}
	}
	defer httpResponse.Body.Close()

	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return "", &ProviderError{Provider: "gemini", Message: "failed to read response", Cause: err}
	}

	if httpResponse.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}

	var decoded geminiResponse
	if err := json.Unmarshal(responseBody, &decoded); err != nil {
		return "", &ProviderError{
			Provider: "gemini",
			Message:  fmt.Sprintf("unreadable response (HTTP %d)", httpResponse.StatusCode),
			Cause:    err,
		}
	}

	if decoded.Error != nil {
		if decoded.Error.Status == "RESOURCE_EXHAUSTED" {
			return "", ErrRateLimited
		}
		return "", &ProviderError{Provider: "gemini", Message: decoded.Error.Message}
	}
	if httpResponse.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Provider: "gemini",
			Message:  fmt.Sprintf("unexpected HTTP %d", httpResponse.StatusCode),
		}
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", &ProviderError{Provider: "gemini", Message: "empty candidate set"}
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

// compile-time interface check
var _ Client = (*GeminiClient)(nil)

