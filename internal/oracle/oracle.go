// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package oracle provides the language-model client used for enrichment.

The archive treats the model as an untrusted text oracle: callers send a
prompt, receive raw text, and run it through the fixed-key parsers in this
package. Everything model-specific (endpoints, auth, quota errors) stays
behind the [Client] interface so the enrichment pipeline never knows which
provider is wired in.

# Error Taxonomy

  - [ErrRateLimited]: quota exhaustion, the only retryable failure.
  - [ProviderError]: every other provider-side failure, including responses
    that fail JSON parsing after fence stripping. Not retryable.
*/
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// # Client Contract

// Request carries one generation call to the provider.
type Request struct {
	System      string  // System instruction framing the model's role
	Prompt      string  // User prompt
	Temperature float64 // Sampling temperature
}

// Client generates raw text from a prompt.
type Client interface {

	/*
		Generate sends one request to the provider and returns its raw
		text response.

		Parameters:
		  - context: context.Context
		  - request: Request

		Returns:
		  - string: Raw model output
		  - error: ErrRateLimited when quota is exhausted, ProviderError otherwise
	*/
	Generate(context context.Context, request Request) (string, error)
}

// # Error Taxonomy

// ErrRateLimited signals provider quota exhaustion. Callers may retry with
// backoff; every other failure is final.
var ErrRateLimited = errors.New("oracle: rate limited")

// ProviderError wraps a non-retryable provider failure.
type ProviderError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("oracle: %s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// # Response Schemas

// Translation is the fixed key set of a translate response.
type Translation struct {
	KitabTh   string `json:"kitab_th"`
	BabTh     string `json:"bab_th"`
	ContentTh string `json:"content_th"`
	Notes     string `json:"notes"`
}

// Recovery is the fixed key set of a backfill response, where the oracle is
// asked to recover the Arabic source text alongside the translation.
type Recovery struct {
	Arabic string `json:"arabic"`
	Thai   string `json:"thai"`
}

// # Response Parsing

// fencePattern matches JSON wrapped in a markdown code fence, with or
// without a language tag.
var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\s*```")

// ParseTranslation decodes a translate response.
func ParseTranslation(raw string) (Translation, error) {
	var result Translation
	if err := decodeObject(raw, &result); err != nil {
		return Translation{}, err
	}
	return result, nil
}

// ParseRecovery decodes a backfill response.
func ParseRecovery(raw string) (Recovery, error) {
	var result Recovery
	if err := decodeObject(raw, &result); err != nil {
		return Recovery{}, err
	}
	return result, nil
}

// decodeObject extracts the JSON object from a raw model response and
// unmarshals it into target. Markdown fences are stripped and a
// list-wrapped object is unwrapped to its first element, both artifacts
// the provider produces even with a JSON response mime type.
func decodeObject(raw string, target any) error {
	cleaned := strings.TrimSpace(raw)
	if matches := fencePattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = strings.TrimSpace(matches[1])
	}

	if strings.HasPrefix(cleaned, "[") {
		var wrapped []json.RawMessage
		if err := json.Unmarshal([]byte(cleaned), &wrapped); err != nil {
			return &ProviderError{Provider: "parser", Message: "malformed JSON array response", Cause: err}
		}
		if len(wrapped) == 0 {
			return &ProviderError{Provider: "parser", Message: "empty JSON array response"}
		}
		cleaned = string(wrapped[0])
	}

	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return &ProviderError{Provider: "parser", Message: "malformed JSON response", Cause: err}
	}
	return nil
}
