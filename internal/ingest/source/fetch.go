// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sunnahth/hadith-api/internal/platform/constants"
)

// userAgent is sent on every feed request; some mirrors reject the Go
// default agent.
const userAgent = "Mozilla/5.0 (compatible; hadith-api/1.0)"

// # Feed Fetching

// FetchError marks a feed download failure. The importer aborts the
// affected collection only and reports the error in its run summary.
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("source: fetch %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// Fetcher downloads feed payloads over HTTP.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher constructs a [Fetcher] with the source fetch timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: constants.SourceFetchTimeout},
	}
}

/*
Fetch downloads one feed URL.

Parameters:
  - context: context.Context
  - url: string

Returns:
  - []byte: Response body
  - error: *FetchError on any transport or HTTP failure
*/
func (fetcher *Fetcher) Fetch(context context.Context, url string) ([]byte, error) {
	request, err := http.NewRequestWithContext(context, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}
	request.Header.Set("User-Agent", userAgent)

	response, err := fetcher.httpClient.Do(request)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Cause: fmt.Errorf("unexpected HTTP %d", response.StatusCode)}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}
	return body, nil
}
