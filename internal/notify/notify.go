// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package notify pushes operational alerts to the admin's chat channels.

Alerts are strictly fire-and-forget: a failed push is logged and dropped,
never propagated, so a chat outage can't take the pipeline down with it.
Unconfigured channels are silently skipped.
*/
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	telegramAPI = "https://api.telegram.org"
	lineAPI     = "https://api.line.me/v2/bot/message/push"

	pushTimeout = 10 * time.Second
)

// # Notifier

// Notifier fans an alert out to every configured channel.
type Notifier struct {
	telegramToken  string
	telegramChatID string
	lineToken      string
	lineUserID     string

	httpClient *http.Client
	logger     *slog.Logger
}

// New constructs a [Notifier]. Channels with empty credentials are skipped
// at send time; a fully unconfigured notifier is a valid no-op.
func New(telegramToken, telegramChatID, lineToken, lineUserID string, logger *slog.Logger) *Notifier {
	return &Notifier{
		telegramToken:  telegramToken,
		telegramChatID: telegramChatID,
		lineToken:      lineToken,
		lineUserID:     lineUserID,
		httpClient:     &http.Client{Timeout: pushTimeout},
		logger:         logger,
	}
}

/*
NotifyError pushes a formatted error alert to all configured channels.

Parameters:
  - context: context.Context
  - errorType: string (Short category, e.g. "enrichment_pass_failed")
  - message: string
  - details: string (Optional extra lines)
*/
func (notifier *Notifier) NotifyError(context context.Context, errorType, message, details string) {
	if notifier == nil {
		return
	}

	text := fmt.Sprintf("Error Alert\n\nTime: %s\nType: %s\nMessage: %s",
		time.Now().UTC().Format(time.RFC3339), errorType, message)
	if details != "" {
		text += "\nDetails: " + details
	}

	notifier.sendTelegram(context, text)
	notifier.sendLINE(context, text)
}

// # Channels

func (notifier *Notifier) sendTelegram(context context.Context, text string) {
	if notifier.telegramToken == "" || notifier.telegramChatID == "" {
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", telegramAPI, notifier.telegramToken)
	payload := map[string]string{
		"chat_id": notifier.telegramChatID,
		"text":    text,
	}

	notifier.post(context, "telegram", url, payload, nil)
}

func (notifier *Notifier) sendLINE(context context.Context, text string) {
	if notifier.lineToken == "" || notifier.lineUserID == "" {
		return
	}

	payload := map[string]any{
		"to": notifier.lineUserID,
		"messages": []map[string]string{
			{"type": "text", "text": text},
		},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + notifier.lineToken,
	}

	notifier.post(context, "line", lineAPI, payload, headers)
}

// post performs one JSON push. All failures end here as log lines.
func (notifier *Notifier) post(context context.Context, channel, url string, payload any, headers map[string]string) {
	body, err := json.Marshal(payload)
	if err != nil {
		notifier.logger.Warn("notify_encode_failed", slog.String("channel", channel), slog.String("error", err.Error()))
		return
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		notifier.logger.Warn("notify_build_failed", slog.String("channel", channel), slog.String("error", err.Error()))
		return
	}
	request.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := notifier.httpClient.Do(request)
	if err != nil {
		notifier.logger.Warn("notify_push_failed", slog.String("channel", channel), slog.String("error", err.Error()))
		return
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		notifier.logger.Warn("notify_push_rejected",
			slog.String("channel", channel),
			slog.Int("status", response.StatusCode),
		)
	}
}
