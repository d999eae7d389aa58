// HTTP client for the transactional mail relay. Deployments without a relay
// run fine: sends become logged no-ops, which keeps the forgot-password flow
// usable in development.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/playscore/backend/internal/config"
)

type EmailClient struct {
	relayURL   string
	apiKey     string
	sender     string
	httpClient *http.Client
}

type emailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewEmailClient(cfg config.MailConfig) *EmailClient {
	return &EmailClient{
		relayURL: cfg.RelayURL,
		apiKey:   cfg.APIKey,
		sender:   cfg.Sender,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *EmailClient) IsConfigured() bool {
	return c.relayURL != ""
}

// SendPasswordReset mails the reset code to the user.
func (c *EmailClient) SendPasswordReset(ctx context.Context, to, code string) error {
	subject := "Your password reset code"
	body := fmt.Sprintf("Use this code to reset your password: %s\n\nIf you did not request a reset, ignore this message.", code)
	return c.send(ctx, to, subject, body)
}

func (c *EmailClient) send(ctx context.Context, to, subject, body string) error {
	if !c.IsConfigured() {
		log.Printf("mail: relay not configured, skipping send to %s", to)
		return nil
	}

	payload, err := json.Marshal(emailMessage{
		From:    c.sender,
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.relayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach mail relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail relay returned %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
