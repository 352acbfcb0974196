package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SMSConfig параметры HTTP SMS шлюза; пустой URL отключает SMS
type SMSConfig struct {
	URL        string
	Token      string
	FromNumber string
	Timeout    time.Duration
}

type smsRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

// SMSClient клиент HTTP шлюза для отправки SMS
type SMSClient struct {
	url        string
	token      string
	from       string
	httpClient *http.Client
}

// NewSMSClient создает клиента SMS шлюза
func NewSMSClient(cfg SMSConfig) *SMSClient {
	return &SMSClient{
		url:   strings.TrimSpace(cfg.URL),
		token: cfg.Token,
		from:  cfg.FromNumber,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Enabled true, если шлюз настроен
func (c *SMSClient) Enabled() bool {
	return c != nil && c.url != "" && c.from != ""
}

// Send отправляет SMS на номер to
func (c *SMSClient) Send(ctx context.Context, to, body string) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	if strings.TrimSpace(to) == "" {
		return ErrInvalidRecipient
	}

	payload, err := json.Marshal(smsRequest{From: c.from, To: strings.TrimSpace(to), Body: body})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrDelivery, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrDelivery, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %q rejected by gateway", ErrInvalidRecipient, to)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}
