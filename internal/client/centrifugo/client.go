package centrifugo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/s21platform/conversation-service/internal/config"
	"github.com/s21platform/conversation-service/internal/model"
)

const (
	broadcastMethod = "broadcast"
	personalPrefix  = "personal:#"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Centrifuge.BaseURL,
		apiKey:  cfg.Centrifuge.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Centrifuge.Timeout,
		},
	}
}

func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// PersonalChannel is the user-limited channel a client subscribes to for its own events.
func PersonalChannel(userID int64) string {
	return fmt.Sprintf("%s%d", personalPrefix, userID)
}

// Deliver broadcasts the event to the personal channel of every recipient in one API call.
func (c *Client) Deliver(ctx context.Context, recipients []int64, event model.Event) error {
	if len(recipients) == 0 {
		return nil
	}

	channels := make([]string, len(recipients))
	for i, id := range recipients {
		channels[i] = PersonalChannel(id)
	}

	payload := model.CentrifugoEvent{
		Method: broadcastMethod,
		Params: model.CentrifugoBroadcastParams{
			Channels: channels,
			Data:     event,
		},
	}

	return c.call(ctx, payload)
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type apiReply struct {
	Error *apiError `json:"error"`
}

func (c *Client) call(ctx context.Context, command model.CentrifugoEvent) error {
	body, err := json.Marshal(command)
	if err != nil {
		return fmt.Errorf("failed to marshal %s command: %w", command.Method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "apikey "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call centrifugo: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // .

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var reply apiReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if reply.Error != nil {
		return fmt.Errorf("centrifugo error %d: %s", reply.Error.Code, reply.Error.Message)
	}

	return nil
}
