package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ahsasnagar11/typeshit3/internal/infra/httpclient"
)

const (
	fetchTimeout = 8 * time.Second
	sendTimeout  = 10 * time.Second
)

// Message is the wire shape of one chat message as the server returns
// it.
type Message struct {
	ID          string    `json:"_id"`
	ClientMsgID string    `json:"clientMsgId,omitempty"`
	SenderID    string    `json:"senderId"`
	ReceiverID  string    `json:"receiverId"`
	Text        string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}

// Client is a thin REST client for the chat endpoints. It performs no
// retries; callers decide what a failure means.
type Client struct {
	baseURL     string
	bearerToken string
	fetchHTTP   *http.Client
	sendHTTP    *http.Client
}

func NewClient(baseURL, bearerToken string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: bearerToken,
		fetchHTTP:   httpclient.New(fetchTimeout),
		sendHTTP:    httpclient.New(sendTimeout),
	}
}

// Messages fetches the full conversation between two users, ascending
// by timestamp.
func (c *Client) Messages(ctx context.Context, senderID, receiverID string) ([]Message, error) {
	query := url.Values{}
	query.Set("senderId", senderID)
	query.Set("receiverId", receiverID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/messages?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build messages request: %w", err)
	}

	resp, err := c.fetchHTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch messages: unexpected status %d", resp.StatusCode)
	}

	var messages []Message
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}

	return messages, nil
}

// SendMessage posts one message. The echoed authoritative record is
// returned so the caller can reconcile immediately if it wants to.
func (c *Client) SendMessage(ctx context.Context, msg Message) (Message, error) {
	payload, err := json.Marshal(map[string]any{
		"senderId":    msg.SenderID,
		"receiverId":  msg.ReceiverID,
		"message":     msg.Text,
		"clientMsgId": msg.ClientMsgID,
		"timestamp":   msg.Timestamp,
	})
	if err != nil {
		return Message{}, fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chats", bytes.NewReader(payload))
	if err != nil {
		return Message{}, fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	resp, err := c.sendHTTP.Do(req)
	if err != nil {
		return Message{}, fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Message{}, fmt.Errorf("send message: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope struct {
		Chat Message `json:"chat"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Message{}, fmt.Errorf("decode send response: %w", err)
	}

	return envelope.Chat, nil
}
