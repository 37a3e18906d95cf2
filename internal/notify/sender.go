package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// LogSender simulates delivery when no provider is configured.
type LogSender struct{}

func (LogSender) Name() string { return "log" }

func (LogSender) Send(_ context.Context, msg Message) error {
	log.Info().
		Str("kind", string(msg.Kind)).
		Str("to", msg.To).
		Str("body", msg.Body).
		Msg("sms simulated")
	return nil
}

// HTTPSender posts to a Twilio-compatible Messages endpoint.
type HTTPSender struct {
	client     *http.Client
	baseURL    string
	accountSID string
	authToken  string
	from       string
}

func NewHTTPSender(baseURL, accountSID, authToken, from string) *HTTPSender {
	return &HTTPSender{
		client:     &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
	}
}

func (s *HTTPSender) Name() string { return "http" }

func (s *HTTPSender) Send(ctx context.Context, msg Message) error {
	form := url.Values{}
	form.Set("To", msg.To)
	form.Set("From", s.from)
	form.Set("Body", msg.Body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.baseURL, s.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// RedisSender pushes messages onto a list consumed by an external SMS relay.
type RedisSender struct {
	client *redis.Client
	queue  string
}

func NewRedisSender(redisURL, queue string) (*RedisSender, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return &RedisSender{client: redis.NewClient(opts), queue: queue}, nil
}

func NewRedisSenderWithClient(client *redis.Client, queue string) *RedisSender {
	return &RedisSender{client: client, queue: queue}
}

func (s *RedisSender) Name() string { return "redis" }

func (s *RedisSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return s.client.RPush(ctx, s.queue, payload).Err()
}

func (s *RedisSender) Close() error {
	return s.client.Close()
}
