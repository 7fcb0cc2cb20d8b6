// Package notify sends the operator notification for new signups.
package notify

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultEndpoint is the Resend transactional email API.
const DefaultEndpoint = "https://api.resend.com/emails"

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 1024

const (
	subject    = "New waitlist signup"
	textPrefix = "New waitlist signup: "
)

var (
	// ErrNotConfigured means at least one credential is missing.
	ErrNotConfigured = errors.New("notifier not configured")
	// ErrProviderStatus wraps non-2xx responses from the provider.
	ErrProviderStatus = errors.New("provider returned non-success status")
)

// Config holds provider credentials. All three of APIKey, From and To
// must be set for notifications to be sent.
type Config struct {
	APIKey   string
	From     string
	To       string
	Endpoint string
}

// Enabled reports whether all credentials are present.
func (c Config) Enabled() bool {
	return c.APIKey != "" && c.From != "" && c.To != ""
}

// emailRequest is the provider request body.
type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// ResendNotifier posts one email per signup to the provider.
type ResendNotifier struct {
	cfg    Config
	client *http.Client

	entropyMu sync.Mutex
	entropy   io.Reader
}

// NewResendNotifier creates a notifier. A nil client gets NewHTTPClient().
func NewResendNotifier(cfg Config, client *http.Client) *ResendNotifier {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if client == nil {
		client = NewHTTPClient()
	}
	return &ResendNotifier{
		cfg:     cfg,
		client:  client,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Enabled reports whether NotifySignup will call the provider.
func (n *ResendNotifier) Enabled() bool {
	return n.cfg.Enabled()
}

// NotifySignup sends the signup notification. It makes exactly one
// attempt and returns ErrNotConfigured without any I/O when disabled.
func (n *ResendNotifier) NotifySignup(ctx context.Context, email string) error {
	if !n.cfg.Enabled() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(emailRequest{
		From:    n.cfg.From,
		To:      []string{n.cfg.To},
		Subject: subject,
		Text:    textPrefix + email,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	setProviderHeaders(req, n.cfg.APIKey, n.newIdempotencyKey())

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("%w: %d %s", ErrProviderStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
}

// newIdempotencyKey returns a fresh ULID. ulid.Monotonic is not safe for
// concurrent use, so reads are serialized.
func (n *ResendNotifier) newIdempotencyKey() string {
	n.entropyMu.Lock()
	defer n.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), n.entropy).String()
}
