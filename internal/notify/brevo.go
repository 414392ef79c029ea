package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is the Brevo v3 transactional email endpoint.
const DefaultEndpoint = "https://api.brevo.com/v3/smtp/email"

// DefaultTemplateID is the auto-reply template configured in Brevo.
const DefaultTemplateID = 2

// ErrMissingAPIKey is returned when no Brevo API key is configured.
var ErrMissingAPIKey = errors.New("brevo api key not configured")

// maxErrorBody caps how much of a provider error response is kept.
const maxErrorBody = 4 << 10

// Recipient is one addressee of a transactional email.
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// EmailRequest is the body of a Brevo template send.
type EmailRequest struct {
	TemplateID int               `json:"templateId"`
	To         []Recipient       `json:"to"`
	Params     map[string]string `json:"params,omitempty"`
}

// EmailResult is the provider's reply to a successful send.
type EmailResult struct {
	MessageID string `json:"messageId"`
}

// ProviderError reports a non-2xx reply from the email provider.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("brevo returned HTTP %d: %s", e.StatusCode, e.Body)
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, req *EmailRequest) (*EmailResult, error)
}

// BrevoClient sends template emails through the Brevo HTTP API.
type BrevoClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewBrevoClient creates a client. An empty endpoint uses DefaultEndpoint and a nil
// httpClient gets a 15 second timeout.
func NewBrevoClient(apiKey, endpoint string, httpClient *http.Client) *BrevoClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &BrevoClient{apiKey: apiKey, endpoint: endpoint, httpClient: httpClient}
}

// Send posts req to Brevo and returns the message identifier.
func (c *BrevoClient) Send(ctx context.Context, req *EmailRequest) (*EmailResult, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode email request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("brevo request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(detail)}
	}

	var result EmailResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode brevo response: %w", err)
	}
	return &result, nil
}
