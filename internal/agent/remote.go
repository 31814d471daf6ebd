package agent

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

const maxResponseBodyBytes = 1 << 20

var (
	ErrEndpointNotConfigured = errors.New("agent endpoint not configured")
	ErrMalformedResponse     = errors.New("agent response malformed")
)

// RemoteProvider asks an external decision service for the next
// action. The service receives the prompt as JSON and answers with
// {action, amount, reasoning}; what sits behind the endpoint is its
// own business.
type RemoteProvider struct {
	endpointURL string
	httpClient  *http.Client
}

// NewRemoteProvider builds a provider for the given endpoint.
func NewRemoteProvider(endpointURL string, timeout time.Duration) *RemoteProvider {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteProvider{
		endpointURL: endpointURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// NextAction posts the prompt and decodes the decision.
func (p *RemoteProvider) NextAction(ctx context.Context, prompt Prompt) (Decision, error) {
	if p.endpointURL == "" {
		return Decision{}, ErrEndpointNotConfigured
	}

	body, err := json.Marshal(prompt)
	if err != nil {
		return Decision{}, fmt.Errorf("marshal prompt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpointURL, bytes.NewReader(body))
	if err != nil {
		return Decision{}, fmt.Errorf("build agent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Decision{}, fmt.Errorf("agent request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Decision{}, fmt.Errorf("%w: status %d", ErrMalformedResponse, resp.StatusCode)
	}

	var decision Decision
	limited := io.LimitReader(resp.Body, maxResponseBodyBytes)
	if err := json.NewDecoder(limited).Decode(&decision); err != nil {
		return Decision{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if decision.Action == "" {
		return Decision{}, fmt.Errorf("%w: missing action", ErrMalformedResponse)
	}
	return decision, nil
}
