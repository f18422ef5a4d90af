package submit

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

// HTTP posts payloads as JSON to a configured intake endpoint.
type HTTP struct {
	endpoint string
	client   *http.Client
}

// NewHTTP builds an HTTP submitter for the given endpoint.
func NewHTTP(endpoint string) *HTTP {
	return &HTTP{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Submit posts the payload. A non-2xx response is an error carrying the
// response body when the endpoint sent one, so operators see the
// endpoint's own message in logs.
func (h *HTTP) Submit(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", h.endpoint, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		if text := strings.TrimSpace(string(msg)); text != "" {
			return fmt.Errorf("intake rejected request %s: %s", p.RequestID, text)
		}
		return fmt.Errorf("intake rejected request %s: HTTP %d", p.RequestID, res.StatusCode)
	}
	return nil
}
