// Package submit delivers finished requests to the guild's intake
// channel. Delivery is best effort: when no transport is configured or
// the transport fails, the caller falls back to copying the rendered
// text so the user can paste it by hand.
package submit

import "context"

// Payload is the wire shape delivered to the intake endpoint. Text is
// the same rendered block the user would paste manually, so the endpoint
// can forward it verbatim.
type Payload struct {
	RequestID string            `json:"requestId"`
	Kind      string            `json:"kind"`
	Values    map[string]string `json:"values"`
	Text      string            `json:"text"`
}

// Submitter delivers one payload. Implementations must treat delivery as
// fire-and-forget from the user's perspective: an error means the caller
// should fall back to the clipboard, not retry.
type Submitter interface {
	Submit(ctx context.Context, p Payload) error
}

// Clipboard copies rendered request text for manual pasting. In a
// browser host this wraps the async clipboard API; tests use a recorder.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}
