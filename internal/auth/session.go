// Package auth tracks the single admin login state and the locally stored
// credential pair. There are no tokens, no expiry beyond the session store's
// own lifetime, and no concurrency control: presence of a session record
// with LoggedIn=true is the sole authority for edit permissions.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"curator/internal/kv"
	"curator/pkg/platform/sentinel"
)

// SessionKey is the key under which the login record lives, in both the
// session-scoped store (primary) and the persistent store (fallback).
const SessionKey = "auth"

// Session is the login record. Absence means logged out.
type Session struct {
	LoggedIn bool      `json:"loggedIn"`
	At       time.Time `json:"at"`
}

// Manager reads and writes the login record with session-store-first,
// persistent-store-fallback ordering. The fallback only engages when the
// session store is unavailable, never on a plain miss; falling back lowers
// the record's effective lifetime guarantee, which is a disclosed tradeoff
// of degraded environments rather than a bug.
//
// Manager talks to backends directly instead of going through the silent
// adapter because the fallback order depends on distinguishing a miss from
// an unavailable store.
type Manager struct {
	session    kv.Backend
	persistent kv.Backend
	log        *slog.Logger
	now        func() time.Time
}

// NewManager wires the two stores. log may be nil.
func NewManager(session, persistent kv.Backend, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{session: session, persistent: persistent, log: log, now: time.Now}
}

// Login writes the login record to the session store, falling back to the
// persistent store when the session store is unavailable. It never fails:
// a write failure in both stores leaves the user logged out, which the UI
// reports on the next affordance sync.
func (m *Manager) Login(ctx context.Context) {
	raw, err := json.Marshal(Session{LoggedIn: true, At: m.now()})
	if err != nil {
		return
	}
	if err := m.session.Set(ctx, SessionKey, raw); err != nil {
		m.log.Debug("session store unavailable, falling back to persistent store", "err", err)
		if err := m.persistent.Set(ctx, SessionKey, raw); err != nil {
			m.log.Debug("persistent fallback write failed", "err", err)
		}
	}
}

// Logout removes the login record, session store first. The persistent
// fallback is only consulted when the session store cannot serve the
// delete, mirroring the write-side fallback order.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.session.Delete(ctx, SessionKey); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		if err := m.persistent.Delete(ctx, SessionKey); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			m.log.Debug("logout delete failed in both stores", "err", err)
		}
	}
}

// IsLoggedIn reports whether a login record with LoggedIn=true exists. A
// miss in the session store means logged out; only an unavailable session
// store causes a persistent-store read.
func (m *Manager) IsLoggedIn(ctx context.Context) bool {
	raw, err := m.session.Get(ctx, SessionKey)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false
	}
	if err != nil {
		raw, err = m.persistent.Get(ctx, SessionKey)
		if err != nil {
			return false
		}
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return s.LoggedIn
}
