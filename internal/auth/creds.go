package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"curator/internal/kv"
)

// CredsKey is the persistent-store key holding the credential pair.
const CredsKey = "creds"

// Credentials is the single admin credential pair. The password field holds
// a bcrypt hash, not the cleartext; this is local convenience auth, not a
// security boundary, but there is no reason to keep the cleartext around.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CredStore seeds and verifies the credential pair. Exactly one pair exists
// per store; it is created lazily on first access and never rotated
// automatically.
type CredStore struct {
	store           *kv.Adapter
	defaultUsername string
	defaultPassword string
}

// NewCredStore wires the persistent adapter and the bootstrap defaults used
// when no pair has been stored yet.
func NewCredStore(store *kv.Adapter, username, password string) *CredStore {
	return &CredStore{store: store, defaultUsername: username, defaultPassword: password}
}

// Ensure returns the stored credential pair, seeding the defaults on first
// access. When the store cannot persist the seed the defaults are still
// returned, so a broken store degrades to per-call default credentials
// rather than a lockout.
func (c *CredStore) Ensure(ctx context.Context) Credentials {
	var creds Credentials
	if c.store.Get(ctx, CredsKey, &creds) && creds.Username != "" && creds.Password != "" {
		return creds
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on oversized input; defaults are short.
		return Credentials{Username: c.defaultUsername}
	}
	creds = Credentials{Username: c.defaultUsername, Password: string(hash)}
	c.store.Set(ctx, CredsKey, creds)
	return creds
}

// Verify reports whether the supplied pair matches the stored one. There is
// no lockout and no backoff; a mismatch is surfaced to the user and nothing
// else happens.
func (c *CredStore) Verify(ctx context.Context, username, password string) bool {
	creds := c.Ensure(ctx)
	if username != creds.Username {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(creds.Password), []byte(password)) == nil
}
