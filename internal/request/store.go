// Package request keeps a local audit trail of submitted forms. Every
// copy or submit attempt leaves a record keyed by a short shareable id so
// the submitter can confirm later what was sent and when, even if the
// remote side lost it.
package request

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"curator/internal/kv"
	"curator/internal/platform/metrics"
)

// KeyPrefix namespaces audit records in the backing store.
const KeyPrefix = "request:"

// Record is one audit entry. Records never expire; the set grows with
// submissions, which for a recruitment site stays tiny.
type Record struct {
	EventID     uuid.UUID         `json:"eventId"`
	Kind        string            `json:"kind"`
	Values      map[string]string `json:"values"`
	SubmittedAt time.Time         `json:"at"`
}

// FormattedAt renders the submission time the way status notices show
// it: dd.mm.yyyy, hh:mm:ss.
func (r Record) FormattedAt() string {
	return r.SubmittedAt.Format("02.01.2006, 15:04:05")
}

// Store persists audit records through the silent adapter. A lost write
// never blocks a submission.
type Store struct {
	kv      *kv.Adapter
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewStore builds a store over the given adapter.
func NewStore(adapter *kv.Adapter, m *metrics.Metrics) *Store {
	return &Store{kv: adapter, metrics: m, now: time.Now}
}

// Record writes an audit entry under the given id, replacing any prior
// record with the same id. Ids arrive from the generator already
// normalized, so no case folding happens here.
func (s *Store) Record(ctx context.Context, id, kind string, values map[string]string) Record {
	rec := Record{
		EventID:     uuid.New(),
		Kind:        kind,
		Values:      values,
		SubmittedAt: s.now(),
	}
	s.kv.Set(ctx, KeyPrefix+id, rec)
	if s.metrics != nil {
		s.metrics.RequestsRecorded.WithLabelValues(kind).Inc()
	}
	return rec
}

// Lookup fetches the record for a user-supplied id. Input is trimmed and
// uppercased first, so ids survive being retyped in lowercase.
func (s *Store) Lookup(ctx context.Context, rawID string) (Record, bool) {
	id := strings.ToUpper(strings.TrimSpace(rawID))
	if id == "" {
		return Record{}, false
	}
	var rec Record
	if !s.kv.Get(ctx, KeyPrefix+id, &rec) {
		return Record{}, false
	}
	return rec, true
}
