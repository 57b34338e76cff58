package capture

import (
	"encoding/json"
	"sort"
	"time"
)

const (
	// MaxRecordBytes is the serialized-size ceiling for one session record.
	MaxRecordBytes = 5 * 1024 * 1024

	// MaxSessions is how many session records of one kind are retained at
	// once; the least-recently-updated ones beyond that are evicted.
	MaxSessions = 10

	transcriptPrefix = "transcript_buffer_"
	emotionPrefix    = "emotion_buffer_"

	maxTranscriptEntries = 1000
	maxEmotionEntries    = 5000
)

// Policy is the per-kind tuning of a Store: key namespace, entry cap used by
// the size governor, retained-session cap, and the label applied when a
// session is initialized implicitly by Append.
type Policy struct {
	KeyPrefix    string
	MaxEntries   int
	MaxBytes     int
	MaxSessions  int
	DefaultLabel string
}

// TranscriptPolicy is the tuning used for transcript segment buffers.
func TranscriptPolicy() Policy {
	return Policy{
		KeyPrefix:    transcriptPrefix,
		MaxEntries:   maxTranscriptEntries,
		MaxBytes:     MaxRecordBytes,
		MaxSessions:  MaxSessions,
		DefaultLabel: "Interview Session",
	}
}

// EmotionPolicy is the tuning used for emotion detection buffers.
func EmotionPolicy() Policy {
	return Policy{
		KeyPrefix:    emotionPrefix,
		MaxEntries:   maxEmotionEntries,
		MaxBytes:     MaxRecordBytes,
		MaxSessions:  MaxSessions,
		DefaultLabel: "Interview Session",
	}
}

// Store buffers capture entries for live call sessions, one record per
// session id, on top of a synchronous key/value Backend.
//
// Every operation runs on the calling goroutine and returns immediately.
// Storage failures are logged and swallowed so a broken backend can never
// interrupt the live call; the only consequence is that the affected events
// are not durable. Callers own the "one active writer per session id"
// discipline — the store does not arbitrate concurrent writers.
type Store[E any] struct {
	backend Backend
	policy  Policy
	log     Logger
	now     func() time.Time
}

// TranscriptStore buffers transcript segments.
type TranscriptStore = Store[Segment]

// EmotionStore buffers emotion detections.
type EmotionStore = Store[Detection]

// sequencer is implemented by entry types that carry a store-assigned
// sequence number (transcript segments).
type sequencer interface {
	SetSequence(n int)
}

// NewStore builds a store with the given per-kind policy. log may be nil.
func NewStore[E any](backend Backend, policy Policy, log Logger) *Store[E] {
	if log == nil {
		log = NopLogger
	}
	return &Store[E]{
		backend: backend,
		policy:  policy,
		log:     log,
		now:     time.Now,
	}
}

// NewTranscriptStore builds a segment store with the transcript policy.
func NewTranscriptStore(backend Backend, log Logger) *TranscriptStore {
	return NewStore[Segment](backend, TranscriptPolicy(), log)
}

// NewEmotionStore builds a detection store with the emotion policy.
func NewEmotionStore(backend Backend, log Logger) *EmotionStore {
	return NewStore[Detection](backend, EmotionPolicy(), log)
}

// SetClock replaces the wall clock. Tests use it to get deterministic
// timestamps.
func (s *Store[E]) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store[E]) key(sessionID string) string {
	return s.policy.KeyPrefix + sessionID
}

func (s *Store[E]) nowMillis() int64 {
	return s.now().UnixMilli()
}

// Initialize creates a fresh, empty record for the session, overwriting any
// existing one. Callers must not invoke it mid-session. An empty session id
// is rejected and logged.
func (s *Store[E]) Initialize(sessionID, label string) {
	if sessionID == "" {
		s.log.Error("CaptureStore", "Initialize called with empty session id", nil)
		return
	}

	now := s.nowMillis()
	rec := &Record[E]{
		SessionID:     sessionID,
		Label:         label,
		Entries:       []E{},
		StartedAt:     now,
		LastUpdatedAt: now,
	}
	s.persist(rec)
}

// Append pushes one entry onto the session's record. If the session was never
// initialized (capture started before the call UI got there), the record is
// created in place with the policy's default label — a single explicit step,
// no recursion. Sequence numbers are assigned here for entry types that carry
// one. Failures are logged, never returned.
func (s *Store[E]) Append(sessionID string, entry E) {
	if sessionID == "" {
		s.log.Error("CaptureStore", "Append called with empty session id", nil)
		return
	}

	rec := s.Read(sessionID)
	if rec == nil {
		now := s.nowMillis()
		rec = &Record[E]{
			SessionID:     sessionID,
			Label:         s.policy.DefaultLabel,
			Entries:       []E{},
			StartedAt:     now,
			LastUpdatedAt: now,
		}
	}

	if seq, ok := any(&entry).(sequencer); ok {
		seq.SetSequence(len(rec.Entries))
	}
	rec.Entries = append(rec.Entries, entry)
	rec.LastUpdatedAt = s.nowMillis()

	s.persist(rec)
}

// MarkComplete flags the session as finished and stamps the completion time.
// Absent records are a no-op; calling it twice is harmless and keeps the
// original completion time.
func (s *Store[E]) MarkComplete(sessionID string) {
	rec := s.Read(sessionID)
	if rec == nil {
		return
	}

	now := s.nowMillis()
	if !rec.IsComplete {
		rec.IsComplete = true
		rec.CompletedAt = now
	}
	rec.LastUpdatedAt = now

	s.persist(rec)
}

// Read returns the session's record, or nil when it is absent or the stored
// bytes do not parse. It never fails.
func (s *Store[E]) Read(sessionID string) *Record[E] {
	data, found, err := s.backend.Get(s.key(sessionID))
	if err != nil {
		s.log.Warn("CaptureStore", "Backend read failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil
	}
	if !found {
		return nil
	}

	var rec Record[E]
	if err := json.Unmarshal(data, &rec); err != nil {
		// Corrupt record: treated as absent, overwritten on the next write.
		s.log.Warn("CaptureStore", "Stored record is unparseable", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil
	}
	return &rec
}

// Clear removes the session's record. Idempotent.
func (s *Store[E]) Clear(sessionID string) {
	if err := s.backend.Remove(s.key(sessionID)); err != nil {
		s.log.Warn("CaptureStore", "Failed to clear record", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

// Evict drops the least-recently-updated sessions of this store's kind until
// at most Policy.MaxSessions remain. It runs reactively when a write hits the
// backend's quota and may also be called proactively as maintenance.
func (s *Store[E]) Evict() {
	keys, err := s.backend.Keys(s.policy.KeyPrefix)
	if err != nil {
		s.log.Warn("CaptureStore", "Key enumeration failed during eviction", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if len(keys) <= s.policy.MaxSessions {
		return
	}

	type candidate struct {
		key     string
		updated int64
	}
	var candidates []candidate
	for _, key := range keys {
		data, found, err := s.backend.Get(key)
		if err != nil || !found {
			continue
		}
		var meta struct {
			LastUpdatedAt int64 `json:"lastUpdatedAt"`
		}
		if err := json.Unmarshal(data, &meta); err != nil {
			// Unparseable records are skipped, not reclaimed.
			continue
		}
		candidates = append(candidates, candidate{key: key, updated: meta.LastUpdatedAt})
	}

	if len(candidates) <= s.policy.MaxSessions {
		return
	}

	// Oldest first; SliceStable keeps the enumeration order on ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].updated < candidates[j].updated
	})

	evict := candidates[:len(candidates)-s.policy.MaxSessions]
	for _, c := range evict {
		if err := s.backend.Remove(c.key); err != nil {
			s.log.Warn("CaptureStore", "Failed to evict record", map[string]interface{}{
				"key":   c.key,
				"error": err.Error(),
			})
		}
	}
	s.log.Warn("CaptureStore", "Evicted stale capture sessions", map[string]interface{}{
		"prefix":  s.policy.KeyPrefix,
		"evicted": len(evict),
	})
}

// persist applies the size governor, writes the record, and on a quota
// failure evicts stale sessions and retries exactly once. Any remaining
// failure is logged and swallowed.
func (s *Store[E]) persist(rec *Record[E]) {
	data, ok := s.govern(rec)
	if !ok {
		return
	}

	err := s.backend.Set(s.key(rec.SessionID), data)
	if err == ErrQuotaExceeded {
		s.Evict()
		err = s.backend.Set(s.key(rec.SessionID), data)
	}
	if err != nil {
		s.log.Error("CaptureStore", "Failed to persist record, session continues without durable capture", map[string]interface{}{
			"session_id": rec.SessionID,
			"entries":    len(rec.Entries),
			"error":      err.Error(),
		})
	}
}

// govern enforces the policy's entry cap and the serialized byte ceiling,
// always keeping the most recent entries. This is a hard truncation: dropped
// entries are unrecoverable. The entry cap is applied eagerly on every write
// so serialization cost stays bounded regardless of entry size variance; if
// the capped record still exceeds the ceiling, the oldest half is dropped
// repeatedly until it fits.
func (s *Store[E]) govern(rec *Record[E]) ([]byte, bool) {
	if len(rec.Entries) > s.policy.MaxEntries {
		dropped := len(rec.Entries) - s.policy.MaxEntries
		rec.Entries = rec.Entries[dropped:]
		s.log.Warn("CaptureStore", "Record over entry cap, truncated oldest entries", map[string]interface{}{
			"session_id": rec.SessionID,
			"dropped":    dropped,
			"retained":   len(rec.Entries),
		})
	}

	data, err := json.Marshal(rec)
	if err != nil {
		s.log.Error("CaptureStore", "Failed to serialize record", map[string]interface{}{
			"session_id": rec.SessionID,
			"error":      err.Error(),
		})
		return nil, false
	}

	for len(data) > s.policy.MaxBytes && len(rec.Entries) > 0 {
		drop := len(rec.Entries) / 2
		if drop == 0 {
			drop = 1
		}
		rec.Entries = rec.Entries[drop:]
		s.log.Warn("CaptureStore", "Record over size ceiling, truncated oldest entries", map[string]interface{}{
			"session_id": rec.SessionID,
			"dropped":    drop,
			"retained":   len(rec.Entries),
		})
		data, err = json.Marshal(rec)
		if err != nil {
			s.log.Error("CaptureStore", "Failed to serialize record", map[string]interface{}{
				"session_id": rec.SessionID,
				"error":      err.Error(),
			})
			return nil, false
		}
	}
	return data, true
}
