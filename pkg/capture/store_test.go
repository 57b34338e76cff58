package capture

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func newTestStore(t *testing.T) (*TranscriptStore, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend(0)
	store := NewTranscriptStore(backend, nil)
	store.SetClock(fixedClock(1000))
	return store, backend
}

func TestAppendAssignsSequenceNumbers(t *testing.T) {
	store, _ := newTestStore(t)
	store.Initialize("s1", "Test Session")

	for i := 0; i < 25; i++ {
		store.Append("s1", Segment{Text: fmt.Sprintf("utterance %d", i), Timestamp: int64(i * 100)})
	}

	rec := store.Read("s1")
	if rec == nil {
		t.Fatal("Read returned nil after appends")
	}
	if len(rec.Entries) != 25 {
		t.Fatalf("Entries = %d, want 25", len(rec.Entries))
	}
	for i, e := range rec.Entries {
		if e.SequenceNumber != i {
			t.Errorf("Entries[%d].SequenceNumber = %d, want %d", i, e.SequenceNumber, i)
		}
	}
}

func TestAppendRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	store.Initialize("s1", "Test Session")

	e1 := Segment{Text: "hello", Speaker: "A", Timestamp: 0}
	e2 := Segment{Text: "world", Speaker: "B", Timestamp: 5000}
	store.Append("s1", e1)
	store.Append("s1", e2)

	rec := store.Read("s1")
	if rec == nil {
		t.Fatal("Read returned nil")
	}

	want := []Segment{
		{SequenceNumber: 0, Text: "hello", Speaker: "A", Timestamp: 0},
		{SequenceNumber: 1, Text: "world", Speaker: "B", Timestamp: 5000},
	}
	for i, w := range want {
		if rec.Entries[i] != w {
			t.Errorf("Entries[%d] = %+v, want %+v", i, rec.Entries[i], w)
		}
	}
}

func TestAppendWithoutInitialize(t *testing.T) {
	store, _ := newTestStore(t)

	// Capture started before the call UI got to Initialize.
	store.Append("s1", Segment{Text: "early", Timestamp: 0})

	rec := store.Read("s1")
	if rec == nil {
		t.Fatal("implicit initialize did not create a record")
	}
	if rec.Label != TranscriptPolicy().DefaultLabel {
		t.Errorf("Label = %q, want default %q", rec.Label, TranscriptPolicy().DefaultLabel)
	}
	if len(rec.Entries) != 1 || rec.Entries[0].SequenceNumber != 0 {
		t.Errorf("unexpected entries after implicit initialize: %+v", rec.Entries)
	}
}

func TestMarkCompleteIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	store.Initialize("s1", "Test Session")

	store.SetClock(fixedClock(6000))
	store.MarkComplete("s1")
	first := store.Read("s1")

	store.SetClock(fixedClock(9000))
	store.MarkComplete("s1")
	second := store.Read("s1")

	if !first.IsComplete || !second.IsComplete {
		t.Fatal("record not complete after MarkComplete")
	}
	if second.CompletedAt != first.CompletedAt {
		t.Errorf("CompletedAt changed on second MarkComplete: %d -> %d", first.CompletedAt, second.CompletedAt)
	}
	if second.LastUpdatedAt < first.LastUpdatedAt {
		t.Errorf("LastUpdatedAt went backwards: %d -> %d", first.LastUpdatedAt, second.LastUpdatedAt)
	}
}

func TestMarkCompleteAbsentSessionIsNoop(t *testing.T) {
	store, backend := newTestStore(t)
	store.MarkComplete("never-initialized")

	keys, _ := backend.Keys(TranscriptPolicy().KeyPrefix)
	if len(keys) != 0 {
		t.Errorf("MarkComplete on absent session created keys: %v", keys)
	}
}

func TestAppendAfterCompleteKeepsFlag(t *testing.T) {
	store, _ := newTestStore(t)
	store.Initialize("s1", "Test Session")
	store.MarkComplete("s1")

	store.Append("s1", Segment{Text: "late", Timestamp: 7000})

	rec := store.Read("s1")
	if !rec.IsComplete {
		t.Error("IsComplete reverted after post-completion append")
	}
	if len(rec.Entries) != 1 {
		t.Errorf("post-completion append lost: entries = %d", len(rec.Entries))
	}
}

func TestEntryCapTruncatesOldest(t *testing.T) {
	store, _ := newTestStore(t)
	store.Initialize("s1", "Test Session")

	for i := 0; i < 1200; i++ {
		store.Append("s1", Segment{Text: fmt.Sprintf("segment %d", i), Timestamp: int64(i)})
	}

	rec := store.Read("s1")
	if len(rec.Entries) != 1000 {
		t.Fatalf("Entries = %d, want 1000", len(rec.Entries))
	}
	// The oldest 200 are gone; the survivor at index 0 was original index 200.
	if rec.Entries[0].Text != "segment 200" {
		t.Errorf("Entries[0].Text = %q, want %q", rec.Entries[0].Text, "segment 200")
	}
}

func TestSizeCeilingHolds(t *testing.T) {
	store, _ := newTestStore(t)
	store.Initialize("s1", "Test Session")

	// ~64 KiB per segment; 100 of them is well past 5 MiB before governing.
	big := strings.Repeat("x", 64*1024)
	for i := 0; i < 100; i++ {
		store.Append("s1", Segment{Text: big, Timestamp: int64(i)})
	}

	rec := store.Read("s1")
	if rec == nil {
		t.Fatal("Read returned nil")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(data) > MaxRecordBytes {
		t.Errorf("serialized size = %d, want <= %d", len(data), MaxRecordBytes)
	}
	if len(rec.Entries) == 0 {
		t.Error("governor dropped every entry")
	}
}

func TestEvictKeepsMostRecentlyUpdated(t *testing.T) {
	store, _ := newTestStore(t)

	for i := 0; i < 12; i++ {
		store.SetClock(fixedClock(int64(1000 + i)))
		store.Initialize(fmt.Sprintf("s%d", i), "Test Session")
	}

	store.Evict()

	// s0 and s1 are the least recently updated; the newest 10 survive.
	for i := 0; i < 12; i++ {
		rec := store.Read(fmt.Sprintf("s%d", i))
		if i < 2 && rec != nil {
			t.Errorf("s%d should have been evicted", i)
		}
		if i >= 2 && rec == nil {
			t.Errorf("s%d should have survived eviction", i)
		}
	}
}

func TestEvictSkipsUnparseableRecords(t *testing.T) {
	store, backend := newTestStore(t)

	backend.Set(TranscriptPolicy().KeyPrefix+"corrupt", []byte("{not json"))
	for i := 0; i < 11; i++ {
		store.SetClock(fixedClock(int64(1000 + i)))
		store.Initialize(fmt.Sprintf("s%d", i), "Test Session")
	}

	store.Evict()

	if _, found, _ := backend.Get(TranscriptPolicy().KeyPrefix + "corrupt"); !found {
		t.Error("eviction reclaimed an unparseable record instead of skipping it")
	}
}

func TestQuotaTriggersEvictionAndRetry(t *testing.T) {
	// An empty record serializes to a bit over 100 bytes, so this quota fits
	// eleven of them but not twelve: the 12th write fails, evicts the stale
	// sessions, and succeeds on retry.
	backend := NewMemoryBackend(1200)
	store := NewTranscriptStore(backend, nil)

	for i := 0; i < 12; i++ {
		store.SetClock(fixedClock(int64(1000 + i)))
		store.Initialize(fmt.Sprintf("s%d", i), "Test Session")
	}

	if rec := store.Read("s11"); rec == nil {
		t.Error("write after quota exhaustion did not succeed post-eviction")
	}
	keys, _ := backend.Keys(TranscriptPolicy().KeyPrefix)
	if len(keys) > MaxSessions+1 {
		t.Errorf("retained sessions = %d, want <= %d", len(keys), MaxSessions+1)
	}
}

func TestReadCorruptRecordReturnsNil(t *testing.T) {
	store, backend := newTestStore(t)
	backend.Set(TranscriptPolicy().KeyPrefix+"s1", []byte("{not json"))

	if rec := store.Read("s1"); rec != nil {
		t.Errorf("Read of corrupt record = %+v, want nil", rec)
	}

	// A write replaces the corrupt value outright.
	store.Append("s1", Segment{Text: "fresh", Timestamp: 0})
	rec := store.Read("s1")
	if rec == nil || len(rec.Entries) != 1 {
		t.Fatalf("append did not overwrite corrupt record: %+v", rec)
	}
}

func TestClearIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	store.Initialize("s1", "Test Session")

	store.Clear("s1")
	store.Clear("s1")

	if rec := store.Read("s1"); rec != nil {
		t.Errorf("Read after Clear = %+v, want nil", rec)
	}
}

func TestInitializeOverwritesExistingRecord(t *testing.T) {
	store, _ := newTestStore(t)
	store.Initialize("s1", "First")
	store.Append("s1", Segment{Text: "old", Timestamp: 0})

	store.Initialize("s1", "Second")

	rec := store.Read("s1")
	if len(rec.Entries) != 0 {
		t.Errorf("Initialize did not reset entries: %d left", len(rec.Entries))
	}
	if rec.Label != "Second" {
		t.Errorf("Label = %q, want %q", rec.Label, "Second")
	}
}

func TestEmptySessionIDRejected(t *testing.T) {
	store, backend := newTestStore(t)
	store.Initialize("", "Test Session")
	store.Append("", Segment{Text: "x"})

	keys, _ := backend.Keys("")
	if len(keys) != 0 {
		t.Errorf("empty session id produced keys: %v", keys)
	}
}

func TestLastUpdatedAtNeverBeforeStartedAt(t *testing.T) {
	store, _ := newTestStore(t)
	store.SetClock(fixedClock(5000))
	store.Initialize("s1", "Test Session")

	store.SetClock(fixedClock(6000))
	store.Append("s1", Segment{Text: "a", Timestamp: 6000})

	rec := store.Read("s1")
	if rec.LastUpdatedAt < rec.StartedAt {
		t.Errorf("LastUpdatedAt %d < StartedAt %d", rec.LastUpdatedAt, rec.StartedAt)
	}
	if rec.StartedAt != 5000 {
		t.Errorf("StartedAt = %d, want 5000", rec.StartedAt)
	}
}

func TestEmotionStoreIndependentNamespace(t *testing.T) {
	backend := NewMemoryBackend(0)
	segments := NewTranscriptStore(backend, nil)
	emotions := NewEmotionStore(backend, nil)

	segments.Initialize("s1", "Test Session")
	emotions.Initialize("s1", "Test Session")
	emotions.Append("s1", Detection{ParticipantID: "p1", Scores: Scores{Happy: 0.9}, Timestamp: 100})

	if rec := segments.Read("s1"); len(rec.Entries) != 0 {
		t.Error("emotion append leaked into transcript namespace")
	}
	if rec := emotions.Read("s1"); len(rec.Entries) != 1 {
		t.Error("emotion record missing its entry")
	}
}
