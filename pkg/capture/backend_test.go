package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryBackendQuota(t *testing.T) {
	b := NewMemoryBackend(10)

	assert.NoError(t, b.Set("a", []byte("12345")))
	assert.NoError(t, b.Set("b", []byte("12345")))
	assert.ErrorIs(t, b.Set("c", []byte("1")), ErrQuotaExceeded)

	// Overwriting an existing key only accounts for the delta.
	assert.NoError(t, b.Set("a", []byte("123")))
	assert.NoError(t, b.Set("c", []byte("12")))

	// Removing frees the space again.
	assert.NoError(t, b.Remove("b"))
	assert.NoError(t, b.Set("d", []byte("12345")))
}

func TestMemoryBackendKeys(t *testing.T) {
	b := NewMemoryBackend(0)
	b.Set("transcript_buffer_s2", []byte("x"))
	b.Set("transcript_buffer_s1", []byte("x"))
	b.Set("emotion_buffer_s1", []byte("x"))

	keys, err := b.Keys("transcript_buffer_")
	assert.NoError(t, err)
	assert.Equal(t, []string{"transcript_buffer_s1", "transcript_buffer_s2"}, keys)
}

func TestFileBackendRoundTrip(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	assert.NoError(t, err)

	_, found, err := b.Get("transcript_buffer_s1")
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, b.Set("transcript_buffer_s1", []byte(`{"sessionId":"s1"}`)))

	data, found, err := b.Get("transcript_buffer_s1")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"sessionId":"s1"}`, string(data))

	keys, err := b.Keys("transcript_buffer_")
	assert.NoError(t, err)
	assert.Equal(t, []string{"transcript_buffer_s1"}, keys)

	assert.NoError(t, b.Remove("transcript_buffer_s1"))
	assert.NoError(t, b.Remove("transcript_buffer_s1")) // idempotent

	_, found, _ = b.Get("transcript_buffer_s1")
	assert.False(t, found)
}

func TestFileBackendSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	b1, err := NewFileBackend(dir)
	assert.NoError(t, err)

	store := NewTranscriptStore(b1, nil)
	store.SetClock(fixedClock(1000))
	store.Initialize("s1", "Test Session")
	store.Append("s1", Segment{Text: "persisted", Timestamp: 1000})

	// A new backend over the same directory sees the record, the way a
	// reloaded tab sees localStorage.
	b2, err := NewFileBackend(dir)
	assert.NoError(t, err)

	reopened := NewTranscriptStore(b2, nil)
	rec := reopened.Read("s1")
	assert.NotNil(t, rec)
	assert.Len(t, rec.Entries, 1)
	assert.Equal(t, "persisted", rec.Entries[0].Text)
}
