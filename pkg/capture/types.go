package capture

// Record is the full locally persisted state for one call's capture stream.
// One record exists per (entry kind, session id). Entries are append-only
// while the session is active; insertion order equals arrival order.
type Record[E any] struct {
	SessionID string `json:"sessionId"`
	Label     string `json:"label,omitempty"`
	Entries   []E    `json:"entries"`

	// Wall-clock milliseconds. StartedAt is immutable after initialization,
	// LastUpdatedAt is bumped on every mutating operation.
	StartedAt     int64 `json:"startedAt"`
	LastUpdatedAt int64 `json:"lastUpdatedAt"`

	// CompletedAt is set the first time the record is marked complete.
	// Appends after completion keep bumping LastUpdatedAt but never touch this.
	CompletedAt int64 `json:"completedAt,omitempty"`

	IsComplete bool `json:"isComplete"`
}

// Segment is one transcribed utterance from the live call.
type Segment struct {
	// SequenceNumber is assigned by the store at append time and equals the
	// entry's index in the record. Never reused or reordered.
	SequenceNumber int    `json:"sequenceNumber"`
	Text           string `json:"text"`
	Speaker        string `json:"speaker,omitempty"`
	ParticipantID  string `json:"participantId,omitempty"`
	Timestamp      int64  `json:"timestamp"` // wall-clock ms
}

// SetSequence implements the store's sequencing hook.
func (s *Segment) SetSequence(n int) {
	s.SequenceNumber = n
}

// Scores holds the fixed seven-channel emotion vector. Each channel is a
// fraction in [0,1]; the channels sum roughly to 1 but this is not enforced.
type Scores struct {
	Happy     float64 `json:"happy"`
	Sad       float64 `json:"sad"`
	Angry     float64 `json:"angry"`
	Fearful   float64 `json:"fearful"`
	Disgusted float64 `json:"disgusted"`
	Surprised float64 `json:"surprised"`
	Neutral   float64 `json:"neutral"`
}

// Detection is one facial-emotion inference result for a participant.
type Detection struct {
	ParticipantID   string `json:"participantId"`
	ParticipantName string `json:"participantName,omitempty"`
	Scores          Scores `json:"scores"`
	Timestamp       int64  `json:"timestamp"` // wall-clock ms
}
