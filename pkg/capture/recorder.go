package capture

// TranscriptionEvent is the shape of an inbound transcription message from
// the video SDK (one utterance per event).
type TranscriptionEvent struct {
	Text          string
	UserName      string
	ParticipantID string
	Timestamp     int64 // wall-clock ms
}

// DetectionEvent is the shape of an inbound facial-expression inference
// result from the face-expression model.
type DetectionEvent struct {
	ParticipantID   string
	ParticipantName string
	Expressions     Scores
	Timestamp       int64 // wall-clock ms
}

// TranscriptRecorder adapts raw transcription events into the segment store.
// One recorder serves all sessions; the session id rides on each call.
type TranscriptRecorder struct {
	store *TranscriptStore
}

func NewTranscriptRecorder(store *TranscriptStore) *TranscriptRecorder {
	return &TranscriptRecorder{store: store}
}

// Start opens the capture buffer for a session.
func (r *TranscriptRecorder) Start(sessionID, label string) {
	r.store.Initialize(sessionID, label)
}

// OnTranscription records one utterance. Fire-and-forget: the live call is
// never interrupted by a capture failure.
func (r *TranscriptRecorder) OnTranscription(sessionID string, ev TranscriptionEvent) {
	r.store.Append(sessionID, Segment{
		Text:          ev.Text,
		Speaker:       ev.UserName,
		ParticipantID: ev.ParticipantID,
		Timestamp:     ev.Timestamp,
	})
}

// Complete marks the session finished, typically when the call ends.
func (r *TranscriptRecorder) Complete(sessionID string) {
	r.store.MarkComplete(sessionID)
}

// Export converts the buffered session into the upstream report shape, or
// nil when nothing was captured.
func (r *TranscriptRecorder) Export(sessionID string) *TranscriptReport {
	rec := r.store.Read(sessionID)
	if rec == nil {
		return nil
	}
	return ConvertTranscript(rec)
}

// Discard drops the buffered session, typically after a successful upload.
func (r *TranscriptRecorder) Discard(sessionID string) {
	r.store.Clear(sessionID)
}

// EmotionRecorder adapts raw face-expression detections into the detection
// store.
type EmotionRecorder struct {
	store *EmotionStore
}

func NewEmotionRecorder(store *EmotionStore) *EmotionRecorder {
	return &EmotionRecorder{store: store}
}

// Start opens the capture buffer for a session.
func (r *EmotionRecorder) Start(sessionID, label string) {
	r.store.Initialize(sessionID, label)
}

// OnDetection records one inference result. Fire-and-forget.
func (r *EmotionRecorder) OnDetection(sessionID string, ev DetectionEvent) {
	r.store.Append(sessionID, Detection{
		ParticipantID:   ev.ParticipantID,
		ParticipantName: ev.ParticipantName,
		Scores:          ev.Expressions,
		Timestamp:       ev.Timestamp,
	})
}

// Complete marks the session finished.
func (r *EmotionRecorder) Complete(sessionID string) {
	r.store.MarkComplete(sessionID)
}

// Export converts the buffered session into the upstream report shape, or
// nil when nothing was captured.
func (r *EmotionRecorder) Export(sessionID string) *EmotionReport {
	rec := r.store.Read(sessionID)
	if rec == nil {
		return nil
	}
	return ConvertEmotions(rec)
}

// Discard drops the buffered session.
func (r *EmotionRecorder) Discard(sessionID string) {
	r.store.Clear(sessionID)
}
