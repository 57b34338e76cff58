package capture

import (
	"math"
	"time"
)

// segmentDurationSeconds is the fixed per-segment duration estimate used for
// end_time. No authoritative segment end time exists at this layer, so this
// is a documented approximation, not a measured value.
const segmentDurationSeconds = 5

// TranscriptReport is the structured transcript payload the ingestion
// endpoint consumes.
type TranscriptReport struct {
	Segments        []ReportSegment `json:"segments"`
	StartedAt       string          `json:"started_at"`
	EndedAt         *string         `json:"ended_at"`
	DurationSeconds int             `json:"duration_seconds"`
}

// ReportSegment is one transcript segment on the wire. Times are seconds
// relative to the session start.
type ReportSegment struct {
	Speaker       *string `json:"speaker"`
	ParticipantID string  `json:"participantId,omitempty"`
	Text          string  `json:"text"`
	StartTime     float64 `json:"start_time"`
	EndTime       float64 `json:"end_time"`
	Timestamp     int64   `json:"timestamp"`
}

// EmotionReport is the structured emotion payload the ingestion endpoint
// consumes.
type EmotionReport struct {
	Detections      []ReportDetection `json:"detections"`
	StartedAt       string            `json:"started_at"`
	EndedAt         *string           `json:"ended_at"`
	DurationSeconds int               `json:"duration_seconds"`
}

// ReportDetection is one emotion detection on the wire, with each channel
// rescaled to an integer percentage.
type ReportDetection struct {
	ParticipantID   string      `json:"participantId"`
	ParticipantName string      `json:"participantName,omitempty"`
	Timestamp       int64       `json:"timestamp"`
	Emotions        Percentages `json:"emotions"`
}

// Percentages is the seven-channel emotion vector rescaled to [0,100].
type Percentages struct {
	Happy     int `json:"happy"`
	Sad       int `json:"sad"`
	Angry     int `json:"angry"`
	Fearful   int `json:"fearful"`
	Disgusted int `json:"disgusted"`
	Surprised int `json:"surprised"`
	Neutral   int `json:"neutral"`
}

func isoMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

// reportTimes derives the shared started_at / ended_at / duration_seconds
// triple. ended_at stays null while the record is incomplete; the duration
// then falls back to the last update instead of the completion time.
func reportTimes[E any](rec *Record[E]) (startedAt string, endedAt *string, durationSeconds int) {
	startedAt = isoMillis(rec.StartedAt)

	end := rec.LastUpdatedAt
	if rec.IsComplete {
		end = rec.CompletedAt
		iso := isoMillis(end)
		endedAt = &iso
	}
	durationSeconds = int(math.Round(float64(end-rec.StartedAt) / 1000.0))
	return startedAt, endedAt, durationSeconds
}

// ConvertTranscript maps a session record into the transcript report shape.
// Pure and deterministic: converting the same unchanged record twice yields
// identical output, so it is safe to export early and again after completion.
func ConvertTranscript(rec *Record[Segment]) *TranscriptReport {
	segments := make([]ReportSegment, 0, len(rec.Entries))
	for _, e := range rec.Entries {
		start := float64(e.Timestamp-rec.StartedAt) / 1000.0

		var speaker *string
		if e.Speaker != "" {
			spk := e.Speaker
			speaker = &spk
		}

		segments = append(segments, ReportSegment{
			Speaker:       speaker,
			ParticipantID: e.ParticipantID,
			Text:          e.Text,
			StartTime:     start,
			EndTime:       start + segmentDurationSeconds,
			Timestamp:     e.Timestamp,
		})
	}

	startedAt, endedAt, duration := reportTimes(rec)
	return &TranscriptReport{
		Segments:        segments,
		StartedAt:       startedAt,
		EndedAt:         endedAt,
		DurationSeconds: duration,
	}
}

// ConvertEmotions maps a session record into the emotion report shape,
// rescaling each [0,1] channel to an integer percentage by rounding.
// Participant identity and timestamps pass through unchanged.
func ConvertEmotions(rec *Record[Detection]) *EmotionReport {
	detections := make([]ReportDetection, 0, len(rec.Entries))
	for _, e := range rec.Entries {
		detections = append(detections, ReportDetection{
			ParticipantID:   e.ParticipantID,
			ParticipantName: e.ParticipantName,
			Timestamp:       e.Timestamp,
			Emotions: Percentages{
				Happy:     toPercent(e.Scores.Happy),
				Sad:       toPercent(e.Scores.Sad),
				Angry:     toPercent(e.Scores.Angry),
				Fearful:   toPercent(e.Scores.Fearful),
				Disgusted: toPercent(e.Scores.Disgusted),
				Surprised: toPercent(e.Scores.Surprised),
				Neutral:   toPercent(e.Scores.Neutral),
			},
		})
	}

	startedAt, endedAt, duration := reportTimes(rec)
	return &EmotionReport{
		Detections:      detections,
		StartedAt:       startedAt,
		EndedAt:         endedAt,
		DurationSeconds: duration,
	}
}

func toPercent(score float64) int {
	return int(math.Round(score * 100))
}
