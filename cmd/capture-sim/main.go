// Simulates a short interview against the file-backed capture buffers.
// Useful for eyeballing the report payloads without running the full server.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"time"

	"bionic-interviewer-be/pkg/capture"

	"github.com/fatih/color"
)

func main() {
	dir := flag.String("dir", "./capture-sim", "directory for the file backend")
	flag.Parse()

	backend, err := capture.NewFileBackend(*dir)
	if err != nil {
		log.Fatalf("file backend: %v", err)
	}

	transcripts := capture.NewTranscriptStore(backend, capture.NopLogger)
	emotions := capture.NewEmotionStore(backend, capture.NopLogger)

	tRec := capture.NewTranscriptRecorder(transcripts)
	eRec := capture.NewEmotionRecorder(emotions)

	sessionID := "sim-session"
	start := time.Now().UnixMilli()

	color.Cyan("Starting capture session %s", sessionID)
	tRec.Start(sessionID, "Simulated Interview")
	eRec.Start(sessionID, "Simulated Interview")

	lines := []struct {
		speaker string
		text    string
	}{
		{"Host", "Thanks for joining, can you introduce yourself?"},
		{"Candidate", "Sure, I have been building backend systems for six years."},
		{"Host", "Walk me through a production incident you handled."},
		{"Candidate", "We had a cache stampede after a deploy, I added request coalescing."},
	}

	for i, line := range lines {
		tRec.OnTranscription(sessionID, capture.TranscriptionEvent{
			Text:          line.text,
			UserName:      line.speaker,
			ParticipantID: "p-" + line.speaker,
			Timestamp:     start + int64(i)*7000,
		})
		eRec.OnDetection(sessionID, capture.DetectionEvent{
			ParticipantID:   "p-" + line.speaker,
			ParticipantName: line.speaker,
			Expressions:     capture.Scores{Happy: 0.42, Neutral: 0.5, Surprised: 0.08},
			Timestamp:       start + int64(i)*7000,
		})
		color.White("  [%s] %s", line.speaker, line.text)
	}

	tRec.Complete(sessionID)
	eRec.Complete(sessionID)

	transcriptReport := tRec.Export(sessionID)
	emotionReport := eRec.Export(sessionID)

	color.Green("Transcript report:")
	printJSON(transcriptReport)
	color.Green("Emotion report:")
	printJSON(emotionReport)

	color.Yellow("Buffers kept under %s. Run again to exercise eviction.", *dir)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	color.White("%s", data)
}
