// Package respond defines the HTTP response payloads.
// This file holds the structured summary produced by the LLM pipeline.
package respond

// StructuredSummary is the JSON contract the summarizer model is instructed
// to emit for one transcribed therapy appointment.
type StructuredSummary struct {
	Warnings         []string `json:"warnings"`
	Goals            []string `json:"goals"`
	Insights         []string `json:"insights"`
	Advice           []string `json:"advice"`
	JournalingPrompt string   `json:"journalingPrompt"`
	Mood             string   `json:"mood"`
	Progress         string   `json:"progress"`
	ShortSummary     string   `json:"shortSummary"`
	Summary          string   `json:"summary"`
}

// TranscriptionRespond reports the pipeline outcome for one recording.
type TranscriptionRespond struct {
	SessionId  string             `json:"sessionId"`
	Transcript string             `json:"transcript"`
	Summary    *StructuredSummary `json:"summary,omitempty"`
}
