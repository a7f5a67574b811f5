// Package request defines the HTTP request payloads.
// This file holds the transcription/summary pipeline payloads.
package request

// GetSummaryRequest turns a transcript into a structured summary.
type GetSummaryRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// GetTranscriptionRequest runs the full pipeline for one recorded session:
// download the recording, transcribe it, summarize the transcript and write
// everything onto the session.
type GetTranscriptionRequest struct {
	SessionId    string `json:"sessionId" binding:"required"`
	RecordingUrl string `json:"recordingUrl" binding:"required,url"`
}

// AppendTranscriptRequest appends one spoken line to the per-room transcript
// file, as dictated live from the video room.
type AppendTranscriptRequest struct {
	RoomName        string `json:"roomName" binding:"required"`
	ParticipantName string `json:"participantName" binding:"required"`
	Text            string `json:"text" binding:"required"`
}
