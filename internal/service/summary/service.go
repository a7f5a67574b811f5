// Package summary runs the post-session enrichment pipeline: transcription,
// structured summarization and the session field updates that persist the
// results.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"theracare_server/internal/config"
	"theracare_server/internal/dao/mysql/repository"
	myredis "theracare_server/internal/dao/redis"
	"theracare_server/internal/dto/request"
	"theracare_server/internal/dto/respond"
	"theracare_server/internal/infrastructure/llm"
	"theracare_server/internal/service/schedule"
	"theracare_server/pkg/enum/therapy_session/session_status_enum"
	"theracare_server/pkg/errorx"
)

// Prompts sent with every summarization request. The format prompt defines
// the JSON contract parsed into respond.StructuredSummary; changing either
// side requires changing the other.
const (
	systemPrompt = "You are providing a summary of a therapy call between a counselor and a patient. " +
		"You must summarize the conversation in a way that is concise and easy to understand. " +
		"You must clearly define the areas that the patient said they were struggling with. " +
		"You must give a brief overview of the advice that the counselor gave to the patient. " +
		"You must only include advice that the counselor said."

	formatPrompt = "You need to respond with a json file containing the following fields.\n" +
		"warnings: an array of strings that each contain 5-10 words of warning from the therapist. \n" +
		"goals: an array of strings that each contain 5-10 words of the goals set by the patient.\n" +
		"insights: an array of strings that each contain 5-10 words of insights from the therapist.\n" +
		"advice: an array of strings that each contain 5-10 words of advice given by the counselor.\n" +
		"journalingPrompt: a 10-15 word journaling prompt that is based on the sessions overarching themes. \n" +
		"mood: a string that contains the 1-2 word mood of the patient. \n" +
		"progress: a string that contains the 1-2 word progress of the patient. \n" +
		"shortSummary: a 10-15 word summary of the session. \n" +
		"summary: a 50-75 word summary of the session written from the perspective of the group, using words like we. \n"
)

// Fallback labels when the model omits a field.
const (
	fallbackSummary  = "No summary provided"
	fallbackMood     = "Neutral"
	fallbackProgress = "Stable"
)

type summaryService struct {
	repos  *repository.Repositories
	cache  myredis.AsyncCacheService
	llm    llm.Client
	client *http.Client
}

// NewSummaryService wires the summary service.
func NewSummaryService(repos *repository.Repositories, cacheService myredis.AsyncCacheService, llmClient llm.Client) *summaryService {
	return &summaryService{
		repos: repos,
		cache: cacheService,
		llm:   llmClient,
		client: &http.Client{
			Timeout: 5 * time.Minute, // recordings can be large
		},
	}
}

// UpdateSession applies a partial update to a session's enrichment fields.
// Only fields present in the request are touched; an empty update is
// rejected rather than silently accepted.
func (s *summaryService) UpdateSession(sessionId string, req request.UpdateSessionRequest) error {
	updates := map[string]interface{}{}

	if req.Status != nil {
		normalized, ok := session_status_enum.Normalize(*req.Status)
		if !ok {
			return errorx.Newf(errorx.CodeInvalidParam, "unknown status %q", *req.Status)
		}
		updates["status"] = normalized
	}
	if req.Mood != nil {
		updates["mood"] = *req.Mood
	}
	if req.Progress != nil {
		updates["progress"] = *req.Progress
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.ShortSummary != nil {
		updates["short_summary"] = *req.ShortSummary
	}
	if req.KeyPoints != nil {
		updates["key_points"] = toJSONColumn(*req.KeyPoints)
	}
	if req.Insights != nil {
		updates["insights"] = toJSONColumn(*req.Insights)
	}
	if req.Goals != nil {
		updates["goals"] = toJSONColumn(*req.Goals)
	}
	if req.Warnings != nil {
		updates["warnings"] = toJSONColumn(*req.Warnings)
	}
	if req.Advice != nil {
		updates["advice"] = toJSONColumn(*req.Advice)
	}
	if req.Transcript != nil {
		updates["transcript"] = *req.Transcript
	}
	if req.JournalingPrompt != nil {
		updates["journaling_prompt"] = *req.JournalingPrompt
	}
	if req.JournalingResponse != nil {
		updates["journaling_response"] = *req.JournalingResponse
	}

	if len(updates) == 0 {
		return errorx.New(errorx.CodeInvalidParam, "no fields provided to update")
	}

	sess, err := s.repos.Session.FindByUuid(sessionId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "session not found")
		}
		zap.L().Error("failed to load session", zap.String("sessionId", sessionId), zap.Error(err))
		return errorx.ErrServerBusy
	}

	if err := s.repos.Session.UpdateFields(sessionId, updates); err != nil {
		zap.L().Error("failed to update session",
			zap.String("sessionId", sessionId), zap.Error(err))
		return errorx.ErrServerBusy
	}

	s.invalidateSessionCaches(sess.PatientId, sess.TherapistId)
	return nil
}

// GetSummary turns a transcript into a structured summary.
func (s *summaryService) GetSummary(req request.GetSummaryRequest) (*respond.StructuredSummary, error) {
	return s.summarize(context.Background(), req.Prompt)
}

func (s *summaryService) summarize(ctx context.Context, transcript string) (*respond.StructuredSummary, error) {
	userPrompt := fmt.Sprintf("This is the transcribed therapy appointment: %q", transcript)
	raw, err := s.llm.Complete(ctx, systemPrompt+"\n\n"+formatPrompt, userPrompt)
	if err != nil {
		zap.L().Error("summarization request failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	parsed, err := ParseStructuredSummary(raw)
	if err != nil {
		zap.L().Error("summarization returned unparseable content",
			zap.String("content", raw), zap.Error(err))
		return nil, errorx.New(errorx.CodeServerBusy, "summarizer returned malformed output")
	}
	return parsed, nil
}

// ParseStructuredSummary extracts the JSON object from a model completion.
// Models sometimes wrap the object in code fences or prose; everything
// outside the outermost braces is ignored.
func ParseStructuredSummary(content string) (*respond.StructuredSummary, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in completion")
	}

	var parsed respond.StructuredSummary
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		return nil, err
	}

	if parsed.Summary == "" {
		parsed.Summary = fallbackSummary
	}
	if parsed.Mood == "" {
		parsed.Mood = fallbackMood
	}
	if parsed.Progress == "" {
		parsed.Progress = fallbackProgress
	}
	return &parsed, nil
}

// Transcribe runs the full pipeline: download the recording, transcribe it,
// summarize the transcript and write everything onto the session.
func (s *summaryService) Transcribe(req request.GetTranscriptionRequest) (*respond.TranscriptionRespond, error) {
	sess, err := s.repos.Session.FindByUuid(req.SessionId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "session not found")
		}
		zap.L().Error("failed to load session", zap.String("sessionId", req.SessionId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	audioPath, err := s.downloadRecording(req.RecordingUrl, req.SessionId)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(audioPath); err != nil {
			zap.L().Warn("failed to remove downloaded recording",
				zap.String("path", audioPath), zap.Error(err))
		}
	}()

	ctx := context.Background()
	transcript, err := s.llm.Transcribe(ctx, audioPath)
	if err != nil {
		zap.L().Error("transcription failed",
			zap.String("sessionId", req.SessionId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	parsed, err := s.summarize(ctx, transcript)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"summary":           parsed.Summary,
		"short_summary":     parsed.ShortSummary,
		"insights":          toJSONColumn(parsed.Insights),
		"goals":             toJSONColumn(parsed.Goals),
		"warnings":          toJSONColumn(parsed.Warnings),
		"advice":            toJSONColumn(parsed.Advice),
		"mood":              parsed.Mood,
		"progress":          parsed.Progress,
		"transcript":        transcript,
		"journaling_prompt": parsed.JournalingPrompt,
		"status":            session_status_enum.COMPLETED,
	}
	if err := s.repos.Session.UpdateFields(req.SessionId, updates); err != nil {
		zap.L().Error("failed to persist transcription results",
			zap.String("sessionId", req.SessionId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	s.invalidateSessionCaches(sess.PatientId, sess.TherapistId)

	return &respond.TranscriptionRespond{
		SessionId:  req.SessionId,
		Transcript: transcript,
		Summary:    parsed,
	}, nil
}

// downloadRecording fetches the recording to local disk for the
// transcription API, which wants a file path.
func (s *summaryService) downloadRecording(url, sessionId string) (string, error) {
	dir := config.GetConfig().StaticSrcConfig.RecordingPath
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		zap.L().Error("failed to create recording dir", zap.String("dir", dir), zap.Error(err))
		return "", errorx.ErrServerBusy
	}

	resp, err := s.client.Get(url)
	if err != nil {
		zap.L().Error("failed to download recording", zap.String("url", url), zap.Error(err))
		return "", errorx.New(errorx.CodeInvalidParam, "recording could not be downloaded")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		zap.L().Error("recording download returned non-200",
			zap.String("url", url), zap.Int("status", resp.StatusCode))
		return "", errorx.New(errorx.CodeInvalidParam, "recording could not be downloaded")
	}

	path := filepath.Join(dir, fmt.Sprintf("recording_%s_%d.mp4", sessionId, time.Now().UnixNano()))
	out, err := os.Create(path)
	if err != nil {
		zap.L().Error("failed to create recording file", zap.String("path", path), zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = os.Remove(path)
		zap.L().Error("failed to write recording file", zap.String("path", path), zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	return path, nil
}

// AppendTranscript appends one spoken line to the per-room, per-day
// transcript file.
func (s *summaryService) AppendTranscript(req request.AppendTranscriptRequest) error {
	dir := config.GetConfig().StaticSrcConfig.TranscriptPath
	if dir == "" {
		dir = "transcriptions_saved"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		zap.L().Error("failed to create transcript dir", zap.String("dir", dir), zap.Error(err))
		return errorx.ErrServerBusy
	}

	now := time.Now()
	filename := fmt.Sprintf("transcript_%s_%s.txt", req.RoomName, now.Format("2006-01-02"))
	path := filepath.Join(dir, filename)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		zap.L().Error("failed to open transcript file", zap.String("path", path), zap.Error(err))
		return errorx.ErrServerBusy
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s: %s\n", now.Format("2006-01-02 15:04:05"), req.ParticipantName, req.Text)
	if _, err := f.WriteString(line); err != nil {
		zap.L().Error("failed to append transcript line", zap.String("path", path), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

func (s *summaryService) invalidateSessionCaches(patientId, therapistId string) {
	s.cache.SubmitTask(func() {
		if err := s.cache.DeleteByPatterns(context.Background(), []string{
			schedule.SessionListKey(patientId),
			schedule.SessionListKey(therapistId),
		}); err != nil {
			zap.L().Error("failed to invalidate session caches", zap.Error(err))
		}
	})
}

// toJSONColumn encodes a string slice for the json columns, preserving the
// "empty array, never null" convention of model.StringList.
func toJSONColumn(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}
