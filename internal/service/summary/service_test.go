package summary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"theracare_server/internal/dao/mysql/repository"
	"theracare_server/internal/dto/request"
	"theracare_server/internal/model"
	"theracare_server/pkg/enum/therapy_session/session_status_enum"
	"theracare_server/pkg/errorx"
)

// memoryCache satisfies the async cache dependency without Redis. Tasks run
// synchronously so tests see cache effects immediately.
type memoryCache struct {
	mu    sync.Mutex
	store map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: map[string]string{}}
}

func (m *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store[key], nil
}

func (m *memoryCache) GetOrError(ctx context.Context, key string) (string, error) {
	v, _ := m.Get(ctx, key)
	if v == "" {
		return "", errorx.New(errorx.CodeNotFound, "cache miss")
	}
	return v, nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}

func (m *memoryCache) DeleteByPattern(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = map[string]string{}
	return nil
}

func (m *memoryCache) DeleteByPatterns(ctx context.Context, patterns []string) error {
	for _, p := range patterns {
		if err := m.DeleteByPattern(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryCache) SubmitTask(action func()) {
	action()
}

// fakeLLM returns canned completions and transcripts.
type fakeLLM struct {
	completion string
	transcript string
	lastSystem string
	lastUser   string
}

func (f *fakeLLM) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	return f.completion, nil
}

func (f *fakeLLM) Transcribe(_ context.Context, _ string) (string, error) {
	return f.transcript, nil
}

var dbSeq int

func newTestService(t *testing.T, llmClient *fakeLLM) (*summaryService, *repository.Repositories) {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:summary_test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.TherapySession{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repos := repository.NewRepositories(db)
	return NewSummaryService(repos, newMemoryCache(), llmClient), repos
}

func seedSession(t *testing.T, repos *repository.Repositories, uuid string) {
	t.Helper()
	sess := &model.TherapySession{
		Uuid:        uuid,
		PatientId:   "Upatient00001",
		TherapistId: "Utherapist001",
		SessionDate: time.Now().Add(24 * time.Hour),
		Status:      session_status_enum.SCHEDULED,
	}
	if err := repos.Session.Create(sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func strPtr(s string) *string { return &s }

func TestParseStructuredSummary(t *testing.T) {
	clean := `{"summary":"We discussed anxiety.","shortSummary":"Anxiety session","mood":"Anxious",` +
		`"progress":"Improving","goals":["sleep earlier"],"warnings":[],"insights":["triggers at work"],` +
		`"advice":["try breathing exercises"],"journalingPrompt":"Write about one calm moment today."}`

	tests := []struct {
		name    string
		content string
	}{
		{"clean json", clean},
		{"code fenced", "```json\n" + clean + "\n```"},
		{"prose wrapped", "Here is the summary you asked for:\n" + clean + "\nLet me know if you need more."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseStructuredSummary(tt.content)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if parsed.Summary != "We discussed anxiety." {
				t.Errorf("summary = %q", parsed.Summary)
			}
			if parsed.Mood != "Anxious" || parsed.Progress != "Improving" {
				t.Errorf("mood/progress = %q/%q", parsed.Mood, parsed.Progress)
			}
			if len(parsed.Goals) != 1 || parsed.Goals[0] != "sleep earlier" {
				t.Errorf("goals = %v", parsed.Goals)
			}
		})
	}
}

func TestParseStructuredSummaryAppliesFallbacks(t *testing.T) {
	parsed, err := ParseStructuredSummary(`{"goals":["rest more"]}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Summary != fallbackSummary {
		t.Errorf("summary = %q, want %q", parsed.Summary, fallbackSummary)
	}
	if parsed.Mood != fallbackMood {
		t.Errorf("mood = %q, want %q", parsed.Mood, fallbackMood)
	}
	if parsed.Progress != fallbackProgress {
		t.Errorf("progress = %q, want %q", parsed.Progress, fallbackProgress)
	}
}

func TestParseStructuredSummaryNoObject(t *testing.T) {
	if _, err := ParseStructuredSummary("the model refused to answer"); err == nil {
		t.Fatal("expected an error for brace-free content")
	}
}

func TestGetSummarySendsTranscriptAndPrompts(t *testing.T) {
	llmClient := &fakeLLM{completion: `{"summary":"We worked on grounding.","mood":"Calm","progress":"Steady"}`}
	svc, _ := newTestService(t, llmClient)

	out, err := svc.GetSummary(request.GetSummaryRequest{Prompt: "patient: I feel better"})
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if out.Summary != "We worked on grounding." {
		t.Errorf("summary = %q", out.Summary)
	}
	if !strings.Contains(llmClient.lastUser, "patient: I feel better") {
		t.Error("transcript missing from the user prompt")
	}
	if !strings.Contains(llmClient.lastSystem, "journalingPrompt") {
		t.Error("format contract missing from the system prompt")
	}
}

func TestUpdateSessionRejectsEmptyUpdate(t *testing.T) {
	svc, repos := newTestService(t, &fakeLLM{})
	seedSession(t, repos, "S-empty")

	err := svc.UpdateSession("S-empty", request.UpdateSessionRequest{})
	if err == nil {
		t.Fatal("empty update should be rejected")
	}
	if code := errorx.GetCode(err); code != errorx.CodeInvalidParam {
		t.Errorf("code = %d, want %d", code, errorx.CodeInvalidParam)
	}
}

func TestUpdateSessionNormalizesStatus(t *testing.T) {
	svc, repos := newTestService(t, &fakeLLM{})
	seedSession(t, repos, "S-status")

	if err := svc.UpdateSession("S-status", request.UpdateSessionRequest{
		Status: strPtr("upcoming"),
	}); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}

	sess, err := repos.Session.FindByUuid("S-status")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if sess.Status != session_status_enum.SCHEDULED {
		t.Errorf("status = %q, want %q", sess.Status, session_status_enum.SCHEDULED)
	}
}

func TestUpdateSessionUnknownStatus(t *testing.T) {
	svc, repos := newTestService(t, &fakeLLM{})
	seedSession(t, repos, "S-bad")

	err := svc.UpdateSession("S-bad", request.UpdateSessionRequest{Status: strPtr("postponed")})
	if code := errorx.GetCode(err); code != errorx.CodeInvalidParam {
		t.Errorf("code = %d, want %d", code, errorx.CodeInvalidParam)
	}
}

func TestUpdateSessionTouchesOnlyGivenFields(t *testing.T) {
	svc, repos := newTestService(t, &fakeLLM{})
	seedSession(t, repos, "S-partial")

	if err := svc.UpdateSession("S-partial", request.UpdateSessionRequest{
		Mood:  strPtr("Hopeful"),
		Goals: &[]string{"walk daily"},
	}); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}

	sess, err := repos.Session.FindByUuid("S-partial")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if sess.Mood != "Hopeful" {
		t.Errorf("mood = %q", sess.Mood)
	}
	if len(sess.Goals) != 1 || sess.Goals[0] != "walk daily" {
		t.Errorf("goals = %v", sess.Goals)
	}
	if sess.Status != session_status_enum.SCHEDULED {
		t.Errorf("status changed to %q", sess.Status)
	}
	if sess.Summary != "" {
		t.Errorf("summary changed to %q", sess.Summary)
	}
}

func TestUpdateSessionNotFound(t *testing.T) {
	svc, _ := newTestService(t, &fakeLLM{})

	err := svc.UpdateSession("S-missing", request.UpdateSessionRequest{Mood: strPtr("Calm")})
	if code := errorx.GetCode(err); code != errorx.CodeNotFound {
		t.Errorf("code = %d, want %d", code, errorx.CodeNotFound)
	}
}

func TestAppendTranscriptWritesLine(t *testing.T) {
	svc, _ := newTestService(t, &fakeLLM{})

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	}()

	err = svc.AppendTranscript(request.AppendTranscriptRequest{
		RoomName:        "room-42",
		ParticipantName: "Alex Doe",
		Text:            "I had a calmer week.",
	})
	if err != nil {
		t.Fatalf("AppendTranscript: %v", err)
	}

	path := filepath.Join("transcriptions_saved",
		fmt.Sprintf("transcript_room-42_%s.txt", time.Now().Format("2006-01-02")))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "Alex Doe: I had a calmer week.") {
		t.Errorf("line = %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("transcript lines should end with a newline")
	}
}
