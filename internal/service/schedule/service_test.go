package schedule

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"theracare_server/internal/dao/mysql/repository"
	"theracare_server/internal/dto/request"
	"theracare_server/internal/model"
	"theracare_server/pkg/enum/therapy_session/session_status_enum"
	"theracare_server/pkg/enum/user_info/role_enum"
	"theracare_server/pkg/enum/user_info/user_status_enum"
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

var svcDBSeq int

func newTestService(t *testing.T) (*scheduleService, *repository.Repositories, *memoryCache) {
	t.Helper()
	svcDBSeq++
	dsn := fmt.Sprintf("file:schedule_test_%d?mode=memory&cache=shared", svcDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.UserInfo{}, &model.TherapySession{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repos := repository.NewRepositories(db)
	cache := newMemoryCache()
	return NewScheduleService(repos, cache), repos, cache
}

func seedUser(t *testing.T, repos *repository.Repositories, uuid, role, first, last string) {
	t.Helper()
	err := repos.User.Create(&model.UserInfo{
		Uuid:        uuid,
		Email:       uuid + "@example.com",
		FirstName:   first,
		LastName:    last,
		Role:        role,
		Status:      user_status_enum.NORMAL,
		RawPassword: "test-password",
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", uuid, err)
	}
}

func seedPair(t *testing.T, repos *repository.Repositories) (patientId, therapistId string) {
	t.Helper()
	patientId, therapistId = "Upatient00001", "Utherapist001"
	seedUser(t, repos, patientId, role_enum.PATIENT, "Pat", "Ient")
	seedUser(t, repos, therapistId, role_enum.THERAPIST, "Thera", "Pist")
	return patientId, therapistId
}

func seedSessionAt(t *testing.T, repos *repository.Repositories, uuid, patientId, therapistId string, at time.Time, status string) {
	t.Helper()
	err := repos.Session.Create(&model.TherapySession{
		Uuid:        uuid,
		PatientId:   patientId,
		TherapistId: therapistId,
		SessionDate: at,
		Status:      status,
	})
	if err != nil {
		t.Fatalf("seed session %s: %v", uuid, err)
	}
}

func TestDashboardPicksNextAndPrevious(t *testing.T) {
	svc, repos, _ := newTestService(t)
	patientId, therapistId := seedPair(t, repos)

	now := time.Now()
	seedSessionAt(t, repos, "S-done", patientId, therapistId, now.Add(-48*time.Hour), session_status_enum.COMPLETED)
	seedSessionAt(t, repos, "S-next", patientId, therapistId, now.Add(2*time.Hour), session_status_enum.SCHEDULED)
	seedSessionAt(t, repos, "S-later", patientId, therapistId, now.Add(50*time.Hour), session_status_enum.SCHEDULED)

	dash, err := svc.Dashboard(request.DashboardRequest{UserId: patientId})
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.NextSession == nil || dash.NextSession.SessionId != "S-next" {
		t.Errorf("next = %+v, want S-next", dash.NextSession)
	}
	if dash.PreviousSession == nil || dash.PreviousSession.SessionId != "S-done" {
		t.Errorf("previous = %+v, want S-done", dash.PreviousSession)
	}
	if len(dash.Upcoming) != 2 {
		t.Errorf("upcoming = %d, want 2", len(dash.Upcoming))
	}
	if dash.NextSession.CounterpartName != "Dr. Pist" {
		t.Errorf("counterpart = %q, want Dr. Pist", dash.NextSession.CounterpartName)
	}
}

func TestSessionListUsesCacheOnSecondRead(t *testing.T) {
	svc, repos, cache := newTestService(t)
	patientId, therapistId := seedPair(t, repos)
	seedSessionAt(t, repos, "S-1", patientId, therapistId, time.Now().Add(time.Hour), session_status_enum.SCHEDULED)

	first, err := svc.SessionList(request.SessionListRequest{UserId: patientId})
	if err != nil {
		t.Fatalf("SessionList: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("sessions = %d, want 1", len(first))
	}
	if v, _ := cache.Get(context.Background(), SessionListKey(patientId)); v == "" {
		t.Fatal("session list should be cached after the first read")
	}

	// a row written behind the cache stays invisible until invalidation
	seedSessionAt(t, repos, "S-2", patientId, therapistId, time.Now().Add(2*time.Hour), session_status_enum.SCHEDULED)

	second, err := svc.SessionList(request.SessionListRequest{UserId: patientId})
	if err != nil {
		t.Fatalf("SessionList: %v", err)
	}
	if len(second) != 1 {
		t.Errorf("cached read = %d sessions, want 1", len(second))
	}

	if err := cache.Delete(context.Background(), SessionListKey(patientId)); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	third, err := svc.SessionList(request.SessionListRequest{UserId: patientId})
	if err != nil {
		t.Fatalf("SessionList: %v", err)
	}
	if len(third) != 2 {
		t.Errorf("fresh read = %d sessions, want 2", len(third))
	}
}

func TestSessionListRecoversFromPoisonedCache(t *testing.T) {
	svc, repos, cache := newTestService(t)
	patientId, therapistId := seedPair(t, repos)
	seedSessionAt(t, repos, "S-1", patientId, therapistId, time.Now().Add(time.Hour), session_status_enum.SCHEDULED)

	key := SessionListKey(patientId)
	if err := cache.Set(context.Background(), key, "{not json", time.Minute); err != nil {
		t.Fatalf("poison cache: %v", err)
	}

	out, err := svc.SessionList(request.SessionListRequest{UserId: patientId})
	if err != nil {
		t.Fatalf("SessionList: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("sessions = %d, want 1", len(out))
	}
	if v, _ := cache.Get(context.Background(), key); v == "{not json" {
		t.Error("poisoned entry should be replaced")
	}
}

func TestTodayScheduleScopedToTherapistAndDay(t *testing.T) {
	svc, repos, _ := newTestService(t)
	patientId, therapistId := seedPair(t, repos)
	seedUser(t, repos, "Utherapist002", role_enum.THERAPIST, "Other", "Doc")

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	seedSessionAt(t, repos, "S-today", patientId, therapistId, startOfDay.Add(13*time.Hour), session_status_enum.SCHEDULED)
	seedSessionAt(t, repos, "S-tomorrow", patientId, therapistId, startOfDay.Add(37*time.Hour), session_status_enum.SCHEDULED)
	seedSessionAt(t, repos, "S-other-doc", patientId, "Utherapist002", startOfDay.Add(14*time.Hour), session_status_enum.SCHEDULED)

	out, err := svc.TodaySchedule(request.TodayScheduleRequest{TherapistId: therapistId})
	if err != nil {
		t.Fatalf("TodaySchedule: %v", err)
	}
	if len(out) != 1 || out[0].SessionId != "S-today" {
		t.Errorf("today = %+v, want only S-today", out)
	}
	// the therapist's view names the patient
	if out[0].CounterpartName != "Pat Ient" {
		t.Errorf("counterpart = %q, want Pat Ient", out[0].CounterpartName)
	}
}

func TestSessionDetailNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SessionDetail(request.SessionDetailRequest{SessionId: "S-missing"})
	if code := errorx.GetCode(err); code != errorx.CodeNotFound {
		t.Errorf("code = %d, want %d", code, errorx.CodeNotFound)
	}
}

func TestSessionDetailRendersEnrichment(t *testing.T) {
	svc, repos, _ := newTestService(t)
	patientId, therapistId := seedPair(t, repos)

	err := repos.Session.Create(&model.TherapySession{
		Uuid:        "S-rich",
		PatientId:   patientId,
		TherapistId: therapistId,
		SessionDate: time.Now().Add(-2 * time.Hour),
		Status:      session_status_enum.COMPLETED,
		Mood:        "Calm",
		Progress:    "Improving",
		Summary:     "We explored coping strategies.",
		Goals:       model.StringList{"daily walks"},
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}

	detail, err := svc.SessionDetail(request.SessionDetailRequest{SessionId: "S-rich"})
	if err != nil {
		t.Fatalf("SessionDetail: %v", err)
	}
	if detail.Mood != "Calm" || detail.Progress != "Improving" {
		t.Errorf("mood/progress = %q/%q", detail.Mood, detail.Progress)
	}
	if len(detail.Goals) != 1 || detail.Goals[0] != "daily walks" {
		t.Errorf("goals = %v", detail.Goals)
	}
	if detail.Classification != ClassPast {
		t.Errorf("classification = %q, want %q", detail.Classification, ClassPast)
	}
	if detail.CounterpartName != "Dr. Pist" {
		t.Errorf("counterpart = %q, want Dr. Pist", detail.CounterpartName)
	}
}
