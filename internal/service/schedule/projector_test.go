package schedule

import (
	"testing"
	"time"

	"theracare_server/internal/model"
	"theracare_server/pkg/enum/therapy_session/session_status_enum"
)

var baseTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func makeSession(uuid string, offset time.Duration, status string) model.TherapySession {
	return model.TherapySession{
		Uuid:        uuid,
		PatientId:   "U1",
		TherapistId: "U2",
		SessionDate: baseTime.Add(offset),
		Status:      status,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		offset time.Duration
		status string
		want   string
	}{
		{"future scheduled", time.Hour, session_status_enum.SCHEDULED, ClassUpcoming},
		{"just started", 0, session_status_enum.SCHEDULED, ClassInProgress},
		{"mid window", -30 * time.Minute, session_status_enum.SCHEDULED, ClassInProgress},
		{"window just closed", -time.Hour, session_status_enum.SCHEDULED, ClassPast},
		{"long past", -48 * time.Hour, session_status_enum.COMPLETED, ClassPast},
		{"cancelled in window", -30 * time.Minute, session_status_enum.CANCELLED, ClassPast},
		{"cancelled future", time.Hour, session_status_enum.CANCELLED, ClassUpcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := makeSession("S1", tt.offset, tt.status)
			if got := Classify(&s, baseTime); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInProgressWindowEdges(t *testing.T) {
	s := makeSession("S1", 0, session_status_enum.SCHEDULED)

	if !IsInProgress(&s, baseTime) {
		t.Error("session should be in progress exactly at its start time")
	}
	if !IsInProgress(&s, baseTime.Add(59*time.Minute+59*time.Second)) {
		t.Error("session should be in progress just before the window closes")
	}
	if IsInProgress(&s, baseTime.Add(time.Hour)) {
		t.Error("session should not be in progress exactly one hour after start")
	}
	if IsInProgress(&s, baseTime.Add(-time.Second)) {
		t.Error("session should not be in progress before its start time")
	}
}

func TestNextSession(t *testing.T) {
	sessions := []model.TherapySession{
		makeSession("S-past", -2*time.Hour, session_status_enum.SCHEDULED),
		makeSession("S-cancelled", time.Hour, session_status_enum.CANCELLED),
		makeSession("S-later", 48 * time.Hour, session_status_enum.SCHEDULED),
		makeSession("S-sooner", 2 * time.Hour, session_status_enum.SCHEDULED),
	}

	next := NextSession(sessions, baseTime)
	if next == nil {
		t.Fatal("expected a next session")
	}
	if next.Uuid != "S-sooner" {
		t.Errorf("next session = %q, want S-sooner", next.Uuid)
	}
}

func TestNextSessionSkipsNonScheduled(t *testing.T) {
	sessions := []model.TherapySession{
		makeSession("S-cancelled", time.Hour, session_status_enum.CANCELLED),
		makeSession("S-completed", 2*time.Hour, session_status_enum.COMPLETED),
	}
	if next := NextSession(sessions, baseTime); next != nil {
		t.Errorf("expected no next session, got %q", next.Uuid)
	}
}

func TestNextSessionTieBreaksByUuid(t *testing.T) {
	sessions := []model.TherapySession{
		makeSession("S-bbb", time.Hour, session_status_enum.SCHEDULED),
		makeSession("S-aaa", time.Hour, session_status_enum.SCHEDULED),
	}

	// same inputs must pick the same winner regardless of slice order
	first := NextSession(sessions, baseTime)
	sessions[0], sessions[1] = sessions[1], sessions[0]
	second := NextSession(sessions, baseTime)

	if first == nil || second == nil {
		t.Fatal("expected a next session")
	}
	if first.Uuid != "S-aaa" || second.Uuid != "S-aaa" {
		t.Errorf("tie break not deterministic: %q then %q", first.Uuid, second.Uuid)
	}
}

func TestPreviousSession(t *testing.T) {
	sessions := []model.TherapySession{
		makeSession("S-old", -72*time.Hour, session_status_enum.COMPLETED),
		makeSession("S-recent", -time.Hour, session_status_enum.CANCELLED),
		makeSession("S-future", time.Hour, session_status_enum.SCHEDULED),
	}

	prev := PreviousSession(sessions, baseTime)
	if prev == nil {
		t.Fatal("expected a previous session")
	}
	// any status counts for the previous view
	if prev.Uuid != "S-recent" {
		t.Errorf("previous session = %q, want S-recent", prev.Uuid)
	}
}

func TestPreviousSessionIncludesExactNow(t *testing.T) {
	sessions := []model.TherapySession{
		makeSession("S-now", 0, session_status_enum.SCHEDULED),
	}
	prev := PreviousSession(sessions, baseTime)
	if prev == nil || prev.Uuid != "S-now" {
		t.Error("a session starting exactly now should count as previous")
	}
}

func TestUpcomingSortedAscending(t *testing.T) {
	sessions := []model.TherapySession{
		makeSession("S-c", 72*time.Hour, session_status_enum.SCHEDULED),
		makeSession("S-a", 24*time.Hour, session_status_enum.SCHEDULED),
		makeSession("S-b", 48*time.Hour, session_status_enum.SCHEDULED),
		makeSession("S-past", -time.Hour, session_status_enum.SCHEDULED),
		makeSession("S-declined", 36*time.Hour, session_status_enum.CANCELLED),
	}

	got := Upcoming(sessions, baseTime)
	want := []string{"S-a", "S-b", "S-c"}
	if len(got) != len(want) {
		t.Fatalf("upcoming count = %d, want %d", len(got), len(want))
	}
	for i, uuid := range want {
		if got[i].Uuid != uuid {
			t.Errorf("upcoming[%d] = %q, want %q", i, got[i].Uuid, uuid)
		}
	}
}

func TestUpcomingEmptyIsNotNil(t *testing.T) {
	got := Upcoming(nil, baseTime)
	if got == nil {
		t.Error("upcoming should be an empty slice, not nil")
	}
}

func TestTodayScheduleFiltersDayAndTherapist(t *testing.T) {
	s1 := makeSession("S-morning", -3*time.Hour, session_status_enum.SCHEDULED) // 09:00 same day
	s2 := makeSession("S-evening", 8*time.Hour, session_status_enum.SCHEDULED)  // 20:00 same day
	s3 := makeSession("S-tomorrow", 13*time.Hour, session_status_enum.SCHEDULED)
	s4 := makeSession("S-other", time.Hour, session_status_enum.SCHEDULED)
	s4.TherapistId = "U9"

	got := TodaySchedule([]model.TherapySession{s2, s1, s3, s4}, "U2", baseTime)
	want := []string{"S-morning", "S-evening"}
	if len(got) != len(want) {
		t.Fatalf("today count = %d, want %d", len(got), len(want))
	}
	for i, uuid := range want {
		if got[i].Uuid != uuid {
			t.Errorf("today[%d] = %q, want %q", i, got[i].Uuid, uuid)
		}
	}
}

func TestProjectorDoesNotMutateInput(t *testing.T) {
	sessions := []model.TherapySession{
		makeSession("S-b", 48*time.Hour, session_status_enum.SCHEDULED),
		makeSession("S-a", 24*time.Hour, session_status_enum.SCHEDULED),
	}

	_ = Upcoming(sessions, baseTime)
	_ = NextSession(sessions, baseTime)
	_ = PreviousSession(sessions, baseTime)

	if sessions[0].Uuid != "S-b" || sessions[1].Uuid != "S-a" {
		t.Error("projector reordered the caller's slice")
	}
}
