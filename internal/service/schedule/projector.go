// Package schedule derives the dashboard session views.
//
// The projector is a pure function of a session set and a reference time: it
// never writes, and the same inputs always yield the same classification.
package schedule

import (
	"sort"
	"time"

	"theracare_server/internal/model"
	"theracare_server/pkg/constants"
	"theracare_server/pkg/enum/therapy_session/session_status_enum"
)

// Classification buckets for a session relative to a reference time.
const (
	ClassPast       = "past"
	ClassInProgress = "inProgress"
	ClassUpcoming   = "upcoming"
)

// Classify buckets one session. A session occupies
// [SessionDate, SessionDate+SESSION_DURATION); before that window it is
// upcoming, inside it in progress, after it past. Cancelled and completed
// sessions are never in progress regardless of the clock.
func Classify(s *model.TherapySession, now time.Time) string {
	if session_status_enum.IsTerminal(s.Status) {
		if now.Before(s.SessionDate) {
			return ClassUpcoming
		}
		return ClassPast
	}
	switch {
	case now.Before(s.SessionDate):
		return ClassUpcoming
	case now.Before(s.SessionDate.Add(constants.SESSION_DURATION)):
		return ClassInProgress
	default:
		return ClassPast
	}
}

// IsInProgress reports whether now falls within the session window. Used for
// badge display only, never for access control.
func IsInProgress(s *model.TherapySession, now time.Time) bool {
	return !now.Before(s.SessionDate) && now.Before(s.SessionDate.Add(constants.SESSION_DURATION))
}

// NextSession returns the scheduled session with the smallest future
// SessionDate, or nil when there is none. Equal dates are broken by uuid
// order so repeated calls agree.
func NextSession(sessions []model.TherapySession, now time.Time) *model.TherapySession {
	var next *model.TherapySession
	for i := range sessions {
		s := &sessions[i]
		if s.Status != session_status_enum.SCHEDULED || !s.SessionDate.After(now) {
			continue
		}
		if next == nil || earlier(s, next) {
			next = s
		}
	}
	return next
}

// PreviousSession returns the session with the largest SessionDate at or
// before now, any status, or nil.
func PreviousSession(sessions []model.TherapySession, now time.Time) *model.TherapySession {
	var prev *model.TherapySession
	for i := range sessions {
		s := &sessions[i]
		if s.SessionDate.After(now) {
			continue
		}
		if prev == nil || earlier(prev, s) {
			prev = s
		}
	}
	return prev
}

// Upcoming returns future scheduled sessions, soonest first.
func Upcoming(sessions []model.TherapySession, now time.Time) []model.TherapySession {
	out := make([]model.TherapySession, 0)
	for i := range sessions {
		s := sessions[i]
		if s.Status == session_status_enum.SCHEDULED && s.SessionDate.After(now) {
			out = append(out, s)
		}
	}
	sortBySessionDate(out)
	return out
}

// TodaySchedule filters a therapist's sessions to the calendar day containing
// now, ascending by start time. The day boundary uses now's location.
func TodaySchedule(sessions []model.TherapySession, therapistId string, now time.Time) []model.TherapySession {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	out := make([]model.TherapySession, 0)
	for i := range sessions {
		s := sessions[i]
		if s.TherapistId != therapistId {
			continue
		}
		if s.SessionDate.Before(startOfDay) || !s.SessionDate.Before(endOfDay) {
			continue
		}
		out = append(out, s)
	}
	sortBySessionDate(out)
	return out
}

// earlier orders sessions by (SessionDate, Uuid).
func earlier(a, b *model.TherapySession) bool {
	if !a.SessionDate.Equal(b.SessionDate) {
		return a.SessionDate.Before(b.SessionDate)
	}
	return a.Uuid < b.Uuid
}

func sortBySessionDate(sessions []model.TherapySession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return earlier(&sessions[i], &sessions[j])
	})
}
