package schedule

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"theracare_server/internal/dao/mysql/repository"
	myredis "theracare_server/internal/dao/redis"
	"theracare_server/internal/dto/request"
	"theracare_server/internal/dto/respond"
	"theracare_server/internal/model"
	"theracare_server/pkg/constants"
	"theracare_server/pkg/errorx"
)

// scheduleService derives session views from the stored sessions.
// Reads only; the booking and summary services own the writes.
type scheduleService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewScheduleService wires the schedule service.
func NewScheduleService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *scheduleService {
	return &scheduleService{
		repos: repos,
		cache: cacheService,
	}
}

// SessionListKey is the cache key for a user's full session list. Writers
// (booking, summary) delete it when they touch the user's sessions.
func SessionListKey(userId string) string {
	return "session_list_" + userId
}

// Dashboard returns next/previous/upcoming for one user.
// Derived fresh on every call: the classification depends on the clock, so
// only the underlying session list is cached, never the projection.
func (s *scheduleService) Dashboard(req request.DashboardRequest) (*respond.DashboardRespond, error) {
	sessions, err := s.loadSessions(req.UserId)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	names, err := s.counterpartNames(req.UserId, sessions)
	if err != nil {
		zap.L().Warn("failed to resolve counterpart names",
			zap.String("userId", req.UserId), zap.Error(err))
		names = map[string]string{}
	}

	resp := &respond.DashboardRespond{
		Upcoming: make([]respond.SessionRespond, 0),
	}
	if next := NextSession(sessions, now); next != nil {
		r := toSessionRespond(next, req.UserId, names, now)
		resp.NextSession = &r
	}
	if prev := PreviousSession(sessions, now); prev != nil {
		r := toSessionRespond(prev, req.UserId, names, now)
		resp.PreviousSession = &r
	}
	for _, sess := range Upcoming(sessions, now) {
		resp.Upcoming = append(resp.Upcoming, toSessionRespond(&sess, req.UserId, names, now))
	}
	return resp, nil
}

// TodaySchedule returns a therapist's sessions for the current day.
func (s *scheduleService) TodaySchedule(req request.TodayScheduleRequest) ([]respond.SessionRespond, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sessions, err := s.repos.Session.FindByTherapistBetween(req.TherapistId, startOfDay, startOfDay.Add(24*time.Hour))
	if err != nil {
		zap.L().Error("failed to load today's sessions",
			zap.String("therapistId", req.TherapistId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	names, err := s.counterpartNames(req.TherapistId, sessions)
	if err != nil {
		zap.L().Warn("failed to resolve counterpart names",
			zap.String("therapistId", req.TherapistId), zap.Error(err))
		names = map[string]string{}
	}

	out := make([]respond.SessionRespond, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionRespond(&sessions[i], req.TherapistId, names, now))
	}
	return out, nil
}

// SessionList returns all of a user's sessions, classified against now.
func (s *scheduleService) SessionList(req request.SessionListRequest) ([]respond.SessionRespond, error) {
	sessions, err := s.loadSessions(req.UserId)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	names, err := s.counterpartNames(req.UserId, sessions)
	if err != nil {
		zap.L().Warn("failed to resolve counterpart names",
			zap.String("userId", req.UserId), zap.Error(err))
		names = map[string]string{}
	}

	out := make([]respond.SessionRespond, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionRespond(&sessions[i], req.UserId, names, now))
	}
	return out, nil
}

// SessionDetail returns one session with its enrichment fields.
func (s *scheduleService) SessionDetail(req request.SessionDetailRequest) (*respond.SessionRespond, error) {
	sess, err := s.repos.Session.FindByUuid(req.SessionId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "session not found")
		}
		zap.L().Error("failed to load session",
			zap.String("sessionId", req.SessionId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	names := map[string]string{}
	users, err := s.repos.User.FindByUuids([]string{sess.PatientId, sess.TherapistId})
	if err == nil {
		for i := range users {
			names[users[i].Uuid] = users[i].DisplayName()
		}
	}

	now := time.Now()
	// detail view is therapist-agnostic: show the patient's counterpart name
	r := toSessionRespond(sess, sess.PatientId, names, now)
	return &r, nil
}

// loadSessions is the cache-aside read of a user's session list.
func (s *scheduleService) loadSessions(userId string) ([]model.TherapySession, error) {
	ctx := context.Background()
	key := SessionListKey(userId)

	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		var sessions []model.TherapySession
		if err := json.Unmarshal([]byte(cached), &sessions); err == nil {
			return sessions, nil
		}
		// poisoned entry: drop it and fall through to the database
		_ = s.cache.Delete(ctx, key)
	}

	sessions, err := s.repos.Session.FindByParticipant(userId)
	if err != nil {
		zap.L().Error("failed to load sessions",
			zap.String("userId", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	s.cache.SubmitTask(func() {
		data, err := json.Marshal(sessions)
		if err != nil {
			zap.L().Error("failed to marshal session list for cache", zap.Error(err))
			return
		}
		if err := s.cache.Set(context.Background(), key, string(data), constants.REDIS_TIMEOUT*time.Minute); err != nil {
			zap.L().Error("failed to cache session list", zap.String("key", key), zap.Error(err))
		}
	})

	return sessions, nil
}

// counterpartNames resolves display names for the other participant of each
// session, keyed by user uuid.
func (s *scheduleService) counterpartNames(userId string, sessions []model.TherapySession) (map[string]string, error) {
	idSet := make(map[string]struct{})
	for i := range sessions {
		other := sessions[i].TherapistId
		if userId == other {
			other = sessions[i].PatientId
		}
		idSet[other] = struct{}{}
	}
	if len(idSet) == 0 {
		return map[string]string{}, nil
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	users, err := s.repos.User.FindByUuids(ids)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(users))
	for i := range users {
		names[users[i].Uuid] = users[i].DisplayName()
	}
	return names, nil
}

// toSessionRespond builds the wire view of one session from viewerId's side.
func toSessionRespond(sess *model.TherapySession, viewerId string, names map[string]string, now time.Time) respond.SessionRespond {
	counterpartId := sess.TherapistId
	if viewerId == sess.TherapistId {
		counterpartId = sess.PatientId
	}
	return respond.SessionRespond{
		SessionId:          sess.Uuid,
		PatientId:          sess.PatientId,
		TherapistId:        sess.TherapistId,
		SessionDate:        sess.SessionDate.Format(time.RFC3339),
		Status:             sess.Status,
		Classification:     Classify(sess, now),
		Mood:               sess.Mood,
		Progress:           sess.Progress,
		Summary:            sess.Summary,
		ShortSummary:       sess.ShortSummary,
		KeyPoints:          sess.KeyPoints,
		Insights:           sess.Insights,
		Goals:              sess.Goals,
		Warnings:           sess.Warnings,
		Advice:             sess.Advice,
		Transcript:         sess.Transcript,
		JournalingPrompt:   sess.JournalingPrompt,
		JournalingResponse: sess.JournalingResponse,
		CounterpartName:    names[counterpartId],
	}
}
