// Package notification maintains the alert feed: durable rows written by the
// other services, merged at read time with synthetic reminders derived from
// upcoming sessions.
package notification

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"theracare_server/internal/dao/mysql/repository"
	"theracare_server/internal/dto/request"
	"theracare_server/internal/dto/respond"
	"theracare_server/internal/infrastructure/mq"
	"theracare_server/internal/model"
	"theracare_server/pkg/constants"
	"theracare_server/pkg/enum/notification/notification_type_enum"
	"theracare_server/pkg/enum/therapy_session/session_status_enum"
	"theracare_server/pkg/errorx"
	"theracare_server/pkg/util/random"
)

// feedLimit caps the durable portion of one feed read.
const feedLimit = 50

type notificationService struct {
	repos  *repository.Repositories
	broker mq.Broker
}

// NewNotificationService wires the notification service.
func NewNotificationService(repos *repository.Repositories, broker mq.Broker) *notificationService {
	return &notificationService{
		repos:  repos,
		broker: broker,
	}
}

// Feed returns the merged feed, newest first. Synthetic reminders are
// derived per call and never stored, so they appear and disappear with the
// reminder window without any scheduler.
func (s *notificationService) Feed(req request.NotificationFeedRequest) (*respond.NotificationFeedRespond, error) {
	durable, err := s.repos.Notification.FindByUser(req.UserId, feedLimit)
	if err != nil {
		zap.L().Error("failed to load notifications",
			zap.String("userId", req.UserId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	unread, err := s.repos.Notification.CountUnread(req.UserId)
	if err != nil {
		zap.L().Error("failed to count unread notifications",
			zap.String("userId", req.UserId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	items := make([]respond.NotificationRespond, 0, len(durable))
	for i := range durable {
		n := &durable[i]
		items = append(items, respond.NotificationRespond{
			NotificationId: n.Uuid,
			Type:           n.Type,
			Title:          n.Title,
			Body:           n.Body,
			Date:           n.OccurredAt.Format(time.RFC3339),
			Read:           n.Read,
		})
	}

	reminders, err := s.syntheticReminders(req.UserId, time.Now())
	if err != nil {
		// the durable feed still renders without reminders
		zap.L().Warn("failed to derive session reminders",
			zap.String("userId", req.UserId), zap.Error(err))
	} else {
		items = append(items, reminders...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date // RFC 3339 sorts lexically
	})

	return &respond.NotificationFeedRespond{
		Items:       items,
		UnreadCount: unread,
	}, nil
}

// syntheticReminders derives one reminder per scheduled session starting
// within the reminder window, keyed to its session so the client can
// deduplicate across refreshes.
func (s *notificationService) syntheticReminders(userId string, now time.Time) ([]respond.NotificationRespond, error) {
	sessions, err := s.repos.Session.FindByParticipant(userId)
	if err != nil {
		return nil, err
	}

	horizon := now.Add(constants.REMINDER_WINDOW)
	out := make([]respond.NotificationRespond, 0)
	for i := range sessions {
		sess := &sessions[i]
		if sess.Status != session_status_enum.SCHEDULED {
			continue
		}
		if !sess.SessionDate.After(now) || sess.SessionDate.After(horizon) {
			continue
		}
		out = append(out, respond.NotificationRespond{
			Type:      notification_type_enum.REMINDER,
			Title:     "Upcoming session",
			Body:      fmt.Sprintf("You have a session at %s", sess.SessionDate.Format("Jan 2 15:04")),
			Date:      sess.SessionDate.Format(time.RFC3339),
			Synthetic: true,
			SessionId: sess.Uuid,
		})
	}
	return out, nil
}

// MarkRead marks one durable entry read. Synthetic reminders have no id and
// cannot reach here.
func (s *notificationService) MarkRead(req request.MarkNotificationReadRequest) error {
	if err := s.repos.Notification.MarkRead(req.UserId, req.NotificationId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "notification not found")
		}
		zap.L().Error("failed to mark notification read",
			zap.String("notificationId", req.NotificationId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// MarkAllRead clears the user's unread badge.
func (s *notificationService) MarkAllRead(req request.MarkAllNotificationsReadRequest) error {
	if err := s.repos.Notification.MarkAllRead(req.UserId); err != nil {
		zap.L().Error("failed to mark notifications read",
			zap.String("userId", req.UserId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// Notify stores a durable entry and pushes it to the recipient.
func (s *notificationService) Notify(userId, notificationType, title, body string) error {
	if !notification_type_enum.IsValid(notificationType) {
		return errorx.Newf(errorx.CodeInvalidParam, "unknown notification type %q", notificationType)
	}

	n := &model.Notification{
		Uuid:       fmt.Sprintf("N%s", random.GetNowAndLenRandomString(11)),
		UserId:     userId,
		Type:       notificationType,
		Title:      title,
		Body:       body,
		OccurredAt: time.Now(),
	}
	if err := s.repos.Notification.Create(n); err != nil {
		zap.L().Error("failed to store notification",
			zap.String("userId", userId), zap.Error(err))
		return errorx.ErrServerBusy
	}

	payload := respond.NotificationRespond{
		NotificationId: n.Uuid,
		Type:           n.Type,
		Title:          n.Title,
		Body:           n.Body,
		Date:           n.OccurredAt.Format(time.RFC3339),
	}
	if event, err := mq.NewEvent(mq.EventNotification, userId, payload); err == nil {
		s.broker.Publish(event)
	} else {
		zap.L().Warn("failed to build notification push event", zap.Error(err))
	}
	return nil
}
