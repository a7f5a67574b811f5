// Package chat implements the patient/therapist messaging thread and its
// unread counters.
//
// Counter discipline: exactly two mutations exist. Sending a message
// atomically increments the recipient's counter (and zeroes the sender's),
// and opening a conversation zeroes the opener's counter. Neither touches
// the other side's count.
package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"theracare_server/internal/dao/mysql/repository"
	myredis "theracare_server/internal/dao/redis"
	"theracare_server/internal/dto/request"
	"theracare_server/internal/dto/respond"
	"theracare_server/internal/infrastructure/mq"
	"theracare_server/internal/model"
	"theracare_server/pkg/constants"
	"theracare_server/pkg/enum/notification/notification_type_enum"
	"theracare_server/pkg/enum/user_info/role_enum"
	"theracare_server/pkg/errorx"
	"theracare_server/pkg/util/snowflake"
)

// Unread counter column names, paired with the conversation model.
const (
	patientCounter   = "unread_count_patient"
	therapistCounter = "unread_count_therapist"
)

// Notifier is the slice of the notification service this package needs.
type Notifier interface {
	Notify(userId, notificationType, title, body string) error
}

type chatService struct {
	repos        *repository.Repositories
	cache        myredis.AsyncCacheService
	broker       mq.Broker
	notification Notifier
}

// NewChatService wires the chat service.
func NewChatService(repos *repository.Repositories, cacheService myredis.AsyncCacheService,
	broker mq.Broker, notificationSvc Notifier) *chatService {
	return &chatService{
		repos:        repos,
		cache:        cacheService,
		broker:       broker,
		notification: notificationSvc,
	}
}

// ConversationID derives the shared thread id for a patient/therapist pair.
// Both participants compute the same id without a lookup.
func ConversationID(patientId, therapistId string) string {
	return patientId + "_" + therapistId
}

// messageListKey is the cache key for a conversation's message history.
func messageListKey(conversationId string) string {
	return "message_list_" + conversationId
}

// Contacts lists the user's messaging counterparts. A counterpart is anyone
// the user shares a session with; the conversation row is created lazily on
// first sight so the unread counters always have a home.
func (s *chatService) Contacts(req request.ContactListRequest) ([]respond.ContactRespond, error) {
	self, err := s.repos.User.FindByUuid(req.UserId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "user not found")
		}
		zap.L().Error("failed to load user", zap.String("userId", req.UserId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	sessions, err := s.repos.Session.FindByParticipant(req.UserId)
	if err != nil {
		zap.L().Error("failed to load sessions for contacts",
			zap.String("userId", req.UserId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	counterparts := make(map[string]struct{})
	for i := range sessions {
		other := sessions[i].TherapistId
		if other == req.UserId {
			other = sessions[i].PatientId
		}
		counterparts[other] = struct{}{}
	}

	out := make([]respond.ContactRespond, 0, len(counterparts))
	for otherId := range counterparts {
		patientId, therapistId := req.UserId, otherId
		if self.Role == role_enum.THERAPIST {
			patientId, therapistId = otherId, req.UserId
		}
		convId := ConversationID(patientId, therapistId)

		if err := s.repos.Conversation.EnsureExists(&model.Conversation{
			Id:          convId,
			PatientId:   patientId,
			TherapistId: therapistId,
		}); err != nil {
			zap.L().Error("failed to ensure conversation",
				zap.String("conversationId", convId), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}

		conv, err := s.repos.Conversation.FindById(convId)
		if err != nil {
			zap.L().Error("failed to load conversation",
				zap.String("conversationId", convId), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}

		other, err := s.repos.User.FindByUuid(otherId)
		if err != nil {
			zap.L().Warn("skipping contact, lookup failed",
				zap.String("userId", otherId), zap.Error(err))
			continue
		}

		unread := conv.UnreadCountPatient
		if self.Role == role_enum.THERAPIST {
			unread = conv.UnreadCountTherapist
		}

		contact := respond.ContactRespond{
			UserId:         otherId,
			Name:           other.DisplayName(),
			ConversationId: convId,
			LastMessage:    conv.LastMessage,
			UnreadCount:    unread,
		}
		if conv.LastMessageAt.Valid {
			contact.LastMessageAt = conv.LastMessageAt.Time.Format(time.RFC3339)
		}
		out = append(out, contact)
	}

	// most recent conversation first; never-messaged contacts sink to the end
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageAt > out[j].LastMessageAt // RFC 3339 sorts lexically
	})
	return out, nil
}

// OpenConversation zeroes the opener's unread counter and marks the
// counterpart's messages read, in one transaction.
func (s *chatService) OpenConversation(req request.OpenConversationRequest) (*respond.OpenConversationRespond, error) {
	conv, err := s.loadConversationFor(req.ConversationId, req.UserId)
	if err != nil {
		return nil, err
	}

	counterColumn := patientCounter
	if req.UserId == conv.TherapistId {
		counterColumn = therapistCounter
	}

	var marked int64
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		var txErr error
		marked, txErr = tx.Message.MarkReadBySender(conv.Id, req.UserId)
		if txErr != nil {
			return txErr
		}
		return tx.Conversation.ResetCounter(conv.Id, counterColumn)
	})
	if err != nil {
		zap.L().Error("failed to reset conversation",
			zap.String("conversationId", conv.Id), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if marked > 0 {
		s.cache.SubmitTask(func() {
			if err := s.cache.Delete(context.Background(), messageListKey(conv.Id)); err != nil {
				zap.L().Error("failed to invalidate message cache", zap.Error(err))
			}
		})
	}

	return &respond.OpenConversationRespond{MessagesMarkedRead: marked}, nil
}

// SendMessage stores one message, bumps the recipient counter atomically and
// pushes the message to the recipient.
func (s *chatService) SendMessage(req request.SendMessageRequest) (*respond.MessageRespond, error) {
	if len(req.Text) > constants.MESSAGE_LIMIT {
		return nil, errorx.Newf(errorx.CodeInvalidParam,
			"message exceeds %d characters", constants.MESSAGE_LIMIT)
	}

	conv, err := s.loadConversationFor(req.ConversationId, req.SenderId)
	if err != nil {
		return nil, err
	}

	recipientId := conv.TherapistId
	recipientCounter, senderCounter := therapistCounter, patientCounter
	if req.SenderId == conv.TherapistId {
		recipientId = conv.PatientId
		recipientCounter, senderCounter = patientCounter, therapistCounter
	}

	now := time.Now()
	msg := &model.ChatMessage{
		Uuid:           snowflake.GenerateID(),
		ConversationId: conv.Id,
		SenderId:       req.SenderId,
		Text:           req.Text,
		SentAt:         toNullTime(now),
	}

	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Message.Create(msg); err != nil {
			return err
		}
		return tx.Conversation.UpdateOnSend(conv.Id, preview(req.Text), now, recipientCounter, senderCounter)
	})
	if err != nil {
		zap.L().Error("failed to send message",
			zap.String("conversationId", conv.Id), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	s.cache.SubmitTask(func() {
		if err := s.cache.Delete(context.Background(), messageListKey(conv.Id)); err != nil {
			zap.L().Error("failed to invalidate message cache", zap.Error(err))
		}
	})

	resp := toMessageRespond(msg)

	if event, err := mq.NewEvent(mq.EventMessage, recipientId, resp); err == nil {
		s.broker.Publish(event)
	} else {
		zap.L().Warn("failed to build message push event", zap.Error(err))
	}
	if err := s.notification.Notify(recipientId, notification_type_enum.MESSAGE,
		"New message", preview(req.Text)); err != nil {
		zap.L().Warn("message notification failed", zap.Error(err))
	}

	return &resp, nil
}

// MessageHistory returns a conversation's messages oldest first, cache-aside.
func (s *chatService) MessageHistory(req request.MessageHistoryRequest) ([]respond.MessageRespond, error) {
	ctx := context.Background()
	key := messageListKey(req.ConversationId)

	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		var out []respond.MessageRespond
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return out, nil
		}
		_ = s.cache.Delete(ctx, key)
	}

	messages, err := s.repos.Message.FindByConversationId(req.ConversationId)
	if err != nil {
		zap.L().Error("failed to load messages",
			zap.String("conversationId", req.ConversationId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	out := make([]respond.MessageRespond, 0, len(messages))
	for i := range messages {
		out = append(out, toMessageRespond(&messages[i]))
	}

	s.cache.SubmitTask(func() {
		data, err := json.Marshal(out)
		if err != nil {
			return
		}
		if err := s.cache.Set(context.Background(), key, string(data), constants.REDIS_TIMEOUT*time.Minute); err != nil {
			zap.L().Error("failed to cache message list", zap.String("key", key), zap.Error(err))
		}
	})

	return out, nil
}

// loadConversationFor fetches a conversation and checks participation.
func (s *chatService) loadConversationFor(conversationId, userId string) (*model.Conversation, error) {
	conv, err := s.repos.Conversation.FindById(conversationId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "conversation not found")
		}
		zap.L().Error("failed to load conversation",
			zap.String("conversationId", conversationId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if userId != conv.PatientId && userId != conv.TherapistId {
		return nil, errorx.New(errorx.CodeUnauthorized, "not a participant of this conversation")
	}
	return conv, nil
}

// preview truncates message text for the contact list and notifications.
func preview(text string) string {
	const max = 80
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

func toMessageRespond(msg *model.ChatMessage) respond.MessageRespond {
	r := respond.MessageRespond{
		MessageId: strconv.FormatInt(msg.Uuid, 10),
		SenderId:  msg.SenderId,
		Text:      msg.Text,
		Read:      msg.Read,
	}
	if msg.SentAt.Valid {
		r.SentAt = msg.SentAt.Time.Format(time.RFC3339)
	}
	return r
}

func toNullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: true}
}
