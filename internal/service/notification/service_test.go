package notification

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"theracare_server/internal/dao/mysql/repository"
	"theracare_server/internal/dto/request"
	"theracare_server/internal/infrastructure/mq"
	"theracare_server/internal/model"
	"theracare_server/pkg/enum/notification/notification_type_enum"
	"theracare_server/pkg/enum/therapy_session/session_status_enum"
	"theracare_server/pkg/errorx"
)

var dbSeq int

func newTestService(t *testing.T) (*notificationService, *repository.Repositories, *mq.ChannelBroker) {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:notification_test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.TherapySession{}, &model.Notification{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repos := repository.NewRepositories(db)
	broker := mq.NewChannelBroker()
	return NewNotificationService(repos, broker), repos, broker
}

func TestNotifyStoresAndPushes(t *testing.T) {
	svc, repos, broker := newTestService(t)

	err := svc.Notify("Upatient00001", notification_type_enum.APPOINTMENT, "Appointment confirmed", "details")
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}

	stored, err := repos.Notification.FindByUser("Upatient00001", 10)
	if err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored = %d, want 1", len(stored))
	}
	if stored[0].Read {
		t.Error("new notification should be unread")
	}

	select {
	case event := <-broker.Subscribe():
		if event.Kind != mq.EventNotification || event.UserId != "Upatient00001" {
			t.Errorf("event = %s for %s", event.Kind, event.UserId)
		}
	case <-time.After(time.Second):
		t.Fatal("no push event published")
	}
}

func TestNotifyRejectsUnknownType(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.Notify("Upatient00001", "telegram", "t", "b")
	if err == nil {
		t.Fatal("expected a type error")
	}
	if code := errorx.GetCode(err); code != errorx.CodeInvalidParam {
		t.Errorf("code = %d, want %d", code, errorx.CodeInvalidParam)
	}
}

func TestFeedMergesSyntheticReminders(t *testing.T) {
	svc, repos, _ := newTestService(t)
	userId := "Upatient00001"

	// one durable entry in the past
	if err := svc.Notify(userId, notification_type_enum.MESSAGE, "New message", "hi"); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	// a session inside the reminder window and one far out
	now := time.Now()
	sessions := []model.TherapySession{
		{Uuid: "S-soon", PatientId: userId, TherapistId: "Utherapist001",
			SessionDate: now.Add(3 * time.Hour), Status: session_status_enum.SCHEDULED},
		{Uuid: "S-far", PatientId: userId, TherapistId: "Utherapist001",
			SessionDate: now.Add(72 * time.Hour), Status: session_status_enum.SCHEDULED},
		{Uuid: "S-cancelled", PatientId: userId, TherapistId: "Utherapist001",
			SessionDate: now.Add(4 * time.Hour), Status: session_status_enum.CANCELLED},
	}
	for i := range sessions {
		if err := repos.Session.Create(&sessions[i]); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}

	feed, err := svc.Feed(request.NotificationFeedRequest{UserId: userId})
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}

	var reminderIds []string
	for _, item := range feed.Items {
		if item.Synthetic {
			reminderIds = append(reminderIds, item.SessionId)
			if item.NotificationId != "" {
				t.Error("synthetic reminders must not carry a durable id")
			}
		}
	}
	if len(reminderIds) != 1 || reminderIds[0] != "S-soon" {
		t.Errorf("reminders = %v, want only S-soon", reminderIds)
	}

	// newest first: the future reminder sorts above the durable entry
	if len(feed.Items) < 2 || !feed.Items[0].Synthetic {
		t.Error("reminder for the upcoming session should lead the feed")
	}

	// synthetic entries never count toward the badge
	if feed.UnreadCount != 1 {
		t.Errorf("unread = %d, want 1", feed.UnreadCount)
	}
}

func TestMarkReadAndMarkAllRead(t *testing.T) {
	svc, _, _ := newTestService(t)
	userId := "Upatient00001"

	for i := 0; i < 3; i++ {
		if err := svc.Notify(userId, notification_type_enum.SYSTEM, fmt.Sprintf("note %d", i), ""); err != nil {
			t.Fatalf("Notify: %v", err)
		}
	}

	feed, err := svc.Feed(request.NotificationFeedRequest{UserId: userId})
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if feed.UnreadCount != 3 {
		t.Fatalf("unread = %d, want 3", feed.UnreadCount)
	}

	if err := svc.MarkRead(request.MarkNotificationReadRequest{
		UserId: userId, NotificationId: feed.Items[0].NotificationId,
	}); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	feed, _ = svc.Feed(request.NotificationFeedRequest{UserId: userId})
	if feed.UnreadCount != 2 {
		t.Errorf("unread after MarkRead = %d, want 2", feed.UnreadCount)
	}

	if err := svc.MarkAllRead(request.MarkAllNotificationsReadRequest{UserId: userId}); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	feed, _ = svc.Feed(request.NotificationFeedRequest{UserId: userId})
	if feed.UnreadCount != 0 {
		t.Errorf("unread after MarkAllRead = %d, want 0", feed.UnreadCount)
	}
}

func TestMarkReadOtherUsersNotification(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.Notify("Uowner0000001", notification_type_enum.SYSTEM, "note", ""); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	feed, err := svc.Feed(request.NotificationFeedRequest{UserId: "Uowner0000001"})
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}

	err = svc.MarkRead(request.MarkNotificationReadRequest{
		UserId: "Uother0000001", NotificationId: feed.Items[0].NotificationId,
	})
	if err == nil {
		t.Fatal("marking another user's notification should fail")
	}
	if code := errorx.GetCode(err); code != errorx.CodeNotFound {
		t.Errorf("code = %d, want %d", code, errorx.CodeNotFound)
	}
}
