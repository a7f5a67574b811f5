// Package booking implements appointment creation: direct booking by either
// participant and the patient request / therapist confirm flow.
package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"theracare_server/internal/dao/mysql/repository"
	myredis "theracare_server/internal/dao/redis"
	"theracare_server/internal/dto/request"
	"theracare_server/internal/dto/respond"
	"theracare_server/internal/infrastructure/sms"
	"theracare_server/internal/model"
	"theracare_server/internal/service/schedule"
	"theracare_server/pkg/constants"
	"theracare_server/pkg/enum/appointment_request/request_status_enum"
	"theracare_server/pkg/enum/notification/notification_type_enum"
	"theracare_server/pkg/enum/therapy_session/session_status_enum"
	"theracare_server/pkg/enum/user_info/role_enum"
	"theracare_server/pkg/enum/user_info/user_status_enum"
	"theracare_server/pkg/errorx"
	"theracare_server/pkg/util/random"
)

// Mood and progress labels seeded onto a freshly booked session. The summary
// pipeline overwrites both after the appointment happens.
const (
	initialMood     = "Neutral"
	initialProgress = "Upcoming"
)

// Notifier is the slice of the notification service this package needs.
type Notifier interface {
	Notify(userId, notificationType, title, body string) error
}

type bookingService struct {
	repos        *repository.Repositories
	cache        myredis.AsyncCacheService
	notification Notifier
	reminder     sms.ReminderSender
}

// NewBookingService wires the booking service. reminder may be nil when SMS
// is disabled entirely.
func NewBookingService(repos *repository.Repositories, cacheService myredis.AsyncCacheService,
	notificationSvc Notifier, reminderSender sms.ReminderSender) *bookingService {
	return &bookingService{
		repos:        repos,
		cache:        cacheService,
		notification: notificationSvc,
		reminder:     reminderSender,
	}
}

// BookSession creates a scheduled session directly.
// All validation runs before any write: a rejected booking leaves no rows
// behind.
func (s *bookingService) BookSession(req request.BookSessionRequest) (*respond.BookSessionRespond, error) {
	sessionDate, err := parseSlot(req.Date, req.Hour, req.Minute)
	if err != nil {
		return nil, err
	}
	if req.CounterpartId == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "counterpart is required")
	}

	booker, counterpart, err := s.resolveParticipants(req.BookerId, req.CounterpartId)
	if err != nil {
		return nil, err
	}

	patientId, therapistId := booker.Uuid, counterpart.Uuid
	if booker.Role == role_enum.THERAPIST {
		patientId, therapistId = counterpart.Uuid, booker.Uuid
	}

	sess := &model.TherapySession{
		Uuid:        fmt.Sprintf("S%s", random.GetNowAndLenRandomString(11)),
		PatientId:   patientId,
		TherapistId: therapistId,
		SessionDate: sessionDate,
		Status:      session_status_enum.SCHEDULED,
		Mood:        initialMood,
		Progress:    initialProgress,
	}
	if err := s.repos.Session.Create(sess); err != nil {
		zap.L().Error("failed to create session",
			zap.String("bookerId", req.BookerId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	s.invalidateSessionCaches(patientId, therapistId)
	s.notifyBooked(booker, counterpart, sessionDate)

	return &respond.BookSessionRespond{SessionId: sess.Uuid}, nil
}

// SubmitRequest files a patient's proposal for therapist review.
func (s *bookingService) SubmitRequest(req request.SubmitAppointmentRequest) (*respond.AppointmentRequestRespond, error) {
	sessionDate, err := parseSlot(req.Date, req.Hour, req.Minute)
	if err != nil {
		return nil, err
	}

	patient, therapist, err := s.resolveParticipants(req.PatientId, req.TherapistId)
	if err != nil {
		return nil, err
	}
	if patient.Role != role_enum.PATIENT {
		return nil, errorx.New(errorx.CodeInvalidParam, "only patients can file appointment requests")
	}

	ar := &model.AppointmentRequest{
		Uuid:        fmt.Sprintf("R%s", random.GetNowAndLenRandomString(11)),
		PatientId:   patient.Uuid,
		TherapistId: therapist.Uuid,
		SessionDate: sessionDate,
		Note:        req.Note,
		Status:      request_status_enum.PENDING,
	}
	if err := s.repos.AppointmentRequest.Create(ar); err != nil {
		zap.L().Error("failed to create appointment request",
			zap.String("patientId", req.PatientId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if err := s.notification.Notify(therapist.Uuid, notification_type_enum.APPOINTMENT,
		"New appointment request",
		fmt.Sprintf("%s requested a session on %s", patient.DisplayName(), sessionDate.Format("Jan 2 15:04"))); err != nil {
		zap.L().Warn("appointment request notification failed", zap.Error(err))
	}

	resp := toRequestRespond(ar)
	resp.PatientName = patient.DisplayName()
	return &resp, nil
}

// ConfirmRequest promotes a pending request to a scheduled session.
// Session creation and the status flip happen in one transaction so a crash
// can never leave a confirmed request without its session.
func (s *bookingService) ConfirmRequest(req request.HandleAppointmentRequest) (*respond.BookSessionRespond, error) {
	ar, err := s.loadPendingRequest(req)
	if err != nil {
		return nil, err
	}

	sess := &model.TherapySession{
		Uuid:        fmt.Sprintf("S%s", random.GetNowAndLenRandomString(11)),
		PatientId:   ar.PatientId,
		TherapistId: ar.TherapistId,
		SessionDate: ar.SessionDate,
		Status:      session_status_enum.SCHEDULED,
		Mood:        initialMood,
		Progress:    initialProgress,
	}

	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Session.Create(sess); err != nil {
			return err
		}
		return tx.AppointmentRequest.UpdateStatus(ar.Uuid, request_status_enum.CONFIRMED)
	})
	if err != nil {
		zap.L().Error("failed to confirm appointment request",
			zap.String("requestId", req.RequestId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	s.invalidateSessionCaches(ar.PatientId, ar.TherapistId)

	if err := s.notification.Notify(ar.PatientId, notification_type_enum.APPOINTMENT,
		"Appointment confirmed",
		fmt.Sprintf("Your session on %s was confirmed", ar.SessionDate.Format("Jan 2 15:04"))); err != nil {
		zap.L().Warn("confirm notification failed", zap.Error(err))
	}
	s.remindPatient(ar.PatientId, ar.TherapistId, ar.SessionDate)

	return &respond.BookSessionRespond{SessionId: sess.Uuid}, nil
}

// DeclineRequest rejects a pending request.
func (s *bookingService) DeclineRequest(req request.HandleAppointmentRequest) error {
	ar, err := s.loadPendingRequest(req)
	if err != nil {
		return err
	}

	if err := s.repos.AppointmentRequest.UpdateStatus(ar.Uuid, request_status_enum.DECLINED); err != nil {
		zap.L().Error("failed to decline appointment request",
			zap.String("requestId", req.RequestId), zap.Error(err))
		return errorx.ErrServerBusy
	}

	if err := s.notification.Notify(ar.PatientId, notification_type_enum.APPOINTMENT,
		"Appointment declined",
		fmt.Sprintf("Your request for %s was declined", ar.SessionDate.Format("Jan 2 15:04"))); err != nil {
		zap.L().Warn("decline notification failed", zap.Error(err))
	}
	return nil
}

// PendingRequests lists a therapist's pending requests with patient names.
func (s *bookingService) PendingRequests(req request.PendingRequestsRequest) ([]respond.AppointmentRequestRespond, error) {
	requests, err := s.repos.AppointmentRequest.FindByTherapistAndStatus(req.TherapistId, request_status_enum.PENDING)
	if err != nil {
		zap.L().Error("failed to list pending requests",
			zap.String("therapistId", req.TherapistId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	names := map[string]string{}
	ids := make([]string, 0, len(requests))
	for i := range requests {
		ids = append(ids, requests[i].PatientId)
	}
	if len(ids) > 0 {
		if users, err := s.repos.User.FindByUuids(ids); err == nil {
			for i := range users {
				names[users[i].Uuid] = users[i].DisplayName()
			}
		}
	}

	out := make([]respond.AppointmentRequestRespond, 0, len(requests))
	for i := range requests {
		r := toRequestRespond(&requests[i])
		r.PatientName = names[requests[i].PatientId]
		out = append(out, r)
	}
	return out, nil
}

// loadPendingRequest fetches a request and checks ownership and state.
func (s *bookingService) loadPendingRequest(req request.HandleAppointmentRequest) (*model.AppointmentRequest, error) {
	ar, err := s.repos.AppointmentRequest.FindByUuid(req.RequestId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "appointment request not found")
		}
		zap.L().Error("failed to load appointment request",
			zap.String("requestId", req.RequestId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if ar.TherapistId != req.TherapistId {
		return nil, errorx.New(errorx.CodeUnauthorized, "request belongs to another therapist")
	}
	if ar.Status != request_status_enum.PENDING {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "request already %s", ar.Status)
	}
	return ar, nil
}

// resolveParticipants loads both accounts and checks they form a valid
// patient/therapist pair.
func (s *bookingService) resolveParticipants(aId, bId string) (*model.UserInfo, *model.UserInfo, error) {
	a, err := s.loadActiveUser(aId)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.loadActiveUser(bId)
	if err != nil {
		return nil, nil, err
	}
	if a.Role == b.Role {
		return nil, nil, errorx.New(errorx.CodeInvalidParam, "participants must be a patient and a therapist")
	}
	return a, b, nil
}

func (s *bookingService) loadActiveUser(uuid string) (*model.UserInfo, error) {
	user, err := s.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.Newf(errorx.CodeUserNotExist, "user %s not found", uuid)
		}
		zap.L().Error("failed to load user", zap.String("uuid", uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if user.Status == user_status_enum.DISABLE {
		return nil, errorx.New(errorx.CodeInvalidParam, "account is disabled")
	}
	return user, nil
}

// invalidateSessionCaches drops both participants' cached session lists.
func (s *bookingService) invalidateSessionCaches(patientId, therapistId string) {
	s.cache.SubmitTask(func() {
		ctx := context.Background()
		if err := s.cache.DeleteByPatterns(ctx, []string{
			schedule.SessionListKey(patientId),
			schedule.SessionListKey(therapistId),
		}); err != nil {
			zap.L().Error("failed to invalidate session caches", zap.Error(err))
		}
	})
}

// notifyBooked alerts the counterpart and texts the patient.
func (s *bookingService) notifyBooked(booker, counterpart *model.UserInfo, sessionDate time.Time) {
	if err := s.notification.Notify(counterpart.Uuid, notification_type_enum.SESSION,
		"Session booked",
		fmt.Sprintf("%s booked a session on %s", booker.DisplayName(), sessionDate.Format("Jan 2 15:04"))); err != nil {
		zap.L().Warn("booking notification failed", zap.Error(err))
	}

	patient := booker
	therapist := counterpart
	if booker.Role == role_enum.THERAPIST {
		patient, therapist = counterpart, booker
	}
	s.sendReminder(patient, therapist.DisplayName(), sessionDate)
}

func (s *bookingService) remindPatient(patientId, therapistId string, sessionDate time.Time) {
	patient, err := s.repos.User.FindByUuid(patientId)
	if err != nil {
		zap.L().Warn("reminder skipped, patient lookup failed", zap.Error(err))
		return
	}
	therapist, err := s.repos.User.FindByUuid(therapistId)
	if err != nil {
		zap.L().Warn("reminder skipped, therapist lookup failed", zap.Error(err))
		return
	}
	s.sendReminder(patient, therapist.DisplayName(), sessionDate)
}

// sendReminder texts the patient off the request path. Best effort only.
func (s *bookingService) sendReminder(patient *model.UserInfo, therapistName string, sessionDate time.Time) {
	if s.reminder == nil || patient.Telephone == "" {
		return
	}
	telephone := patient.Telephone
	s.cache.SubmitTask(func() {
		if err := s.reminder.SendAppointmentReminder(telephone, therapistName, sessionDate); err != nil {
			zap.L().Warn("sms reminder failed",
				zap.String("patientId", patient.Uuid), zap.Error(err))
		}
	})
}

// parseSlot validates the bookable slot grid and combines date and time.
// Sessions start on the hour or half hour between 09:00 and 17:30.
func parseSlot(date string, hour, minute int) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, errorx.New(errorx.CodeInvalidParam, "date must be YYYY-MM-DD")
	}
	if hour < constants.BOOKING_FIRST_HOUR || hour > constants.BOOKING_LAST_HOUR {
		return time.Time{}, errorx.Newf(errorx.CodeInvalidParam,
			"hour must be between %d and %d", constants.BOOKING_FIRST_HOUR, constants.BOOKING_LAST_HOUR)
	}
	if minute != 0 && minute != 30 {
		return time.Time{}, errorx.New(errorx.CodeInvalidParam, "minute must be 0 or 30")
	}

	slot := day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	if !slot.After(time.Now()) {
		return time.Time{}, errorx.New(errorx.CodeInvalidParam, "slot is in the past")
	}
	return slot, nil
}

func toRequestRespond(ar *model.AppointmentRequest) respond.AppointmentRequestRespond {
	return respond.AppointmentRequestRespond{
		RequestId:   ar.Uuid,
		PatientId:   ar.PatientId,
		TherapistId: ar.TherapistId,
		SessionDate: ar.SessionDate.Format(time.RFC3339),
		Note:        ar.Note,
		Status:      ar.Status,
	}
}
