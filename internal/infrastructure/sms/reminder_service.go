// Package sms sends appointment reminder texts.
// The service layer depends on the ReminderSender interface; the concrete
// implementation is Aliyun SMS, with a local mock used whenever no real
// access keys are configured.
package sms

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi20170525 "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	"go.uber.org/zap"

	"theracare_server/internal/config"
	myredis "theracare_server/internal/dao/redis"
	"theracare_server/pkg/errorx"
)

// ReminderSender delivers one appointment reminder to a phone number.
type ReminderSender interface {
	// SendAppointmentReminder texts the recipient about a session with the
	// named counterpart at the given time. Errors are for the caller to
	// log; reminder delivery never fails the booking itself.
	SendAppointmentReminder(telephone, counterpartName string, sessionDate time.Time) error
}

var _ ReminderSender = (*aliyunReminderService)(nil)
var _ ReminderSender = (*localReminderService)(nil)

// throttleKey guards against duplicate reminders for the same phone within
// the cache TTL (e.g. a double-clicked booking button).
func throttleKey(telephone string, sessionDate time.Time) string {
	return "sms_reminder_" + telephone + "_" + sessionDate.Format("200601021504")
}

// localReminderService logs the reminder instead of calling the provider.
type localReminderService struct {
	cache myredis.CacheService
}

func (s *localReminderService) SendAppointmentReminder(telephone, counterpartName string, sessionDate time.Time) error {
	key := throttleKey(telephone, sessionDate)
	existing, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error("reminder throttle check failed", zap.Error(err), zap.String("phone", telephone))
		return errorx.ErrServerBusy
	}
	if existing != "" {
		return nil // already reminded for this slot
	}

	fmt.Printf("[MockSMS] to: %s, session with %s at %s\n",
		telephone, counterpartName, sessionDate.Format(time.RFC3339))

	if err := s.cache.Set(context.Background(), key, "1", time.Minute); err != nil {
		zap.L().Error("reminder throttle write failed", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

func shouldUseMock(cfg config.SmsConfig) bool {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("THERACARE_SMS_MODE")))
	if mode == "mock" || mode == "local" || mode == "test" {
		return true
	}
	// the shipped config carries placeholder keys; without real ones the
	// mock keeps the booking flow usable on a laptop
	ak := strings.ToLower(strings.TrimSpace(cfg.AccessKeyID))
	ask := strings.ToLower(strings.TrimSpace(cfg.AccessKeySecret))
	if ak == "" || ask == "" {
		return true
	}
	if strings.Contains(ak, "your accesskey") || strings.Contains(ask, "your accesskey") {
		return true
	}
	return false
}

// aliyunReminderService implements ReminderSender on Aliyun SMS.
type aliyunReminderService struct {
	client *dysmsapi20170525.Client
	cache  myredis.CacheService
}

// Init builds the reminder sender from the configuration, falling back to
// the local mock when no real credentials are present.
func Init(cacheService myredis.CacheService) (ReminderSender, error) {
	smsCfg := config.GetConfig().SmsConfig
	if shouldUseMock(smsCfg) {
		zap.L().Warn("SMS reminders in local mock mode, no provider calls will be made")
		return &localReminderService{cache: cacheService}, nil
	}

	conf := &openapi.Config{
		AccessKeyId:     tea.String(smsCfg.AccessKeyID),
		AccessKeySecret: tea.String(smsCfg.AccessKeySecret),
	}
	conf.Endpoint = tea.String("dysmsapi.aliyuncs.com")
	client, err := dysmsapi20170525.NewClient(conf)
	if err != nil {
		zap.L().Error("aliyun sms client init failed", zap.Error(err))
		return nil, err
	}

	return &aliyunReminderService{client: client, cache: cacheService}, nil
}

func (s *aliyunReminderService) SendAppointmentReminder(telephone, counterpartName string, sessionDate time.Time) error {
	if s.client == nil {
		zap.L().Error("sms reminder send failed: client not initialized")
		return errorx.New(errorx.CodeServerBusy, "sms service not initialized")
	}

	key := throttleKey(telephone, sessionDate)
	existing, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error("reminder throttle check failed", zap.Error(err), zap.String("phone", telephone))
		return errorx.ErrServerBusy
	}
	if existing != "" {
		return nil
	}

	// reserve the slot before sending so concurrent duplicates are caught
	if err := s.cache.Set(context.Background(), key, "1", time.Minute); err != nil {
		zap.L().Error("reminder throttle write failed", zap.Error(err))
		return errorx.ErrServerBusy
	}

	smsCfg := config.GetConfig().SmsConfig
	signName := smsCfg.SignName
	if signName == "" {
		signName = "TheraCare"
	}
	templateCode := smsCfg.TemplateCode
	if templateCode == "" {
		templateCode = "SMS_154950909"
	}

	// template variables: ${name} and ${time}
	templateParam := fmt.Sprintf(`{"name":%q,"time":%q}`,
		counterpartName, sessionDate.Format("2006-01-02 15:04"))

	sendSmsRequest := &dysmsapi20170525.SendSmsRequest{
		SignName:      tea.String(signName),
		TemplateCode:  tea.String(templateCode),
		PhoneNumbers:  tea.String(telephone),
		TemplateParam: tea.String(templateParam),
	}

	runtime := &util.RuntimeOptions{}
	rsp, err := s.client.SendSmsWithOptions(sendSmsRequest, runtime)
	if err != nil {
		zap.L().Error("aliyun sms send failed", zap.Error(err))
		// free the throttle slot so the reminder can be retried
		_ = s.cache.Delete(context.Background(), key)
		return errorx.ErrServerBusy
	}

	zap.L().Info("sms reminder sent", zap.String("response", *util.ToJSONString(rsp)))
	return nil
}
