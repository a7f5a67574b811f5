package user

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
	"theracare_server/pkg/enum/user_info/role_enum"
	"theracare_server/pkg/enum/user_info/user_status_enum"
	"theracare_server/pkg/errorx"
	"theracare_server/pkg/util/jwt"
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

var dbSeq int

func newTestService(t *testing.T) (*userService, *repository.Repositories, *memoryCache) {
	t.Helper()
	jwt.Init("unit-test-secret", 30, 168)
	dbSeq++
	dsn := fmt.Sprintf("file:user_test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.UserInfo{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repos := repository.NewRepositories(db)
	cache := newMemoryCache()
	return NewUserService(repos, cache), repos, cache
}

func registerReq(email, role string) request.RegisterRequest {
	return request.RegisterRequest{
		Email:     email,
		Password:  "correct-horse",
		FirstName: "Avery",
		LastName:  "Stone",
		Role:      role,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Register(registerReq("avery@example.com", role_enum.PATIENT))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.UserId == "" || created.Role != role_enum.PATIENT {
		t.Errorf("respond = %+v", created)
	}

	login, err := svc.Login(request.LoginRequest{Email: "avery@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.AccessToken == "" || login.RefreshToken == "" {
		t.Error("login should issue both tokens")
	}
	if login.User.UserId != created.UserId {
		t.Errorf("login user = %s, want %s", login.User.UserId, created.UserId)
	}

	claims, err := jwt.ParseToken(login.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != created.UserId || claims.Subject != "access_token" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.Register(registerReq("dup@example.com", role_enum.PATIENT)); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(registerReq("dup@example.com", role_enum.THERAPIST))
	if code := errorx.GetCode(err); code != errorx.CodeUserExist {
		t.Errorf("code = %d, want %d", code, errorx.CodeUserExist)
	}
}

func TestRegisterUnknownRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(registerReq("admin@example.com", "admin"))
	if code := errorx.GetCode(err); code != errorx.CodeInvalidParam {
		t.Errorf("code = %d, want %d", code, errorx.CodeInvalidParam)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.Register(registerReq("avery@example.com", role_enum.PATIENT)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Login(request.LoginRequest{Email: "avery@example.com", Password: "wrong-horse"})
	if code := errorx.GetCode(err); code != errorx.CodeInvalidPassword {
		t.Errorf("code = %d, want %d", code, errorx.CodeInvalidPassword)
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(request.LoginRequest{Email: "nobody@example.com", Password: "whatever1"})
	if code := errorx.GetCode(err); code != errorx.CodeUserNotExist {
		t.Errorf("code = %d, want %d", code, errorx.CodeUserNotExist)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, repos, _ := newTestService(t)

	created, err := svc.Register(registerReq("locked@example.com", role_enum.PATIENT))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	account, err := repos.User.FindByUuid(created.UserId)
	if err != nil {
		t.Fatalf("load account: %v", err)
	}
	account.Status = user_status_enum.DISABLE
	if err := repos.User.Update(account); err != nil {
		t.Fatalf("disable: %v", err)
	}

	_, err = svc.Login(request.LoginRequest{Email: "locked@example.com", Password: "correct-horse"})
	if code := errorx.GetCode(err); code != errorx.CodeUnauthorized {
		t.Errorf("code = %d, want %d", code, errorx.CodeUnauthorized)
	}
}

func TestRefreshTokenFlow(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.Register(registerReq("avery@example.com", role_enum.THERAPIST)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	login, err := svc.Login(request.LoginRequest{Email: "avery@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshed, err := svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	claims, err := jwt.ParseToken(refreshed.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed token: %v", err)
	}
	if claims.Subject != "access_token" {
		t.Errorf("subject = %q, want access_token", claims.Subject)
	}

	// an access token is not accepted in place of a refresh token
	if _, err := svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: login.AccessToken}); err == nil {
		t.Error("access token should not refresh")
	}
}

func TestTherapistListCachesResult(t *testing.T) {
	svc, _, cache := newTestService(t)

	for i := 0; i < 2; i++ {
		if _, err := svc.Register(registerReq(fmt.Sprintf("t%d@example.com", i), role_enum.THERAPIST)); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	if _, err := svc.Register(registerReq("p@example.com", role_enum.PATIENT)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	therapists, err := svc.TherapistList()
	if err != nil {
		t.Fatalf("TherapistList: %v", err)
	}
	if len(therapists) != 2 {
		t.Fatalf("therapists = %d, want 2", len(therapists))
	}

	if cached, _ := cache.Get(context.Background(), roleListKey(role_enum.THERAPIST)); cached == "" {
		t.Error("therapist list should be cached after the first read")
	}

	// registration invalidates the cached list
	if _, err := svc.Register(registerReq("t9@example.com", role_enum.THERAPIST)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if cached, _ := cache.Get(context.Background(), roleListKey(role_enum.THERAPIST)); cached != "" {
		t.Error("registering a therapist should drop the cached list")
	}

	therapists, err = svc.TherapistList()
	if err != nil {
		t.Fatalf("TherapistList: %v", err)
	}
	if len(therapists) != 3 {
		t.Errorf("therapists after re-read = %d, want 3", len(therapists))
	}
}
