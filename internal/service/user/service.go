// Package user implements accounts and authentication.
package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"theracare_server/internal/dao/mysql/repository"
	myredis "theracare_server/internal/dao/redis"
	"theracare_server/internal/dto/request"
	"theracare_server/internal/dto/respond"
	"theracare_server/internal/model"
	"theracare_server/pkg/constants"
	"theracare_server/pkg/enum/user_info/role_enum"
	"theracare_server/pkg/enum/user_info/user_status_enum"
	"theracare_server/pkg/errorx"
	"theracare_server/pkg/util/jwt"
	"theracare_server/pkg/util/random"
)

type userService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewUserService wires the user service.
func NewUserService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *userService {
	return &userService{
		repos: repos,
		cache: cacheService,
	}
}

// roleListKey caches the therapist/patient pickers.
func roleListKey(role string) string {
	return "user_list_" + role
}

// Register creates a patient or therapist account.
func (s *userService) Register(req request.RegisterRequest) (*respond.UserRespond, error) {
	if !role_enum.IsValid(req.Role) {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "unknown role %q", req.Role)
	}

	if _, err := s.repos.User.FindByEmail(req.Email); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "email already registered")
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error("failed to check email", zap.String("email", req.Email), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	user := &model.UserInfo{
		Uuid:           fmt.Sprintf("U%s", random.GetNowAndLenRandomString(11)),
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           req.Role,
		Telephone:      req.Telephone,
		Bio:            req.Bio,
		Specialization: req.Specialization,
		Status:         user_status_enum.NORMAL,
		RawPassword:    req.Password,
	}
	if err := s.repos.User.Create(user); err != nil {
		zap.L().Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	s.invalidateRoleList(req.Role)

	resp := toUserRespond(user)
	return &resp, nil
}

// Login checks the password and issues a token pair.
func (s *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := s.repos.User.FindByEmail(req.Email)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "account not found")
		}
		zap.L().Error("failed to load user by email", zap.String("email", req.Email), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if user.Status == user_status_enum.DISABLE {
		return nil, errorx.New(errorx.CodeUnauthorized, "account is disabled")
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "wrong password")
	}

	accessToken, err := jwt.GenerateAccessToken(user.Uuid, user.Role)
	if err != nil {
		zap.L().Error("failed to sign access token", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, _, err := jwt.GenerateRefreshToken(user.Uuid, user.Role)
	if err != nil {
		zap.L().Error("failed to sign refresh token", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if err := s.repos.User.UpdateLastOnlineAt(user.Uuid, time.Now()); err != nil {
		// login still succeeds
		zap.L().Warn("failed to stamp login time", zap.String("uuid", user.Uuid), zap.Error(err))
	}

	return &respond.LoginRespond{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserRespond(user),
	}, nil
}

// RefreshToken exchanges a refresh token for a new access token.
func (s *userService) RefreshToken(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error) {
	claims, err := jwt.ParseToken(req.RefreshToken)
	if err != nil || claims.Subject != "refresh_token" {
		return nil, errorx.New(errorx.CodeUnauthorized, "invalid refresh token")
	}

	user, err := s.repos.User.FindByUuid(claims.UserID)
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "account no longer exists")
	}
	if user.Status == user_status_enum.DISABLE {
		return nil, errorx.New(errorx.CodeUnauthorized, "account is disabled")
	}

	accessToken, err := jwt.GenerateAccessToken(user.Uuid, user.Role)
	if err != nil {
		zap.L().Error("failed to sign access token", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.RefreshTokenRespond{AccessToken: accessToken}, nil
}

// GetUserInfo returns one public profile.
func (s *userService) GetUserInfo(uuid string) (*respond.UserRespond, error) {
	user, err := s.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "user not found")
		}
		zap.L().Error("failed to load user", zap.String("uuid", uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	resp := toUserRespond(user)
	return &resp, nil
}

// TherapistList lists active therapists for the booking picker.
func (s *userService) TherapistList() ([]respond.UserRespond, error) {
	return s.listByRole(role_enum.THERAPIST)
}

// PatientList lists active patients.
func (s *userService) PatientList() ([]respond.UserRespond, error) {
	return s.listByRole(role_enum.PATIENT)
}

// listByRole is the cache-aside read behind both pickers.
func (s *userService) listByRole(role string) ([]respond.UserRespond, error) {
	ctx := context.Background()
	key := roleListKey(role)

	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		var out []respond.UserRespond
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return out, nil
		}
		_ = s.cache.Delete(ctx, key)
	}

	users, err := s.repos.User.FindByRole(role)
	if err != nil {
		zap.L().Error("failed to list users", zap.String("role", role), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	out := make([]respond.UserRespond, 0, len(users))
	for i := range users {
		out = append(out, toUserRespond(&users[i]))
	}

	s.cache.SubmitTask(func() {
		data, err := json.Marshal(out)
		if err != nil {
			return
		}
		if err := s.cache.Set(context.Background(), key, string(data), constants.REDIS_TIMEOUT*time.Minute); err != nil {
			zap.L().Error("failed to cache user list", zap.String("key", key), zap.Error(err))
		}
	})

	return out, nil
}

func (s *userService) invalidateRoleList(role string) {
	s.cache.SubmitTask(func() {
		if err := s.cache.Delete(context.Background(), roleListKey(role)); err != nil {
			zap.L().Error("failed to invalidate user list cache", zap.Error(err))
		}
	})
}

func toUserRespond(user *model.UserInfo) respond.UserRespond {
	return respond.UserRespond{
		UserId:         user.Uuid,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		DisplayName:    user.DisplayName(),
		Role:           user.Role,
		Bio:            user.Bio,
		Specialization: user.Specialization,
	}
}
