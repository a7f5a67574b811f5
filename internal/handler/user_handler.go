// Package handler implements the HTTP layer.
// This file handles account and auth endpoints.
package handler

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/dto/request"
	"theracare_server/internal/service"
	"theracare_server/pkg/errorx"
)

// UserHandler handles account endpoints.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates the user handler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Register creates an account.
// POST /user/register
func (h *UserHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Login authenticates by email and password.
// POST /user/login
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RefreshToken mints a new access token.
// POST /user/refreshToken
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.RefreshToken(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUserInfo returns one profile.
// GET /user/:userId
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	userId := c.Param("userId")
	if userId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.userSvc.GetUserInfo(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// TherapistList lists active therapists.
// GET /user/therapists
func (h *UserHandler) TherapistList(c *gin.Context) {
	data, err := h.userSvc.TherapistList()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// PatientList lists active patients.
// GET /user/patients
func (h *UserHandler) PatientList(c *gin.Context) {
	data, err := h.userSvc.PatientList()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
