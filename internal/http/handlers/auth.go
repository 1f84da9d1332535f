package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/mesto/internal/apperr"
	"github.com/geocoder89/mesto/internal/domain/user"
	"github.com/geocoder89/mesto/internal/service"
)

type Registrar interface {
	Register(ctx context.Context, req user.SignUpRequest) (user.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	users Registrar
}

func NewAuthHandler(users Registrar) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req user.SignUpRequest

	if !BindJSON(ctx, &req, service.MsgInvalidUserData) {
		return
	}

	cctx, cancel := storeCtx(ctx)
	defer cancel()

	u, err := h.users.Register(cctx, req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, u)
}

func (h *AuthHandler) SignIn(ctx *gin.Context) {
	var req user.SignInRequest

	// a malformed login body is still a failed credential check
	if !bindJSON(ctx, &req, apperr.KindUnauthorized, service.MsgAuthRequired) {
		return
	}

	cctx, cancel := storeCtx(ctx)
	defer cancel()

	token, err := h.users.Login(cctx, req.Email, req.Password)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}
