package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/mesto/internal/domain/user"
	"github.com/geocoder89/mesto/internal/service"
)

type UserService interface {
	List(ctx context.Context) ([]user.User, error)
	Get(ctx context.Context, id string) (user.User, error)
	Me(ctx context.Context, callerID string) (user.User, error)
	UpdateProfile(ctx context.Context, id string, name, about *string) (user.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) (user.User, error)
}

type UsersHandler struct {
	users UserService
}

func NewUsersHandler(users UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	cctx, cancel := storeCtx(ctx)
	defer cancel()

	users, err := h.users.List(cctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}

func (h *UsersHandler) GetUser(ctx *gin.Context) {
	cctx, cancel := storeCtx(ctx)
	defer cancel()

	u, err := h.users.Get(cctx, ctx.Param("id"))
	respondUser(ctx, u, err)
}

func (h *UsersHandler) GetMe(ctx *gin.Context) {
	id, ok := callerID(ctx)
	if !ok {
		return
	}

	cctx, cancel := storeCtx(ctx)
	defer cancel()

	u, err := h.users.Me(cctx, id)
	respondUser(ctx, u, err)
}

func respondUser(ctx *gin.Context, u user.User, err error) {
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) UpdateMe(ctx *gin.Context) {
	id, ok := callerID(ctx)
	if !ok {
		return
	}

	var req user.UpdateProfileRequest
	if !BindJSON(ctx, &req, service.MsgInvalidProfile) {
		return
	}

	cctx, cancel := storeCtx(ctx)
	defer cancel()

	u, err := h.users.UpdateProfile(cctx, id, req.Name, req.About)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) UpdateMyAvatar(ctx *gin.Context) {
	id, ok := callerID(ctx)
	if !ok {
		return
	}

	var req user.UpdateAvatarRequest
	if !BindJSON(ctx, &req, service.MsgInvalidAvatar) {
		return
	}

	cctx, cancel := storeCtx(ctx)
	defer cancel()

	u, err := h.users.UpdateAvatar(cctx, id, req.Avatar)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, u)
}
