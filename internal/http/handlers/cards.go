package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/mesto/internal/domain/card"
	"github.com/geocoder89/mesto/internal/service"
)

type CardService interface {
	List(ctx context.Context) ([]card.Card, error)
	Create(ctx context.Context, owner string, req card.CreateCardRequest) (card.Card, error)
	Delete(ctx context.Context, cardID, requester string) error
	AddLike(ctx context.Context, cardID, userID string) (card.Card, error)
	RemoveLike(ctx context.Context, cardID, userID string) (card.Card, error)
}

type CardsHandler struct {
	cards CardService
}

func NewCardsHandler(cards CardService) *CardsHandler {
	return &CardsHandler{cards: cards}
}

// ListCards supports conditional GETs through ETag/If-None-Match.
func (h *CardsHandler) ListCards(ctx *gin.Context) {
	cctx, cancel := storeCtx(ctx)
	defer cancel()

	cards, err := h.cards.List(cctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, cards)
}

func (h *CardsHandler) CreateCard(ctx *gin.Context) {
	owner, ok := callerID(ctx)
	if !ok {
		return
	}

	var req card.CreateCardRequest
	if !BindJSON(ctx, &req, service.MsgInvalidCardData) {
		return
	}

	cctx, cancel := storeCtx(ctx)
	defer cancel()

	c, err := h.cards.Create(cctx, owner, req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, c)
}

func (h *CardsHandler) DeleteCard(ctx *gin.Context) {
	requester, ok := callerID(ctx)
	if !ok {
		return
	}

	cctx, cancel := storeCtx(ctx)
	defer cancel()

	if err := h.cards.Delete(cctx, ctx.Param("id"), requester); err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": service.MsgCardDeleted})
}

func (h *CardsHandler) LikeCard(ctx *gin.Context) {
	h.toggleLike(ctx, h.cards.AddLike)
}

func (h *CardsHandler) UnlikeCard(ctx *gin.Context) {
	h.toggleLike(ctx, h.cards.RemoveLike)
}

func (h *CardsHandler) toggleLike(ctx *gin.Context, op func(ctx context.Context, cardID, userID string) (card.Card, error)) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	cctx, cancel := storeCtx(ctx)
	defer cancel()

	c, err := op(cctx, ctx.Param("id"), userID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, c)
}
