package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/circlepot/notifier/internal/api/respond"
	"github.com/circlepot/notifier/internal/model"
	"github.com/circlepot/notifier/internal/repository/subscription"
	notifsvc "github.com/circlepot/notifier/internal/service/notification"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/push/mock.go -package=mocks
type pushService interface {
	Subscribe(ctx context.Context, account, token string, permission model.Permission) error
	Unsubscribe(ctx context.Context, account string) error
}

// Handler handles push subscription registration.
type Handler struct {
	service   pushService
	validator *validator.Validate
}

// NewHandler creates a new Handler instance.
func NewHandler(s pushService, v *validator.Validate) *Handler {
	return &Handler{service: s, validator: v}
}

// SubscribeRequest is the JSON body for a subscribe request. Permission is
// the platform notification permission the client obtained before calling.
type SubscribeRequest struct {
	Account    string `json:"account" validate:"required"`
	Token      string `json:"token" validate:"required"`
	Permission string `json:"permission" validate:"required,oneof=default granted denied"`
}

// UnsubscribeRequest is the JSON body for an unsubscribe request.
type UnsubscribeRequest struct {
	Account string `json:"account" validate:"required"`
}

// Subscribe handles POST requests registering a push subscription.
//
// A denied permission is terminal for the session: the response tells the
// client not to retry without user action outside the app.
func (h *Handler) Subscribe(c *ginext.Context) {
	var req SubscribeRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	err := h.service.Subscribe(c.Request.Context(), req.Account, req.Token, model.Permission(req.Permission))
	if err != nil {
		if errors.Is(err, notifsvc.ErrPermissionDenied) {
			zlog.Logger.Warn().Str("account", req.Account).Msg("notification permission not granted")
			respond.Fail(c.Writer, http.StatusForbidden, fmt.Errorf("notification permission not granted"))
			return
		}

		zlog.Logger.Error().Err(err).Str("account", req.Account).Msg("failed to subscribe")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, "subscribed")
}

// Unsubscribe handles POST requests removing a push subscription.
func (h *Handler) Unsubscribe(c *ginext.Context) {
	var req UnsubscribeRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), req.Account); err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			zlog.Logger.Warn().Str("account", req.Account).Msg("subscription not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("subscription not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("account", req.Account).Msg("failed to unsubscribe")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "unsubscribed")
}
