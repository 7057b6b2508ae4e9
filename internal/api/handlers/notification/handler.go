package notification

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/circlepot/notifier/internal/api/respond"
	"github.com/circlepot/notifier/internal/model"
	"github.com/circlepot/notifier/internal/repository/notification"
)

// defaultPendingLimit caps the batch handed to the background sync channel.
const defaultPendingLimit = 10

// notificationService defines the interface that the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notificationService interface {
	List(ctx context.Context, account string) ([]model.Notification, error)
	UnreadCount(ctx context.Context, account string) (int, error)
	MarkRead(ctx context.Context, account string, id uuid.UUID) error
	MarkAllRead(ctx context.Context, account string) error
	Remove(ctx context.Context, account string, id uuid.UUID) error
	Clear(ctx context.Context, account string) error
	Pending(ctx context.Context, account string, limit int) ([]model.Notification, error)
}

// Handler handles HTTP requests for the notification repository.
type Handler struct {
	service notificationService
}

// NewHandler creates a new Handler instance.
func NewHandler(s notificationService) *Handler {
	return &Handler{service: s}
}

// List handles GET requests for an account's notifications, newest first.
func (h *Handler) List(c *ginext.Context) {
	account := c.Param("account")
	if account == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing account"))
		return
	}

	notifications, err := h.service.List(c.Request.Context(), account)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to list notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, notifications)
}

// UnreadCount handles GET requests for an account's unread count.
func (h *Handler) UnreadCount(c *ginext.Context) {
	account := c.Param("account")
	if account == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing account"))
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), account)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to count unread notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, count)
}

// MarkRead handles PUT requests marking one notification read.
func (h *Handler) MarkRead(c *ginext.Context) {
	account := c.Param("account")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", c.Param("id")).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), account, id); err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Msg("notification not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to mark notification read")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "notification marked read")
}

// MarkAllRead handles PUT requests marking every notification read.
func (h *Handler) MarkAllRead(c *ginext.Context) {
	account := c.Param("account")
	if account == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing account"))
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), account); err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to mark all notifications read")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "all notifications marked read")
}

// Remove handles DELETE requests for a single notification.
func (h *Handler) Remove(c *ginext.Context) {
	account := c.Param("account")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", c.Param("id")).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	if err := h.service.Remove(c.Request.Context(), account, id); err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Msg("notification not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to remove notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "notification removed")
}

// Clear handles DELETE requests wiping an account's notifications.
func (h *Handler) Clear(c *ginext.Context) {
	account := c.Param("account")
	if account == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing account"))
		return
	}

	if err := h.service.Clear(c.Request.Context(), account); err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to clear notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "notifications cleared")
}

// Check handles the background sync channel's poll for pending notifications.
func (h *Handler) Check(c *ginext.Context) {
	account := c.Query("account")
	if account == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing account"))
		return
	}

	limit := defaultPendingLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= defaultPendingLimit {
			limit = parsed
		}
	}

	notifications, err := h.service.Pending(c.Request.Context(), account, limit)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to list pending notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, notifications)
}
