package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/circlepot/notifier/internal/api/respond"
	"github.com/circlepot/notifier/internal/model"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/preferences/mock.go -package=mocks
type preferencesService interface {
	GetPreferences(ctx context.Context, account string) (model.Preferences, error)
	UpdatePreferences(ctx context.Context, account string, patch model.PreferencesPatch) (model.Preferences, error)
}

// Handler handles HTTP requests for notification preferences.
type Handler struct {
	service preferencesService
}

// NewHandler creates a new Handler instance.
func NewHandler(s preferencesService) *Handler {
	return &Handler{service: s}
}

// Get handles GET requests for an account's preferences.
func (h *Handler) Get(c *ginext.Context) {
	account := c.Param("account")
	if account == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing account"))
		return
	}

	prefs, err := h.service.GetPreferences(c.Request.Context(), account)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to get preferences")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, prefs)
}

// Update handles PUT requests merging a partial preferences update.
func (h *Handler) Update(c *ginext.Context) {
	account := c.Param("account")
	if account == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing account"))
		return
	}

	var patch model.PreferencesPatch
	if err := json.NewDecoder(c.Request.Body).Decode(&patch); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	prefs, err := h.service.UpdatePreferences(c.Request.Context(), account, patch)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("account", account).Msg("failed to update preferences")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, prefs)
}
