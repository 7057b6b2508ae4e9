package notification

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	mocks "github.com/circlepot/notifier/internal/mocks/api/handlers/notification"
	"github.com/circlepot/notifier/internal/model"
	"github.com/circlepot/notifier/internal/repository/notification"
)

func setupHandler(t *testing.T) (*Handler, *mocks.MocknotificationService) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMocknotificationService(ctrl)
	handler := NewHandler(mockService)
	return handler, mockService
}

func TestHandler_List_Success(t *testing.T) {
	handler, mockService := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/0xabc", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "account", Value: "0xabc"}}

	mockService.EXPECT().
		List(gomock.Any(), "0xabc").
		Return([]model.Notification{{
			ID:        uuid.New(),
			Account:   "0xabc",
			Type:      model.TypeCircleStarted,
			Title:     "Circle Started",
			CreatedAt: time.Now(),
		}}, nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_List_MissingAccount(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_UnreadCount_Success(t *testing.T) {
	handler, mockService := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/0xabc/unread-count", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "account", Value: "0xabc"}}

	mockService.EXPECT().
		UnreadCount(gomock.Any(), "0xabc").
		Return(4, nil)

	handler.UnreadCount(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.JSONEq(t, `{"data":4}`, w.Body.String())
}

func TestHandler_MarkRead_InvalidID(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/notifications/0xabc/not-a-uuid/read", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{
		{Key: "account", Value: "0xabc"},
		{Key: "id", Value: "not-a-uuid"},
	}

	handler.MarkRead(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_MarkRead_NotFound(t *testing.T) {
	handler, mockService := setupHandler(t)

	id := uuid.New()
	req := httptest.NewRequest(http.MethodPut, "/api/notifications/0xabc/"+id.String()+"/read", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{
		{Key: "account", Value: "0xabc"},
		{Key: "id", Value: id.String()},
	}

	mockService.EXPECT().
		MarkRead(gomock.Any(), "0xabc", id).
		Return(notification.ErrNotificationNotFound)

	handler.MarkRead(c)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestHandler_Clear_Success(t *testing.T) {
	handler, mockService := setupHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/notifications/0xabc", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "account", Value: "0xabc"}}

	mockService.EXPECT().
		Clear(gomock.Any(), "0xabc").
		Return(nil)

	handler.Clear(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_Check_DefaultLimit(t *testing.T) {
	handler, mockService := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/push/check?account=0xabc", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	mockService.EXPECT().
		Pending(gomock.Any(), "0xabc", defaultPendingLimit).
		Return([]model.Notification{}, nil)

	handler.Check(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_Check_ClampsLimit(t *testing.T) {
	handler, mockService := setupHandler(t)

	// A limit above the cap falls back to the default.
	req := httptest.NewRequest(http.MethodGet, "/api/push/check?account=0xabc&limit=500", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	mockService.EXPECT().
		Pending(gomock.Any(), "0xabc", defaultPendingLimit).
		Return(nil, nil)

	handler.Check(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}
