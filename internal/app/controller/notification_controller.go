package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/lenspick/lenspick-backend/internal/app/service"
	apperrors "github.com/lenspick/lenspick-backend/internal/errors"
	"github.com/lenspick/lenspick-backend/internal/middleware"
	"github.com/lenspick/lenspick-backend/internal/websocket"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS는 라우터 미들웨어에서 처리함
		return true
	},
}

// NotificationController 알림 컨트롤러
type NotificationController struct {
	notificationService service.NotificationService
	hub                 *websocket.Hub
}

func NewNotificationController(notificationService service.NotificationService, hub *websocket.Hub) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		hub:                 hub,
	}
}

// List 알림 목록
// GET /api/v1/notifications
func (ctrl *NotificationController) List(c *gin.Context) {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	notifications, total, err := ctrl.notificationService.List(profileID, limit, offset)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list notifications")
		return
	}

	unread, err := ctrl.notificationService.CountUnread(profileID)
	if err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "count unread")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total_count":   total,
		"unread_count":  unread,
	})
}

// MarkRead 알림 읽음 처리
// POST /api/v1/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 알림 ID입니다")
		return
	}

	if err := ctrl.notificationService.MarkRead(uint(id), profileID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			apperrors.NotFound(c, apperrors.NotificationNotFound, "알림을 찾을 수 없습니다")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "mark read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "읽음 처리되었습니다"})
}

// MarkAllRead 전체 알림 읽음 처리
// POST /api/v1/notifications/read-all
func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	if err := ctrl.notificationService.MarkAllRead(profileID); err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "mark all read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "모두 읽음 처리되었습니다"})
}

// Connect 실시간 알림 WebSocket 연결
// GET /api/v1/notifications/ws?token=...
func (ctrl *NotificationController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket upgrade failed", err, map[string]interface{}{
			"profile_id": profileID,
		})
		return
	}

	client := &websocket.Client{
		Hub:       ctrl.hub,
		Conn:      &websocket.Conn{Conn: conn},
		ProfileID: profileID,
		Send:      make(chan []byte, 256),
	}

	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
