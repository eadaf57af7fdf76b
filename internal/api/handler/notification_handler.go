package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rominswe/pg-progress-sub001/internal/dto"
	"github.com/rominswe/pg-progress-sub001/internal/service"
	"github.com/rominswe/pg-progress-sub001/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List 当前操作者的通知列表
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.notificationSvc.List(c.Request.Context(), actor.ID, &page)
	if err != nil {
		handleWorkflowError(c, err)
		return
	}

	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// MarkRead 标记通知已读
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "通知 ID 不能为空")
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), id, actor.ID); err != nil {
		handleWorkflowError(c, err)
		return
	}

	response.OK(c, nil)
}
