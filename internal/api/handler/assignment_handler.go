package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rominswe/pg-progress-sub001/internal/dto"
	"github.com/rominswe/pg-progress-sub001/internal/service"
	"github.com/rominswe/pg-progress-sub001/pkg/response"
)

// AssignmentHandler 分配工作流 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// Request 发起分配请求
// POST /api/v1/assignments
func (h *AssignmentHandler) Request(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.RequestAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.Request(c.Request.Context(), &req, actor)
	if err != nil {
		handleWorkflowError(c, err)
		return
	}

	response.Created(c, result)
}

// Approve 批准分配
// PUT /api/v1/assignments/:id/approve
func (h *AssignmentHandler) Approve(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分配 ID 不能为空")
		return
	}

	result, err := h.assignmentSvc.Approve(c.Request.Context(), id, actor)
	if err != nil {
		handleWorkflowError(c, err)
		return
	}

	response.OK(c, result)
}

// Reject 驳回分配
// PUT /api/v1/assignments/:id/reject
func (h *AssignmentHandler) Reject(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分配 ID 不能为空")
		return
	}

	var req dto.RejectAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.Reject(c.Request.Context(), id, &req, actor)
	if err != nil {
		handleWorkflowError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除分配记录
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分配 ID 不能为空")
		return
	}

	if err := h.assignmentSvc.Delete(c.Request.Context(), id, actor); err != nil {
		handleWorkflowError(c, err)
		return
	}

	response.OK(c, nil)
}
