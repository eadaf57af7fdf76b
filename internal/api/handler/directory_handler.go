package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rominswe/pg-progress-sub001/internal/service"
	"github.com/rominswe/pg-progress-sub001/pkg/response"
)

// DirectoryHandler 学生/教职工名录 HTTP 处理器
type DirectoryHandler struct {
	directorySvc service.DirectoryService
}

// NewDirectoryHandler 创建 DirectoryHandler
func NewDirectoryHandler(directorySvc service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directorySvc: directorySvc}
}

// GetStudent 查询学生详情
// GET /api/v1/students/:id
func (h *DirectoryHandler) GetStudent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学生 ID 不能为空")
		return
	}

	student, err := h.directorySvc.GetStudent(c.Request.Context(), id)
	if err != nil {
		handleWorkflowError(c, err)
		return
	}

	response.OK(c, student)
}

// GetStaff 查询教职工详情（含角色列表）
// GET /api/v1/staff/:id
func (h *DirectoryHandler) GetStaff(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教职工 ID 不能为空")
		return
	}

	staff, err := h.directorySvc.GetStaff(c.Request.Context(), id)
	if err != nil {
		handleWorkflowError(c, err)
		return
	}

	response.OK(c, staff)
}
