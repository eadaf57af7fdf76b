package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/rominswe/pg-progress-sub001/internal/dto"
	"github.com/rominswe/pg-progress-sub001/internal/service"
	"github.com/rominswe/pg-progress-sub001/pkg/response"
)

// ReportHandler 报表与导出 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
	exportSvc service.ExportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService, exportSvc service.ExportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, exportSvc: exportSvc}
}

// ListPending 待审批分配队列
// GET /api/v1/assignments/pending
func (h *ReportHandler) ListPending(c *gin.Context) {
	var filter dto.PendingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.reportSvc.ListPending(c.Request.Context(), &filter)
	if err != nil {
		handleWorkflowError(c, err)
		return
	}

	response.OK(c, list)
}

// GetStats 分配统计视图
// GET /api/v1/assignments/stats?entity_type=student|staff
func (h *ReportHandler) GetStats(c *gin.Context) {
	var query dto.StatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	stats, err := h.reportSvc.GetStats(c.Request.Context(), &query)
	if err != nil {
		handleWorkflowError(c, err)
		return
	}

	response.OK(c, stats)
}

// ExportStats 导出分配统计 Excel
// GET /api/v1/assignments/stats/export?entity_type=student|staff
func (h *ReportHandler) ExportStats(c *gin.Context) {
	var query dto.StatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportStats(c.Request.Context(), &query)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// GetEntityAssignments 按实体查询分配历史
// GET /api/v1/assignments/entity/:type/:id
func (h *ReportHandler) GetEntityAssignments(c *gin.Context) {
	var req dto.EntityAssignmentsRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.reportSvc.GetAssignmentsFor(c.Request.Context(), req.EntityType, req.EntityID)
	if err != nil {
		handleWorkflowError(c, err)
		return
	}

	response.OK(c, list)
}

func (h *ReportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoData):
		response.NotFound(c, 20006, "暂无可导出的统计数据")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		handleWorkflowError(c, err)
	}
}
