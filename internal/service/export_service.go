package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/rominswe/pg-progress-sub001/internal/dto"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("当前过滤条件下无统计数据")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 将分配统计视图导出为 Excel (.xlsx)，供研究生院离线核对
//   - 以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportStats 导出分配统计为 Excel
	ExportStats(ctx context.Context, q *dto.StatsQuery) (*bytes.Buffer, string, error)
}

type exportService struct {
	report ReportService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(report ReportService, logger *zap.Logger) ExportService {
	return &exportService{report: report, logger: logger}
}

// ExportStats 导出分配统计为 Excel
//
// 输出格式：单 Sheet，首行表头；学生视图含专业列，教职工视图省略
func (s *exportService) ExportStats(ctx context.Context, q *dto.StatsQuery) (*bytes.Buffer, string, error) {
	rows, err := s.report.GetStats(ctx, q)
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	sheetName := "学生分配统计"
	headers := []interface{}{"学号", "姓名", "院系", "专业", "待审批", "已通过", "已驳回"}
	if q.EntityType == "staff" {
		sheetName = "教职工分配统计"
		headers = []interface{}{"工号", "姓名", "院系", "待审批", "已通过", "已驳回"}
	}
	f.SetSheetName(sheet, sheetName)

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		s.logger.Error("写入表头失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		var values []interface{}
		if q.EntityType == "staff" {
			values = []interface{}{row.No, row.Name, row.Department,
				row.PendingCount, row.ApprovedCount, row.RejectedCount}
		} else {
			values = []interface{}{row.No, row.Name, row.Department, row.Program,
				row.PendingCount, row.ApprovedCount, row.RejectedCount}
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			s.logger.Error("写入数据行失败", zap.Int("row", i+2), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("序列化 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("assignment_stats_%s_%s.xlsx", q.EntityType, time.Now().Format("20060102"))
	return buf, filename, nil
}
