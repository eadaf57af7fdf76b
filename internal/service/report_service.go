package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rominswe/pg-progress-sub001/internal/dto"
	"github.com/rominswe/pg-progress-sub001/internal/repository"
	apperrors "github.com/rominswe/pg-progress-sub001/pkg/errors"
)

// ReportService 聚合报表业务接口
//
// 纯读视图（实时查询，无物化）；不承担任何不变量校验——容量判定
// 永远由工作流事务内计数完成，此处的统计可能相对写入瞬间滞后
type ReportService interface {
	// ListPending 待审批队列（附双方展示信息）
	ListPending(ctx context.Context, f *dto.PendingFilter) ([]dto.AssignmentResponse, error)
	// GetStats 按学生或教职工聚合的状态计数
	GetStats(ctx context.Context, q *dto.StatsQuery) ([]dto.EntityStats, error)
	// GetAssignmentsFor 指定实体的分配历史（附对方展示信息）
	GetAssignmentsFor(ctx context.Context, entityType, entityID string) ([]dto.AssignmentResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

func (s *reportService) ListPending(ctx context.Context, f *dto.PendingFilter) ([]dto.AssignmentResponse, error) {
	var filter *repository.PendingFilter
	if f != nil {
		filter = &repository.PendingFilter{
			Department: f.Department,
			Program:    f.Program,
			Search:     f.Search,
		}
	}

	assignments, err := s.repo.Assignment.ListPending(ctx, filter)
	if err != nil {
		s.logger.Error("查询待审批队列失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *toAssignmentResponse(&assignments[i]))
	}
	return result, nil
}

func (s *reportService) GetStats(ctx context.Context, q *dto.StatsQuery) ([]dto.EntityStats, error) {
	filter := &repository.StatsFilter{
		Department: q.Department,
		Program:    q.Program,
		Search:     q.Search,
		Status:     q.Status,
	}

	var rows []repository.StatsRow
	var err error
	if q.EntityType == "staff" {
		rows, err = s.repo.Assignment.StaffStats(ctx, filter)
	} else {
		rows, err = s.repo.Assignment.StudentStats(ctx, filter)
	}
	if err != nil {
		s.logger.Error("查询分配统计失败", zap.String("entity_type", q.EntityType), zap.Error(err))
		return nil, err
	}

	result := make([]dto.EntityStats, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.EntityStats{
			EntityID:      row.EntityID,
			No:            row.No,
			Name:          row.Name,
			Department:    row.Department,
			Program:       row.Program,
			PendingCount:  row.PendingCount,
			ApprovedCount: row.ApprovedCount,
			RejectedCount: row.RejectedCount,
		})
	}
	return result, nil
}

func (s *reportService) GetAssignmentsFor(ctx context.Context, entityType, entityID string) ([]dto.AssignmentResponse, error) {
	var err error
	switch entityType {
	case "student":
		_, err = s.repo.Student.GetByID(ctx, entityID)
	case "staff":
		_, err = s.repo.Staff.GetWithRoles(ctx, entityID)
	default:
		return nil, apperrors.Validation("bad_entity_type", "entity_type 须为 student 或 staff")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("entity_not_found", "指定实体不存在")
		}
		s.logger.Error("查询实体失败", zap.String("entity_id", entityID), zap.Error(err))
		return nil, err
	}

	var assignments []dto.AssignmentResponse

	if entityType == "student" {
		rows, err := s.repo.Assignment.ListByStudent(ctx, entityID)
		if err != nil {
			s.logger.Error("查询学生分配历史失败", zap.Error(err))
			return nil, err
		}
		assignments = make([]dto.AssignmentResponse, 0, len(rows))
		for i := range rows {
			assignments = append(assignments, *toAssignmentResponse(&rows[i]))
		}
		return assignments, nil
	}

	rows, err := s.repo.Assignment.ListByStaff(ctx, entityID)
	if err != nil {
		s.logger.Error("查询教职工分配历史失败", zap.Error(err))
		return nil, err
	}
	assignments = make([]dto.AssignmentResponse, 0, len(rows))
	for i := range rows {
		assignments = append(assignments, *toAssignmentResponse(&rows[i]))
	}
	return assignments, nil
}
