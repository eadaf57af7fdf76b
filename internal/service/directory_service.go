package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rominswe/pg-progress-sub001/internal/dto"
	"github.com/rominswe/pg-progress-sub001/internal/repository"
	apperrors "github.com/rominswe/pg-progress-sub001/pkg/errors"
)

// DirectoryService 身份目录查询接口
// 学生/教职工由注册子系统维护，此处仅提供只读详情
type DirectoryService interface {
	GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error)
	GetStaff(ctx context.Context, id string) (*dto.StaffResponse, error)
}

type directoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDirectoryService 创建 DirectoryService 实例
func NewDirectoryService(repo *repository.Repository, logger *zap.Logger) DirectoryService {
	return &directoryService{repo: repo, logger: logger}
}

func (s *directoryService) GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("student_not_found", "学生不存在")
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.StudentResponse{
		ID:            student.StudentID,
		MatricNo:      student.MatricNo,
		Name:          student.Name,
		Email:         student.Email,
		Status:        string(student.Status),
		Department:    student.Department,
		Program:       student.Program,
		AcademicLevel: student.AcademicLevel,
		CreatedAt:     student.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *directoryService) GetStaff(ctx context.Context, id string) (*dto.StaffResponse, error) {
	staff, err := s.repo.Staff.GetWithRoles(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("staff_not_found", "教职工不存在")
		}
		s.logger.Error("查询教职工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	roles := make([]dto.StaffRoleResponse, 0, len(staff.Roles))
	for _, r := range staff.Roles {
		role := dto.StaffRoleResponse{
			RoleType:       string(r.RoleType),
			EmploymentType: string(r.EmploymentType),
		}
		if r.Level != nil {
			level := string(*r.Level)
			role.Level = &level
		}
		roles = append(roles, role)
	}

	return &dto.StaffResponse{
		ID:         staff.StaffID,
		StaffNo:    staff.StaffNo,
		Name:       staff.Name,
		Email:      staff.Email,
		Status:     string(staff.Status),
		Department: staff.Department,
		Roles:      roles,
		CreatedAt:  staff.CreatedAt.Format(time.RFC3339),
	}, nil
}
