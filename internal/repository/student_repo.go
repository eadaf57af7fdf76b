package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rominswe/pg-progress-sub001/internal/model"
)

// StudentRepository 学生数据访问接口（本核心只读）
type StudentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByMatricNo(ctx context.Context, matricNo string) (*model.Student, error)
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByMatricNo(ctx context.Context, matricNo string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("matric_no = ?", matricNo).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}
