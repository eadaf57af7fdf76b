package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rominswe/pg-progress-sub001/internal/model"
)

// StaffRepository 教职工数据访问接口（本核心只读）
type StaffRepository interface {
	// GetWithRoles 查询教职工及其全部角色成员关系
	GetWithRoles(ctx context.Context, id string) (*model.Staff, error)
	GetByStaffNo(ctx context.Context, staffNo string) (*model.Staff, error)
}

// staffRepo StaffRepository 的 GORM 实现
type staffRepo struct {
	db *gorm.DB
}

// NewStaffRepo 创建 StaffRepository 实例
func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) GetWithRoles(ctx context.Context, id string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("staff_id = ?", id).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) GetByStaffNo(ctx context.Context, staffNo string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("staff_no = ?", staffNo).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}
