package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Student      StudentRepository
	Staff        StaffRepository
	Assignment   AssignmentRepository
	AuditLog     AuditLogRepository
	Notification NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Student:      NewStudentRepo(db),
		Staff:        NewStaffRepo(db),
		Assignment:   NewAssignmentRepo(db),
		AuditLog:     NewAuditLogRepo(db),
		Notification: NewNotificationRepo(db),
	}
}
