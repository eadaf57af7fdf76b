package service

import (
	"go.uber.org/zap"

	"github.com/rominswe/pg-progress-sub001/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Assignment   AssignmentService
	Report       ReportService
	Export       ExportService
	Directory    DirectoryService
	Notification NotificationService
}

// NewService 创建 Service 聚合
// 审计与通知协作者在此装配，默认实现均为落库
func NewService(repo *repository.Repository, logger *zap.Logger) *Service {
	audit := NewAuditSink(repo.AuditLog, logger)
	notifier := NewNotifier(repo.Notification, logger)
	report := NewReportService(repo, logger)

	return &Service{
		Assignment:   NewAssignmentService(repo, audit, notifier, logger),
		Report:       report,
		Export:       NewExportService(report, logger),
		Directory:    NewDirectoryService(repo, logger),
		Notification: NewNotificationService(repo, logger),
	}
}
