package handler

import "github.com/rominswe/pg-progress-sub001/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Assignment   *AssignmentHandler
	Report       *ReportHandler
	Directory    *DirectoryHandler
	Notification *NotificationHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Assignment:   NewAssignmentHandler(svc.Assignment),
		Report:       NewReportHandler(svc.Report, svc.Export),
		Directory:    NewDirectoryHandler(svc.Directory),
		Notification: NewNotificationHandler(svc.Notification),
	}
}
