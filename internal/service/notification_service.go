package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rominswe/pg-progress-sub001/internal/dto"
	"github.com/rominswe/pg-progress-sub001/internal/repository"
)

// NotificationService 通知收件箱业务接口
type NotificationService interface {
	List(ctx context.Context, recipientID string, p *dto.PaginationRequest) ([]dto.NotificationResponse, int64, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) List(ctx context.Context, recipientID string, p *dto.PaginationRequest) ([]dto.NotificationResponse, int64, error) {
	notifications, total, err := s.repo.Notification.ListByRecipient(ctx, recipientID, p.GetOffset(), p.GetPageSize())
	if err != nil {
		s.logger.Error("查询通知失败", zap.String("recipient_id", recipientID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, dto.NotificationResponse{
			ID:        n.NotificationID,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, recipientID string) error {
	if err := s.repo.Notification.MarkRead(ctx, id, recipientID); err != nil {
		s.logger.Error("标记通知已读失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
