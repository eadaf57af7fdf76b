package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/rominswe/pg-progress-sub001/internal/model"
	"github.com/rominswe/pg-progress-sub001/internal/repository"
)

// ── 外部协作者接口 ──
// 审计与通知都是尽力而为：失败只记日志、吞掉错误，绝不作为工作流失败上抛，
// 也不回滚业务事务

// AuditSink 审计接收器
type AuditSink interface {
	Record(ctx context.Context, actorID, action, entityType, entityID, details string)
}

// NotificationDispatcher 通知分发器
type NotificationDispatcher interface {
	Notify(ctx context.Context, recipientID, role, title, message string)
}

// ── 默认实现：落库 ──

type dbAuditSink struct {
	repo   repository.AuditLogRepository
	logger *zap.Logger
}

// NewAuditSink 创建落库审计接收器
func NewAuditSink(repo repository.AuditLogRepository, logger *zap.Logger) AuditSink {
	return &dbAuditSink{repo: repo, logger: logger}
}

func (s *dbAuditSink) Record(ctx context.Context, actorID, action, entityType, entityID, details string) {
	log := &model.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	if err := s.repo.Create(ctx, log); err != nil {
		s.logger.Warn("写入审计日志失败",
			zap.String("action", action),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	}
}

type dbNotifier struct {
	repo   repository.NotificationRepository
	logger *zap.Logger
}

// NewNotifier 创建落库通知分发器（投递机制由外部系统消费 notifications 表）
func NewNotifier(repo repository.NotificationRepository, logger *zap.Logger) NotificationDispatcher {
	return &dbNotifier{repo: repo, logger: logger}
}

func (s *dbNotifier) Notify(ctx context.Context, recipientID, role, title, message string) {
	n := &model.Notification{
		RecipientID:   recipientID,
		RecipientRole: role,
		Title:         title,
		Message:       message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Warn("写入通知失败",
			zap.String("recipient_id", recipientID),
			zap.Error(err),
		)
	}
}
