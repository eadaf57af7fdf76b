package model

// AuditLog 操作审计表 — 对应 audit_logs
// 工作流各迁移点尽力写入；写入失败不回滚业务事务
type AuditLog struct {
	AuditLogID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_log_id"`
	ActorID    string `gorm:"type:uuid;not null;index"                       json:"actor_id"`
	Action     string `gorm:"type:varchar(50);not null"                      json:"action"` // request | approve | reject | delete
	EntityType string `gorm:"type:varchar(30);not null"                      json:"entity_type"`
	EntityID   string `gorm:"type:uuid;not null;index"                       json:"entity_id"`
	Details    string `gorm:"type:text"                                      json:"details,omitempty"`
	BaseModel
}

// TableName 指定表名
func (AuditLog) TableName() string { return "audit_logs" }
