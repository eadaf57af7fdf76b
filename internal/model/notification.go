package model

// Notification 通知消息表 — 对应 notifications
// 审批/驳回时尽力写入；投递机制（邮件等）不在本核心范围内
type Notification struct {
	NotificationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	RecipientID    string `gorm:"type:uuid;not null;index"                       json:"recipient_id"`
	RecipientRole  string `gorm:"type:varchar(20);not null"                      json:"recipient_role"` // student | supervisor | examiner | ...
	Title          string `gorm:"type:varchar(200);not null"                     json:"title"`
	Message        string `gorm:"type:text;not null"                             json:"message"`
	IsRead         bool   `gorm:"not null;default:false"                         json:"is_read"`
	BaseModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
