package model

import "time"

// RoleAssignment 角色分配记录表 — 对应 role_assignments
// 本核心唯一拥有写权的实体；student_id/staff_id 创建后不可变
//
// 生命周期：请求操作创建 pending 记录；审批操作恰好一次地迁移到终态
// （approved/rejected 并填写决定字段）；授权的行政操作者可在任意状态下
// 硬删除整行（删除不是状态迁移）
type RoleAssignment struct {
	AssignmentID  string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	StudentID     string           `gorm:"type:uuid;not null;index"                       json:"student_id"`
	StaffID       string           `gorm:"type:uuid;not null;index"                       json:"staff_id"`
	StaffRoleType StaffRoleType    `gorm:"type:varchar(20);not null"                      json:"staff_role_type"`
	Type          AssignmentType   `gorm:"column:assignment_type;type:varchar(30);not null" json:"assignment_type"`
	Status        AssignmentStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	RequestedBy   string           `gorm:"type:uuid;not null"                             json:"requested_by"`
	RequestDate   time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"request_date"`
	ApprovedBy    *string          `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	ApprovalDate  *time.Time       `json:"approval_date,omitempty"`
	Remarks       string           `gorm:"type:varchar(500)"                              json:"remarks,omitempty"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Staff   *Staff   `gorm:"foreignKey:StaffID;references:StaffID"     json:"staff,omitempty"`
}

// TableName 指定表名
func (RoleAssignment) TableName() string { return "role_assignments" }
