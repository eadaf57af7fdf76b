package model

// Staff 教职工表 — 对应 staff
// 本核心只读；角色成员关系见 StaffRole
type Staff struct {
	StaffID    string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_id"`
	StaffNo    string       `gorm:"type:varchar(20);not null;uniqueIndex"          json:"staff_no"`
	Name       string       `gorm:"type:varchar(100);not null"                     json:"name"`
	Email      string       `gorm:"type:varchar(255);not null"                     json:"email"`
	Status     EntityStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Department string       `gorm:"type:varchar(100);not null"                     json:"department"`
	BaseModel

	// 关联
	Roles []StaffRole `gorm:"foreignKey:StaffID;references:StaffID" json:"roles,omitempty"`
}

// TableName 指定表名
func (Staff) TableName() string { return "staff" }

// HasRole 是否持有指定角色
func (s *Staff) HasRole(role StaffRoleType) bool {
	return s.RoleMembership(role) != nil
}

// RoleMembership 返回指定角色的成员记录；未持有返回 nil
func (s *Staff) RoleMembership(role StaffRoleType) *StaffRole {
	for i := range s.Roles {
		if s.Roles[i].RoleType == role {
			return &s.Roles[i]
		}
	}
	return nil
}

// StaffRole 教职工角色成员表 — 对应 staff_roles
// Level 仅研究生院角色填写（director/executive），其余角色为 NULL
type StaffRole struct {
	StaffRoleID    string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_role_id"`
	StaffID        string         `gorm:"type:uuid;not null;index"                       json:"staff_id"`
	RoleType       StaffRoleType  `gorm:"type:varchar(20);not null"                      json:"role_type"`
	EmploymentType EmploymentType `gorm:"type:varchar(20);not null;default:'internal'"   json:"employment_type"`
	Level          *RoleLevel     `gorm:"type:varchar(20)"                               json:"level,omitempty"`
	BaseModel
}

// TableName 指定表名
func (StaffRole) TableName() string { return "staff_roles" }
