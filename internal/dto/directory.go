package dto

// ── 身份目录 DTO ──

// StudentResponse 学生详情响应
type StudentResponse struct {
	ID            string `json:"id"`
	MatricNo      string `json:"matric_no"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Status        string `json:"status"`
	Department    string `json:"department"`
	Program       string `json:"program"`
	AcademicLevel string `json:"academic_level"`
	CreatedAt     string `json:"created_at"`
}

// StaffResponse 教职工详情响应（含角色成员关系）
type StaffResponse struct {
	ID         string              `json:"id"`
	StaffNo    string              `json:"staff_no"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Status     string              `json:"status"`
	Department string              `json:"department"`
	Roles      []StaffRoleResponse `json:"roles"`
	CreatedAt  string              `json:"created_at"`
}

// StaffRoleResponse 角色成员关系
type StaffRoleResponse struct {
	RoleType       string  `json:"role_type"`
	EmploymentType string  `json:"employment_type"`
	Level          *string `json:"level,omitempty"`
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}
