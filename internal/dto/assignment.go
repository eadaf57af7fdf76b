package dto

// ── 分配工作流 DTO ──

// RequestAssignmentRequest 发起分配请求
// assignment_type 省略时按角色取默认值：supervisor → main_supervisor，examiner → final_examiner
type RequestAssignmentRequest struct {
	StudentID      string `json:"student_id"      binding:"required,uuid"`
	StaffID        string `json:"staff_id"        binding:"required,uuid"`
	StaffRoleType  string `json:"staff_role_type" binding:"required,oneof=supervisor examiner"`
	AssignmentType string `json:"assignment_type" binding:"omitempty,oneof=main_supervisor co_supervisor proposal_examiner final_examiner"`
}

// RejectAssignmentRequest 驳回分配请求
// remarks 最短长度由引擎校验（≥10 字符），以便返回类型化错误而非绑定错误
type RejectAssignmentRequest struct {
	Remarks string `json:"remarks" binding:"required"`
}

// AssignmentResponse 分配记录响应
type AssignmentResponse struct {
	ID             string        `json:"id"`
	StudentID      string        `json:"student_id"`
	StaffID        string        `json:"staff_id"`
	StaffRoleType  string        `json:"staff_role_type"`
	AssignmentType string        `json:"assignment_type"`
	Status         string        `json:"status"`
	RequestedBy    string        `json:"requested_by"`
	RequestDate    string        `json:"request_date"`
	ApprovedBy     *string       `json:"approved_by,omitempty"`
	ApprovalDate   *string       `json:"approval_date,omitempty"`
	Remarks        string        `json:"remarks,omitempty"`
	Student        *StudentBrief `json:"student,omitempty"`
	Staff          *StaffBrief   `json:"staff,omitempty"`
}

// StudentBrief 学生展示信息（列表/历史视图附带）
type StudentBrief struct {
	ID            string `json:"id"`
	MatricNo      string `json:"matric_no"`
	Name          string `json:"name"`
	Department    string `json:"department"`
	Program       string `json:"program"`
	AcademicLevel string `json:"academic_level"`
}

// StaffBrief 教职工展示信息
type StaffBrief struct {
	ID         string `json:"id"`
	StaffNo    string `json:"staff_no"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// PendingFilter 待审批队列过滤条件
type PendingFilter struct {
	Department string `form:"department"`
	Program    string `form:"program"`
	Search     string `form:"search"` // 学生/教职工姓名或学号模糊匹配
}

// EntityAssignmentsRequest 按实体查询分配历史
// entity_type: student | staff
type EntityAssignmentsRequest struct {
	EntityType string `uri:"type" binding:"required,oneof=student staff"`
	EntityID   string `uri:"id"   binding:"required,uuid"`
}
