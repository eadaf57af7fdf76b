package model

// ── 实体状态 ──

// EntityStatus 学生/教职工账户状态
type EntityStatus string

const (
	EntityActive   EntityStatus = "active"
	EntityInactive EntityStatus = "inactive"
	EntityPending  EntityStatus = "pending"
)

// ── 教职工角色 ──

// StaffRoleType 教职工角色类型（封闭枚举）
type StaffRoleType string

const (
	RoleSupervisor StaffRoleType = "supervisor"  // 导师
	RoleExaminer   StaffRoleType = "examiner"    // 评审专家
	RoleGradOffice StaffRoleType = "grad_office" // 研究生院（运转分配流程的行政角色）
	RoleAdmin      StaffRoleType = "admin"       // 系统管理员
)

// IsAssignable 该角色是否可被指派给学生
// 仅导师与评审专家可出现在分配记录中
func (r StaffRoleType) IsAssignable() bool {
	return r == RoleSupervisor || r == RoleExaminer
}

// Valid 是否为已知角色
func (r StaffRoleType) Valid() bool {
	switch r {
	case RoleSupervisor, RoleExaminer, RoleGradOffice, RoleAdmin:
		return true
	}
	return false
}

// RoleLevel 研究生院角色内部级别
type RoleLevel string

const (
	LevelDirector  RoleLevel = "director"  // 主任：审批分配请求
	LevelExecutive RoleLevel = "executive" // 专员：发起分配请求
)

// EmploymentType 聘任类型
type EmploymentType string

const (
	EmploymentInternal EmploymentType = "internal"
	EmploymentExternal EmploymentType = "external"
)

// ── 分配记录 ──

// AssignmentType 分配子类型
// main_supervisor 受"每名学生至多一位主导师"唯一性约束
type AssignmentType string

const (
	AssignMainSupervisor   AssignmentType = "main_supervisor"
	AssignCoSupervisor     AssignmentType = "co_supervisor"
	AssignProposalExaminer AssignmentType = "proposal_examiner"
	AssignFinalExaminer    AssignmentType = "final_examiner"
)

// Valid 是否为已知分配子类型
func (t AssignmentType) Valid() bool {
	switch t {
	case AssignMainSupervisor, AssignCoSupervisor, AssignProposalExaminer, AssignFinalExaminer:
		return true
	}
	return false
}

// MatchesRole 子类型是否与角色匹配（导师类子类型只能配 supervisor，评审类只能配 examiner）
func (t AssignmentType) MatchesRole(role StaffRoleType) bool {
	switch t {
	case AssignMainSupervisor, AssignCoSupervisor:
		return role == RoleSupervisor
	case AssignProposalExaminer, AssignFinalExaminer:
		return role == RoleExaminer
	}
	return false
}

// DefaultAssignmentType 角色省略子类型时的默认值
// supervisor → 主导师；examiner → 论文终审评审
func DefaultAssignmentType(role StaffRoleType) AssignmentType {
	if role == RoleExaminer {
		return AssignFinalExaminer
	}
	return AssignMainSupervisor
}

// AssignmentStatus 分配记录生命周期状态
// 状态只能由 pending 单向迁移到 approved 或 rejected
type AssignmentStatus string

const (
	StatusPending  AssignmentStatus = "pending"
	StatusApproved AssignmentStatus = "approved"
	StatusRejected AssignmentStatus = "rejected"
)

// Terminal 是否为终态
func (s AssignmentStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ── 容量与校验常量 ──

const (
	// MaxActiveAssignments 每名学生/每位教职工的活跃分配上限（pending+approved 合计）
	MaxActiveAssignments = 12

	// MinRemarksLen 驳回意见最小长度
	MinRemarksLen = 10
)

// ── 操作者 ──

// Actor 当前操作者（显式参数传递，不依赖请求级全局状态）
// Level 仅研究生院角色有意义，其余角色为空
type Actor struct {
	ID    string
	Role  StaffRoleType
	Level RoleLevel
}
