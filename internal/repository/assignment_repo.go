package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rominswe/pg-progress-sub001/internal/model"
)

// activeStatuses 占用配对/容量名额的状态集合
var activeStatuses = []model.AssignmentStatus{model.StatusPending, model.StatusApproved}

// PendingFilter 待审批队列过滤条件
type PendingFilter struct {
	Department string
	Program    string
	Search     string
}

// StatsFilter 统计视图过滤条件
type StatsFilter struct {
	Department string
	Program    string
	Search     string
	Status     string
}

// StatsRow 按实体聚合的统计扫描行
type StatsRow struct {
	EntityID      string
	No            string
	Name          string
	Department    string
	Program       string
	PendingCount  int64
	ApprovedCount int64
	RejectedCount int64
}

// AssignmentRepository 分配记录数据访问接口
//
// 守卫检查（查重/计数）与最终写入必须发生在同一事务内：
// Service 通过 InTx 获得绑定事务的 Repository，先 LockParties 对
// 学生/教职工行加排他锁，再执行 count-then-insert 序列，关闭并发
// 请求同时观察到旧计数的竞争窗口。迁移脚本中的部分唯一索引作为
// 存储层的第二道防线
type AssignmentRepository interface {
	// InTx 在单个数据库事务内执行 fn；fn 收到的 Repository 绑定该事务
	InTx(ctx context.Context, fn func(tx AssignmentRepository) error) error
	// LockParties 对学生行与教职工行加 FOR UPDATE 锁（固定先学生后教职工，避免死锁）
	LockParties(ctx context.Context, studentID, staffID string) error

	// ── 守卫计数（仅在 InTx 内配合 LockParties 使用才有并发意义）──
	ExistsActivePairing(ctx context.Context, studentID, staffID string, role model.StaffRoleType) (bool, error)
	CountActiveByStudent(ctx context.Context, studentID string) (int64, error)
	CountActiveByStudentAndType(ctx context.Context, studentID string, t model.AssignmentType) (int64, error)
	CountActiveByStaff(ctx context.Context, staffID string) (int64, error)

	Create(ctx context.Context, assignment *model.RoleAssignment) error
	GetByID(ctx context.Context, id string) (*model.RoleAssignment, error)
	// GetByIDForUpdate 行锁读取，用于审批/驳回前的状态终检
	GetByIDForUpdate(ctx context.Context, id string) (*model.RoleAssignment, error)
	Update(ctx context.Context, assignment *model.RoleAssignment) error
	// Delete 硬删除（删除不是状态迁移）
	Delete(ctx context.Context, id string) error

	// ── 只读视图 ──
	ListPending(ctx context.Context, f *PendingFilter) ([]model.RoleAssignment, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.RoleAssignment, error)
	ListByStaff(ctx context.Context, staffID string) ([]model.RoleAssignment, error)
	StudentStats(ctx context.Context, f *StatsFilter) ([]StatsRow, error)
	StaffStats(ctx context.Context, f *StatsFilter) ([]StatsRow, error)
}

// assignmentRepo AssignmentRepository 的 GORM 实现
type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) InTx(ctx context.Context, fn func(tx AssignmentRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&assignmentRepo{db: tx})
	})
}

func (r *assignmentRepo) LockParties(ctx context.Context, studentID, staffID string) error {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ?", studentID).
		Pluck("student_id", &ids).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.Staff{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("staff_id = ?", staffID).
		Pluck("staff_id", &ids).Error
}

func (r *assignmentRepo) ExistsActivePairing(ctx context.Context, studentID, staffID string, role model.StaffRoleType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RoleAssignment{}).
		Where("student_id = ? AND staff_id = ? AND staff_role_type = ? AND status IN ?",
			studentID, staffID, role, activeStatuses).
		Count(&count).Error
	return count > 0, err
}

func (r *assignmentRepo) CountActiveByStudent(ctx context.Context, studentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RoleAssignment{}).
		Where("student_id = ? AND status IN ?", studentID, activeStatuses).
		Count(&count).Error
	return count, err
}

func (r *assignmentRepo) CountActiveByStudentAndType(ctx context.Context, studentID string, t model.AssignmentType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RoleAssignment{}).
		Where("student_id = ? AND assignment_type = ? AND status IN ?", studentID, t, activeStatuses).
		Count(&count).Error
	return count, err
}

func (r *assignmentRepo) CountActiveByStaff(ctx context.Context, staffID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RoleAssignment{}).
		Where("staff_id = ? AND status IN ?", staffID, activeStatuses).
		Count(&count).Error
	return count, err
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.RoleAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.RoleAssignment, error) {
	var a model.RoleAssignment
	err := r.db.WithContext(ctx).
		Preload("Student").Preload("Staff").
		Where("assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.RoleAssignment, error) {
	var a model.RoleAssignment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) Update(ctx context.Context, assignment *model.RoleAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Delete(&model.RoleAssignment{}).Error
}

func (r *assignmentRepo) ListPending(ctx context.Context, f *PendingFilter) ([]model.RoleAssignment, error) {
	q := r.db.WithContext(ctx).
		Preload("Student").Preload("Staff").
		Joins("JOIN students ON students.student_id = role_assignments.student_id").
		Joins("JOIN staff ON staff.staff_id = role_assignments.staff_id").
		Where("role_assignments.status = ?", model.StatusPending)

	if f != nil {
		if f.Department != "" {
			q = q.Where("students.department = ?", f.Department)
		}
		if f.Program != "" {
			q = q.Where("students.program = ?", f.Program)
		}
		if f.Search != "" {
			like := "%" + f.Search + "%"
			q = q.Where("students.name ILIKE ? OR students.matric_no ILIKE ? OR staff.name ILIKE ?",
				like, like, like)
		}
	}

	var assignments []model.RoleAssignment
	err := q.Order("role_assignments.request_date ASC").Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByStudent(ctx context.Context, studentID string) ([]model.RoleAssignment, error) {
	var assignments []model.RoleAssignment
	err := r.db.WithContext(ctx).
		Preload("Staff").
		Where("student_id = ?", studentID).
		Order("request_date DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByStaff(ctx context.Context, staffID string) ([]model.RoleAssignment, error) {
	var assignments []model.RoleAssignment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("staff_id = ?", staffID).
		Order("request_date DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) StudentStats(ctx context.Context, f *StatsFilter) ([]StatsRow, error) {
	q := r.db.WithContext(ctx).
		Table("students AS s").
		Select(`s.student_id AS entity_id, s.matric_no AS no, s.name, s.department, s.program,
			COUNT(ra.assignment_id) FILTER (WHERE ra.status = 'pending')  AS pending_count,
			COUNT(ra.assignment_id) FILTER (WHERE ra.status = 'approved') AS approved_count,
			COUNT(ra.assignment_id) FILTER (WHERE ra.status = 'rejected') AS rejected_count`)

	if f != nil && f.Status != "" {
		q = q.Joins("LEFT JOIN role_assignments ra ON ra.student_id = s.student_id AND ra.status = ?", f.Status)
	} else {
		q = q.Joins("LEFT JOIN role_assignments ra ON ra.student_id = s.student_id")
	}

	if f != nil {
		if f.Department != "" {
			q = q.Where("s.department = ?", f.Department)
		}
		if f.Program != "" {
			q = q.Where("s.program = ?", f.Program)
		}
		if f.Search != "" {
			like := "%" + f.Search + "%"
			q = q.Where("s.name ILIKE ? OR s.matric_no ILIKE ?", like, like)
		}
	}

	var rows []StatsRow
	err := q.Group("s.student_id, s.matric_no, s.name, s.department, s.program").
		Order("s.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *assignmentRepo) StaffStats(ctx context.Context, f *StatsFilter) ([]StatsRow, error) {
	q := r.db.WithContext(ctx).
		Table("staff AS f").
		Select(`f.staff_id AS entity_id, f.staff_no AS no, f.name, f.department, '' AS program,
			COUNT(ra.assignment_id) FILTER (WHERE ra.status = 'pending')  AS pending_count,
			COUNT(ra.assignment_id) FILTER (WHERE ra.status = 'approved') AS approved_count,
			COUNT(ra.assignment_id) FILTER (WHERE ra.status = 'rejected') AS rejected_count`)

	if f != nil && f.Status != "" {
		q = q.Joins("LEFT JOIN role_assignments ra ON ra.staff_id = f.staff_id AND ra.status = ?", f.Status)
	} else {
		q = q.Joins("LEFT JOIN role_assignments ra ON ra.staff_id = f.staff_id")
	}

	if f != nil {
		if f.Department != "" {
			q = q.Where("f.department = ?", f.Department)
		}
		if f.Search != "" {
			like := "%" + f.Search + "%"
			q = q.Where("f.name ILIKE ? OR f.staff_no ILIKE ?", like, like)
		}
	}

	var rows []StatsRow
	err := q.Group("f.staff_id, f.staff_no, f.name, f.department").
		Order("f.name ASC").
		Scan(&rows).Error
	return rows, err
}
