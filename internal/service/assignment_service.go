package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rominswe/pg-progress-sub001/internal/dto"
	"github.com/rominswe/pg-progress-sub001/internal/model"
	"github.com/rominswe/pg-progress-sub001/internal/repository"
	apperrors "github.com/rominswe/pg-progress-sub001/pkg/errors"
)

// AssignmentService 角色分配工作流业务接口
//
// 所有操作显式接收 model.Actor（操作者 id/角色/级别），不依赖任何
// 请求级全局状态。守卫检查与写入在同一事务内完成，见 AssignmentRepository
type AssignmentService interface {
	// Request 发起分配请求，成功返回 pending 状态的新记录
	Request(ctx context.Context, req *dto.RequestAssignmentRequest, actor model.Actor) (*dto.AssignmentResponse, error)
	// Approve 审批通过（pending → approved）
	Approve(ctx context.Context, assignmentID string, actor model.Actor) (*dto.AssignmentResponse, error)
	// Reject 驳回（pending → rejected），remarks 不少于 10 字符
	Reject(ctx context.Context, assignmentID string, req *dto.RejectAssignmentRequest, actor model.Actor) (*dto.AssignmentResponse, error)
	// Delete 硬删除记录（任意状态），仅限行政角色
	Delete(ctx context.Context, assignmentID string, actor model.Actor) error
}

type assignmentService struct {
	repo     *repository.Repository
	audit    AuditSink
	notifier NotificationDispatcher
	logger   *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, audit AuditSink, notifier NotificationDispatcher, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, audit: audit, notifier: notifier, logger: logger}
}

// ────────────────────── Request ──────────────────────

func (s *assignmentService) Request(ctx context.Context, req *dto.RequestAssignmentRequest, actor model.Actor) (*dto.AssignmentResponse, error) {
	role := model.StaffRoleType(req.StaffRoleType)
	if !role.IsAssignable() {
		return nil, apperrors.Validation("role_not_assignable", "该角色不可指派给学生")
	}

	assignType := model.AssignmentType(req.AssignmentType)
	if assignType == "" {
		assignType = model.DefaultAssignmentType(role)
	}
	if !assignType.Valid() || !assignType.MatchesRole(role) {
		return nil, apperrors.Validation("type_role_mismatch", "分配子类型与角色不匹配")
	}

	// 身份与资格解析（纯读，无副作用）
	student, err := s.resolveStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	staff, err := s.resolveStaff(ctx, req.StaffID, role)
	if err != nil {
		return nil, err
	}

	assignment := &model.RoleAssignment{
		StudentID:     req.StudentID,
		StaffID:       req.StaffID,
		StaffRoleType: role,
		Type:          assignType,
		Status:        model.StatusPending,
		RequestedBy:   actor.ID,
		RequestDate:   time.Now(),
	}

	// 查重守卫 + 容量守卫 + 插入，单事务执行；
	// LockParties 串行化同一学生/教职工上的并发 count-then-insert 序列
	err = s.repo.Assignment.InTx(ctx, func(tx repository.AssignmentRepository) error {
		if err := tx.LockParties(ctx, req.StudentID, req.StaffID); err != nil {
			return err
		}

		dup, err := tx.ExistsActivePairing(ctx, req.StudentID, req.StaffID, role)
		if err != nil {
			return err
		}
		if dup {
			return apperrors.Conflict(apperrors.ReasonDuplicate, "该学生与该教职工已存在同角色的有效分配")
		}

		if assignType == model.AssignMainSupervisor {
			n, err := tx.CountActiveByStudentAndType(ctx, req.StudentID, model.AssignMainSupervisor)
			if err != nil {
				return err
			}
			if n >= 1 {
				return apperrors.Conflict(apperrors.ReasonMainSupervisorExists, "该学生已有主导师（待审批或已通过）")
			}
		}

		n, err := tx.CountActiveByStudent(ctx, req.StudentID)
		if err != nil {
			return err
		}
		if n >= model.MaxActiveAssignments {
			return apperrors.Conflict(apperrors.ReasonStudentCapacity, "该学生的有效分配数已达上限")
		}

		n, err = tx.CountActiveByStaff(ctx, req.StaffID)
		if err != nil {
			return err
		}
		if n >= model.MaxActiveAssignments {
			return apperrors.Conflict(apperrors.ReasonStaffCapacity, "该教职工的有效分配数已达上限")
		}

		return tx.Create(ctx, assignment)
	})
	if err != nil {
		if _, ok := apperrors.AsWorkflow(err); !ok {
			s.logger.Error("创建分配记录失败", zap.Error(err))
		}
		return nil, err
	}

	s.audit.Record(ctx, actor.ID, "request", "role_assignment", assignment.AssignmentID,
		fmt.Sprintf("学生 %s ← 教职工 %s（%s/%s）", student.MatricNo, staff.StaffNo, role, assignType))

	assignment.Student = student
	assignment.Staff = staff
	return toAssignmentResponse(assignment), nil
}

// ────────────────────── Approve ──────────────────────

func (s *assignmentService) Approve(ctx context.Context, assignmentID string, actor model.Actor) (*dto.AssignmentResponse, error) {
	if !transitionAllowed(TransitionApprove, actor) {
		return nil, apperrors.Forbidden("insufficient_role", "仅系统管理员或研究生院主任可审批")
	}

	current, err := s.getAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	// "请求人须为专员"子检查：依据发起人的历史角色状态，独立于主授权表；
	// 审批者为系统管理员时跳过（保留原有旁路语义）
	if actor.Role != model.RoleAdmin {
		if err := s.verifyRequesterExecutive(ctx, current.RequestedBy); err != nil {
			return nil, err
		}
	}

	resolved, err := s.resolve(ctx, assignmentID, func(a *model.RoleAssignment, now time.Time) {
		a.Status = model.StatusApproved
		a.ApprovedBy = &actor.ID
		a.ApprovalDate = &now
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor.ID, "approve", "role_assignment", assignmentID, "")
	s.notifyDecision(ctx, resolved, "分配已通过",
		fmt.Sprintf("编号 %s 的角色分配已审批通过", assignmentID))

	return toAssignmentResponse(resolved), nil
}

// ────────────────────── Reject ──────────────────────

func (s *assignmentService) Reject(ctx context.Context, assignmentID string, req *dto.RejectAssignmentRequest, actor model.Actor) (*dto.AssignmentResponse, error) {
	if utf8.RuneCountInString(req.Remarks) < model.MinRemarksLen {
		return nil, apperrors.Validation(apperrors.ReasonRemarksTooShort, "驳回意见不得少于 10 字符")
	}
	if !transitionAllowed(TransitionReject, actor) {
		return nil, apperrors.Forbidden("insufficient_role", "仅系统管理员或研究生院主任可驳回")
	}

	resolved, err := s.resolve(ctx, assignmentID, func(a *model.RoleAssignment, now time.Time) {
		a.Status = model.StatusRejected
		a.ApprovedBy = &actor.ID
		a.ApprovalDate = &now
		a.Remarks = req.Remarks
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor.ID, "reject", "role_assignment", assignmentID, req.Remarks)
	s.notifyDecision(ctx, resolved, "分配已驳回",
		fmt.Sprintf("编号 %s 的角色分配被驳回：%s", assignmentID, req.Remarks))

	return toAssignmentResponse(resolved), nil
}

// ────────────────────── Delete ──────────────────────

func (s *assignmentService) Delete(ctx context.Context, assignmentID string, actor model.Actor) error {
	if !transitionAllowed(TransitionDelete, actor) {
		return apperrors.Forbidden("insufficient_role", "仅系统管理员或研究生院可删除分配记录")
	}

	if _, err := s.getAssignment(ctx, assignmentID); err != nil {
		return err
	}

	if err := s.repo.Assignment.Delete(ctx, assignmentID); err != nil {
		s.logger.Error("删除分配记录失败", zap.String("id", assignmentID), zap.Error(err))
		return err
	}

	s.audit.Record(ctx, actor.ID, "delete", "role_assignment", assignmentID, "")
	return nil
}

// ────────────────────── 内部辅助 ──────────────────────

// resolve 在单事务内完成终态迁移：行锁读取 → pending 终检 → 写入。
// 并发的二次审批/先批后驳竞争在此处以 Conflict(not_pending) 失败
func (s *assignmentService) resolve(ctx context.Context, assignmentID string, mutate func(*model.RoleAssignment, time.Time)) (*model.RoleAssignment, error) {
	var resolved *model.RoleAssignment
	err := s.repo.Assignment.InTx(ctx, func(tx repository.AssignmentRepository) error {
		a, err := tx.GetByIDForUpdate(ctx, assignmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("assignment_not_found", "分配记录不存在")
			}
			return err
		}
		if a.Status != model.StatusPending {
			return apperrors.Conflict(apperrors.ReasonNotPending, "该分配已被处理")
		}

		mutate(a, time.Now())
		if err := tx.Update(ctx, a); err != nil {
			return err
		}
		resolved = a
		return nil
	})
	if err != nil {
		if _, ok := apperrors.AsWorkflow(err); !ok {
			s.logger.Error("分配状态迁移失败", zap.String("id", assignmentID), zap.Error(err))
		}
		return nil, err
	}
	return resolved, nil
}

// verifyRequesterExecutive 校验发起人当时记录的身份是研究生院专员
func (s *assignmentService) verifyRequesterExecutive(ctx context.Context, requesterID string) error {
	requester, err := s.repo.Staff.GetWithRoles(ctx, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Forbidden(apperrors.ReasonRequesterNotExecutive, "发起人身份无法核实为研究生院专员")
		}
		s.logger.Error("查询发起人角色失败", zap.String("requester_id", requesterID), zap.Error(err))
		return err
	}

	membership := requester.RoleMembership(model.RoleGradOffice)
	if membership == nil || membership.Level == nil || *membership.Level != model.LevelExecutive {
		return apperrors.Forbidden(apperrors.ReasonRequesterNotExecutive, "发起人不是研究生院专员")
	}
	return nil
}

func (s *assignmentService) getAssignment(ctx context.Context, id string) (*model.RoleAssignment, error) {
	a, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("assignment_not_found", "分配记录不存在")
		}
		s.logger.Error("查询分配记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) resolveStudent(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("student_not_found", "学生不存在")
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if student.Status != model.EntityActive {
		return nil, apperrors.Ineligible("student_inactive", "学生账户未激活")
	}
	return student, nil
}

func (s *assignmentService) resolveStaff(ctx context.Context, id string, role model.StaffRoleType) (*model.Staff, error) {
	staff, err := s.repo.Staff.GetWithRoles(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("staff_not_found", "教职工不存在")
		}
		s.logger.Error("查询教职工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if staff.Status != model.EntityActive {
		return nil, apperrors.Ineligible("staff_inactive", "教职工账户未激活")
	}
	if !staff.HasRole(role) {
		return nil, apperrors.Ineligible("role_not_held", "教职工未持有所请求的角色")
	}
	return staff, nil
}

// notifyDecision 审批/驳回后尽力通知分配双方
func (s *assignmentService) notifyDecision(ctx context.Context, a *model.RoleAssignment, title, message string) {
	s.notifier.Notify(ctx, a.StaffID, string(a.StaffRoleType), title, message)
	s.notifier.Notify(ctx, a.StudentID, "student", title, message)
}
