package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/rominswe/pg-progress-sub001/internal/model"
	"github.com/rominswe/pg-progress-sub001/internal/repository"
)

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByMatricNo(_ context.Context, matricNo string) (*model.Student, error) {
	for _, s := range m.students {
		if s.MatricNo == matricNo {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock StaffRepository ──

type mockStaffRepo struct {
	staffs map[string]*model.Staff
}

func newMockStaffRepo() *mockStaffRepo {
	return &mockStaffRepo{staffs: make(map[string]*model.Staff)}
}

func (m *mockStaffRepo) GetWithRoles(_ context.Context, id string) (*model.Staff, error) {
	if s, ok := m.staffs[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) GetByStaffNo(_ context.Context, staffNo string) (*model.Staff, error) {
	for _, s := range m.staffs {
		if s.StaffNo == staffNo {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock AssignmentRepository ──
//
// txMu 模拟行锁带来的串行化：InTx 持锁执行整个闭包，
// 并发的 count-then-insert 序列与真实事务一样互斥。
// mu 保护底层 map，使事务外的只读访问在 -race 下安全

type mockAssignmentRepo struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	assignments map[string]*model.RoleAssignment
	seq         int

	// 统计视图预置数据（GetStats/导出测试直接消费）
	studentStats []repository.StatsRow
	staffStats   []repository.StatsRow
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.RoleAssignment)}
}

func (m *mockAssignmentRepo) InTx(_ context.Context, fn func(tx repository.AssignmentRepository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(m)
}

func (m *mockAssignmentRepo) LockParties(_ context.Context, _, _ string) error {
	// 串行化由 InTx 的 txMu 提供
	return nil
}

func (m *mockAssignmentRepo) ExistsActivePairing(_ context.Context, studentID, staffID string, role model.StaffRoleType) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.assignments {
		if a.StudentID == studentID && a.StaffID == staffID && a.StaffRoleType == role &&
			(a.Status == model.StatusPending || a.Status == model.StatusApproved) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAssignmentRepo) CountActiveByStudent(_ context.Context, studentID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, a := range m.assignments {
		if a.StudentID == studentID && (a.Status == model.StatusPending || a.Status == model.StatusApproved) {
			n++
		}
	}
	return n, nil
}

func (m *mockAssignmentRepo) CountActiveByStudentAndType(_ context.Context, studentID string, t model.AssignmentType) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, a := range m.assignments {
		if a.StudentID == studentID && a.Type == t && (a.Status == model.StatusPending || a.Status == model.StatusApproved) {
			n++
		}
	}
	return n, nil
}

func (m *mockAssignmentRepo) CountActiveByStaff(_ context.Context, staffID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, a := range m.assignments {
		if a.StaffID == staffID && (a.Status == model.StatusPending || a.Status == model.StatusApproved) {
			n++
		}
	}
	return n, nil
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.RoleAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if assignment.AssignmentID == "" {
		m.seq++
		assignment.AssignmentID = fmt.Sprintf("ra-%03d", m.seq)
	}
	stored := *assignment
	m.assignments[assignment.AssignmentID] = &stored
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.RoleAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.assignments[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.RoleAssignment, error) {
	return m.GetByID(ctx, id)
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.RoleAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *assignment
	m.assignments[assignment.AssignmentID] = &stored
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.assignments, id)
	return nil
}

func (m *mockAssignmentRepo) ListPending(_ context.Context, f *repository.PendingFilter) ([]model.RoleAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []model.RoleAssignment
	for _, a := range m.assignments {
		if a.Status != model.StatusPending {
			continue
		}
		if f != nil && f.Department != "" && (a.Student == nil || a.Student.Department != f.Department) {
			continue
		}
		if f != nil && f.Program != "" && (a.Student == nil || a.Student.Program != f.Program) {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RequestDate.Before(result[j].RequestDate)
	})
	return result, nil
}

func (m *mockAssignmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.RoleAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []model.RoleAssignment
	for _, a := range m.assignments {
		if a.StudentID == studentID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RequestDate.After(result[j].RequestDate)
	})
	return result, nil
}

func (m *mockAssignmentRepo) ListByStaff(_ context.Context, staffID string) ([]model.RoleAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []model.RoleAssignment
	for _, a := range m.assignments {
		if a.StaffID == staffID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RequestDate.After(result[j].RequestDate)
	})
	return result, nil
}

func (m *mockAssignmentRepo) StudentStats(_ context.Context, _ *repository.StatsFilter) ([]repository.StatsRow, error) {
	return m.studentStats, nil
}

func (m *mockAssignmentRepo) StaffStats(_ context.Context, _ *repository.StatsFilter) ([]repository.StatsRow, error) {
	return m.staffStats, nil
}

// ── Mock AuditLogRepository ──

type mockAuditLogRepo struct {
	mu   sync.Mutex
	logs []model.AuditLog
}

func newMockAuditLogRepo() *mockAuditLogRepo {
	return &mockAuditLogRepo{}
}

func (m *mockAuditLogRepo) Create(_ context.Context, log *model.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockAuditLogRepo) ListByEntity(_ context.Context, entityType, entityID string) ([]model.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.AuditLog
	for _, l := range m.logs {
		if l.EntityType == entityType && l.EntityID == entityID {
			result = append(result, l)
		}
	}
	return result, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	mu            sync.Mutex
	notifications []model.Notification
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.NotificationID == "" {
		m.seq++
		n.NotificationID = fmt.Sprintf("ntf-%03d", m.seq)
	}
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *mockNotificationRepo) ListByRecipient(_ context.Context, recipientID string, offset, limit int) ([]model.Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []model.Notification
	for _, n := range m.notifications {
		if n.RecipientID == recipientID {
			matched = append(matched, n)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, recipientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notifications {
		if m.notifications[i].NotificationID == id && m.notifications[i].RecipientID == recipientID {
			m.notifications[i].IsRead = true
		}
	}
	return nil
}
