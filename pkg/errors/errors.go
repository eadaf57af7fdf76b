package errors

import (
	"errors"
	"fmt"
)

// Kind 工作流错误类别
// 五类错误对应不同的 HTTP 状态码与前端提示策略，由 Handler 层统一映射
type Kind string

const (
	KindValidation Kind = "validation" // 输入缺失/格式非法
	KindNotFound   Kind = "not_found"  // 引用的学生/教职工/分配记录不存在
	KindIneligible Kind = "ineligible" // 实体存在但不满足活跃/角色前置条件
	KindConflict   Kind = "conflict"   // 重复配对、容量上限、状态已终结
	KindForbidden  Kind = "forbidden"  // 操作者角色/级别不足
)

// ── 机器可读原因码 ──
// Repository 守卫与 Service 共享同一套原因码，保证跨层语义一致

const (
	ReasonDuplicate             = "duplicate"
	ReasonMainSupervisorExists  = "main_supervisor_exists"
	ReasonStudentCapacity       = "student_capacity"
	ReasonStaffCapacity         = "staff_capacity"
	ReasonNotPending            = "not_pending"
	ReasonRemarksTooShort       = "remarks_too_short"
	ReasonRequesterNotExecutive = "requester_not_executive"
)

// Error 类型化工作流错误
// 携带类别 + 原因码 + 人类可读消息；整个校验/守卫链路统一使用
type Error struct {
	Kind   Kind
	Reason string
	Msg    string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s(%s)", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s(%s): %s", e.Kind, e.Reason, e.Msg)
}

// Is 支持 errors.Is 按 Kind+Reason 做哨兵式比较
// target 的 Reason 为空时仅比较 Kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// ── 构造函数 ──

// Validation 输入校验错误
func Validation(reason, msg string) *Error {
	return &Error{Kind: KindValidation, Reason: reason, Msg: msg}
}

// NotFound 实体不存在错误
func NotFound(reason, msg string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason, Msg: msg}
}

// Ineligible 前置条件不满足错误
func Ineligible(reason, msg string) *Error {
	return &Error{Kind: KindIneligible, Reason: reason, Msg: msg}
}

// Conflict 冲突类错误（重复/容量/状态竞争）
func Conflict(reason, msg string) *Error {
	return &Error{Kind: KindConflict, Reason: reason, Msg: msg}
}

// Forbidden 权限不足错误
func Forbidden(reason, msg string) *Error {
	return &Error{Kind: KindForbidden, Reason: reason, Msg: msg}
}

// ── 判定辅助 ──

// AsWorkflow 提取类型化工作流错误；非工作流错误返回 nil, false
func AsWorkflow(err error) (*Error, bool) {
	var we *Error
	if errors.As(err, &we) {
		return we, true
	}
	return nil, false
}

// IsKind 判断错误是否属于指定类别
func IsKind(err error, kind Kind) bool {
	we, ok := AsWorkflow(err)
	return ok && we.Kind == kind
}

// ReasonOf 提取原因码；非工作流错误返回空串
func ReasonOf(err error) string {
	we, ok := AsWorkflow(err)
	if !ok {
		return ""
	}
	return we.Reason
}
