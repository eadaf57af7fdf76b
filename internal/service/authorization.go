package service

import "github.com/rominswe/pg-progress-sub001/internal/model"

// Transition 工作流迁移动作
type Transition string

const (
	TransitionApprove Transition = "approve"
	TransitionReject  Transition = "reject"
	TransitionDelete  Transition = "delete"
)

// roleRule 单条许可规则；level 为空表示不限级别
type roleRule struct {
	role  model.StaffRoleType
	level model.RoleLevel
}

// transitionPolicy 迁移 → 许可规则静态表
//
// 创建(request)不在表内：任何已认证职工均可发起，操作者身份仅记入
// requested_by，其角色在审批时才被校验（"请求人须为专员"子检查）。
// 审批/驳回：系统管理员，或研究生院主任级
// 删除：系统管理员或研究生院（不限级别，不限记录状态）
var transitionPolicy = map[Transition][]roleRule{
	TransitionApprove: {
		{role: model.RoleAdmin},
		{role: model.RoleGradOffice, level: model.LevelDirector},
	},
	TransitionReject: {
		{role: model.RoleAdmin},
		{role: model.RoleGradOffice, level: model.LevelDirector},
	},
	TransitionDelete: {
		{role: model.RoleAdmin},
		{role: model.RoleGradOffice},
	},
}

// transitionAllowed 操作者是否被许可执行指定迁移
func transitionAllowed(t Transition, actor model.Actor) bool {
	for _, rule := range transitionPolicy[t] {
		if rule.role != actor.Role {
			continue
		}
		if rule.level == "" || rule.level == actor.Level {
			return true
		}
	}
	return false
}
