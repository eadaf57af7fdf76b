package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rominswe/pg-progress-sub001/internal/model"
	apperrors "github.com/rominswe/pg-progress-sub001/pkg/errors"
	"github.com/rominswe/pg-progress-sub001/pkg/response"
)

// MustGetActor 从 Gin 上下文中安全提取操作者三要素（actor_id/role/level）。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetActor(c *gin.Context) (model.Actor, bool) {
	id, exists := c.Get("actor_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return model.Actor{}, false
	}
	idStr, ok := id.(string)
	if !ok || idStr == "" {
		response.Unauthorized(c, 10002, "未认证")
		return model.Actor{}, false
	}

	role, _ := c.Get("role")
	roleStr, ok := role.(string)
	if !ok || roleStr == "" {
		response.Unauthorized(c, 10002, "未认证")
		return model.Actor{}, false
	}

	// level 只对研究生院角色有意义，允许为空
	level, _ := c.Get("level")
	levelStr, _ := level.(string)

	return model.Actor{
		ID:    idStr,
		Role:  model.StaffRoleType(roleStr),
		Level: model.RoleLevel(levelStr),
	}, true
}

// handleWorkflowError 将工作流类型化错误统一映射到 HTTP 响应。
// 非工作流错误一律按 500 处理。
//
//	validation → 400, not_found → 404, ineligible → 422,
//	conflict → 409, forbidden → 403
func handleWorkflowError(c *gin.Context, err error) {
	we, ok := apperrors.AsWorkflow(err)
	if !ok {
		response.InternalError(c)
		return
	}

	switch we.Kind {
	case apperrors.KindValidation:
		response.ErrorWithReason(c, http.StatusBadRequest, 20001, we.Reason, we.Msg)
	case apperrors.KindNotFound:
		response.ErrorWithReason(c, http.StatusNotFound, 20002, we.Reason, we.Msg)
	case apperrors.KindIneligible:
		response.ErrorWithReason(c, http.StatusUnprocessableEntity, 20003, we.Reason, we.Msg)
	case apperrors.KindConflict:
		response.ErrorWithReason(c, http.StatusConflict, 20004, we.Reason, we.Msg)
	case apperrors.KindForbidden:
		response.ErrorWithReason(c, http.StatusForbidden, 20005, we.Reason, we.Msg)
	default:
		response.InternalError(c)
	}
}
