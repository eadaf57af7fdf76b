package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rominswe/pg-progress-sub001/config"
	"github.com/rominswe/pg-progress-sub001/internal/api/handler"
	"github.com/rominswe/pg-progress-sub001/internal/api/middleware"
	"github.com/rominswe/pg-progress-sub001/pkg/jwt"
	"github.com/rominswe/pg-progress-sub001/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(rdb, 120, time.Minute))
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		// 分配工作流模块
		assignments := v1.Group("/assignments")
		{
			// 发起不设角色门：requested_by 如实记录，发起人资格在审批时复核
			assignments.POST("", h.Assignment.Request)
			assignments.GET("/pending", middleware.RoleAuth("admin", "grad_office"), h.Report.ListPending)
			assignments.GET("/stats", middleware.RoleAuth("admin", "grad_office"), h.Report.GetStats)
			assignments.GET("/stats/export", middleware.RoleAuth("admin", "grad_office"), h.Report.ExportStats)
			assignments.GET("/entity/:type/:id", h.Report.GetEntityAssignments)
			assignments.PUT("/:id/approve", middleware.RoleAuth("admin", "grad_office"), h.Assignment.Approve)
			assignments.PUT("/:id/reject", middleware.RoleAuth("admin", "grad_office"), h.Assignment.Reject)
			assignments.DELETE("/:id", middleware.RoleAuth("admin", "grad_office"), h.Assignment.Delete)
		}

		// 名录查询模块
		v1.GET("/students/:id", h.Directory.GetStudent)
		v1.GET("/staff/:id", h.Directory.GetStaff)

		// 通知模块
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
		}
	}

	return r
}
