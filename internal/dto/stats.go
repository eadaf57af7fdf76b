package dto

// ── 统计视图 DTO ──

// StatsQuery 分配统计查询条件
// 只读聚合视图；容量判定永远走事务内计数，不以此为依据
type StatsQuery struct {
	EntityType string `form:"entity_type" binding:"required,oneof=student staff"`
	Department string `form:"department"`
	Program    string `form:"program"` // 仅 entity_type=student 有意义
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// EntityStats 单个实体的分配统计行
type EntityStats struct {
	EntityID      string `json:"entity_id"`
	No            string `json:"no"` // 学号或工号
	Name          string `json:"name"`
	Department    string `json:"department"`
	Program       string `json:"program,omitempty"`
	PendingCount  int64  `json:"pending_count"`
	ApprovedCount int64  `json:"approved_count"`
	RejectedCount int64  `json:"rejected_count"`
}
