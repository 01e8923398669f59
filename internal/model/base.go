package model

import (
	"time"
)

// BaseModel 通用主键与时间戳
// 生命周期统一用各模型上的 IsActive 软删除标记，不使用 gorm.DeletedAt：
// 历史边（授权记录、审计）需要被停用后仍可查询
type BaseModel struct {
	ID        int64     `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
