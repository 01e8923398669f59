package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/internal/model"
)

// ==================== 接口定义 ====================

// AICommandLogRepository AI 指令日志仓储接口
type AICommandLogRepository interface {
	Create(ctx context.Context, log *model.AICommandLog) error
	GetByID(ctx context.Context, id int64) (*model.AICommandLog, error)
	List(ctx context.Context, page, limit int) ([]model.AICommandLog, int64, error)

	// CountByResult 按成功/失败统计记录数
	CountByResult(ctx context.Context, isSuccess bool) (int64, error)
}

// ==================== 仓储实现 ====================

type aiCommandLogRepo struct {
	db *gorm.DB
}

// NewAICommandLogRepository 创建 AI 指令日志仓储
func NewAICommandLogRepository(db *gorm.DB) AICommandLogRepository {
	return &aiCommandLogRepo{db: db}
}

func (r *aiCommandLogRepo) Create(ctx context.Context, log *model.AICommandLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *aiCommandLogRepo) GetByID(ctx context.Context, id int64) (*model.AICommandLog, error) {
	var log model.AICommandLog
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *aiCommandLogRepo) List(ctx context.Context, page, limit int) ([]model.AICommandLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.AICommandLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.AICommandLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error
	return logs, total, err
}

func (r *aiCommandLogRepo) CountByResult(ctx context.Context, isSuccess bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AICommandLog{}).
		Where("is_success = ?", isSuccess).
		Count(&count).Error
	return count, err
}
