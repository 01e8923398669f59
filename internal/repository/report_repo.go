package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/internal/model"
)

// ==================== 接口定义 ====================

// ReportRepository 报表仓储接口
type ReportRepository interface {
	List(ctx context.Context, category string) ([]model.Report, error)
	GetByID(ctx context.Context, id int64) (*model.Report, error)
	GetByCode(ctx context.Context, code string) (*model.Report, error)
	// ListActiveByCodes 按代码集合查询启用中的报表，调用方负责比对数量判断缺失
	ListActiveByCodes(ctx context.Context, codes []string) ([]model.Report, error)
	Create(ctx context.Context, report *model.Report) error
}

// ==================== 仓储实现 ====================

type reportRepo struct {
	db *gorm.DB
}

// NewReportRepository 创建报表仓储
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) List(ctx context.Context, category string) ([]model.Report, error) {
	var reports []model.Report
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("category ASC").Order("code ASC").Find(&reports).Error
	return reports, err
}

func (r *reportRepo) GetByID(ctx context.Context, id int64) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) GetByCode(ctx context.Context, code string) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) ListActiveByCodes(ctx context.Context, codes []string) ([]model.Report, error) {
	var reports []model.Report
	err := r.db.WithContext(ctx).
		Where("code IN ? AND is_active = ?", codes, true).
		Find(&reports).Error
	return reports, err
}

func (r *reportRepo) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}
