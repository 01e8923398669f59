package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/internal/model"
)

// ==================== 过滤条件 ====================

// TemplateFilter 报表组合列表过滤条件
type TemplateFilter struct {
	Search string // 匹配 name / description
	Page   int
	Limit  int
}

// ==================== 接口定义 ====================

// TemplateRepository 报表组合仓储接口
type TemplateRepository interface {
	List(ctx context.Context, filter TemplateFilter) ([]model.ReportTemplate, int64, error)
	GetByID(ctx context.Context, id int64) (*model.ReportTemplate, error)
	GetDetail(ctx context.Context, id int64) (*model.ReportTemplate, error)
	Create(ctx context.Context, template *model.ReportTemplate) error
	Save(ctx context.Context, template *model.ReportTemplate) error
	Deactivate(ctx context.Context, id int64) error

	// MaxTemplateCode 返回当前最大 template_code（字典序），无数据时返回空串
	MaxTemplateCode(ctx context.Context) (string, error)
}

// ==================== 仓储实现 ====================

type templateRepo struct {
	db *gorm.DB
}

// NewTemplateRepository 创建报表组合仓储
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) List(ctx context.Context, filter TemplateFilter) ([]model.ReportTemplate, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ReportTemplate{}).Where("is_active = ?", true)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var templates []model.ReportTemplate
	err := query.Order("name ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Preload("Reports.Report").
		Find(&templates).Error
	return templates, total, err
}

func (r *templateRepo) GetByID(ctx context.Context, id int64) (*model.ReportTemplate, error) {
	var template model.ReportTemplate
	if err := r.db.WithContext(ctx).First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepo) GetDetail(ctx context.Context, id int64) (*model.ReportTemplate, error) {
	var template model.ReportTemplate
	err := r.db.WithContext(ctx).
		Preload("Reports.Report").
		First(&template, id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepo) Create(ctx context.Context, template *model.ReportTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepo) Save(ctx context.Context, template *model.ReportTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *templateRepo) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.ReportTemplate{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *templateRepo) MaxTemplateCode(ctx context.Context) (string, error) {
	var code string
	err := r.db.WithContext(ctx).Model(&model.ReportTemplate{}).
		Select("COALESCE(MAX(template_code), '')").
		Scan(&code).Error
	return code, err
}
