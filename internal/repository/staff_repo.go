package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/internal/model"
)

// ==================== 过滤条件 ====================

// StaffFilter 人员列表过滤条件
type StaffFilter struct {
	Search string // 匹配 name / nickname
	Role   string
	Page   int
	Limit  int
}

// ==================== 接口定义 ====================

// StaffRepository 人员仓储接口
type StaffRepository interface {
	List(ctx context.Context, filter StaffFilter) ([]model.Staff, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Staff, error)
	GetDetail(ctx context.Context, id int64) (*model.Staff, error)
	Create(ctx context.Context, staff *model.Staff) error
	Save(ctx context.Context, staff *model.Staff) error
	Deactivate(ctx context.Context, id int64) error

	// MaxStaffCode 返回当前最大 staff_code（字典序），无数据时返回空串
	MaxStaffCode(ctx context.Context) (string, error)
	// ListActive 返回全部启用人员快照，供模糊匹配使用
	ListActive(ctx context.Context) ([]model.Staff, error)
}

// ==================== 仓储实现 ====================

type staffRepo struct {
	db *gorm.DB
}

// NewStaffRepository 创建人员仓储
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) List(ctx context.Context, filter StaffFilter) ([]model.Staff, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Staff{}).Where("is_active = ?", true)

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(nickname) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var staffs []model.Staff
	err := query.Order("name ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&staffs).Error
	return staffs, total, err
}

func (r *staffRepo) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	var staff model.Staff
	if err := r.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) GetDetail(ctx context.Context, id int64) (*model.Staff, error) {
	return r.GetByID(ctx, id)
}

func (r *staffRepo) Create(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepo) Save(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *staffRepo) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Staff{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *staffRepo) MaxStaffCode(ctx context.Context) (string, error) {
	var code string
	err := r.db.WithContext(ctx).Model(&model.Staff{}).
		Select("COALESCE(MAX(staff_code), '')").
		Scan(&code).Error
	return code, err
}

func (r *staffRepo) ListActive(ctx context.Context) ([]model.Staff, error) {
	var staffs []model.Staff
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&staffs).Error
	return staffs, err
}
