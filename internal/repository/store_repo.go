package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/internal/model"
)

// ==================== 过滤条件 ====================

// StoreFilter 门市列表过滤条件
type StoreFilter struct {
	Search string // 匹配 name / code / role_email
	Type   string
	Page   int
	Limit  int
}

// ==================== 接口定义 ====================

// StoreRepository 门市仓储接口
type StoreRepository interface {
	// 基础 CRUD
	List(ctx context.Context, filter StoreFilter) ([]model.Store, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Store, error)
	GetDetail(ctx context.Context, id int64) (*model.Store, error)
	GetByCode(ctx context.Context, code string) (*model.Store, error)
	Create(ctx context.Context, store *model.Store) error
	Save(ctx context.Context, store *model.Store) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Deactivate(ctx context.Context, id int64) error
	// ListActive 返回全部启用门市快照（按名称排序），供模糊匹配使用
	ListActive(ctx context.Context) ([]model.Store, error)

	// 管理者边
	ListActiveManagers(ctx context.Context, storeID int64) ([]model.StoreManager, error)
	GetActiveManager(ctx context.Context, storeID, staffID int64) (*model.StoreManager, error)
	// DeactivatePrimaryManagers 把门市当前主要管理者全部降级并记录结束时间
	DeactivatePrimaryManagers(ctx context.Context, storeID int64) error
	CreateManager(ctx context.Context, manager *model.StoreManager) error
	SaveManager(ctx context.Context, manager *model.StoreManager) error

	// 授权人员边
	GetAuthUser(ctx context.Context, storeID, staffID int64) (*model.StoreAuthUser, error)
	GetAuthUserByID(ctx context.Context, storeID, authUserID int64) (*model.StoreAuthUser, error)
	GetAuthUserWithScopes(ctx context.Context, authUserID int64) (*model.StoreAuthUser, error)
	CreateAuthUser(ctx context.Context, authUser *model.StoreAuthUser) error
	SaveAuthUser(ctx context.Context, authUser *model.StoreAuthUser) error
}

// ==================== 仓储实现 ====================

type storeRepo struct {
	db *gorm.DB
}

// NewStoreRepository 创建门市仓储
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepo{db: db}
}

func (r *storeRepo) List(ctx context.Context, filter StoreFilter) ([]model.Store, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Store{}).Where("is_active = ?", true)

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(code) LIKE LOWER(?) OR LOWER(role_email) LIKE LOWER(?)",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stores []model.Store
	err := query.Order("name ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Preload("Managers", "is_active = ? AND is_primary = ?", true, true).
		Preload("Managers.Staff").
		Preload("AuthUsers", "is_active = ?", true).
		Preload("AuthUsers.Staff").
		Preload("AuthUsers.Scopes.Report").
		Find(&stores).Error
	return stores, total, err
}

func (r *storeRepo) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) GetDetail(ctx context.Context, id int64) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).
		Preload("Managers", "is_active = ?", true).
		Preload("Managers.Staff").
		Preload("AuthUsers", "is_active = ?", true).
		Preload("AuthUsers.Staff").
		Preload("AuthUsers.Scopes.Report").
		First(&store, id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) GetByCode(ctx context.Context, code string) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepo) Save(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

func (r *storeRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Store{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *storeRepo) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Store{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *storeRepo) ListActive(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&stores).Error
	return stores, err
}

// -------- 管理者边 --------

func (r *storeRepo) ListActiveManagers(ctx context.Context, storeID int64) ([]model.StoreManager, error) {
	var managers []model.StoreManager
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Order("is_primary DESC").
		Preload("Staff").
		Find(&managers).Error
	return managers, err
}

func (r *storeRepo) GetActiveManager(ctx context.Context, storeID, staffID int64) (*model.StoreManager, error) {
	var manager model.StoreManager
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND staff_id = ? AND is_active = ?", storeID, staffID, true).
		First(&manager).Error
	if err != nil {
		return nil, err
	}
	return &manager, nil
}

func (r *storeRepo) DeactivatePrimaryManagers(ctx context.Context, storeID int64) error {
	return r.db.WithContext(ctx).Model(&model.StoreManager{}).
		Where("store_id = ? AND is_primary = ? AND is_active = ?", storeID, true, true).
		Updates(map[string]interface{}{
			"is_primary": false,
			"end_date":   gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *storeRepo) CreateManager(ctx context.Context, manager *model.StoreManager) error {
	return r.db.WithContext(ctx).Create(manager).Error
}

func (r *storeRepo) SaveManager(ctx context.Context, manager *model.StoreManager) error {
	return r.db.WithContext(ctx).Save(manager).Error
}

// -------- 授权人员边 --------

// GetAuthUser 按 (store, staff) 查授权记录，含已停用的（upsert 需要复用旧行）
func (r *storeRepo) GetAuthUser(ctx context.Context, storeID, staffID int64) (*model.StoreAuthUser, error) {
	var authUser model.StoreAuthUser
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND staff_id = ?", storeID, staffID).
		First(&authUser).Error
	if err != nil {
		return nil, err
	}
	return &authUser, nil
}

func (r *storeRepo) GetAuthUserByID(ctx context.Context, storeID, authUserID int64) (*model.StoreAuthUser, error) {
	var authUser model.StoreAuthUser
	err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", authUserID, storeID).
		First(&authUser).Error
	if err != nil {
		return nil, err
	}
	return &authUser, nil
}

func (r *storeRepo) GetAuthUserWithScopes(ctx context.Context, authUserID int64) (*model.StoreAuthUser, error) {
	var authUser model.StoreAuthUser
	err := r.db.WithContext(ctx).
		Preload("Staff").
		Preload("Scopes.Report").
		First(&authUser, authUserID).Error
	if err != nil {
		return nil, err
	}
	return &authUser, nil
}

func (r *storeRepo) CreateAuthUser(ctx context.Context, authUser *model.StoreAuthUser) error {
	return r.db.WithContext(ctx).Create(authUser).Error
}

func (r *storeRepo) SaveAuthUser(ctx context.Context, authUser *model.StoreAuthUser) error {
	return r.db.WithContext(ctx).Save(authUser).Error
}
