package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/internal/model"
)

// ==================== 过滤条件 ====================

// GroupFilter 群组列表过滤条件
type GroupFilter struct {
	Search string
	Page   int
	Limit  int
}

// ==================== 接口定义 ====================

// GroupRepository 群组仓储接口
type GroupRepository interface {
	List(ctx context.Context, filter GroupFilter) ([]model.Group, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Group, error)
	GetDetail(ctx context.Context, id int64) (*model.Group, error)
	Create(ctx context.Context, group *model.Group) error
	Save(ctx context.Context, group *model.Group) error
	Deactivate(ctx context.Context, id int64) error

	// ReplaceStores 整组替换群组门市成员
	ReplaceStores(ctx context.Context, groupID int64, storeIDs []int64) error

	// 管理者边
	CreateManager(ctx context.Context, manager *model.GroupManager) error
	GetManagerByID(ctx context.Context, managerID int64) (*model.GroupManager, error)
	GetManagerWithScopes(ctx context.Context, managerID int64) (*model.GroupManager, error)
	DeactivateManager(ctx context.Context, managerID int64) error
}

// ==================== 仓储实现 ====================

type groupRepo struct {
	db *gorm.DB
}

// NewGroupRepository 创建群组仓储
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) List(ctx context.Context, filter GroupFilter) ([]model.Group, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Group{}).Where("is_active = ?", true)

	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []model.Group
	err := query.Order("name ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Preload("Stores.Store").
		Preload("Managers", "is_active = ?", true).
		Preload("Managers.Staff").
		Preload("Managers.Scopes.Report").
		Find(&groups).Error
	return groups, total, err
}

func (r *groupRepo) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	var group model.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) GetDetail(ctx context.Context, id int64) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Preload("Stores.Store").
		Preload("Managers", "is_active = ?", true).
		Preload("Managers.Staff").
		Preload("Managers.Scopes.Report").
		First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepo) Save(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *groupRepo) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Group{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *groupRepo) ReplaceStores(ctx context.Context, groupID int64, storeIDs []int64) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("group_id = ?", groupID).
		Delete(&model.GroupStore{}).Error; err != nil {
		return err
	}
	if len(storeIDs) == 0 {
		return nil
	}
	edges := make([]model.GroupStore, 0, len(storeIDs))
	for _, storeID := range storeIDs {
		edges = append(edges, model.GroupStore{GroupID: groupID, StoreID: storeID})
	}
	return tx.Create(&edges).Error
}

// -------- 管理者边 --------

func (r *groupRepo) CreateManager(ctx context.Context, manager *model.GroupManager) error {
	return r.db.WithContext(ctx).Create(manager).Error
}

func (r *groupRepo) GetManagerByID(ctx context.Context, managerID int64) (*model.GroupManager, error) {
	var manager model.GroupManager
	if err := r.db.WithContext(ctx).First(&manager, managerID).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}

func (r *groupRepo) GetManagerWithScopes(ctx context.Context, managerID int64) (*model.GroupManager, error) {
	var manager model.GroupManager
	err := r.db.WithContext(ctx).
		Preload("Staff").
		Preload("Scopes.Report").
		First(&manager, managerID).Error
	if err != nil {
		return nil, err
	}
	return &manager, nil
}

func (r *groupRepo) DeactivateManager(ctx context.Context, managerID int64) error {
	return r.db.WithContext(ctx).Model(&model.GroupManager{}).
		Where("id = ?", managerID).
		Update("is_active", false).Error
}
