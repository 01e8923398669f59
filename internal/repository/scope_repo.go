package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/internal/model"
)

// ==================== 接口定义 ====================

// ScopeRepository 报表范围边仓储接口
// 三种范围边（门市授权、群组管理者、报表组合）共用同一套整组替换语义：
// 先删光既有记录，再按报表 ID 重建，永远不做差量合并
type ScopeRepository interface {
	ReplaceAuthUserScopes(ctx context.Context, authUserID int64, reportIDs []int64) error
	ReplaceGroupManagerScopes(ctx context.Context, managerID int64, reportIDs []int64) error
	ReplaceTemplateReports(ctx context.Context, templateID int64, reportIDs []int64) error

	ListAuthUserScopes(ctx context.Context, authUserID int64) ([]model.StoreAuthScope, error)
	ListGroupManagerScopes(ctx context.Context, managerID int64) ([]model.GroupManagerScope, error)
}

// ==================== 仓储实现 ====================

type scopeRepo struct {
	db *gorm.DB
}

// NewScopeRepository 创建范围边仓储
func NewScopeRepository(db *gorm.DB) ScopeRepository {
	return &scopeRepo{db: db}
}

func (r *scopeRepo) ReplaceAuthUserScopes(ctx context.Context, authUserID int64, reportIDs []int64) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("store_auth_user_id = ?", authUserID).
		Delete(&model.StoreAuthScope{}).Error; err != nil {
		return err
	}
	if len(reportIDs) == 0 {
		return nil
	}
	scopes := make([]model.StoreAuthScope, 0, len(reportIDs))
	for _, reportID := range reportIDs {
		scopes = append(scopes, model.StoreAuthScope{StoreAuthUserID: authUserID, ReportID: reportID})
	}
	return tx.Create(&scopes).Error
}

func (r *scopeRepo) ReplaceGroupManagerScopes(ctx context.Context, managerID int64, reportIDs []int64) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("group_manager_id = ?", managerID).
		Delete(&model.GroupManagerScope{}).Error; err != nil {
		return err
	}
	if len(reportIDs) == 0 {
		return nil
	}
	scopes := make([]model.GroupManagerScope, 0, len(reportIDs))
	for _, reportID := range reportIDs {
		scopes = append(scopes, model.GroupManagerScope{GroupManagerID: managerID, ReportID: reportID})
	}
	return tx.Create(&scopes).Error
}

func (r *scopeRepo) ReplaceTemplateReports(ctx context.Context, templateID int64, reportIDs []int64) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("template_id = ?", templateID).
		Delete(&model.TemplateReport{}).Error; err != nil {
		return err
	}
	if len(reportIDs) == 0 {
		return nil
	}
	edges := make([]model.TemplateReport, 0, len(reportIDs))
	for _, reportID := range reportIDs {
		edges = append(edges, model.TemplateReport{TemplateID: templateID, ReportID: reportID})
	}
	return tx.Create(&edges).Error
}

func (r *scopeRepo) ListAuthUserScopes(ctx context.Context, authUserID int64) ([]model.StoreAuthScope, error) {
	var scopes []model.StoreAuthScope
	err := r.db.WithContext(ctx).
		Where("store_auth_user_id = ?", authUserID).
		Preload("Report").
		Find(&scopes).Error
	return scopes, err
}

func (r *scopeRepo) ListGroupManagerScopes(ctx context.Context, managerID int64) ([]model.GroupManagerScope, error) {
	var scopes []model.GroupManagerScope
	err := r.db.WithContext(ctx).
		Where("group_manager_id = ?", managerID).
		Preload("Report").
		Find(&scopes).Error
	return scopes, err
}
