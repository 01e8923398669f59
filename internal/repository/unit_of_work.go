package repository

import (
	"context"

	"gorm.io/gorm"
)

// ==================== 事务支持 ====================

// AuthUnitOfWork 授权图工作单元（事务）
// 多步授权变更（改派店长、整组替换范围、组合报表重建）都必须在同一事务里执行，
// 并发读不允许观察到中间态（两个主要店长、范围删了还没建）
type AuthUnitOfWork struct {
	db        *gorm.DB
	Reports   ReportRepository
	Staffs    StaffRepository
	Stores    StoreRepository
	Groups    GroupRepository
	Templates TemplateRepository
	Scopes    ScopeRepository
	AILogs    AICommandLogRepository
}

// NewAuthUnitOfWork 创建工作单元
func NewAuthUnitOfWork(db *gorm.DB) *AuthUnitOfWork {
	return &AuthUnitOfWork{
		db:        db,
		Reports:   NewReportRepository(db),
		Staffs:    NewStaffRepository(db),
		Stores:    NewStoreRepository(db),
		Groups:    NewGroupRepository(db),
		Templates: NewTemplateRepository(db),
		Scopes:    NewScopeRepository(db),
		AILogs:    NewAICommandLogRepository(db),
	}
}

// Transaction 执行事务
func (u *AuthUnitOfWork) Transaction(ctx context.Context, fn func(uow *AuthUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewAuthUnitOfWork(tx))
	})
}
