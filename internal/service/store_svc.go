package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/internal/api/dto"
	"github.com/colechengame/Nreporter/internal/model"
	"github.com/colechengame/Nreporter/internal/repository"
	"github.com/colechengame/Nreporter/pkg/apperr"
	"github.com/colechengame/Nreporter/pkg/logger"
	"github.com/colechengame/Nreporter/pkg/response"
)

// StoreService 门市与门市侧授权边的变更入口
// 多步变更（改派店长、授权范围替换）全部走工作单元事务，
// 依赖数据库事务隔离保证并发下「每门市至多一个在任主要店长」的不变量
type StoreService struct {
	uow      *repository.AuthUnitOfWork
	stores   repository.StoreRepository
	staffs   repository.StaffRepository
	scopeSvc *ScopeService
}

// NewStoreService 创建门市服务
func NewStoreService(uow *repository.AuthUnitOfWork, stores repository.StoreRepository, staffs repository.StaffRepository, scopeSvc *ScopeService) *StoreService {
	return &StoreService{
		uow:      uow,
		stores:   stores,
		staffs:   staffs,
		scopeSvc: scopeSvc,
	}
}

// ==================== 查询 ====================

// List 分页查询门市，附带主要店长与授权人员摘要
func (s *StoreService) List(ctx context.Context, req dto.StoreListReq) ([]dto.StoreResp, *response.Meta, error) {
	page, limit := response.NormalizePage(req.Page, req.Limit)

	stores, total, err := s.stores.List(ctx, repository.StoreFilter{
		Search: req.Search,
		Type:   req.Type,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, nil, err
	}

	resps := make([]dto.StoreResp, 0, len(stores))
	for _, store := range stores {
		resps = append(resps, formatStore(store))
	}
	return resps, response.BuildMeta(total, page, limit), nil
}

// formatStore 把门市与预载的关联整理成列表条目
func formatStore(store model.Store) dto.StoreResp {
	resp := dto.StoreResp{
		ID:              store.ID,
		Code:            store.Code,
		Name:            store.Name,
		Type:            store.Type,
		RoleEmail:       store.RoleEmail,
		IsActive:        store.IsActive,
		CreatedAt:       store.CreatedAt,
		UpdatedAt:       store.UpdatedAt,
		AuthorizedUsers: []dto.AuthUserResp{},
	}

	if len(store.Managers) > 0 {
		m := store.Managers[0]
		resp.PrimaryManager = &dto.PrimaryManagerResp{
			ID:        m.ID,
			Staff:     m.Staff,
			StartDate: m.StartDate,
		}
	}

	for _, au := range store.AuthUsers {
		codes := make([]string, 0, len(au.Scopes))
		for _, scope := range au.Scopes {
			if scope.Report != nil {
				codes = append(codes, scope.Report.Code)
			}
		}
		resp.AuthorizedUsers = append(resp.AuthorizedUsers, dto.AuthUserResp{
			ID:       au.ID,
			Staff:    au.Staff,
			RoleDesc: au.RoleDesc,
			Scopes:   codes,
		})
	}
	return resp
}

// GetDetail 取单一门市（含在任管理者与授权人员）
func (s *StoreService) GetDetail(ctx context.Context, id int64) (*model.Store, error) {
	store, err := s.stores.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeStoreNotFound, "門市不存在")
		}
		return nil, err
	}
	return store, nil
}

// ==================== CRUD ====================

// Create 新增门市，代码重复返回 Conflict
func (s *StoreService) Create(ctx context.Context, req dto.StoreCreateReq) (*model.Store, error) {
	if _, err := s.stores.GetByCode(ctx, req.Code); err == nil {
		return nil, apperr.Conflict(apperr.CodeStoreCodeExists, "門市代碼已存在")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	store := &model.Store{
		Code:      req.Code,
		Name:      req.Name,
		Type:      req.Type,
		RoleEmail: req.RoleEmail,
		IsActive:  true,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict(apperr.CodeStoreCodeExists, "門市代碼已存在")
		}
		return nil, err
	}
	return store, nil
}

// Update 更新门市基本信息
func (s *StoreService) Update(ctx context.Context, id int64, req dto.StoreUpdateReq) (*model.Store, error) {
	store, err := s.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		store.Name = req.Name
	}
	if req.RoleEmail != "" {
		store.RoleEmail = req.RoleEmail
	}
	if req.IsActive != nil {
		store.IsActive = *req.IsActive
	}

	fields := map[string]interface{}{
		"name":       store.Name,
		"role_email": store.RoleEmail,
		"is_active":  store.IsActive,
	}
	if err := s.stores.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.GetDetail(ctx, id)
}

// Delete 软删除门市，关联边保留不销毁
func (s *StoreService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetDetail(ctx, id); err != nil {
		return err
	}
	return s.stores.Deactivate(ctx, id)
}

// ==================== 店长指派 ====================

// AssignManager 指派门市管理者
// isPrimary 时先把现任主要店长全部降级（置非主要并写结束时间），
// 再复用或新建 (store, staff) 记录，整个流程在一个事务内完成；
// 返回后该门市恰有一条在任主要店长记录指向 staffID
func (s *StoreService) AssignManager(ctx context.Context, storeID, staffID int64, isPrimary bool) (*model.StoreManager, error) {
	if err := s.ensureStoreActive(ctx, storeID); err != nil {
		return nil, err
	}
	if err := s.ensureStaffActive(ctx, staffID); err != nil {
		return nil, err
	}

	var manager *model.StoreManager
	err := s.uow.Transaction(ctx, func(uow *repository.AuthUnitOfWork) error {
		if isPrimary {
			if err := uow.Stores.DeactivatePrimaryManagers(ctx, storeID); err != nil {
				return err
			}
		}

		existing, err := uow.Stores.GetActiveManager(ctx, storeID, staffID)
		switch {
		case err == nil:
			existing.IsPrimary = isPrimary
			existing.StartDate = time.Now()
			existing.EndDate = nil
			if err := uow.Stores.SaveManager(ctx, existing); err != nil {
				return err
			}
			manager = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			manager = &model.StoreManager{
				StoreID:   storeID,
				StaffID:   staffID,
				IsPrimary: isPrimary,
				StartDate: time.Now(),
				IsActive:  true,
			}
			if err := uow.Stores.CreateManager(ctx, manager); err != nil {
				return err
			}
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.L().Info("门市管理者已更新",
		zap.Int64("storeId", storeID),
		zap.Int64("staffId", staffID),
		zap.Bool("isPrimary", isPrimary))
	return manager, nil
}

// ==================== 授权人员 ====================

// AddAuthUser 新增/更新门市授权人员并整组替换其报表范围
// (store, staff) 已有记录时走 upsert 复用；报表代码解析失败时
// 整个事务回滚，不会留下没有新范围的授权记录
func (s *StoreService) AddAuthUser(ctx context.Context, storeID int64, req dto.AddAuthUserReq) (*model.StoreAuthUser, error) {
	if err := s.ensureStoreActive(ctx, storeID); err != nil {
		return nil, err
	}
	if err := s.ensureStaffActive(ctx, req.StaffID); err != nil {
		return nil, err
	}

	var authUserID int64
	err := s.uow.Transaction(ctx, func(uow *repository.AuthUnitOfWork) error {
		authUser, err := uow.Stores.GetAuthUser(ctx, storeID, req.StaffID)
		switch {
		case err == nil:
			authUser.RoleDesc = req.RoleDesc
			authUser.IsActive = true
			if err := uow.Stores.SaveAuthUser(ctx, authUser); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			authUser = &model.StoreAuthUser{
				StoreID:  storeID,
				StaffID:  req.StaffID,
				RoleDesc: req.RoleDesc,
				IsActive: true,
			}
			if err := uow.Stores.CreateAuthUser(ctx, authUser); err != nil {
				return err
			}
		default:
			return err
		}

		authUserID = authUser.ID
		return s.scopeSvc.ApplyAuthUserScopes(ctx, uow, authUser.ID, req.ReportCodes)
	})
	if err != nil {
		return nil, err
	}

	return s.stores.GetAuthUserWithScopes(ctx, authUserID)
}

// RemoveAuthUser 停用授权人员，范围边保留作历史记录
func (s *StoreService) RemoveAuthUser(ctx context.Context, storeID, authUserID int64) error {
	authUser, err := s.stores.GetAuthUserByID(ctx, storeID, authUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(apperr.CodeAuthUserNotFound, "授權人員不存在")
		}
		return err
	}

	authUser.IsActive = false
	return s.stores.SaveAuthUser(ctx, authUser)
}

// ==================== 内部校验 ====================

func (s *StoreService) ensureStoreActive(ctx context.Context, storeID int64) error {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(apperr.CodeStoreNotFound, "門市不存在")
		}
		return err
	}
	if !store.IsActive {
		return apperr.NotFound(apperr.CodeStoreNotFound, "門市不存在")
	}
	return nil
}

func (s *StoreService) ensureStaffActive(ctx context.Context, staffID int64) error {
	staff, err := s.staffs.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(apperr.CodeStaffNotFound, "人員不存在")
		}
		return err
	}
	if !staff.IsActive {
		return apperr.NotFound(apperr.CodeStaffNotFound, "人員不存在")
	}
	return nil
}
