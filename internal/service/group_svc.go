package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/internal/api/dto"
	"github.com/colechengame/Nreporter/internal/model"
	"github.com/colechengame/Nreporter/internal/repository"
	"github.com/colechengame/Nreporter/pkg/apperr"
	"github.com/colechengame/Nreporter/pkg/response"
)

// GroupService 门市群组与群组管理者维护
// 群组的门市成员是整组替换语义，isAllStores 打开时成员明细保留但不生效
type GroupService struct {
	uow      *repository.AuthUnitOfWork
	groups   repository.GroupRepository
	staffs   repository.StaffRepository
	scopeSvc *ScopeService
}

// NewGroupService 创建群组服务
func NewGroupService(uow *repository.AuthUnitOfWork, groups repository.GroupRepository, staffs repository.StaffRepository, scopeSvc *ScopeService) *GroupService {
	return &GroupService{
		uow:      uow,
		groups:   groups,
		staffs:   staffs,
		scopeSvc: scopeSvc,
	}
}

// List 分页查询群组
func (s *GroupService) List(ctx context.Context, req dto.GroupListReq) ([]model.Group, *response.Meta, error) {
	page, limit := response.NormalizePage(req.Page, req.Limit)

	groups, total, err := s.groups.List(ctx, repository.GroupFilter{
		Search: req.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, nil, err
	}
	return groups, response.BuildMeta(total, page, limit), nil
}

// GetDetail 取单一群组（含门市成员与管理者范围）
func (s *GroupService) GetDetail(ctx context.Context, id int64) (*model.Group, error) {
	group, err := s.groups.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeGroupNotFound, "群組不存在")
		}
		return nil, err
	}
	return group, nil
}

// Create 新增群组，门市成员在同一事务内写入
func (s *GroupService) Create(ctx context.Context, req dto.GroupCreateReq) (*model.Group, error) {
	var groupID int64
	err := s.uow.Transaction(ctx, func(uow *repository.AuthUnitOfWork) error {
		group := &model.Group{
			Name:        req.Name,
			Description: req.Description,
			IsAllStores: req.IsAllStores,
			IsActive:    true,
		}
		if err := uow.Groups.Create(ctx, group); err != nil {
			return err
		}
		groupID = group.ID

		if len(req.StoreIDs) > 0 && !req.IsAllStores {
			return uow.Groups.ReplaceStores(ctx, group.ID, req.StoreIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetDetail(ctx, groupID)
}

// Update 更新群组，StoreIDs 非 nil 时整组替换门市成员
func (s *GroupService) Update(ctx context.Context, id int64, req dto.GroupUpdateReq) (*model.Group, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeGroupNotFound, "群組不存在")
		}
		return nil, err
	}

	if req.Name != "" {
		group.Name = req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.IsAllStores != nil {
		group.IsAllStores = *req.IsAllStores
	}

	err = s.uow.Transaction(ctx, func(uow *repository.AuthUnitOfWork) error {
		if err := uow.Groups.Save(ctx, group); err != nil {
			return err
		}
		if req.StoreIDs != nil && !group.IsAllStores {
			return uow.Groups.ReplaceStores(ctx, id, req.StoreIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetDetail(ctx, id)
}

// Delete 软删除群组
func (s *GroupService) Delete(ctx context.Context, id int64) error {
	if _, err := s.groups.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(apperr.CodeGroupNotFound, "群組不存在")
		}
		return err
	}
	return s.groups.Deactivate(ctx, id)
}

// AddManager 新增群组管理者并写入其报表范围
// 报表代码解析失败时整个事务回滚，不留下无范围的管理者记录
func (s *GroupService) AddManager(ctx context.Context, groupID int64, req dto.AddGroupManagerReq) (*model.GroupManager, error) {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeGroupNotFound, "群組不存在")
		}
		return nil, err
	}
	staff, err := s.staffs.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeStaffNotFound, "人員不存在")
		}
		return nil, err
	}
	if !staff.IsActive {
		return nil, apperr.NotFound(apperr.CodeStaffNotFound, "人員不存在")
	}

	var managerID int64
	err = s.uow.Transaction(ctx, func(uow *repository.AuthUnitOfWork) error {
		manager := &model.GroupManager{
			GroupID:  groupID,
			StaffID:  req.StaffID,
			IsActive: true,
		}
		if err := uow.Groups.CreateManager(ctx, manager); err != nil {
			return err
		}
		managerID = manager.ID
		return s.scopeSvc.ApplyGroupManagerScopes(ctx, uow, manager.ID, req.ReportCodes)
	})
	if err != nil {
		return nil, err
	}
	return s.groups.GetManagerWithScopes(ctx, managerID)
}

// RemoveManager 停用群组管理者，范围边保留作历史记录
func (s *GroupService) RemoveManager(ctx context.Context, groupID, managerID int64) error {
	manager, err := s.groups.GetManagerByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(apperr.CodeNotFound, "群組管理者不存在")
		}
		return err
	}
	if manager.GroupID != groupID {
		return apperr.NotFound(apperr.CodeNotFound, "群組管理者不存在")
	}
	return s.groups.DeactivateManager(ctx, managerID)
}
