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

// codegenRetries 并发建档撞码时的重试次数
const codegenRetries = 3

// StaffService 人员档案管理
type StaffService struct {
	staffs repository.StaffRepository
}

// NewStaffService 创建人员服务
func NewStaffService(staffs repository.StaffRepository) *StaffService {
	return &StaffService{staffs: staffs}
}

// List 分页查询人员，支持姓名/昵称模糊搜索与角色过滤
func (s *StaffService) List(ctx context.Context, req dto.StaffListReq) ([]model.Staff, *response.Meta, error) {
	page, limit := response.NormalizePage(req.Page, req.Limit)

	staffs, total, err := s.staffs.List(ctx, repository.StaffFilter{
		Search: req.Search,
		Role:   req.Role,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, nil, err
	}
	return staffs, response.BuildMeta(total, page, limit), nil
}

// GetDetail 取单一人员（含任职门市与授权摘要）
func (s *StaffService) GetDetail(ctx context.Context, id int64) (*model.Staff, error) {
	staff, err := s.staffs.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeStaffNotFound, "人員不存在")
		}
		return nil, err
	}
	return staff, nil
}

// Create 新增人员，编号按现有最大值加一生成（S001、S002 ...）
// 并发下两次建档可能算出同一个编号，靠唯一索引兜底并重算重试
func (s *StaffService) Create(ctx context.Context, req dto.StaffCreateReq) (*model.Staff, error) {
	var staff *model.Staff
	for attempt := 0; attempt < codegenRetries; attempt++ {
		maxCode, err := s.staffs.MaxStaffCode(ctx)
		if err != nil {
			return nil, err
		}

		staff = &model.Staff{
			StaffCode: nextSequentialCode("S", maxCode),
			Name:      req.Name,
			Nickname:  req.Nickname,
			Email:     req.Email,
			Role:      req.Role,
			IsActive:  true,
		}
		err = s.staffs.Create(ctx, staff)
		if err == nil {
			return staff, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, apperr.Conflict(apperr.CodeDuplicate, "人員編號產生衝突，請重試")
}

// Update 更新人员基本信息
func (s *StaffService) Update(ctx context.Context, id int64, req dto.StaffUpdateReq) (*model.Staff, error) {
	staff, err := s.staffs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeStaffNotFound, "人員不存在")
		}
		return nil, err
	}

	if req.Name != "" {
		staff.Name = req.Name
	}
	if req.Nickname != "" {
		staff.Nickname = req.Nickname
	}
	if req.Email != "" {
		staff.Email = req.Email
	}
	if req.Role != "" {
		staff.Role = req.Role
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}

	if err := s.staffs.Save(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Delete 软删除人员，历史任职与授权边保留
func (s *StaffService) Delete(ctx context.Context, id int64) error {
	if _, err := s.staffs.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(apperr.CodeStaffNotFound, "人員不存在")
		}
		return err
	}
	return s.staffs.Deactivate(ctx, id)
}
