package service

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/internal/api/dto"
	"github.com/colechengame/Nreporter/internal/model"
	"github.com/colechengame/Nreporter/internal/repository"
	"github.com/colechengame/Nreporter/pkg/apperr"
	"github.com/colechengame/Nreporter/pkg/response"
)

// TemplateService 报表组合维护
// 组合代码按现有最大值加一生成（RT001、RT002 ...），报表明细整组替换
type TemplateService struct {
	uow       *repository.AuthUnitOfWork
	templates repository.TemplateRepository
	scopeSvc  *ScopeService
}

// NewTemplateService 创建报表组合服务
func NewTemplateService(uow *repository.AuthUnitOfWork, templates repository.TemplateRepository, scopeSvc *ScopeService) *TemplateService {
	return &TemplateService{
		uow:       uow,
		templates: templates,
		scopeSvc:  scopeSvc,
	}
}

// List 分页查询报表组合
func (s *TemplateService) List(ctx context.Context, req dto.TemplateListReq) ([]dto.TemplateResp, *response.Meta, error) {
	page, limit := response.NormalizePage(req.Page, req.Limit)

	templates, total, err := s.templates.List(ctx, repository.TemplateFilter{
		Search: req.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, nil, err
	}

	resps := make([]dto.TemplateResp, 0, len(templates))
	for _, tpl := range templates {
		resps = append(resps, formatTemplate(tpl))
	}
	return resps, response.BuildMeta(total, page, limit), nil
}

// formatTemplate 整理列表条目，全部报表的组合数量显示「全部」
func formatTemplate(tpl model.ReportTemplate) dto.TemplateResp {
	codes := make([]string, 0, len(tpl.Reports))
	for _, tr := range tpl.Reports {
		if tr.Report != nil {
			codes = append(codes, tr.Report.Code)
		}
	}

	count := strconv.Itoa(len(codes))
	if tpl.IsAllReports {
		count = "全部"
	}
	return dto.TemplateResp{
		ID:           tpl.ID,
		TemplateCode: tpl.TemplateCode,
		Name:         tpl.Name,
		Description:  tpl.Description,
		IsAllReports: tpl.IsAllReports,
		Reports:      codes,
		ReportCount:  count,
		CreatedAt:    tpl.CreatedAt,
		UpdatedAt:    tpl.UpdatedAt,
	}
}

// GetDetail 取单一报表组合（含报表明细）
func (s *TemplateService) GetDetail(ctx context.Context, id int64) (*model.ReportTemplate, error) {
	tpl, err := s.templates.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeTemplateNotFound, "報表組合不存在")
		}
		return nil, err
	}
	return tpl, nil
}

// Create 新增报表组合，代码生成与明细写入在同一事务内完成
// 并发撞码靠唯一索引兜底并重算重试
func (s *TemplateService) Create(ctx context.Context, req dto.TemplateCreateReq) (*model.ReportTemplate, error) {
	var tplID int64
	for attempt := 0; attempt < codegenRetries; attempt++ {
		err := s.uow.Transaction(ctx, func(uow *repository.AuthUnitOfWork) error {
			maxCode, err := uow.Templates.MaxTemplateCode(ctx)
			if err != nil {
				return err
			}

			tpl := &model.ReportTemplate{
				TemplateCode: nextSequentialCode("RT", maxCode),
				Name:         req.Name,
				Description:  req.Description,
				IsAllReports: req.IsAllReports,
				IsActive:     true,
			}
			if err := uow.Templates.Create(ctx, tpl); err != nil {
				return err
			}
			tplID = tpl.ID

			if len(req.ReportCodes) > 0 && !req.IsAllReports {
				return s.scopeSvc.ApplyTemplateReports(ctx, uow, tpl.ID, req.ReportCodes)
			}
			return nil
		})
		if err == nil {
			return s.GetDetail(ctx, tplID)
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, apperr.Conflict(apperr.CodeDuplicate, "報表組合編號產生衝突，請重試")
}

// Update 更新报表组合，ReportCodes 非 nil 时整组替换明细
func (s *TemplateService) Update(ctx context.Context, id int64, req dto.TemplateUpdateReq) (*model.ReportTemplate, error) {
	tpl, err := s.templates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeTemplateNotFound, "報表組合不存在")
		}
		return nil, err
	}

	if req.Name != "" {
		tpl.Name = req.Name
	}
	if req.Description != nil {
		tpl.Description = *req.Description
	}
	if req.IsAllReports != nil {
		tpl.IsAllReports = *req.IsAllReports
	}

	err = s.uow.Transaction(ctx, func(uow *repository.AuthUnitOfWork) error {
		if err := uow.Templates.Save(ctx, tpl); err != nil {
			return err
		}
		if req.ReportCodes != nil && !tpl.IsAllReports {
			return s.scopeSvc.ApplyTemplateReports(ctx, uow, id, req.ReportCodes)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetDetail(ctx, id)
}

// Delete 软删除报表组合
func (s *TemplateService) Delete(ctx context.Context, id int64) error {
	if _, err := s.templates.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(apperr.CodeTemplateNotFound, "報表組合不存在")
		}
		return err
	}
	return s.templates.Deactivate(ctx, id)
}
