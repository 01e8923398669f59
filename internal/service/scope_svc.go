package service

import (
	"context"

	"github.com/colechengame/Nreporter/internal/repository"
	"github.com/colechengame/Nreporter/pkg/apperr"
)

// ScopeService 报表范围解析
// 负责把请求的报表代码集合解析成最终落库的范围边：
// 代码必须全部命中启用中的报表，任何一个解析不了整个操作失败，不做部分授权；
// 写入时对既有范围整组替换，同一集合重复应用结果不变
type ScopeService struct{}

// NewScopeService 创建范围解析服务
func NewScopeService() *ScopeService {
	return &ScopeService{}
}

// ResolveReportIDs 把报表代码集合解析为报表 ID
// 代码允许重复，结果去重；任一代码无法命中启用报表时返回 InvalidReportCodes
func (s *ScopeService) ResolveReportIDs(ctx context.Context, reports repository.ReportRepository, codes []string) ([]int64, error) {
	uniq := make([]string, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if !seen[code] {
			seen[code] = true
			uniq = append(uniq, code)
		}
	}

	found, err := reports.ListActiveByCodes(ctx, uniq)
	if err != nil {
		return nil, err
	}

	if len(found) != len(uniq) {
		foundCodes := make(map[string]bool, len(found))
		for _, r := range found {
			foundCodes[r.Code] = true
		}
		var missing []string
		for _, code := range uniq {
			if !foundCodes[code] {
				missing = append(missing, code)
			}
		}
		return nil, apperr.InvalidReportCodes(missing)
	}

	ids := make([]int64, 0, len(found))
	for _, r := range found {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// ApplyAuthUserScopes 解析代码并整组替换门市授权人员的报表范围
// 必须在调用方的事务内执行（传入事务内的 uow）
func (s *ScopeService) ApplyAuthUserScopes(ctx context.Context, uow *repository.AuthUnitOfWork, authUserID int64, codes []string) error {
	ids, err := s.ResolveReportIDs(ctx, uow.Reports, codes)
	if err != nil {
		return err
	}
	return uow.Scopes.ReplaceAuthUserScopes(ctx, authUserID, ids)
}

// ApplyGroupManagerScopes 解析代码并整组替换群组管理者的报表范围
func (s *ScopeService) ApplyGroupManagerScopes(ctx context.Context, uow *repository.AuthUnitOfWork, managerID int64, codes []string) error {
	ids, err := s.ResolveReportIDs(ctx, uow.Reports, codes)
	if err != nil {
		return err
	}
	return uow.Scopes.ReplaceGroupManagerScopes(ctx, managerID, ids)
}

// ApplyTemplateReports 解析代码并整组替换报表组合的明细
func (s *ScopeService) ApplyTemplateReports(ctx context.Context, uow *repository.AuthUnitOfWork, templateID int64, codes []string) error {
	ids, err := s.ResolveReportIDs(ctx, uow.Reports, codes)
	if err != nil {
		return err
	}
	return uow.Scopes.ReplaceTemplateReports(ctx, templateID, ids)
}
