package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/internal/model"
	"github.com/colechengame/Nreporter/internal/repository"
	"github.com/colechengame/Nreporter/pkg/apperr"
)

// ReportService 报表目录查询
type ReportService struct {
	reports repository.ReportRepository
}

// NewReportService 创建报表目录服务
func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

// List 查询启用中的报表，可按分类过滤
func (s *ReportService) List(ctx context.Context, category string) ([]model.Report, error) {
	return s.reports.List(ctx, category)
}

// GetByID 取单一报表
func (s *ReportService) GetByID(ctx context.Context, id int64) (*model.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeNotFound, "報表不存在")
		}
		return nil, err
	}
	return report, nil
}
