package service

import (
	"context"
	"errors"
	"testing"

	"github.com/colechengame/Nreporter/internal/api/dto"
	"github.com/colechengame/Nreporter/internal/model"
	"github.com/colechengame/Nreporter/pkg/apperr"
)

func TestTemplateService_Create_GeneratesSequentialCodes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createReport(t, "R001", "護理部消耗報表")

	first, err := env.templateSvc.Create(ctx, dto.TemplateCreateReq{
		Name:        "營運管理組合",
		ReportCodes: []string{"R001"},
	})
	if err != nil {
		t.Fatalf("建立组合失败: %v", err)
	}
	if first.TemplateCode != "RT001" {
		t.Errorf("第一个组合编号应为 RT001，实际 %s", first.TemplateCode)
	}

	second, err := env.templateSvc.Create(ctx, dto.TemplateCreateReq{
		Name:        "人資報表組合",
		ReportCodes: []string{"R001"},
	})
	if err != nil {
		t.Fatalf("建立第二个组合失败: %v", err)
	}
	if second.TemplateCode != "RT002" {
		t.Errorf("第二个组合编号应为 RT002，实际 %s", second.TemplateCode)
	}
}

func TestTemplateService_Create_InvalidCodesAtomicReject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createReport(t, "R001", "護理部消耗報表")

	_, err := env.templateSvc.Create(ctx, dto.TemplateCreateReq{
		Name:        "坏组合",
		ReportCodes: []string{"R001", "R999"},
	})
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeInvalidReportCodes {
		t.Fatalf("应返回 INVALID_REPORT_CODES，实际 %v", err)
	}

	// 整体回滚，不留下组合记录
	var count int64
	env.db.Model(&model.ReportTemplate{}).Count(&count)
	if count != 0 {
		t.Errorf("失败操作不应留下组合记录，实际 %d 条", count)
	}
}

func TestTemplateService_Update_ReplaceReports(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createReport(t, "R001", "護理部消耗報表")
	env.createReport(t, "R002", "進銷貨明細")

	tpl, err := env.templateSvc.Create(ctx, dto.TemplateCreateReq{
		Name:        "營運管理組合",
		ReportCodes: []string{"R001", "R002"},
	})
	if err != nil {
		t.Fatalf("建立组合失败: %v", err)
	}

	updated, err := env.templateSvc.Update(ctx, tpl.ID, dto.TemplateUpdateReq{
		ReportCodes: []string{"R002"},
	})
	if err != nil {
		t.Fatalf("更新组合失败: %v", err)
	}
	if len(updated.Reports) != 1 {
		t.Fatalf("替换后明细应为 1 条，实际 %d", len(updated.Reports))
	}
	if updated.Reports[0].Report.Code != "R002" {
		t.Errorf("明细应为 R002，实际 %s", updated.Reports[0].Report.Code)
	}
}

func TestTemplateService_List_AllReportsCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.templateSvc.Create(ctx, dto.TemplateCreateReq{
		Name:         "全報表組合",
		IsAllReports: true,
	}); err != nil {
		t.Fatalf("建立全报表组合失败: %v", err)
	}

	resps, _, err := env.templateSvc.List(ctx, dto.TemplateListReq{})
	if err != nil {
		t.Fatalf("查询组合失败: %v", err)
	}
	if len(resps) != 1 {
		t.Fatalf("应有 1 个组合，实际 %d", len(resps))
	}
	if resps[0].ReportCount != "全部" {
		t.Errorf("全报表组合数量应显示 全部，实际 %q", resps[0].ReportCount)
	}
}
