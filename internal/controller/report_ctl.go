package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colechengame/Nreporter/internal/service"
	"github.com/colechengame/Nreporter/pkg/apperr"
	"github.com/colechengame/Nreporter/pkg/response"
)

type ReportController struct {
	reportSvc *service.ReportService
}

func NewReportController(reportSvc *service.ReportService) *ReportController {
	return &ReportController{reportSvc: reportSvc}
}

// ListReports 获取报表目录
// @Summary 获取报表目录
// @Description 查询启用中的报表，支持按分类过滤
// @Tags Report (报表目录)
// @Produce json
// @Param category query string false "报表分类"
// @Success 200 {object} map[string]interface{} "报表列表"
// @Router /api/reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	reports, err := c.reportSvc.List(ctx.Request.Context(), ctx.Query("category"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, reports)
}

// GetReport 获取单一报表
// @Summary 获取单一报表
// @Tags Report (报表目录)
// @Produce json
// @Param id path int true "报表ID"
// @Success 200 {object} map[string]interface{} "报表"
// @Failure 404 {object} map[string]interface{} "报表不存在"
// @Router /api/reports/{id} [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, apperr.Validation("無效的報表ID"))
		return
	}

	report, err := c.reportSvc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, report)
}
