package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/colechengame/Nreporter/internal/api/dto"
	"github.com/colechengame/Nreporter/internal/service"
	"github.com/colechengame/Nreporter/pkg/response"
)

type TemplateController struct {
	templateSvc *service.TemplateService
}

func NewTemplateController(templateSvc *service.TemplateService) *TemplateController {
	return &TemplateController{templateSvc: templateSvc}
}

// ListTemplates 获取报表组合列表
// @Summary 获取报表组合列表
// @Tags Template (报表组合)
// @Produce json
// @Param search query string false "组合名称关键词"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} map[string]interface{} "组合列表"
// @Router /api/templates [get]
func (c *TemplateController) ListTemplates(ctx *gin.Context) {
	var req dto.TemplateListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	templates, meta, err := c.templateSvc.List(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Paginated(ctx, templates, meta)
}

// GetTemplate 获取报表组合详情
// @Summary 获取报表组合详情
// @Tags Template (报表组合)
// @Produce json
// @Param id path int true "组合ID"
// @Success 200 {object} map[string]interface{} "组合详情"
// @Failure 404 {object} map[string]interface{} "组合不存在"
// @Router /api/templates/{id} [get]
func (c *TemplateController) GetTemplate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的組合ID")
	if !ok {
		return
	}

	tpl, err := c.templateSvc.GetDetail(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, tpl)
}

// CreateTemplate 新增报表组合
// @Summary 新增报表组合
// @Description 组合代码自动生成（RT001、RT002 ...）
// @Tags Template (报表组合)
// @Accept json
// @Produce json
// @Param request body dto.TemplateCreateReq true "组合资料"
// @Success 201 {object} map[string]interface{} "新增的组合"
// @Failure 400 {object} map[string]interface{} "报表代码无效"
// @Router /api/templates [post]
func (c *TemplateController) CreateTemplate(ctx *gin.Context) {
	var req dto.TemplateCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	tpl, err := c.templateSvc.Create(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, tpl, "報表組合已建立")
}

// UpdateTemplate 更新报表组合
// @Summary 更新报表组合
// @Description reportCodes 传入时整组替换报表明细
// @Tags Template (报表组合)
// @Accept json
// @Produce json
// @Param id path int true "组合ID"
// @Param request body dto.TemplateUpdateReq true "更新资料"
// @Success 200 {object} map[string]interface{} "更新后的组合"
// @Failure 404 {object} map[string]interface{} "组合不存在"
// @Router /api/templates/{id} [put]
func (c *TemplateController) UpdateTemplate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的組合ID")
	if !ok {
		return
	}

	var req dto.TemplateUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	tpl, err := c.templateSvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.SuccessWithMessage(ctx, tpl, "報表組合已更新")
}

// DeleteTemplate 停用报表组合
// @Summary 停用报表组合
// @Tags Template (报表组合)
// @Produce json
// @Param id path int true "组合ID"
// @Success 200 {object} map[string]interface{} "已停用"
// @Failure 404 {object} map[string]interface{} "组合不存在"
// @Router /api/templates/{id} [delete]
func (c *TemplateController) DeleteTemplate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的組合ID")
	if !ok {
		return
	}

	if err := c.templateSvc.Delete(ctx.Request.Context(), id); err != nil {
		response.Error(ctx, err)
		return
	}
	response.SuccessWithMessage(ctx, nil, "報表組合已停用")
}
