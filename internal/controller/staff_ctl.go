package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colechengame/Nreporter/internal/api/dto"
	"github.com/colechengame/Nreporter/internal/service"
	"github.com/colechengame/Nreporter/pkg/apperr"
	"github.com/colechengame/Nreporter/pkg/response"
)

type StaffController struct {
	staffSvc *service.StaffService
}

func NewStaffController(staffSvc *service.StaffService) *StaffController {
	return &StaffController{staffSvc: staffSvc}
}

// ListStaff 获取人员列表
// @Summary 获取人员列表
// @Description 分页查询人员，支持姓名/昵称搜索与角色过滤
// @Tags Staff (人员管理)
// @Produce json
// @Param search query string false "姓名或昵称关键词"
// @Param role query string false "角色过滤"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} map[string]interface{} "人员列表"
// @Router /api/staff [get]
func (c *StaffController) ListStaff(ctx *gin.Context) {
	var req dto.StaffListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	staffs, meta, err := c.staffSvc.List(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Paginated(ctx, staffs, meta)
}

// GetStaff 获取人员详情
// @Summary 获取人员详情
// @Tags Staff (人员管理)
// @Produce json
// @Param id path int true "人员ID"
// @Success 200 {object} map[string]interface{} "人员详情"
// @Failure 404 {object} map[string]interface{} "人员不存在"
// @Router /api/staff/{id} [get]
func (c *StaffController) GetStaff(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, apperr.Validation("無效的人員ID"))
		return
	}

	staff, err := c.staffSvc.GetDetail(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, staff)
}

// CreateStaff 新增人员
// @Summary 新增人员
// @Description 人员编号自动生成（S001、S002 ...）
// @Tags Staff (人员管理)
// @Accept json
// @Produce json
// @Param request body dto.StaffCreateReq true "人员资料"
// @Success 201 {object} map[string]interface{} "新增的人员"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /api/staff [post]
func (c *StaffController) CreateStaff(ctx *gin.Context) {
	var req dto.StaffCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	staff, err := c.staffSvc.Create(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, staff, "人員已建立")
}

// UpdateStaff 更新人员
// @Summary 更新人员
// @Tags Staff (人员管理)
// @Accept json
// @Produce json
// @Param id path int true "人员ID"
// @Param request body dto.StaffUpdateReq true "更新资料"
// @Success 200 {object} map[string]interface{} "更新后的人员"
// @Failure 404 {object} map[string]interface{} "人员不存在"
// @Router /api/staff/{id} [put]
func (c *StaffController) UpdateStaff(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, apperr.Validation("無效的人員ID"))
		return
	}

	var req dto.StaffUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	staff, err := c.staffSvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.SuccessWithMessage(ctx, staff, "人員已更新")
}

// DeleteStaff 停用人员
// @Summary 停用人员
// @Description 软删除，历史任职与授权记录保留
// @Tags Staff (人员管理)
// @Produce json
// @Param id path int true "人员ID"
// @Success 200 {object} map[string]interface{} "已停用"
// @Failure 404 {object} map[string]interface{} "人员不存在"
// @Router /api/staff/{id} [delete]
func (c *StaffController) DeleteStaff(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, apperr.Validation("無效的人員ID"))
		return
	}

	if err := c.staffSvc.Delete(ctx.Request.Context(), id); err != nil {
		response.Error(ctx, err)
		return
	}
	response.SuccessWithMessage(ctx, nil, "人員已停用")
}
