package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colechengame/Nreporter/internal/api/dto"
	"github.com/colechengame/Nreporter/internal/service"
	"github.com/colechengame/Nreporter/pkg/apperr"
	"github.com/colechengame/Nreporter/pkg/response"
)

type StoreController struct {
	storeSvc *service.StoreService
}

func NewStoreController(storeSvc *service.StoreService) *StoreController {
	return &StoreController{storeSvc: storeSvc}
}

// parseIDParam 解析路径里的整数ID
func parseIDParam(ctx *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		response.Error(ctx, apperr.Validation(message))
		return 0, false
	}
	return id, true
}

// ==================== 门市 CRUD ====================

// ListStores 获取门市列表
// @Summary 获取门市列表
// @Description 分页查询门市，附带主要店长与授权人员摘要
// @Tags Store (门市管理)
// @Produce json
// @Param search query string false "门市名称或代码关键词"
// @Param type query string false "门市类型" Enums(MED, SPA, OTHER)
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} map[string]interface{} "门市列表"
// @Router /api/stores [get]
func (c *StoreController) ListStores(ctx *gin.Context) {
	var req dto.StoreListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	stores, meta, err := c.storeSvc.List(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Paginated(ctx, stores, meta)
}

// GetStore 获取门市详情
// @Summary 获取门市详情
// @Tags Store (门市管理)
// @Produce json
// @Param id path int true "门市ID"
// @Success 200 {object} map[string]interface{} "门市详情"
// @Failure 404 {object} map[string]interface{} "门市不存在"
// @Router /api/stores/{id} [get]
func (c *StoreController) GetStore(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的門市ID")
	if !ok {
		return
	}

	store, err := c.storeSvc.GetDetail(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, store)
}

// CreateStore 新增门市
// @Summary 新增门市
// @Tags Store (门市管理)
// @Accept json
// @Produce json
// @Param request body dto.StoreCreateReq true "门市资料"
// @Success 201 {object} map[string]interface{} "新增的门市"
// @Failure 409 {object} map[string]interface{} "门市代码已存在"
// @Router /api/stores [post]
func (c *StoreController) CreateStore(ctx *gin.Context) {
	var req dto.StoreCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	store, err := c.storeSvc.Create(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, store, "門市已建立")
}

// UpdateStore 更新门市
// @Summary 更新门市
// @Tags Store (门市管理)
// @Accept json
// @Produce json
// @Param id path int true "门市ID"
// @Param request body dto.StoreUpdateReq true "更新资料"
// @Success 200 {object} map[string]interface{} "更新后的门市"
// @Failure 404 {object} map[string]interface{} "门市不存在"
// @Router /api/stores/{id} [put]
func (c *StoreController) UpdateStore(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的門市ID")
	if !ok {
		return
	}

	var req dto.StoreUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	store, err := c.storeSvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.SuccessWithMessage(ctx, store, "門市已更新")
}

// DeleteStore 停用门市
// @Summary 停用门市
// @Description 软删除，授权关联保留作历史记录
// @Tags Store (门市管理)
// @Produce json
// @Param id path int true "门市ID"
// @Success 200 {object} map[string]interface{} "已停用"
// @Failure 404 {object} map[string]interface{} "门市不存在"
// @Router /api/stores/{id} [delete]
func (c *StoreController) DeleteStore(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的門市ID")
	if !ok {
		return
	}

	if err := c.storeSvc.Delete(ctx.Request.Context(), id); err != nil {
		response.Error(ctx, err)
		return
	}
	response.SuccessWithMessage(ctx, nil, "門市已停用")
}

// ==================== 店长与授权 ====================

// AssignManager 指派门市管理者
// @Summary 指派门市管理者
// @Description 指派为主要店长时，原主要店长自动卸任
// @Tags Store (门市管理)
// @Accept json
// @Produce json
// @Param id path int true "门市ID"
// @Param request body dto.AssignManagerReq true "指派参数"
// @Success 200 {object} map[string]interface{} "管理者记录"
// @Failure 404 {object} map[string]interface{} "门市或人员不存在"
// @Router /api/stores/{id}/managers [post]
func (c *StoreController) AssignManager(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的門市ID")
	if !ok {
		return
	}

	var req dto.AssignManagerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	isPrimary := true
	if req.IsPrimary != nil {
		isPrimary = *req.IsPrimary
	}

	manager, err := c.storeSvc.AssignManager(ctx.Request.Context(), id, req.StaffID, isPrimary)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.SuccessWithMessage(ctx, manager, "店長已指派")
}

// AddAuthUser 新增门市授权人员
// @Summary 新增门市授权人员
// @Description 同一人重复授权时更新其角色与报表范围（整组替换）
// @Tags Store (门市管理)
// @Accept json
// @Produce json
// @Param id path int true "门市ID"
// @Param request body dto.AddAuthUserReq true "授权参数"
// @Success 201 {object} map[string]interface{} "授权记录"
// @Failure 400 {object} map[string]interface{} "报表代码无效"
// @Router /api/stores/{id}/auth-users [post]
func (c *StoreController) AddAuthUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的門市ID")
	if !ok {
		return
	}

	var req dto.AddAuthUserReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	authUser, err := c.storeSvc.AddAuthUser(ctx.Request.Context(), id, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, authUser, "授權人員已新增")
}

// RemoveAuthUser 移除门市授权人员
// @Summary 移除门市授权人员
// @Description 软删除，范围记录保留作历史
// @Tags Store (门市管理)
// @Produce json
// @Param id path int true "门市ID"
// @Param authUserId path int true "授权记录ID"
// @Success 200 {object} map[string]interface{} "已移除"
// @Failure 404 {object} map[string]interface{} "授权人员不存在"
// @Router /api/stores/{id}/auth-users/{authUserId} [delete]
func (c *StoreController) RemoveAuthUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的門市ID")
	if !ok {
		return
	}
	authUserID, ok := parseIDParam(ctx, "authUserId", "無效的授權記錄ID")
	if !ok {
		return
	}

	if err := c.storeSvc.RemoveAuthUser(ctx.Request.Context(), id, authUserID); err != nil {
		response.Error(ctx, err)
		return
	}
	response.SuccessWithMessage(ctx, nil, "授權人員已移除")
}
