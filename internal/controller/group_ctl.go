package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/colechengame/Nreporter/internal/api/dto"
	"github.com/colechengame/Nreporter/internal/service"
	"github.com/colechengame/Nreporter/pkg/response"
)

type GroupController struct {
	groupSvc *service.GroupService
}

func NewGroupController(groupSvc *service.GroupService) *GroupController {
	return &GroupController{groupSvc: groupSvc}
}

// ListGroups 获取群组列表
// @Summary 获取群组列表
// @Tags Group (群组管理)
// @Produce json
// @Param search query string false "群组名称关键词"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} map[string]interface{} "群组列表"
// @Router /api/groups [get]
func (c *GroupController) ListGroups(ctx *gin.Context) {
	var req dto.GroupListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	groups, meta, err := c.groupSvc.List(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Paginated(ctx, groups, meta)
}

// GetGroup 获取群组详情
// @Summary 获取群组详情
// @Tags Group (群组管理)
// @Produce json
// @Param id path int true "群组ID"
// @Success 200 {object} map[string]interface{} "群组详情"
// @Failure 404 {object} map[string]interface{} "群组不存在"
// @Router /api/groups/{id} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的群組ID")
	if !ok {
		return
	}

	group, err := c.groupSvc.GetDetail(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Success(ctx, group)
}

// CreateGroup 新增群组
// @Summary 新增群组
// @Tags Group (群组管理)
// @Accept json
// @Produce json
// @Param request body dto.GroupCreateReq true "群组资料"
// @Success 201 {object} map[string]interface{} "新增的群组"
// @Router /api/groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	var req dto.GroupCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	group, err := c.groupSvc.Create(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, group, "群組已建立")
}

// UpdateGroup 更新群组
// @Summary 更新群组
// @Description storeIds 传入时整组替换门市成员
// @Tags Group (群组管理)
// @Accept json
// @Produce json
// @Param id path int true "群组ID"
// @Param request body dto.GroupUpdateReq true "更新资料"
// @Success 200 {object} map[string]interface{} "更新后的群组"
// @Failure 404 {object} map[string]interface{} "群组不存在"
// @Router /api/groups/{id} [put]
func (c *GroupController) UpdateGroup(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的群組ID")
	if !ok {
		return
	}

	var req dto.GroupUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	group, err := c.groupSvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.SuccessWithMessage(ctx, group, "群組已更新")
}

// DeleteGroup 停用群组
// @Summary 停用群组
// @Tags Group (群组管理)
// @Produce json
// @Param id path int true "群组ID"
// @Success 200 {object} map[string]interface{} "已停用"
// @Failure 404 {object} map[string]interface{} "群组不存在"
// @Router /api/groups/{id} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的群組ID")
	if !ok {
		return
	}

	if err := c.groupSvc.Delete(ctx.Request.Context(), id); err != nil {
		response.Error(ctx, err)
		return
	}
	response.SuccessWithMessage(ctx, nil, "群組已停用")
}

// AddGroupManager 新增群组管理者
// @Summary 新增群组管理者
// @Description 同时写入其可见报表范围，代码无效时整体拒绝
// @Tags Group (群组管理)
// @Accept json
// @Produce json
// @Param id path int true "群组ID"
// @Param request body dto.AddGroupManagerReq true "管理者参数"
// @Success 201 {object} map[string]interface{} "管理者记录"
// @Failure 400 {object} map[string]interface{} "报表代码无效"
// @Router /api/groups/{id}/managers [post]
func (c *GroupController) AddGroupManager(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的群組ID")
	if !ok {
		return
	}

	var req dto.AddGroupManagerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	manager, err := c.groupSvc.AddManager(ctx.Request.Context(), id, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, manager, "群組管理者已新增")
}

// RemoveGroupManager 移除群组管理者
// @Summary 移除群组管理者
// @Tags Group (群组管理)
// @Produce json
// @Param id path int true "群组ID"
// @Param managerId path int true "管理者记录ID"
// @Success 200 {object} map[string]interface{} "已移除"
// @Failure 404 {object} map[string]interface{} "群组管理者不存在"
// @Router /api/groups/{id}/managers/{managerId} [delete]
func (c *GroupController) RemoveGroupManager(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "無效的群組ID")
	if !ok {
		return
	}
	managerID, ok := parseIDParam(ctx, "managerId", "無效的管理者記錄ID")
	if !ok {
		return
	}

	if err := c.groupSvc.RemoveManager(ctx.Request.Context(), id, managerID); err != nil {
		response.Error(ctx, err)
		return
	}
	response.SuccessWithMessage(ctx, nil, "群組管理者已移除")
}
