package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/colechengame/Nreporter/internal/api/dto"
	"github.com/colechengame/Nreporter/internal/service"
	"github.com/colechengame/Nreporter/pkg/response"
)

type AIController struct {
	aiSvc *service.AIService
}

func NewAIController(aiSvc *service.AIService) *AIController {
	return &AIController{aiSvc: aiSvc}
}

// ExecuteCommand 执行自然语言指令
// @Summary 执行自然语言指令
// @Description 把自然语言指令解析为权限变更动作并执行，每次调用记录一条指令日志
// @Tags AI (智能指令)
// @Accept json
// @Produce json
// @Param request body dto.AICommandReq true "指令内容"
// @Success 200 {object} map[string]interface{} "解析动作与执行结果"
// @Failure 400 {object} map[string]interface{} "无法辨识或解析失败"
// @Failure 502 {object} map[string]interface{} "模型请求失败"
// @Failure 503 {object} map[string]interface{} "AI 服务未配置"
// @Router /api/ai/command [post]
func (c *AIController) ExecuteCommand(ctx *gin.Context) {
	var req dto.AICommandReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	resp, msg, err := c.aiSvc.ExecuteCommand(ctx.Request.Context(), req.Command)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.SuccessWithMessage(ctx, resp, msg)
}

// ListCommandLogs 查询指令日志
// @Summary 查询指令日志
// @Description 按时间倒序分页返回指令执行记录
// @Tags AI (智能指令)
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} map[string]interface{} "日志列表"
// @Router /api/ai/logs [get]
func (c *AIController) ListCommandLogs(ctx *gin.Context) {
	var req struct {
		Page  int `form:"page,default=1"`
		Limit int `form:"limit,default=20"`
	}
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	page, limit := response.NormalizePage(req.Page, req.Limit)
	logs, total, err := c.aiSvc.ListLogs(ctx.Request.Context(), page, limit)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Paginated(ctx, logs, response.BuildMeta(total, page, limit))
}
