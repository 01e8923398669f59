package dto

import "time"

// ================== Template DTO ==================

// TemplateListReq 报表组合列表请求
type TemplateListReq struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
}

// TemplateCreateReq 新增报表组合请求
type TemplateCreateReq struct {
	Name         string   `json:"name" binding:"required,min=2,max=100"`
	Description  string   `json:"description"`
	IsAllReports bool     `json:"isAllReports"`
	ReportCodes  []string `json:"reportCodes"`
}

// TemplateUpdateReq 更新报表组合请求
// ReportCodes 为 nil 表示不变更报表明细；非 nil 表示整组替换
type TemplateUpdateReq struct {
	Name         string   `json:"name" binding:"omitempty,min=2,max=100"`
	Description  *string  `json:"description"`
	IsAllReports *bool    `json:"isAllReports"`
	ReportCodes  []string `json:"reportCodes"`
}

// TemplateResp 报表组合列表条目
// ReportCount 为数字字符串，isAllReports 时为「全部」
type TemplateResp struct {
	ID           int64     `json:"id"`
	TemplateCode string    `json:"templateCode"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	IsAllReports bool      `json:"isAllReports"`
	Reports      []string  `json:"reports"`
	ReportCount  string    `json:"reportCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
