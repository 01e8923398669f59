package dto

import "time"

// ================== Store DTO ==================

// StoreListReq 门市列表请求
type StoreListReq struct {
	Search string `form:"search"`
	Type   string `form:"type" binding:"omitempty,oneof=MED SPA OTHER"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
}

// StoreCreateReq 新增门市请求
type StoreCreateReq struct {
	Code      string `json:"code" binding:"required,min=2,max=20"`
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Type      string `json:"type" binding:"required,oneof=MED SPA OTHER"`
	RoleEmail string `json:"roleEmail" binding:"required,email"`
}

// StoreUpdateReq 更新门市请求
type StoreUpdateReq struct {
	Name      string `json:"name" binding:"omitempty,min=2,max=100"`
	RoleEmail string `json:"roleEmail" binding:"omitempty,email"`
	IsActive  *bool  `json:"isActive"`
}

// AssignManagerReq 指派店经理请求
type AssignManagerReq struct {
	StaffID   int64 `json:"staffId" binding:"required"`
	IsPrimary *bool `json:"isPrimary"` // 缺省为 true
}

// AddAuthUserReq 新增授权人员请求
type AddAuthUserReq struct {
	StaffID     int64    `json:"staffId" binding:"required"`
	RoleDesc    string   `json:"roleDesc" binding:"max=50"`
	ReportCodes []string `json:"reportCodes" binding:"required,min=1"`
}

// ================== 响应 ==================

// PrimaryManagerResp 主要店长摘要
type PrimaryManagerResp struct {
	ID        int64       `json:"id"`
	Staff     interface{} `json:"staff"`
	StartDate time.Time   `json:"startDate"`
}

// AuthUserResp 授权人员摘要
type AuthUserResp struct {
	ID       int64       `json:"id"`
	Staff    interface{} `json:"staff"`
	RoleDesc string      `json:"roleDesc"`
	Scopes   []string    `json:"scopes"` // 报表代码列表
}

// StoreResp 门市列表条目
type StoreResp struct {
	ID              int64               `json:"id"`
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	Type            string              `json:"type"`
	RoleEmail       string              `json:"roleEmail"`
	IsActive        bool                `json:"isActive"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	PrimaryManager  *PrimaryManagerResp `json:"primaryManager"`
	AuthorizedUsers []AuthUserResp      `json:"authorizedUsers"`
}
