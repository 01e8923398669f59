package dto

// ================== Group DTO ==================

// GroupListReq 群组列表请求
type GroupListReq struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
}

// GroupCreateReq 新增群组请求
type GroupCreateReq struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description string  `json:"description"`
	IsAllStores bool    `json:"isAllStores"`
	StoreIDs    []int64 `json:"storeIds"`
}

// GroupUpdateReq 更新群组请求
// StoreIDs 为 nil 表示不变更门市成员；非 nil（含空数组）表示整组替换
type GroupUpdateReq struct {
	Name        string  `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
	IsAllStores *bool   `json:"isAllStores"`
	StoreIDs    []int64 `json:"storeIds"`
}

// AddGroupManagerReq 新增群组管理者请求
type AddGroupManagerReq struct {
	StaffID     int64    `json:"staffId" binding:"required"`
	ReportCodes []string `json:"reportCodes" binding:"required,min=1"`
}
