package dto

// ================== Staff DTO ==================

// StaffListReq 人员列表请求
type StaffListReq struct {
	Search string `form:"search"`
	Role   string `form:"role"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
}

// StaffCreateReq 新增人员请求
type StaffCreateReq struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Nickname string `json:"nickname" binding:"max=20"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     string `json:"role" binding:"required,oneof=AREA_MANAGER STORE_MANAGER SENIOR_EXECUTIVE SUPERVISOR STAFF"`
}

// StaffUpdateReq 更新人员请求
type StaffUpdateReq struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=50"`
	Nickname string `json:"nickname" binding:"max=20"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     string `json:"role" binding:"omitempty,oneof=AREA_MANAGER STORE_MANAGER SENIOR_EXECUTIVE SUPERVISOR STAFF"`
	IsActive *bool  `json:"isActive"`
}
