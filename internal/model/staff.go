package model

// ==================== 人员角色常量 ====================

const (
	StaffRoleAreaManager     = "AREA_MANAGER"     // 区经理
	StaffRoleStoreManager    = "STORE_MANAGER"    // 店长
	StaffRoleSeniorExecutive = "SENIOR_EXECUTIVE" // 高阶主管
	StaffRoleSupervisor      = "SUPERVISOR"       // 主管
	StaffRoleStaff           = "STAFF"            // 一般人员
)

// Staff 人员
// staffCode 采用 S### 流水编码，按当前最大值 +1 生成
type Staff struct {
	BaseModel

	StaffCode string `gorm:"size:20;uniqueIndex" json:"staffCode"`
	Name      string `gorm:"size:50;index" json:"name"`
	Nickname  string `gorm:"size:20" json:"nickname,omitempty"`
	Email     string `gorm:"size:100" json:"email,omitempty"`
	Role      string `gorm:"size:30;index" json:"role"`
	IsActive  bool   `gorm:"default:true;index" json:"isActive"`
}

func (Staff) TableName() string {
	return "staffs"
}
