package model

// ==================== 报表分类常量 ====================

const (
	ReportCategoryOperation = "OPERATION" // 营运
	ReportCategoryHR        = "HR"        // 人资
	ReportCategoryFinance   = "FINANCE"   // 财务
	ReportCategoryMarketing = "MARKETING" // 行销
	ReportCategoryMember    = "MEMBER"    // 会员
	ReportCategorySystem    = "SYSTEM"    // 系统
)

// Report 报表定义
// code 是对外稳定唯一键（如 R001），创建后不变更，正常流程不做物理删除
type Report struct {
	BaseModel

	Code     string `gorm:"size:20;uniqueIndex" json:"code"`
	Name     string `gorm:"size:100" json:"name"`
	Category string `gorm:"size:20;index" json:"category"`
	IsActive bool   `gorm:"default:true;index" json:"isActive"`
}

func (Report) TableName() string {
	return "reports"
}
