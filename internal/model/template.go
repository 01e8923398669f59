package model

// ReportTemplate 报表组合
// templateCode 采用 RT### 流水编码，按当前最大值 +1 生成（允许断号）
// isAllReports=true 时隐式涵盖全部报表，TemplateReport 明细不再参与判断
type ReportTemplate struct {
	BaseModel

	TemplateCode string `gorm:"size:20;uniqueIndex" json:"templateCode"`
	Name         string `gorm:"size:100;index" json:"name"`
	Description  string `gorm:"size:255" json:"description,omitempty"`
	IsAllReports bool   `gorm:"default:false" json:"isAllReports"`
	IsActive     bool   `gorm:"default:true;index" json:"isActive"`

	Reports []TemplateReport `gorm:"foreignKey:TemplateID" json:"reports,omitempty"`
}

func (ReportTemplate) TableName() string {
	return "report_templates"
}

// TemplateReport 组合内的单张报表（ReportTemplate <-> Report 边）
// 更新时整组替换，与授权范围同一套语义
type TemplateReport struct {
	BaseModel

	TemplateID int64 `gorm:"index" json:"templateId"`
	ReportID   int64 `gorm:"index" json:"reportId"`

	Report *Report `gorm:"foreignKey:ReportID" json:"report,omitempty"`
}

func (TemplateReport) TableName() string {
	return "template_reports"
}
