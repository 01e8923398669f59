package model

// AICommandLog AI 指令审计日志
// 只追加：每次 /command 调用写一条，成功失败都记
type AICommandLog struct {
	BaseModel

	InputText     string `gorm:"type:text" json:"inputText"`
	ParsedAction  string `gorm:"type:text" json:"parsedAction,omitempty"` // 解析出的动作 JSON，解析失败时为空
	IsSuccess     bool   `gorm:"index" json:"isSuccess"`
	ErrorMessage  string `gorm:"size:1024" json:"errorMessage,omitempty"`
	ExecutionTime int64  `gorm:"comment:耗时(毫秒)" json:"executionTime"`
}

func (AICommandLog) TableName() string {
	return "ai_command_logs"
}
