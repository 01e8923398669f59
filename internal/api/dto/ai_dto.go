package dto

// ================== AI 指令 DTO ==================

// AICommandReq 自然语言指令请求
type AICommandReq struct {
	Command string `json:"command" binding:"required,min=5,max=500"`
}

// ==================== 动作类型 ====================

// 模型只允许输出这几种动作，其余一律归入 UNKNOWN
const (
	ActionAssignPrimary    = "ASSIGN_PRIMARY"
	ActionAddGranular      = "ADD_GRANULAR"
	ActionCreateStore      = "CREATE_STORE"
	ActionUpdateStoreEmail = "UPDATE_STORE_EMAIL"
	ActionUnknown          = "UNKNOWN"
)

// AIAction 模型解析出的动作（封闭变体，按 Type 区分字段）
type AIAction struct {
	Type string `json:"type"`

	// ASSIGN_PRIMARY / ADD_GRANULAR / UPDATE_STORE_EMAIL
	StoreName string `json:"storeName,omitempty"`

	// ASSIGN_PRIMARY
	ManagerName string `json:"managerName,omitempty"`

	// ADD_GRANULAR
	UserName string   `json:"userName,omitempty"`
	Role     string   `json:"role,omitempty"`
	Scopes   []string `json:"scopes,omitempty"`

	// CREATE_STORE
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`

	// UPDATE_STORE_EMAIL
	NewEmail string `json:"newEmail,omitempty"`

	// UNKNOWN
	Reason string `json:"reason,omitempty"`
}

// AICommandResp 指令执行结果
type AICommandResp struct {
	Action *AIAction   `json:"action"`
	Result interface{} `json:"result"`
}
