package model

// Group 群组
// isAllStores=true 时隐式涵盖全部门市，GroupStore 明细不再参与判断
type Group struct {
	BaseModel

	Name        string `gorm:"size:100;index" json:"name"`
	Description string `gorm:"size:255" json:"description,omitempty"`
	IsAllStores bool   `gorm:"default:false" json:"isAllStores"`
	IsActive    bool   `gorm:"default:true;index" json:"isActive"`

	Stores   []GroupStore   `gorm:"foreignKey:GroupID" json:"stores,omitempty"`
	Managers []GroupManager `gorm:"foreignKey:GroupID" json:"managers,omitempty"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupStore 群组门市成员（Group <-> Store 边）
type GroupStore struct {
	BaseModel

	GroupID int64 `gorm:"index" json:"groupId"`
	StoreID int64 `gorm:"index" json:"storeId"`

	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

func (GroupStore) TableName() string {
	return "group_stores"
}

// GroupManager 群组管理者（Group <-> Staff 边）
type GroupManager struct {
	BaseModel

	GroupID  int64 `gorm:"index" json:"groupId"`
	StaffID  int64 `gorm:"index" json:"staffId"`
	IsActive bool  `gorm:"default:true;index" json:"isActive"`

	Staff  *Staff              `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Scopes []GroupManagerScope `gorm:"foreignKey:GroupManagerID" json:"scopes,omitempty"`
}

func (GroupManager) TableName() string {
	return "group_managers"
}

// GroupManagerScope 群组管理者报表范围（GroupManager <-> Report 边）
// 与 StoreAuthScope 相同的整组替换语义
type GroupManagerScope struct {
	BaseModel

	GroupManagerID int64 `gorm:"index" json:"groupManagerId"`
	ReportID       int64 `gorm:"index" json:"reportId"`

	Report *Report `gorm:"foreignKey:ReportID" json:"report,omitempty"`
}

func (GroupManagerScope) TableName() string {
	return "group_manager_scopes"
}
