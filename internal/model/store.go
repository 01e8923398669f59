package model

import (
	"time"
)

// ==================== 门市类型常量 ====================

const (
	StoreTypeMed   = "MED"   // 医美
	StoreTypeSpa   = "SPA"   // 岩盘浴
	StoreTypeOther = "OTHER" // 其它
)

// Store 门市
type Store struct {
	BaseModel

	Code      string `gorm:"size:20;uniqueIndex" json:"code"`
	Name      string `gorm:"size:100;index" json:"name"`
	Type      string `gorm:"size:10;index" json:"type"`
	RoleEmail string `gorm:"size:100" json:"roleEmail"`
	IsActive  bool   `gorm:"default:true;index" json:"isActive"`

	// 关联
	Managers  []StoreManager  `gorm:"foreignKey:StoreID" json:"managers,omitempty"`
	AuthUsers []StoreAuthUser `gorm:"foreignKey:StoreID" json:"authorizedUsers,omitempty"`
}

func (Store) TableName() string {
	return "stores"
}

// StoreManager 门市管理者（Store <-> Staff 边）
// 不变量：同一门市同时最多只有一条 is_primary=true 且 is_active=true 的记录
type StoreManager struct {
	BaseModel

	StoreID   int64      `gorm:"index" json:"storeId"`
	StaffID   int64      `gorm:"index" json:"staffId"`
	IsPrimary bool       `gorm:"default:false;index" json:"isPrimary"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate"` // null 表示仍在任
	IsActive  bool       `gorm:"default:true;index" json:"isActive"`

	Staff *Staff `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

func (StoreManager) TableName() string {
	return "store_managers"
}

// StoreAuthUser 门市授权人员（Store <-> Staff 边，非店长）
// (store_id, staff_id) 唯一，重复授权走 upsert 更新既有记录
type StoreAuthUser struct {
	BaseModel

	StoreID  int64  `gorm:"index;uniqueIndex:uk_store_staff" json:"storeId"`
	StaffID  int64  `gorm:"index;uniqueIndex:uk_store_staff" json:"staffId"`
	RoleDesc string `gorm:"size:50" json:"roleDesc"`
	IsActive bool   `gorm:"default:true;index" json:"isActive"`

	Staff  *Staff           `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Scopes []StoreAuthScope `gorm:"foreignKey:StoreAuthUserID" json:"scopes,omitempty"`
}

func (StoreAuthUser) TableName() string {
	return "store_auth_users"
}

// StoreAuthScope 授权人员可见的单张报表（StoreAuthUser <-> Report 边）
// 更新时整组替换（先删后建），不做合并
type StoreAuthScope struct {
	BaseModel

	StoreAuthUserID int64 `gorm:"index" json:"storeAuthUserId"`
	ReportID        int64 `gorm:"index" json:"reportId"`

	Report *Report `gorm:"foreignKey:ReportID" json:"report,omitempty"`
}

func (StoreAuthScope) TableName() string {
	return "store_auth_scopes"
}
