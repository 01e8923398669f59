package service

import (
	"strings"

	"github.com/colechengame/Nreporter/internal/model"
	"github.com/colechengame/Nreporter/pkg/apperr"
)

// ==================== 模糊实体匹配 ====================
// 匹配是对显式传入的启用实体快照做的纯函数计算，
// 快照在一次指令里只查询一次，顺序固定，因此结果可复现

// MatchStore 按名称模糊匹配门市
// 双向包含：门市名包含输入、或输入包含门市名即命中（区分大小写）
// 多个命中时取快照顺序里的第一个——这是沿用下来的边界行为，不做相似度排序
func MatchStore(stores []model.Store, text string) (*model.Store, error) {
	for i := range stores {
		if strings.Contains(stores[i].Name, text) || strings.Contains(text, stores[i].Name) {
			return &stores[i], nil
		}
	}
	return nil, apperr.EntityNotFound("store", text)
}

// MatchStaff 按姓名或昵称模糊匹配人员
// 单向包含：姓名/昵称包含输入即命中（不区分大小写），取第一个
func MatchStaff(staffs []model.Staff, text string) (*model.Staff, error) {
	needle := strings.ToLower(text)
	for i := range staffs {
		if strings.Contains(strings.ToLower(staffs[i].Name), needle) {
			return &staffs[i], nil
		}
		if staffs[i].Nickname != "" && strings.Contains(strings.ToLower(staffs[i].Nickname), needle) {
			return &staffs[i], nil
		}
	}
	return nil, apperr.EntityNotFound("staff", text)
}
