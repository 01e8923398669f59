package seed

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/colechengame/Nreporter/internal/model"
	"github.com/colechengame/Nreporter/pkg/logger"
)

// Run 写入基础资料，已存在的记录跳过不覆盖
// 可重复执行，用于初次部署和本地开发
func Run(db *gorm.DB) error {
	if err := seedReports(db); err != nil {
		return err
	}
	if err := seedStores(db); err != nil {
		return err
	}
	if err := seedTemplates(db); err != nil {
		return err
	}
	logger.L().Info("種子資料建立完成")
	return nil
}

// ==================== 报表目录 ====================

func seedReports(db *gorm.DB) error {
	reports := []model.Report{
		// 营运类
		{Code: "R001", Name: "護理部消耗報表", Category: model.ReportCategoryOperation},
		{Code: "R006", Name: "進銷貨明細", Category: model.ReportCategoryOperation},
		{Code: "R009", Name: "手術追蹤報表", Category: model.ReportCategoryOperation},
		{Code: "R016", Name: "諮詢師消耗額統計", Category: model.ReportCategoryOperation},
		{Code: "R020", Name: "生美、醫美品項明細表", Category: model.ReportCategoryOperation},
		{Code: "R021", Name: "非護理部手術消耗報表", Category: model.ReportCategoryOperation},
		{Code: "R023", Name: "高耗材異常領用清單", Category: model.ReportCategoryOperation},
		{Code: "R024", Name: "近半年銷售或消耗低於50報表", Category: model.ReportCategoryOperation},
		{Code: "R028", Name: "中醫藥膳消耗統計", Category: model.ReportCategoryOperation},
		// 人资类
		{Code: "R003a", Name: "新進人員名單&離職報表", Category: model.ReportCategoryHR},
		{Code: "R003b", Name: "新人關懷名單", Category: model.ReportCategoryHR},
		{Code: "R011", Name: "離職人數統計表", Category: model.ReportCategoryHR},
		{Code: "R014", Name: "每月時數表", Category: model.ReportCategoryHR},
		{Code: "R025", Name: "醫師考勤明細", Category: model.ReportCategoryHR},
		// 财务类
		{Code: "R004", Name: "員購報表", Category: model.ReportCategoryFinance},
		{Code: "R012", Name: "電銷獎金經營客表", Category: model.ReportCategoryFinance},
		{Code: "R013", Name: "電銷獎金總表", Category: model.ReportCategoryFinance},
		{Code: "R017", Name: "諮詢師積分", Category: model.ReportCategoryFinance},
		{Code: "R018", Name: "營養師獎金報表", Category: model.ReportCategoryFinance},
		{Code: "R026", Name: "中醫諮詢師積分", Category: model.ReportCategoryFinance},
		// 行销类
		{Code: "R005", Name: "好友專案報表", Category: model.ReportCategoryMarketing},
		{Code: "R007", Name: "好友介紹人報表", Category: model.ReportCategoryMarketing},
		{Code: "R008", Name: "電銷報表", Category: model.ReportCategoryMarketing},
		// 会员类
		{Code: "R010", Name: "設定影片名單", Category: model.ReportCategoryMember},
		{Code: "R022", Name: "會員資料異動報表", Category: model.ReportCategoryMember},
		// 系统类
		{Code: "R015", Name: "報修系統報表", Category: model.ReportCategorySystem},
		{Code: "R019", Name: "報修系統積分表", Category: model.ReportCategorySystem},
		{Code: "R027", Name: "各體系分院代碼", Category: model.ReportCategorySystem},
	}

	for i := range reports {
		reports[i].IsActive = true
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&reports).Error
}

// ==================== 门市 ====================

func seedStores(db *gorm.DB) error {
	stores := []model.Store{
		// 医美部门
		{Code: "BZ_MED", Name: "板橋光澤醫美", Type: model.StoreTypeMed, RoleEmail: "store01.manager@example.com"},
		{Code: "ZX_GZ", Name: "忠孝光澤", Type: model.StoreTypeMed, RoleEmail: "store02.manager@example.com"},
		{Code: "SX_GZ", Name: "三峽光澤診所", Type: model.StoreTypeMed, RoleEmail: "store03.manager@example.com"},
		{Code: "BZ_JB", Name: "板橋光澤健保", Type: model.StoreTypeMed, RoleEmail: "store04.manager@example.com"},
		{Code: "SC_GZ", Name: "三重光澤", Type: model.StoreTypeMed, RoleEmail: "store05.manager@example.com"},
		{Code: "XZ_GZ", Name: "新莊光澤診所", Type: model.StoreTypeMed, RoleEmail: "store06.manager@example.com"},
		{Code: "LK_TY", Name: "林口彤顏診所", Type: model.StoreTypeMed, RoleEmail: "store07.manager@example.com"},
		{Code: "BD_JB", Name: "八德健保診所", Type: model.StoreTypeMed, RoleEmail: "store08.manager@example.com"},
		{Code: "HC_GZ", Name: "新竹光澤診所", Type: model.StoreTypeMed, RoleEmail: "store09.manager@example.com"},
		{Code: "GT_GZ", Name: "古亭光澤", Type: model.StoreTypeMed, RoleEmail: "store10.manager@example.com"},
		{Code: "NX_GZ", Name: "南西光澤診所", Type: model.StoreTypeMed, RoleEmail: "store11.manager@example.com"},
		{Code: "SM_GZ", Name: "三民光澤診所", Type: model.StoreTypeMed, RoleEmail: "store12.manager@example.com"},
		{Code: "DZ_GZ", Name: "大直光澤診所", Type: model.StoreTypeMed, RoleEmail: "store13.manager@example.com"},
		{Code: "LD_GZ", Name: "羅東光澤", Type: model.StoreTypeMed, RoleEmail: "store14.manager@example.com"},
		{Code: "KS_MED", Name: "高雄醫美", Type: model.StoreTypeMed, RoleEmail: "store15.manager@example.com"},
		{Code: "ZL_TY", Name: "中壢彤顏醫美", Type: model.StoreTypeMed, RoleEmail: "store16.manager@example.com"},
		{Code: "ZL_TY_JB", Name: "中壢彤顏健保", Type: model.StoreTypeMed, RoleEmail: "store17.manager@example.com"},
		{Code: "TY_MED", Name: "桃園醫美", Type: model.StoreTypeMed, RoleEmail: "store18.manager@example.com"},
		{Code: "TC_GZ", Name: "台中光澤診所", Type: model.StoreTypeMed, RoleEmail: "store19.manager@example.com"},
		{Code: "YH_TY", Name: "永和彤顏診所", Type: model.StoreTypeMed, RoleEmail: "store20.manager@example.com"},
		// 岩盘浴部门
		{Code: "BZ_SPA", Name: "板橋岩盤浴", Type: model.StoreTypeSpa, RoleEmail: "spa01.manager@example.com"},
		{Code: "ZX_SPA", Name: "忠孝岩盤浴", Type: model.StoreTypeSpa, RoleEmail: "spa02.manager@example.com"},
		{Code: "TC_SPA", Name: "台中岩盤浴", Type: model.StoreTypeSpa, RoleEmail: "spa03.manager@example.com"},
		{Code: "LD_SPA", Name: "羅東岩盤浴", Type: model.StoreTypeSpa, RoleEmail: "spa04.manager@example.com"},
		{Code: "ZL_SPA", Name: "中壢岩盤浴", Type: model.StoreTypeSpa, RoleEmail: "spa05.manager@example.com"},
		{Code: "TY_SPA", Name: "桃園岩盤浴", Type: model.StoreTypeSpa, RoleEmail: "spa06.manager@example.com"},
		// 其它
		{Code: "QP_SPA", Name: "青埔岩盤浴", Type: model.StoreTypeOther, RoleEmail: "qp_spa.manager@example.com"},
		{Code: "TP_SPA", Name: "台北岩盤浴", Type: model.StoreTypeOther, RoleEmail: "tp_spa.manager@example.com"},
		{Code: "QP_TY", Name: "青埔彤顏", Type: model.StoreTypeOther, RoleEmail: "qp_ty.manager@example.com"},
		{Code: "BD_SPA", Name: "八德岩盤浴", Type: model.StoreTypeOther, RoleEmail: "bd_spa.manager@example.com"},
		{Code: "GT_OFC", Name: "古亭辦公室", Type: model.StoreTypeOther, RoleEmail: "gt_ofc.manager@example.com"},
		{Code: "HQ", Name: "光澤(彤顏)診所總管理處", Type: model.StoreTypeOther, RoleEmail: "hq.manager@example.com"},
	}

	for i := range stores {
		stores[i].IsActive = true
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&stores).Error
}

// ==================== 报表组合 ====================

func seedTemplates(db *gorm.DB) error {
	templates := []struct {
		templateCode string
		name         string
		description  string
		isAllReports bool
		reportCodes  []string
	}{
		{"RT001", "營運管理組合", "適用於店長、區經理", false, []string{"R001", "R006", "R014", "R016", "R020"}},
		{"RT002", "人資報表組合", "適用於人資相關人員", false, []string{"R003a", "R003b", "R011", "R014"}},
		{"RT003", "財務報表組合", "適用於財務相關人員", false, []string{"R004", "R006", "R012", "R013"}},
		{"RT004", "諮詢師組合", "適用於諮詢師", false, []string{"R016", "R017", "R026"}},
		{"RT005", "電銷組合", "適用於電銷人員", false, []string{"R008", "R012", "R013"}},
		{"RT006", "全報表組合", "適用於高階主管", true, nil},
	}

	for _, t := range templates {
		var count int64
		if err := db.Model(&model.ReportTemplate{}).
			Where("template_code = ?", t.templateCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		tpl := model.ReportTemplate{
			TemplateCode: t.templateCode,
			Name:         t.name,
			Description:  t.description,
			IsAllReports: t.isAllReports,
			IsActive:     true,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&tpl).Error; err != nil {
				return err
			}
			if len(t.reportCodes) == 0 {
				return nil
			}

			var reports []model.Report
			if err := tx.Where("code IN ?", t.reportCodes).Find(&reports).Error; err != nil {
				return err
			}
			edges := make([]model.TemplateReport, 0, len(reports))
			for _, r := range reports {
				edges = append(edges, model.TemplateReport{TemplateID: tpl.ID, ReportID: r.ID})
			}
			if len(edges) == 0 {
				return nil
			}
			return tx.Create(&edges).Error
		})
		if err != nil {
			return err
		}
		logger.L().Info("報表組合已建立", zap.String("templateCode", t.templateCode))
	}
	return nil
}
