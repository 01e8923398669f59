package service

import (
	"context"
	"errors"
	"testing"

	"github.com/colechengame/Nreporter/internal/api/dto"
	"github.com/colechengame/Nreporter/internal/model"
	"github.com/colechengame/Nreporter/pkg/apperr"
)

func TestGroupService_Create_WithStores(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	storeA := env.createStore(t, "BZ_MED", "板橋光澤醫美")
	storeB := env.createStore(t, "ZX_GZ", "忠孝光澤")

	group, err := env.groupSvc.Create(ctx, dto.GroupCreateReq{
		Name:     "北區醫美群",
		StoreIDs: []int64{storeA.ID, storeB.ID},
	})
	if err != nil {
		t.Fatalf("建立群组失败: %v", err)
	}
	if len(group.Stores) != 2 {
		t.Fatalf("群组应含 2 家门市，实际 %d", len(group.Stores))
	}
}

func TestGroupService_Update_ReplaceStores(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	storeA := env.createStore(t, "BZ_MED", "板橋光澤醫美")
	storeB := env.createStore(t, "ZX_GZ", "忠孝光澤")
	storeC := env.createStore(t, "SC_GZ", "三重光澤")

	group, err := env.groupSvc.Create(ctx, dto.GroupCreateReq{
		Name:     "北區醫美群",
		StoreIDs: []int64{storeA.ID, storeB.ID},
	})
	if err != nil {
		t.Fatalf("建立群组失败: %v", err)
	}

	// 整组替换为 {C}
	updated, err := env.groupSvc.Update(ctx, group.ID, dto.GroupUpdateReq{
		StoreIDs: []int64{storeC.ID},
	})
	if err != nil {
		t.Fatalf("更新群组失败: %v", err)
	}
	if len(updated.Stores) != 1 {
		t.Fatalf("替换后应只剩 1 家门市，实际 %d", len(updated.Stores))
	}
	if updated.Stores[0].StoreID != storeC.ID {
		t.Errorf("门市成员应为 C(%d)，实际 %d", storeC.ID, updated.Stores[0].StoreID)
	}
}

func TestGroupService_Update_NilStoreIDsKeepsMembers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	storeA := env.createStore(t, "BZ_MED", "板橋光澤醫美")

	group, err := env.groupSvc.Create(ctx, dto.GroupCreateReq{
		Name:     "北區醫美群",
		StoreIDs: []int64{storeA.ID},
	})
	if err != nil {
		t.Fatalf("建立群组失败: %v", err)
	}

	// 不传 storeIds 时门市成员保持不动
	updated, err := env.groupSvc.Update(ctx, group.ID, dto.GroupUpdateReq{
		Name: "北區醫美一群",
	})
	if err != nil {
		t.Fatalf("更新群组失败: %v", err)
	}
	if updated.Name != "北區醫美一群" {
		t.Errorf("名称应已更新，实际 %s", updated.Name)
	}
	if len(updated.Stores) != 1 {
		t.Errorf("门市成员不应变动，实际 %d 家", len(updated.Stores))
	}
}

func TestGroupService_AddManager_WithScopes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	staff := env.createStaff(t, "S001", "王小明", "小明")
	env.createReport(t, "R001", "護理部消耗報表")
	env.createReport(t, "R006", "進銷貨明細")

	group, err := env.groupSvc.Create(ctx, dto.GroupCreateReq{Name: "北區醫美群"})
	if err != nil {
		t.Fatalf("建立群组失败: %v", err)
	}

	manager, err := env.groupSvc.AddManager(ctx, group.ID, dto.AddGroupManagerReq{
		StaffID:     staff.ID,
		ReportCodes: []string{"R001", "R006"},
	})
	if err != nil {
		t.Fatalf("新增群组管理者失败: %v", err)
	}

	scopes, _ := env.scopes.ListGroupManagerScopes(ctx, manager.ID)
	if len(scopes) != 2 {
		t.Fatalf("管理者范围应为 2 条，实际 %d", len(scopes))
	}
}

func TestGroupService_AddManager_InvalidCodesAtomicReject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	staff := env.createStaff(t, "S001", "王小明", "小明")
	env.createReport(t, "R001", "護理部消耗報表")

	group, err := env.groupSvc.Create(ctx, dto.GroupCreateReq{Name: "北區醫美群"})
	if err != nil {
		t.Fatalf("建立群组失败: %v", err)
	}

	_, err = env.groupSvc.AddManager(ctx, group.ID, dto.AddGroupManagerReq{
		StaffID:     staff.ID,
		ReportCodes: []string{"R001", "R999"},
	})
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeInvalidReportCodes {
		t.Fatalf("应返回 INVALID_REPORT_CODES，实际 %v", err)
	}

	// 整体回滚，不留下管理者记录
	var count int64
	env.db.Model(&model.GroupManager{}).Count(&count)
	if count != 0 {
		t.Errorf("失败操作不应留下管理者记录，实际 %d 条", count)
	}
}

func TestGroupService_RemoveManager(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	staff := env.createStaff(t, "S001", "王小明", "小明")
	env.createReport(t, "R001", "護理部消耗報表")

	group, err := env.groupSvc.Create(ctx, dto.GroupCreateReq{Name: "北區醫美群"})
	if err != nil {
		t.Fatalf("建立群组失败: %v", err)
	}
	manager, err := env.groupSvc.AddManager(ctx, group.ID, dto.AddGroupManagerReq{
		StaffID:     staff.ID,
		ReportCodes: []string{"R001"},
	})
	if err != nil {
		t.Fatalf("新增管理者失败: %v", err)
	}

	if err := env.groupSvc.RemoveManager(ctx, group.ID, manager.ID); err != nil {
		t.Fatalf("移除管理者失败: %v", err)
	}

	var current model.GroupManager
	env.db.First(&current, manager.ID)
	if current.IsActive {
		t.Error("移除后应为停用状态")
	}
}

func TestGroupService_RemoveManager_WrongGroup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	staff := env.createStaff(t, "S001", "王小明", "小明")
	env.createReport(t, "R001", "護理部消耗報表")

	groupA, _ := env.groupSvc.Create(ctx, dto.GroupCreateReq{Name: "A群"})
	groupB, _ := env.groupSvc.Create(ctx, dto.GroupCreateReq{Name: "B群"})
	manager, err := env.groupSvc.AddManager(ctx, groupA.ID, dto.AddGroupManagerReq{
		StaffID:     staff.ID,
		ReportCodes: []string{"R001"},
	})
	if err != nil {
		t.Fatalf("新增管理者失败: %v", err)
	}

	// 管理者属于 A 群，从 B 群移除应报不存在
	err = env.groupSvc.RemoveManager(ctx, groupB.ID, manager.ID)
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeNotFound {
		t.Fatalf("应返回 NOT_FOUND，实际 %v", err)
	}
}
