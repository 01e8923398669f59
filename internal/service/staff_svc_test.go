package service

import (
	"context"
	"testing"

	"github.com/colechengame/Nreporter/internal/api/dto"
	"github.com/colechengame/Nreporter/internal/model"
)

// ==================== 编号生成 ====================

func TestNextSequentialCode(t *testing.T) {
	cases := []struct {
		prefix  string
		current string
		want    string
	}{
		{"S", "", "S001"},
		{"S", "S001", "S002"},
		{"S", "S025", "S026"},
		{"S", "S099", "S100"},
		{"S", "S999", "S1000"},
		{"RT", "", "RT001"},
		{"RT", "RT006", "RT007"},
	}

	for _, c := range cases {
		if got := nextSequentialCode(c.prefix, c.current); got != c.want {
			t.Errorf("nextSequentialCode(%q, %q) = %q，期望 %q", c.prefix, c.current, got, c.want)
		}
	}
}

func TestStaffService_Create_GeneratesSequentialCodes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.staffSvc.Create(ctx, dto.StaffCreateReq{
		Name: "王小明", Nickname: "小明", Role: model.StaffRoleStoreManager,
	})
	if err != nil {
		t.Fatalf("建立人员失败: %v", err)
	}
	if first.StaffCode != "S001" {
		t.Errorf("第一个人员编号应为 S001，实际 %s", first.StaffCode)
	}

	second, err := env.staffSvc.Create(ctx, dto.StaffCreateReq{
		Name: "吳佳蓉", Nickname: "佳蓉", Role: model.StaffRoleStoreManager,
	})
	if err != nil {
		t.Fatalf("建立第二个人员失败: %v", err)
	}
	if second.StaffCode != "S002" {
		t.Errorf("第二个人员编号应为 S002，实际 %s", second.StaffCode)
	}
}

func TestStaffService_Create_ContinuesFromMax(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createStaff(t, "S025", "既有人员", "")

	staff, err := env.staffSvc.Create(ctx, dto.StaffCreateReq{
		Name: "新人", Role: model.StaffRoleStaff,
	})
	if err != nil {
		t.Fatalf("建立人员失败: %v", err)
	}
	if staff.StaffCode != "S026" {
		t.Errorf("编号应从最大值续编为 S026，实际 %s", staff.StaffCode)
	}
}

// ==================== CRUD ====================

func TestStaffService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	staff := env.createStaff(t, "S001", "王小明", "小明")

	updated, err := env.staffSvc.Update(ctx, staff.ID, dto.StaffUpdateReq{
		Nickname: "阿明",
		Role:     model.StaffRoleSupervisor,
	})
	if err != nil {
		t.Fatalf("更新人员失败: %v", err)
	}
	if updated.Nickname != "阿明" || updated.Role != model.StaffRoleSupervisor {
		t.Errorf("更新未生效: %+v", updated)
	}
	if updated.Name != "王小明" {
		t.Errorf("未传字段不应改动，实际姓名 %s", updated.Name)
	}
}

func TestStaffService_Delete_SoftDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	staff := env.createStaff(t, "S001", "王小明", "小明")
	if err := env.staffSvc.Delete(ctx, staff.ID); err != nil {
		t.Fatalf("停用人员失败: %v", err)
	}

	var current model.Staff
	if err := env.db.First(&current, staff.ID).Error; err != nil {
		t.Fatalf("软删除后记录应仍可查询: %v", err)
	}
	if current.IsActive {
		t.Error("停用后 isActive 应为 false")
	}
}

func TestStaffService_List_SearchByNickname(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createStaff(t, "S001", "王小明", "小明")
	env.createStaff(t, "S002", "吳佳蓉", "佳蓉")

	staffs, meta, err := env.staffSvc.List(ctx, dto.StaffListReq{Search: "佳蓉"})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if meta.Total != 1 || len(staffs) != 1 {
		t.Fatalf("应命中 1 人，实际 %d", len(staffs))
	}
	if staffs[0].Name != "吳佳蓉" {
		t.Errorf("应命中 吳佳蓉，实际 %s", staffs[0].Name)
	}
}
