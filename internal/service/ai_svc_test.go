package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/colechengame/Nreporter/internal/model"
	"github.com/colechengame/Nreporter/pkg/apperr"
)

// ==================== 测试辅助 ====================

// fakeGemini 起一个假模型端点，按固定文本应答
func fakeGemini(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

// geminiTextResponse 包装成 generateContent 的应答结构
func geminiTextResponse(text string) string {
	body := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]interface{}{{"text": text}},
			}},
		},
	}
	raw, _ := json.Marshal(body)
	return string(raw)
}

func newAITestService(env *testEnv, baseURL string) *AIService {
	return NewAIService(&AIConfig{
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
		BaseURL: baseURL,
	}, env.stores, env.staffs, env.aiLogs, env.storeSvc)
}

func countLogs(t *testing.T, env *testEnv) int64 {
	t.Helper()
	var count int64
	if err := env.db.Model(&model.AICommandLog{}).Count(&count).Error; err != nil {
		t.Fatalf("统计指令日志失败: %v", err)
	}
	return count
}

func lastLog(t *testing.T, env *testEnv) *model.AICommandLog {
	t.Helper()
	var entry model.AICommandLog
	if err := env.db.Order("id DESC").First(&entry).Error; err != nil {
		t.Fatalf("查询指令日志失败: %v", err)
	}
	return &entry
}

// ==================== 指令执行 ====================

func TestAIService_ExecuteCommand_AssignPrimary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store := env.createStore(t, "BZ_MED", "板橋光澤醫美")
	env.createStore(t, "BZ_JB", "板橋光澤健保")
	staff := env.createStaff(t, "S001", "吳佳蓉", "佳蓉")

	srv := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		// 模型带着代码围栏回 JSON，解析前要剥掉
		action := "```json\n{\"type\":\"ASSIGN_PRIMARY\",\"storeName\":\"板橋光澤醫美\",\"managerName\":\"吳佳蓉\"}\n```"
		fmt.Fprint(w, geminiTextResponse(action))
	})
	svc := newAITestService(env, srv.URL)

	resp, msg, err := svc.ExecuteCommand(ctx, "把板橋光澤醫美的主要店長改成吳佳蓉")
	if err != nil {
		t.Fatalf("指令执行失败: %v", err)
	}
	if resp.Action.Type != "ASSIGN_PRIMARY" {
		t.Errorf("动作类型应为 ASSIGN_PRIMARY，实际 %s", resp.Action.Type)
	}
	if !strings.Contains(msg, "板橋光澤醫美") || !strings.Contains(msg, "吳佳蓉") {
		t.Errorf("成功消息应包含门市与人员，实际 %q", msg)
	}

	// 图变更确实落库
	var primaries []model.StoreManager
	env.db.Where("store_id = ? AND is_primary = ? AND is_active = ?", store.ID, true, true).Find(&primaries)
	if len(primaries) != 1 || primaries[0].StaffID != staff.ID {
		t.Fatalf("应恰有一条指向吳佳蓉的主要店长记录，实际 %+v", primaries)
	}

	// 审计：恰好一条成功日志，带解析动作与耗时
	if got := countLogs(t, env); got != 1 {
		t.Fatalf("应写入 1 条指令日志，实际 %d", got)
	}
	entry := lastLog(t, env)
	if !entry.IsSuccess {
		t.Error("日志应标记成功")
	}
	if !strings.Contains(entry.ParsedAction, "ASSIGN_PRIMARY") {
		t.Errorf("日志应含解析动作，实际 %q", entry.ParsedAction)
	}
	if entry.InputText != "把板橋光澤醫美的主要店長改成吳佳蓉" {
		t.Errorf("日志应保存原始指令，实际 %q", entry.InputText)
	}
}

func TestAIService_ExecuteCommand_UpdateStoreEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store := env.createStore(t, "BZ_MED", "板橋光澤醫美")

	srv := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		action := `{"type":"UPDATE_STORE_EMAIL","storeName":"板橋光澤醫美","newEmail":"new.manager@example.com"}`
		fmt.Fprint(w, geminiTextResponse(action))
	})
	svc := newAITestService(env, srv.URL)

	_, msg, err := svc.ExecuteCommand(ctx, "把板橋光澤醫美的信箱改成 new.manager@example.com")
	if err != nil {
		t.Fatalf("指令执行失败: %v", err)
	}
	if !strings.Contains(msg, "new.manager@example.com") {
		t.Errorf("成功消息应包含新信箱，实际 %q", msg)
	}

	var current model.Store
	env.db.First(&current, store.ID)
	if current.RoleEmail != "new.manager@example.com" {
		t.Errorf("门市信箱应已更新，实际 %s", current.RoleEmail)
	}
}

func TestAIService_ExecuteCommand_CreateStoreDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	srv := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		// 模型没给代码时落到占位代码
		action := `{"type":"CREATE_STORE","name":"內湖光澤診所"}`
		fmt.Fprint(w, geminiTextResponse(action))
	})
	svc := newAITestService(env, srv.URL)

	_, msg, err := svc.ExecuteCommand(ctx, "幫我建立內湖光澤診所")
	if err != nil {
		t.Fatalf("指令执行失败: %v", err)
	}
	if !strings.Contains(msg, "內湖光澤診所") {
		t.Errorf("成功消息应包含门市名，实际 %q", msg)
	}

	var store model.Store
	if err := env.db.Where("name = ?", "內湖光澤診所").First(&store).Error; err != nil {
		t.Fatalf("新门市应已建立: %v", err)
	}
	if store.Code != "NEW" {
		t.Errorf("代码应默认为 NEW，实际 %s", store.Code)
	}
	if store.Type != model.StoreTypeOther {
		t.Errorf("类型应默认为 OTHER，实际 %s", store.Type)
	}
	if store.RoleEmail != "new.manager@company.com" {
		t.Errorf("信箱应由代码推导，实际 %s", store.RoleEmail)
	}
}

// ==================== 失败路径与审计 ====================

func TestAIService_ExecuteCommand_NotConfigured(t *testing.T) {
	env := newTestEnv(t)

	svc := NewAIService(&AIConfig{}, env.stores, env.staffs, env.aiLogs, env.storeSvc)

	_, _, err := svc.ExecuteCommand(context.Background(), "把板橋光澤醫美的主要店長改成吳佳蓉")
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeAINotConfigured {
		t.Fatalf("应返回 AI_NOT_CONFIGURED，实际 %v", err)
	}

	// 失败同样写一条日志
	if got := countLogs(t, env); got != 1 {
		t.Fatalf("应写入 1 条指令日志，实际 %d", got)
	}
	entry := lastLog(t, env)
	if entry.IsSuccess {
		t.Error("日志应标记失败")
	}
	if entry.ErrorMessage == "" {
		t.Error("失败日志应含错误信息")
	}
}

func TestAIService_ExecuteCommand_RequestFailed(t *testing.T) {
	env := newTestEnv(t)

	srv := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	svc := newAITestService(env, srv.URL)

	_, _, err := svc.ExecuteCommand(context.Background(), "把板橋光澤醫美的主要店長改成吳佳蓉")
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeAIRequestFailed {
		t.Fatalf("应返回 AI_REQUEST_FAILED，实际 %v", err)
	}

	entry := lastLog(t, env)
	if entry.IsSuccess || entry.ParsedAction != "" {
		t.Errorf("请求失败时日志不应带解析动作: %+v", entry)
	}
}

func TestAIService_ExecuteCommand_ParseFailed(t *testing.T) {
	env := newTestEnv(t)

	srv := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiTextResponse("抱歉，我不太明白你的意思。"))
	})
	svc := newAITestService(env, srv.URL)

	_, _, err := svc.ExecuteCommand(context.Background(), "随便说点什么")
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeAIParseFailed {
		t.Fatalf("应返回 AI_PARSE_FAILED，实际 %v", err)
	}

	entry := lastLog(t, env)
	if entry.ParsedAction != "" {
		t.Errorf("解析失败时日志不应带解析动作，实际 %q", entry.ParsedAction)
	}
}

func TestAIService_ExecuteCommand_UnknownAction(t *testing.T) {
	env := newTestEnv(t)

	srv := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		action := `{"type":"UNKNOWN","reason":"无法判断意图"}`
		fmt.Fprint(w, geminiTextResponse(action))
	})
	svc := newAITestService(env, srv.URL)

	_, _, err := svc.ExecuteCommand(context.Background(), "今天天气怎么样")
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeUnknownAction {
		t.Fatalf("应返回 UNKNOWN_ACTION，实际 %v", err)
	}

	// 解析成功但分发失败：日志仍带解析动作
	entry := lastLog(t, env)
	if entry.IsSuccess {
		t.Error("日志应标记失败")
	}
	if !strings.Contains(entry.ParsedAction, "UNKNOWN") {
		t.Errorf("日志应含解析动作，实际 %q", entry.ParsedAction)
	}
}

func TestAIService_ExecuteCommand_AddGranularNotDispatched(t *testing.T) {
	env := newTestEnv(t)

	env.createStore(t, "BZ_MED", "板橋光澤醫美")

	srv := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		action := `{"type":"ADD_GRANULAR","storeName":"板橋光澤醫美","userName":"王小明","role":"護理長","scopes":["R001"]}`
		fmt.Fprint(w, geminiTextResponse(action))
	})
	svc := newAITestService(env, srv.URL)

	// ADD_GRANULAR 在提示词里但不在分发表里，按无法辨识处理
	_, _, err := svc.ExecuteCommand(context.Background(), "让王小明可以看板橋光澤醫美的 R001")
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeUnknownAction {
		t.Fatalf("应返回 UNKNOWN_ACTION，实际 %v", err)
	}
}

func TestAIService_ExecuteCommand_StoreNotMatched(t *testing.T) {
	env := newTestEnv(t)

	env.createStore(t, "BZ_MED", "板橋光澤醫美")
	env.createStaff(t, "S001", "吳佳蓉", "佳蓉")

	srv := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		action := `{"type":"ASSIGN_PRIMARY","storeName":"高雄不存在的店","managerName":"吳佳蓉"}`
		fmt.Fprint(w, geminiTextResponse(action))
	})
	svc := newAITestService(env, srv.URL)

	_, _, err := svc.ExecuteCommand(context.Background(), "把高雄不存在的店的主要店長改成吳佳蓉")
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeStoreNotFound {
		t.Fatalf("应返回 STORE_NOT_FOUND，实际 %v", err)
	}

	// 分发失败不应留下任何图变更
	var count int64
	env.db.Model(&model.StoreManager{}).Count(&count)
	if count != 0 {
		t.Errorf("失败指令不应产生店长记录，实际 %d 条", count)
	}
}

func TestAIService_ExecuteCommand_OneLogPerInvocation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createStore(t, "BZ_MED", "板橋光澤醫美")
	env.createStaff(t, "S001", "吳佳蓉", "佳蓉")

	srv := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		action := `{"type":"ASSIGN_PRIMARY","storeName":"板橋光澤醫美","managerName":"吳佳蓉"}`
		fmt.Fprint(w, geminiTextResponse(action))
	})
	svc := newAITestService(env, srv.URL)

	for i := 0; i < 3; i++ {
		if _, _, err := svc.ExecuteCommand(ctx, "把板橋光澤醫美的主要店長改成吳佳蓉"); err != nil {
			t.Fatalf("第 %d 次指令失败: %v", i+1, err)
		}
	}

	if got := countLogs(t, env); got != 3 {
		t.Errorf("三次调用应写三条日志，实际 %d", got)
	}
}

// ==================== 提示词 ====================

func TestBuildCommandPrompt_ContainsStoresAndCommand(t *testing.T) {
	stores := []model.Store{
		{Name: "板橋光澤醫美"},
		{Name: "忠孝光澤"},
	}

	prompt := buildCommandPrompt(stores, "把板橋光澤醫美的主要店長改成吳佳蓉")
	if !strings.Contains(prompt, "板橋光澤醫美, 忠孝光澤") {
		t.Error("提示词应包含门市名单")
	}
	if !strings.Contains(prompt, "把板橋光澤醫美的主要店長改成吳佳蓉") {
		t.Error("提示词应包含原始指令")
	}
	if !strings.Contains(prompt, "ASSIGN_PRIMARY") || !strings.Contains(prompt, "UNKNOWN") {
		t.Error("提示词应列出动作类型与逃生出口")
	}
}
