package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/internal/api/dto"
	"github.com/colechengame/Nreporter/internal/model"
	"github.com/colechengame/Nreporter/internal/repository"
	"github.com/colechengame/Nreporter/pkg/apperr"
	"github.com/colechengame/Nreporter/pkg/logger"
)

// ==================== 配置 ====================

// AIConfig Gemini 配置
// BaseURL 可改指向测试桩，留空时走官方端点
type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

const (
	defaultGeminiModel   = "gemini-2.5-flash"
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiTimeout = 60 * time.Second
)

// ==================== 服务 ====================

// AIService 自然语言指令解释器
// 流程固定四步：组上下文、调模型、解析 JSON、分发动作；
// 不论成败每次调用只写一条指令日志，日志写失败不影响返回
type AIService struct {
	cfg      *AIConfig
	stores   repository.StoreRepository
	staffs   repository.StaffRepository
	aiLogs   repository.AICommandLogRepository
	storeSvc *StoreService
	client   *http.Client
}

// NewAIService 创建 AI 指令服务
func NewAIService(cfg *AIConfig, stores repository.StoreRepository, staffs repository.StaffRepository, aiLogs repository.AICommandLogRepository, storeSvc *StoreService) *AIService {
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGeminiBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGeminiTimeout
	}

	return &AIService{
		cfg:      cfg,
		stores:   stores,
		staffs:   staffs,
		aiLogs:   aiLogs,
		storeSvc: storeSvc,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// ==================== 指令执行 ====================

// ExecuteCommand 执行一条自然语言指令
// 返回解析出的动作、执行结果与面向用户的成功消息
func (s *AIService) ExecuteCommand(ctx context.Context, command string) (*dto.AICommandResp, string, error) {
	start := time.Now()
	resp, msg, action, err := s.run(ctx, command)
	s.writeLog(ctx, command, action, time.Since(start), err)
	return resp, msg, err
}

func (s *AIService) run(ctx context.Context, command string) (*dto.AICommandResp, string, *dto.AIAction, error) {
	if s.cfg.APIKey == "" {
		return nil, "", nil, apperr.AINotConfigured()
	}

	// 上下文快照：一次指令只查一次，匹配结果可复现
	storeSnapshot, err := s.stores.ListActive(ctx)
	if err != nil {
		return nil, "", nil, err
	}

	rawText, err := s.callGemini(ctx, buildCommandPrompt(storeSnapshot, command))
	if err != nil {
		return nil, "", nil, err
	}

	action, err := parseAction(rawText)
	if err != nil {
		return nil, "", nil, err
	}

	result, msg, err := s.dispatch(ctx, storeSnapshot, action)
	if err != nil {
		return nil, "", action, err
	}
	return &dto.AICommandResp{Action: action, Result: result}, msg, action, nil
}

// buildCommandPrompt 组装固定指令提示词，门市名单作为匹配依据
func buildCommandPrompt(stores []model.Store, command string) string {
	names := make([]string, 0, len(stores))
	for _, store := range stores {
		names = append(names, store.Name)
	}

	return fmt.Sprintf(`Current Stores: %s
User Command: %s

You are an AI assistant for a permission system. Parse the user's natural language command into a JSON action.
Output JSON format ONLY. No markdown, no explanation.

Action Types:
1. ASSIGN_PRIMARY: { "type": "ASSIGN_PRIMARY", "storeName": "Target Store Name", "managerName": "Name" }
2. ADD_GRANULAR: { "type": "ADD_GRANULAR", "storeName": "Target Store Name", "userName": "Name", "role": "Title", "scopes": ["R001", "R002"] }
3. CREATE_STORE: { "type": "CREATE_STORE", "name": "Store Name", "code": "CODE" }
4. UPDATE_STORE_EMAIL: { "type": "UPDATE_STORE_EMAIL", "storeName": "Target Store Name", "newEmail": "email@address" }

If store name is fuzzy, try to match closest from Current Stores list.
If unsure about the action type, return: { "type": "UNKNOWN", "reason": "explanation" }`,
		strings.Join(names, ", "), command)
}

// callGemini 单次调用 generateContent，返回首个候选的文本
func (s *AIService) callGemini(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(s.cfg.BaseURL, "/"), s.cfg.Model, s.cfg.APIKey)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]interface{}{{"text": prompt}}},
		},
	}

	bodyBytes, _ := json.Marshal(reqBody)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", apperr.AIRequestFailed(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", apperr.AIRequestFailed(err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", apperr.AIRequestFailed(fmt.Errorf("gemini api [%d]: %s", resp.StatusCode, string(respBody)))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return "", apperr.AIParseFailed(err)
	}

	for _, candidate := range geminiResp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", apperr.AIParseFailed(errors.New("响应中没有文本"))
}

// parseAction 剥掉代码围栏后解析成封闭动作变体
func parseAction(rawText string) (*dto.AIAction, error) {
	jsonStr := strings.ReplaceAll(rawText, "```json", "")
	jsonStr = strings.ReplaceAll(jsonStr, "```", "")
	jsonStr = strings.TrimSpace(jsonStr)

	var action dto.AIAction
	if err := json.Unmarshal([]byte(jsonStr), &action); err != nil {
		return nil, apperr.AIParseFailed(err)
	}
	return &action, nil
}

// dispatch 按动作类型分发
// 图变更全部交给门市服务执行，解释器自身不跨实体持有事务
func (s *AIService) dispatch(ctx context.Context, storeSnapshot []model.Store, action *dto.AIAction) (interface{}, string, error) {
	switch action.Type {
	case dto.ActionAssignPrimary:
		store, err := MatchStore(storeSnapshot, action.StoreName)
		if err != nil {
			return nil, "", err
		}
		staffSnapshot, err := s.staffs.ListActive(ctx)
		if err != nil {
			return nil, "", err
		}
		staff, err := MatchStaff(staffSnapshot, action.ManagerName)
		if err != nil {
			return nil, "", err
		}
		if _, err := s.storeSvc.AssignManager(ctx, store.ID, staff.ID, true); err != nil {
			return nil, "", err
		}
		msg := fmt.Sprintf("已成功將 %s 的主要店長變更為 %s", store.Name, action.ManagerName)
		return map[string]string{"store": store.Name, "manager": action.ManagerName}, msg, nil

	case dto.ActionUpdateStoreEmail:
		store, err := MatchStore(storeSnapshot, action.StoreName)
		if err != nil {
			return nil, "", err
		}
		if err := s.stores.UpdateFields(ctx, store.ID, map[string]interface{}{"role_email": action.NewEmail}); err != nil {
			return nil, "", err
		}
		msg := fmt.Sprintf("已更新 %s 的 Role Email 為 %s", store.Name, action.NewEmail)
		return map[string]string{"store": store.Name, "email": action.NewEmail}, msg, nil

	case dto.ActionCreateStore:
		code := action.Code
		if code == "" {
			code = "NEW"
		}
		store := &model.Store{
			Code:      code,
			Name:      action.Name,
			Type:      model.StoreTypeOther,
			RoleEmail: fmt.Sprintf("%s.manager@company.com", strings.ToLower(code)),
			IsActive:  true,
		}
		if err := s.stores.Create(ctx, store); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, "", apperr.Conflict(apperr.CodeStoreCodeExists, "門市代碼已存在")
			}
			return nil, "", err
		}
		msg := fmt.Sprintf("已建立新門市：%s", action.Name)
		return store, msg, nil

	default:
		// ADD_GRANULAR 在提示词里但尚未接上图变更，与 UNKNOWN 一样拒绝
		return nil, "", apperr.UnknownAction()
	}
}

// ==================== 指令日志 ====================

// writeLog 每次调用写一条审计日志，失败只告警不影响主流程
func (s *AIService) writeLog(ctx context.Context, command string, action *dto.AIAction, elapsed time.Duration, cmdErr error) {
	entry := &model.AICommandLog{
		InputText:     command,
		IsSuccess:     cmdErr == nil,
		ExecutionTime: elapsed.Milliseconds(),
	}
	if action != nil {
		if raw, err := json.Marshal(action); err == nil {
			entry.ParsedAction = string(raw)
		}
	}
	if cmdErr != nil {
		entry.ErrorMessage = cmdErr.Error()
	}

	if err := s.aiLogs.Create(ctx, entry); err != nil {
		logger.L().Warn("AI 指令日誌寫入失敗", zap.Error(err))
	}
}

// ListLogs 分页查询指令日志，按时间倒序
func (s *AIService) ListLogs(ctx context.Context, page, limit int) ([]model.AICommandLog, int64, error) {
	return s.aiLogs.List(ctx, page, limit)
}
