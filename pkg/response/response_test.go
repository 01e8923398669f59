package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/pkg/apperr"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 20},
		{-1, -5, 1, 20},
		{2, 50, 2, 50},
		{1, 500, 1, 100},
	}

	for _, c := range cases {
		page, limit := NormalizePage(c.page, c.limit)
		if page != c.wantPage || limit != c.wantLimit {
			t.Errorf("NormalizePage(%d, %d) = (%d, %d)，期望 (%d, %d)",
				c.page, c.limit, page, limit, c.wantPage, c.wantLimit)
		}
	}
}

func TestBuildMeta_TotalPages(t *testing.T) {
	meta := BuildMeta(45, 2, 20)
	if meta.TotalPages != 3 {
		t.Errorf("45 条每页 20 应为 3 页，实际 %d", meta.TotalPages)
	}
	if meta.Total != 45 || meta.Page != 2 || meta.Limit != 20 {
		t.Errorf("meta 字段不符: %+v", meta)
	}
}

func TestError_AppErrorStatusAndCode(t *testing.T) {
	c, w := newTestContext()

	Error(c, apperr.NotFound(apperr.CodeStoreNotFound, "門市不存在"))

	if w.Code != http.StatusNotFound {
		t.Errorf("状态码应为 404，实际 %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), apperr.CodeStoreNotFound) {
		t.Errorf("响应应含错误码，实际 %s", w.Body.String())
	}
}

func TestError_GormNotFoundFallback(t *testing.T) {
	c, w := newTestContext()

	Error(c, gorm.ErrRecordNotFound)

	if w.Code != http.StatusNotFound {
		t.Errorf("状态码应为 404，实际 %d", w.Code)
	}
}

func TestError_GormDuplicateFallback(t *testing.T) {
	c, w := newTestContext()

	Error(c, gorm.ErrDuplicatedKey)

	if w.Code != http.StatusConflict {
		t.Errorf("状态码应为 409，实际 %d", w.Code)
	}
}

func TestError_UnknownErrorHidesDetails(t *testing.T) {
	c, w := newTestContext()

	Error(c, errors.New("pq: connection refused at 10.0.0.5"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("状态码应为 500，实际 %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "10.0.0.5") {
		t.Error("非开发模式不应泄露内部错误细节")
	}
}

func TestError_InvalidReportCodesListsMissing(t *testing.T) {
	c, w := newTestContext()

	Error(c, apperr.InvalidReportCodes([]string{"R998", "R999"}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("状态码应为 400，实际 %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "R999") {
		t.Errorf("响应应列出无效代码，实际 %s", w.Body.String())
	}
}
