package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	var resp Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestOK_WithMessages(t *testing.T) {
	w, resp := record(func(c *gin.Context) {
		OK(c, gin.H{"id": 1}, Warning("1 个子地点已移到顶级"), Success("地点已删除"))
	})

	if w.Code != http.StatusOK || resp.Code != 0 {
		t.Fatalf("期望 200/0，实际=%d/%d", w.Code, resp.Code)
	}
	if len(resp.Messages) != 2 {
		t.Fatalf("期望2条提示，实际=%d", len(resp.Messages))
	}
	if resp.Messages[0].Level != LevelWarning || resp.Messages[1].Level != LevelSuccess {
		t.Errorf("提示顺序或级别不符: %+v", resp.Messages)
	}
}

func TestOK_NoMessagesOmitted(t *testing.T) {
	w, _ := record(func(c *gin.Context) { OK(c, nil) })
	if strings.Contains(w.Body.String(), "messages") {
		t.Errorf("无提示时不应输出 messages 字段，实际=%s", w.Body.String())
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(c *gin.Context)
		status int
		code   int
	}{
		{"BadRequest", func(c *gin.Context) { BadRequest(c, 10001, "参数校验失败") }, http.StatusBadRequest, 10001},
		{"Conflict", func(c *gin.Context) { Conflict(c, 16003, "地点名称已存在") }, http.StatusConflict, 16003},
		{"NotFound", func(c *gin.Context) { NotFound(c, 16001, "地点不存在") }, http.StatusNotFound, 16001},
		{"InternalError", InternalError, http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := record(tt.fn)
			if w.Code != tt.status || resp.Code != tt.code {
				t.Fatalf("期望 %d/%d，实际=%d/%d", tt.status, tt.code, w.Code, resp.Code)
			}
			if len(resp.Messages) != 1 {
				t.Fatalf("期望1条提示，实际=%d", len(resp.Messages))
			}
			if resp.Messages[0].Level != LevelDanger {
				t.Errorf("期望 danger 级别，实际=%s", resp.Messages[0].Level)
			}
			if resp.Messages[0].Text != resp.Message {
				t.Errorf("提示文本应与 message 一致: %q vs %q", resp.Messages[0].Text, resp.Message)
			}
		})
	}
}

func TestErrorWithData(t *testing.T) {
	w, resp := record(func(c *gin.Context) {
		ErrorWithData(c, http.StatusInternalServerError, 16000, "加载地点列表失败", gin.H{"list": []int{}})
	})
	if w.Code != http.StatusInternalServerError || resp.Code != 16000 {
		t.Fatalf("期望 500/16000，实际=%d/%d", w.Code, resp.Code)
	}
	if !strings.Contains(w.Body.String(), `"list":[]`) {
		t.Errorf("应返回空列表，实际=%s", w.Body.String())
	}
}

func TestErrorWithDetails(t *testing.T) {
	_, resp := record(func(c *gin.Context) {
		ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", "name: 格式无效")
	})
	if resp.Details != "name: 格式无效" {
		t.Errorf("期望 details=name: 格式无效，实际=%q", resp.Details)
	}
}
