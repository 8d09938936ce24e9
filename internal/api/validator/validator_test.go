package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"

	"github.com/w-isiah/shpsk/internal/dto"
)

func mustRegister(t *testing.T) {
	t.Helper()
	if err := Register(); err != nil {
		t.Fatalf("Register 失败: %v", err)
	}
}

func TestRegister_Idempotent(t *testing.T) {
	mustRegister(t)
	mustRegister(t)
}

func TestLocationNameTag(t *testing.T) {
	mustRegister(t)

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"字母数字", "Lab 1", true},
		{"短横线下划线", "north-wing_2", true},
		{"空名称", "", true},
		{"非法字符", "Lab#1", false},
		{"中文", "实验室", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&dto.CreateLocationRequest{Name: tt.input, Type: "Room"})
			if tt.valid && err != nil {
				t.Errorf("期望校验通过，实际: %v", err)
			}
			if !tt.valid && err == nil {
				t.Errorf("期望 %q 校验失败", tt.input)
			}
		})
	}
}

func TestNotBlankTag(t *testing.T) {
	mustRegister(t)

	err := binding.Validator.ValidateStruct(&dto.UpdateLocationRequest{Name: "   ", Type: "Room"})
	if err == nil {
		t.Fatal("纯空白名称应校验失败")
	}
	if !strings.Contains(Details(err), "name: ") {
		t.Errorf("错误详情应指向 name 字段，实际=%s", Details(err))
	}

	if err := binding.Validator.ValidateStruct(&dto.UpdateLocationRequest{Name: "Annex", Type: "Room"}); err != nil {
		t.Errorf("期望校验通过，实际: %v", err)
	}
}

func TestDetails(t *testing.T) {
	mustRegister(t)

	err := binding.Validator.ValidateStruct(&dto.UpdateLocationRequest{Name: "", Type: ""})
	if err == nil {
		t.Fatal("名称与类型均为空应校验失败")
	}

	details := Details(err)
	parts := strings.Split(details, "; ")
	if len(parts) != 2 {
		t.Fatalf("期望2条错误详情，实际=%q", details)
	}
	if !strings.HasPrefix(parts[0], "name: ") || !strings.HasPrefix(parts[1], "type: ") {
		t.Errorf("错误详情应按字段名排序，实际=%q", details)
	}
	if !strings.Contains(parts[0], "不能为空") {
		t.Errorf("期望中文提示“不能为空”，实际=%q", parts[0])
	}
}

func TestDetails_NonValidationError(t *testing.T) {
	if got := Details(errors.New("unexpected EOF")); got != "请求体格式错误" {
		t.Errorf("期望“请求体格式错误”，实际=%q", got)
	}
}
