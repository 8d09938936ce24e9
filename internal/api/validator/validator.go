// Package validator 注册请求绑定使用的自定义校验规则与中文错误文案。
package validator

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zhtranslations "github.com/go-playground/validator/v10/translations/zh"

	"github.com/w-isiah/shpsk/internal/model"
)

// 自定义校验标签
const (
	NotBlankTag     = "notblank"
	LocationNameTag = "location_name"
)

var (
	translator ut.Translator
	once       sync.Once
	initErr    error
)

// Register 将自定义规则注册到 gin 的默认校验引擎，可重复调用
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			initErr = errors.New("gin 校验引擎不是 validator/v10")
			return
		}
		initErr = register(v)
	})
	return initErr
}

func register(v *validator.Validate) error {
	zhLocale := zh.New()
	uni := ut.New(zhLocale, zhLocale)
	translator, _ = uni.GetTranslator("zh")
	if err := zhtranslations.RegisterDefaultTranslations(v, translator); err != nil {
		return err
	}

	// 错误中使用 json 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	if err := v.RegisterValidation(NotBlankTag, notBlank); err != nil {
		return err
	}
	if err := v.RegisterValidation(LocationNameTag, locationName); err != nil {
		return err
	}

	for tag, text := range map[string]string{
		NotBlankTag:     "{0}不能为空",
		LocationNameTag: "{0}只能包含字母、数字、空格、短横线或下划线",
	} {
		text := text
		err := v.RegisterTranslation(tag, translator,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(fe.Tag(), fe.Field())
				return msg
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

func locationName(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	if strings.TrimSpace(s) == "" {
		return true // 空值交给 notblank / required 判断
	}
	return model.ValidLocationName(strings.TrimSpace(s))
}

// Details 将绑定错误整理为 "字段: 原因" 形式，字段按字母序排列
// 非校验错误（如 JSON 格式错误）返回通用提示
func Details(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "请求体格式错误"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Error()
		if translator != nil {
			msg = fe.Translate(translator)
		}
		msgs = append(msgs, fe.Field()+": "+msg)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}
