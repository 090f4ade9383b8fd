// Package middleware はリクエスト検証・レート制限・パニック回復のGinミドルウェアを提供します。
// いずれも失敗時は envelope で1件のレスポンスを書き込み、後続のハンドラーを呼び出しません。
package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"studyflow_backend/internal/platform/http/envelope"
)

const bodyKey = "validatedBody"

var setupOnce sync.Once

// setupValidator はGin既定のvalidatorにJSONタグ名・Number型・integerルールを登録します。
func setupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return fld.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			n, ok := field.Interface().(Number)
			if !ok || !n.Set() {
				return nil
			}
			return n.raw
		}, Number{})
		_ = v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
			_, err := parseInteger(fl.Field().String())
			return err == nil
		})
	})
}

// Validate binds the JSON body into T and stores it for Body.
// A failed "required" rule answers 400 missing field; any other rule answers 400 invalid field.
func Validate[T any]() gin.HandlerFunc {
	setupValidator()
	return func(c *gin.Context) {
		var req T
		if err := c.ShouldBindJSON(&req); err != nil {
			if errors.Is(err, io.EOF) {
				// 空ボディは {} として扱い、必須項目の欠落を報告する
				err = binding.Validator.ValidateStruct(&req)
				if err == nil {
					c.Set(bodyKey, &req)
					c.Next()
					return
				}
			}
			respondBindError(c, err)
			return
		}
		c.Set(bodyKey, &req)
		c.Next()
	}
}

// Body returns the value bound by Validate[T]. It panics if Validate[T] did not run for this route.
func Body[T any](c *gin.Context) *T {
	return c.MustGet(bodyKey).(*T)
}

func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			envelope.MissingField(c, fe.Field())
		} else {
			envelope.InvalidField(c, fe.Field())
		}
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		envelope.InvalidField(c, typeErr.Field)
		return
	}

	envelope.BadRequest(c, envelope.MsgInvalidJSON)
}
