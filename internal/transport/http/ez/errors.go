package ez

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/logger"
	"go-gin-jobboard/internal/transport/http/middleware"
	resp "go-gin-jobboard/internal/transport/http/response"
)

// AErr 传输层错误（上传、参数等），Code 即 http 状态码
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &AErr{Code: http.StatusBadRequest, Msg: msg} }

const (
	MsgValidation  = "Validation failed"
	MsgInvalidBody = "Invalid request body"
	MsgBodyTooBig  = "Request body too large"
)

var tagNameOnce sync.Once

// UseJSONFieldNames 校验错误里的字段名用 json/form tag
func UseJSONFieldNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form", "uri"} {
				name := strings.Split(f.Tag.Get(tag), ",")[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

func init() { UseJSONFieldNames() }

// WriteBindError 绑定/校验阶段的错误
func WriteBindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	var te *json.UnmarshalTypeError
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &mbe):
		resp.Fail(c, http.StatusRequestEntityTooLarge, MsgBodyTooBig)
	case errors.As(err, &ve):
		resp.Fail(c, http.StatusBadRequest, MsgValidation, fieldErrors(ve)...)
	case errors.As(err, &te):
		resp.Fail(c, http.StatusBadRequest, MsgValidation, resp.FieldError{
			Field:   te.Field,
			Message: fmt.Sprintf("%s must be of type %s", te.Field, te.Type.String()),
			Value:   echoValue(te.Field, te.Value),
		})
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		resp.Fail(c, http.StatusBadRequest, MsgInvalidBody)
	default:
		resp.Fail(c, http.StatusBadRequest, MsgInvalidBody)
	}
}

// WriteError handler 返回的错误
func WriteError(c *gin.Context, err error) {
	var ae *AErr
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &mbe):
		resp.Fail(c, http.StatusRequestEntityTooLarge, MsgBodyTooBig)
	case errors.As(err, &ae):
		if ae.Code >= http.StatusInternalServerError {
			logger.FromContext(c.Request.Context(), nil).Error("action failed", zap.Error(err))
		}
		resp.Fail(c, ae.Code, ae.Error())
	default:
		resp.Err(c, err)
	}
}

func fieldErrors(ve validator.ValidationErrors) []resp.FieldError {
	out := make([]resp.FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, resp.FieldError{Field: fe.Field(), Message: fieldMessage(fe), Value: echoValue(fe.Field(), fe.Value())})
	}
	return out
}

func echoValue(field string, v any) any {
	if middleware.Sensitive(field) {
		return nil
	}
	return v
}

func fieldMessage(fe validator.FieldError) string {
	f := fe.Field()
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "email":
		return f + " must be a valid email"
	case "url":
		return f + " must be a valid URL"
	case "datetime":
		return f + " must be a valid date (YYYY-MM-DD)"
	case "oneof":
		return f + " must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", f, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", f, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", f, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", f, fe.Param())
	default:
		return f + " is invalid"
	}
}
