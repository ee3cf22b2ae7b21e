package ez

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-jobboard/internal/domain"
	"go-gin-jobboard/internal/transport/http/middleware"
	resp "go-gin-jobboard/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindForm  Binder = "form"  // 按 Content-Type：JSON 或 multipart
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// EZ 路由分组 + 鉴权中间件
type EZ struct {
	g    *gin.RouterGroup
	auth gin.HandlerFunc
}

// New auth 为 nil 时 Action.Auth 不再挂鉴权（分组已统一校验）
func New(g *gin.RouterGroup, auth gin.HandlerFunc) EZ { return EZ{g: g, auth: auth} }

// Group 子分组，沿用同一鉴权
func (e EZ) Group(path string, mws ...gin.HandlerFunc) EZ {
	return EZ{g: e.g.Group(path, mws...), auth: e.auth}
}

// Paged 列表出参实现它，响应里带 pagination
type Paged interface {
	PageItems() any
	PageInfo() *domain.Pagination
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method      string
	Path        string
	Binder      Binder
	Status      int    // 默认 200
	Message     string // 成功提示
	Auth        bool   // 是否要求登录
	Role        string // 限定角色（需 Auth）
	Middlewares []gin.HandlerFunc
	Handler     func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}

	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		case BindForm:
			bindErr = c.ShouldBind(&in)
		}
		if bindErr != nil {
			WriteBindError(c, bindErr)
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			WriteError(c, err)
			return
		}
		if p, ok := any(out).(Paged); ok {
			resp.Paged(c, status, a.Message, p.PageItems(), p.PageInfo())
			return
		}
		resp.OK(c, status, a.Message, out)
	}

	chain := make([]gin.HandlerFunc, 0, len(a.Middlewares)+3)
	if a.Auth && e.auth != nil {
		chain = append(chain, e.auth)
		if a.Role != "" {
			chain = append(chain, middleware.AuthorizeRole(a.Role))
		}
	}
	chain = append(chain, a.Middlewares...)
	chain = append(chain, h)

	method := strings.ToUpper(a.Method)
	if method == "" {
		method = http.MethodPost
	}
	e.g.Handle(method, a.Path, chain...)
}

// ParamUint 路径上的正整数 id
func ParamUint(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, BadRequest("Invalid " + name)
	}
	return uint(v), nil
}
