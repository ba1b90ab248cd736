package ez

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-inventory-ledger/internal/domain"
	resp "go-inventory-ledger/internal/transport/http/response"
)

// 轻量 Action 注册：绑定入参 → 调 handler → 错误统一映射状态码。
// 路由文件里只写业务闭包，绑定/错误处理不重复。

type Group struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) *Group { return &Group{g: g, log: l} }

type BindMode int

const (
	BindNone BindMode = iota
	BindJSON
	BindQuery
)

type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  BindMode
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](g *Group, a Action[I, O]) {
	g.g.Handle(a.Method, a.Path, func(c *gin.Context) {
		var in I
		switch a.Binder {
		case BindJSON:
			if err := c.ShouldBindJSON(&in); err != nil {
				resp.Error(c, domain.ErrInvalidInput)
				return
			}
		case BindQuery:
			if err := c.ShouldBindQuery(&in); err != nil {
				resp.Error(c, domain.ErrInvalidInput)
				return
			}
		}
		out, err := a.Handler(c, &in)
		if err != nil {
			if status, _ := resp.StatusOf(err); status == http.StatusInternalServerError {
				// 细节只进日志，不回给客户端
				g.log.Error("action failed",
					zap.String("method", a.Method),
					zap.String("path", a.Path),
					zap.Error(err),
				)
			}
			resp.Error(c, err)
			return
		}
		resp.OK(c, out)
	})
}
