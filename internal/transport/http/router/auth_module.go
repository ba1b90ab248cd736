package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-inventory-ledger/internal/domain"
	"go-inventory-ledger/internal/service"
	httpez "go-inventory-ledger/internal/transport/http/ez"
	mdw "go-inventory-ledger/internal/transport/http/middleware"
	resp "go-inventory-ledger/internal/transport/http/response"
)

type authModule struct {
	log *zap.Logger
	d   Deps
}

func newAuthModule(l *zap.Logger, d Deps) *authModule { return &authModule{log: l, d: d} }

func (m *authModule) Priority() int { return 10 } // 鉴权路由先挂

func (m *authModule) MountAPI(g *gin.RouterGroup) {
	ag := g.Group("/auth")

	// ---- 公共：注册 / 登录 ----
	ezPublic := httpez.New(ag, m.log)

	type signupIn struct {
		Name     string `json:"name"     binding:"required,max=64"`
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"     binding:"required"`
	}
	httpez.RegisterAction(ezPublic, httpez.Action[signupIn, resp.Msg]{
		Method: http.MethodPost,
		Path:   "/signup",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *signupIn) (resp.Msg, error) {
			if err := m.d.Auth.Signup(c.Request.Context(), in.Name, in.Email, in.Password, in.Role); err != nil {
				return resp.Msg{}, err
			}
			return resp.Msg{Message: "Signup request sent. Await admin approval."}, nil
		},
	})

	type loginIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	type loginOut struct {
		Token string `json:"token"`
	}
	httpez.RegisterAction(ezPublic, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			tok, err := m.d.Auth.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return loginOut{}, err
			}
			return loginOut{Token: tok}, nil
		},
	})

	// ---- 任意 active 用户 ----
	me := ag.Group("")
	me.Use(mdw.AuthJWT(m.log, m.d.JWT, m.d.Users))
	ezMe := httpez.New(me, m.log)

	httpez.RegisterAction(ezMe, httpez.Action[struct{}, *service.Profile]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.Profile, error) {
			actor, ok := mdw.ActorFrom(c)
			if !ok {
				return nil, domain.ErrUnauthenticated
			}
			return m.d.Auth.Profile(c.Request.Context(), actor.ID)
		},
	})

	// ---- Admin：审批流 ----
	admin := ag.Group("")
	admin.Use(mdw.AuthJWT(m.log, m.d.JWT, m.d.Users, domain.RoleAdmin))
	ezAdmin := httpez.New(admin, m.log)

	httpez.RegisterAction(ezAdmin, httpez.Action[struct{}, []service.UserRow]{
		Method: http.MethodGet,
		Path:   "/pending-users",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]service.UserRow, error) {
			return m.d.Admin.PendingUsers(c.Request.Context())
		},
	})

	type approveIn struct {
		UserID string `json:"userId" binding:"required"`
		Role   string `json:"role"` // 可选，带上则同时改派
	}
	httpez.RegisterAction(ezAdmin, httpez.Action[approveIn, resp.Msg]{
		Method: http.MethodPost,
		Path:   "/approve",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *approveIn) (resp.Msg, error) {
			if err := m.d.Admin.Approve(c.Request.Context(), in.UserID, in.Role); err != nil {
				return resp.Msg{}, err
			}
			return resp.Msg{Message: "User approved/role updated."}, nil
		},
	})

	httpez.RegisterAction(ezAdmin, httpez.Action[struct{}, []service.UserRow]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]service.UserRow, error) {
			return m.d.Admin.ListUsers(c.Request.Context())
		},
	})
}
