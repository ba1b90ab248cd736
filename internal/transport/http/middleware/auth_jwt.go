package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-inventory-ledger/internal/core/auth"
	"go-inventory-ledger/internal/domain"
	resp "go-inventory-ledger/internal/transport/http/response"
)

const ctxActor = "actor"

// AuthJWT 鉴权守卫：验签 → 回库取最新用户 → active 校验 → 角色白名单。
// roles 为空表示任意 active 用户可过。白名单比对用回库后的最新角色而不是
// token 里签发时的角色，管理员改派/降权下一次请求即生效，不用等 token 过期。
func AuthJWT(l *zap.Logger, j *auth.JWTer, users domain.UserRepository, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.AbortError(c, domain.ErrUnauthenticated)
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.AbortError(c, domain.ErrUnauthenticated)
			return
		}

		// token 可能先于停用/审批撤回签发，以库内状态为准
		u, err := users.FindByID(claims.UID)
		if err != nil {
			l.Error("auth guard user lookup failed",
				zap.String("path", c.FullPath()),
				zap.String("uid", claims.UID),
				zap.Error(err))
			resp.AbortError(c, err)
			return
		}
		if u == nil || u.Status != domain.StatusActive {
			resp.AbortError(c, domain.ErrUnauthenticated)
			return
		}

		if len(roles) > 0 && !contains(roles, u.Role) {
			resp.AbortError(c, domain.ErrForbidden)
			return
		}

		c.Set(ctxActor, domain.Actor{ID: u.ID, Role: u.Role})
		c.Next()
	}
}

// ActorFrom 取出守卫注入的调用者身份；没过守卫时 ok=false
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	v, exists := c.Get(ctxActor)
	if !exists {
		return domain.Actor{}, false
	}
	a, ok := v.(domain.Actor)
	return a, ok
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
