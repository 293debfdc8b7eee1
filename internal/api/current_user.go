package api

import (
	"net/http"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/directory"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/workflow"
	"github.com/gin-gonic/gin"
)

// actorKey 上下文中当前操作者的键
const actorKey = "current_actor"

// CurrentUserMiddleware 当前用户中间件
// 从 X-User-ID 头解析操作者并注入上下文。
// 调用方身份被信任,认证由外层网关负责,不在本服务范围内
func CurrentUserMiddleware(dir directory.UserDirectory) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			Error(c, http.StatusUnauthorized, "missing user", "X-User-ID header is required")
			c.Abort()
			return
		}

		user, err := dir.Resolve(userID)
		if err != nil {
			if workflow.IsNotFound(err) {
				Error(c, http.StatusUnauthorized, "unknown user", err.Error())
			} else {
				Error(c, http.StatusInternalServerError, "failed to resolve user", err.Error())
			}
			c.Abort()
			return
		}

		c.Set(actorKey, workflow.Actor{
			ID:   user.ID,
			Name: user.Name,
			Role: workflow.Role(user.Role),
		})
		c.Next()
	}
}

// CurrentActor 从上下文取当前操作者
func CurrentActor(c *gin.Context) workflow.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(workflow.Actor); ok {
			return actor
		}
	}
	return workflow.Actor{}
}
