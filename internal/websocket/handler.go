package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaWS "github.com/gorilla/websocket"
)

var upgrader = gorillaWS.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// 在生产环境中应该检查 Origin
		return true
	},
}

// Handler 合同事件流 WebSocket 处理器
// 调用方提供的用户 ID 被信任(认证机制不在本服务范围内)
func Handler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		contractID := c.Param("id")
		if contractID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing contract id"})
			return
		}

		userID := c.Query("user_id")
		if userID == "" {
			userID = c.GetHeader("X-User-ID")
		}
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing user id"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
			return
		}

		client := NewClient(uuid.New().String(), userID, contractID, hub, conn)

		hub.Register <- client

		go client.ReadPump()
		go client.WritePump()
	}
}
