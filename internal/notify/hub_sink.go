package notify

import (
	"encoding/json"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/websocket"
)

// HubSink 在转发给下游出口的同时,把通知广播给订阅该合同的 WebSocket 客户端
// 浏览器端的 "邮件已发送" 提示即来自这里
type HubSink struct {
	hub  *websocket.Hub
	next Sink
}

// NewHubSink 创建带广播的通知出口
func NewHubSink(hub *websocket.Hub, next Sink) *HubSink {
	return &HubSink{hub: hub, next: next}
}

// hubEvent 广播到前端的事件结构
type hubEvent struct {
	Type         string       `json:"type"`
	Notification Notification `json:"notification"`
}

// Notify 广播事件并转发给下游出口
func (s *HubSink) Notify(n Notification) error {
	if s.hub != nil {
		data, err := json.Marshal(hubEvent{Type: "notification", Notification: n})
		if err == nil {
			s.hub.BroadcastToContract(n.ContractID, data)
		}
	}

	if s.next != nil {
		return s.next.Notify(n)
	}
	return nil
}
