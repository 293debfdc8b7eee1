// Package notify 定义工作流引擎的通知出口
// 引擎只保证在正确的时机以正确的内容调用 Sink;投递方式由实现决定,
// 投递失败不回滚触发它的状态变更
package notify

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Notification 一次通知的内容
type Notification struct {
	ContractID string    `json:"contract_id"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
}

// Sink 通知出口
// 从引擎视角为 fire-and-forget: 引擎不等待投递确认
type Sink interface {
	Notify(n Notification) error
}

// LogSink 模拟投递: 将通知以结构化日志形式记录
// 真实邮件传输不在本服务范围内
type LogSink struct {
	Logger *logrus.Logger
	Sender string
}

// NewLogSink 创建日志通知出口
func NewLogSink(logger *logrus.Logger, sender string) *LogSink {
	return &LogSink{Logger: logger, Sender: sender}
}

// Notify 记录一条模拟邮件
func (s *LogSink) Notify(n Notification) error {
	s.Logger.WithFields(logrus.Fields{
		"contract_id": n.ContractID,
		"sender":      s.Sender,
		"recipient":   n.Recipient,
		"subject":     n.Subject,
	}).Info("simulated email dispatched")
	return nil
}
