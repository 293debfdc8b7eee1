package notify

import (
	"errors"
	"sync"
)

// Recorder 测试用通知出口,记录所有调用
type Recorder struct {
	mu   sync.Mutex
	sent []Notification

	// FailNext 为真时下一次 Notify 返回错误,用于验证投递失败不回滚
	FailNext bool
}

// Notify 记录通知
func (r *Recorder) Notify(n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailNext {
		r.FailNext = false
		return errors.New("simulated delivery failure")
	}
	r.sent = append(r.sent, n)
	return nil
}

// Sent 返回已记录通知的副本
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}

// Last 返回最后一条通知,不存在时返回假
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return Notification{}, false
	}
	return r.sent[len(r.sent)-1], true
}
