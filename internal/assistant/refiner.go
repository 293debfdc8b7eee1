// Package assistant 封装文本润色协作者
// 对工作流而言是无副作用的黑盒: 建议永远不会自动写入合同,
// 调用不产生审计条目,用户必须显式接受后结果才会进入记录
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Kind 润色文本的种类
type Kind string

const (
	KindScope      Kind = "scope"
	KindBackground Kind = "background"
)

// IsValidKind 判断种类是否合法
func IsValidKind(k Kind) bool {
	return k == KindScope || k == KindBackground
}

// TextRefiner 文本润色接口
type TextRefiner interface {
	Refine(ctx context.Context, draft string, kind Kind) (string, error)
}

// EchoRefiner 本地实现: 仅做空白归一,不改写内容
// 未配置外部润色服务时使用
type EchoRefiner struct{}

// Refine 归一化空白后原样返回
func (EchoRefiner) Refine(_ context.Context, draft string, _ Kind) (string, error) {
	lines := strings.Split(draft, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.Join(strings.Fields(line), " "))
	}
	return strings.TrimSpace(strings.Join(out, "\n")), nil
}

// HTTPRefiner 调用外部润色服务的实现
type HTTPRefiner struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPRefiner 创建外部润色客户端
func NewHTTPRefiner(endpoint string, timeout time.Duration) *HTTPRefiner {
	return &HTTPRefiner{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
	}
}

type refineRequest struct {
	Draft string `json:"draft"`
	Kind  string `json:"kind"`
}

type refineResponse struct {
	Text string `json:"text"`
}

// Refine 请求外部服务润色文本
// 同步调用,可能较慢;超时由 Client 控制
func (r *HTTPRefiner) Refine(ctx context.Context, draft string, kind Kind) (string, error) {
	payload, err := json.Marshal(refineRequest{Draft: draft, Kind: string(kind)})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("refine request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refine service returned status %d", resp.StatusCode)
	}

	var out refineResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode refine response: %w", err)
	}
	return out.Text, nil
}
