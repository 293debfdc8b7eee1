package assistant_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/assistant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEchoRefiner 测试本地回显实现的空白归一
func TestEchoRefiner(t *testing.T) {
	r := assistant.EchoRefiner{}

	out, err := r.Refine(context.Background(), "  Provide   subsea \t inspection  \n  and  reporting  ", assistant.KindScope)
	require.NoError(t, err)
	assert.Equal(t, "Provide subsea inspection\nand reporting", out)

	out, err = r.Refine(context.Background(), "", assistant.KindBackground)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

// TestHTTPRefiner 测试外部润色服务调用
func TestHTTPRefiner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"Refined scope text."}`))
	}))
	defer srv.Close()

	r := assistant.NewHTTPRefiner(srv.URL, 5*time.Second)
	out, err := r.Refine(context.Background(), "draft scope", assistant.KindScope)
	require.NoError(t, err)
	assert.Equal(t, "Refined scope text.", out)
}

// TestHTTPRefiner_ServerError 测试服务端错误透传
func TestHTTPRefiner_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	r := assistant.NewHTTPRefiner(srv.URL, 5*time.Second)
	_, err := r.Refine(context.Background(), "draft", assistant.KindBackground)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

// TestIsValidKind 测试种类校验
func TestIsValidKind(t *testing.T) {
	assert.True(t, assistant.IsValidKind(assistant.KindScope))
	assert.True(t, assistant.IsValidKind(assistant.KindBackground))
	assert.False(t, assistant.IsValidKind(assistant.Kind("title")))
}
