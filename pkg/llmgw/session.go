package llmgw

import (
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// ═══════════════════════════════════════════════════════════════════════════
// HTTP 会话管理器
// ═══════════════════════════════════════════════════════════════════════════

const (
	// SessionTimeout 会话级总超时
	SessionTimeout = 120 * time.Second

	// SessionUserAgent 统一的 User-Agent 标识
	SessionUserAgent = "llmgw/1.0"
)

// Session 共享 HTTP 会话管理器
//
// 首次使用时惰性创建一个带连接池的 resty 客户端，关闭后再次使用会
// 重新创建。所有适配器和并发的生成调用共用同一个客户端（同一个
// 连接池）；每次生成各自打开独立的上游交换。
//
// Close 由网关的持有者在进程收尾时显式调用（作用域资源纪律）。
type Session struct {
	mu     sync.Mutex
	client *resty.Client
}

// NewSession 创建会话管理器（不建立任何连接）
func NewSession() *Session {
	return &Session{}
}

// Client 获取共享的 resty 客户端，必要时创建
func (s *Session) Client() *resty.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		r := resty.New()
		r.SetTimeout(SessionTimeout)
		r.SetHeader("User-Agent", SessionUserAgent)
		s.client = r
	}
	return s.client
}

// Close 释放会话持有的连接
//
// 之后再调用 Client 会重新创建客户端。
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		s.client.GetClient().CloseIdleConnections()
		s.client = nil
	}
}
