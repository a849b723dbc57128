// Package dispatch 提供网关的组合与生成调度
//
// 使用方式：
//
//	gw := dispatch.Open("data/llm_config.json", nil)
//	defer gw.Close()
//
//	gw.Registry().SetAPIKey(llmgw.KindOpenAI, "sk-xxx")
//	gw.Registry().SetActiveProvider(llmgw.KindOpenAI)
//
//	req := llmgw.NewRequest("hello")
//	req.Stream = true
//	for fragment := range gw.Generate(ctx, req) {
//	    fmt.Print(fragment)
//	}
package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lwmacct/260825-go-pkg-llmgw/pkg/llmgw"
	"github.com/lwmacct/260825-go-pkg-llmgw/pkg/llmgw/protocol/gemini"
	"github.com/lwmacct/260825-go-pkg-llmgw/pkg/llmgw/protocol/ollama"
	"github.com/lwmacct/260825-go-pkg-llmgw/pkg/llmgw/protocol/openai"
)

// NoProviderFragment 没有激活 Provider 时产出的唯一片段
const NoProviderFragment = "Error: no LLM provider configured. Select one in settings."

// ═══════════════════════════════════════════════════════════════════════════
// Gateway 网关
// ═══════════════════════════════════════════════════════════════════════════

// Gateway LLM Provider 网关
//
// 由应用的组合根持有一份：注册表、共享 HTTP 会话、健康探测器和
// 种类→适配器查找表。本层不做重试、退避或多 Provider 故障转移——
// 上游结果原样呈现，重试策略归调用方所有。
type Gateway struct {
	registry *llmgw.Registry
	session  *llmgw.Session
	health   *llmgw.HealthChecker
	logger   *slog.Logger
	adapters map[llmgw.ProviderKind]llmgw.Adapter
}

// New 创建网关
//
// logger 为 nil 时使用 slog.Default()。
func New(registry *llmgw.Registry, session *llmgw.Session, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	oa := openai.New(logger)
	gm := gemini.New(logger)
	ol := ollama.New(logger)

	return &Gateway{
		registry: registry,
		session:  session,
		health:   llmgw.NewHealthChecker(registry, session, logger),
		logger:   logger,
		adapters: map[llmgw.ProviderKind]llmgw.Adapter{
			llmgw.KindOpenAI:    oa,
			llmgw.KindGroq:      oa,
			llmgw.KindMeta:      oa,
			llmgw.KindGemini:    gm,
			llmgw.KindOllama:    ol,
			llmgw.KindQwenLocal: ol,
			llmgw.KindPhi4Local: ol,
		},
	}
}

// Open 从配置文件路径构造完整网关
//
// 便捷组合函数：创建持久化层、加载注册表、创建会话。
func Open(path string, logger *slog.Logger) *Gateway {
	store := llmgw.NewStore(path, logger)
	registry := llmgw.NewRegistry(store, logger)
	return New(registry, llmgw.NewSession(), logger)
}

// Registry 返回网关持有的注册表
func (g *Gateway) Registry() *llmgw.Registry {
	return g.registry
}

// CheckLocalProvider 探测本地 Provider 的可用性
func (g *Gateway) CheckLocalProvider(ctx context.Context, kind llmgw.ProviderKind) *llmgw.HealthStatus {
	return g.health.Check(ctx, kind)
}

// Generate 用激活的 Provider 发起一次生成
//
// 调度流程：
//  1. 在调度时刻取一次激活配置的值快照；之后的并发
//     SetActiveProvider 调用不影响本次生成
//  2. 没有激活 Provider 时产出恰好一个说明片段后终止，绝不报错
//  3. 按快照路由到对应的协议适配器（is_local 一律走 Ollama 适配器）
//
// 返回的通道有限且不可重放；消费者可通过取消 ctx 随时放弃。
func (g *Gateway) Generate(ctx context.Context, req *llmgw.Request) <-chan string {
	cfg, ok := g.registry.ActiveConfig()
	if !ok {
		return singleFragment(NoProviderFragment)
	}

	adapter := g.adapterFor(&cfg)
	if adapter == nil {
		return singleFragment(fmt.Sprintf("Provider %s is not implemented yet", cfg.Provider.DisplayName()))
	}

	r := *req
	if r.MaxTokens <= 0 {
		r.MaxTokens = llmgw.DefaultMaxTokens
	}

	g.logger.Debug("dispatching generation",
		"provider", cfg.Provider, "model", cfg.Model, "stream", r.Stream)
	return adapter.Generate(ctx, g.session.Client(), &cfg, &r)
}

// Close 释放网关持有的 HTTP 会话
//
// 由持有者在进程收尾时调用。
func (g *Gateway) Close() {
	g.session.Close()
}

// adapterFor 按配置快照解析协议适配器
//
// 本地 Provider 一律由 Ollama 适配器服务。
func (g *Gateway) adapterFor(cfg *llmgw.ProviderConfig) llmgw.Adapter {
	if cfg.IsLocal {
		return g.adapters[llmgw.KindOllama]
	}
	return g.adapters[cfg.Provider]
}

// singleFragment 返回只含一个片段的已关闭通道
func singleFragment(fragment string) <-chan string {
	out := make(chan string, 1)
	out <- fragment
	close(out)
	return out
}
