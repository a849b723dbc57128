// Package openai 实现 OpenAI 兼容协议的生成适配器
//
// 覆盖 OpenAI、Groq 以及任何共享相同 schema 的 Meta 部署。
//
// 线协议：
//   - 端点: POST {base_url}/chat/completions
//   - 认证: Authorization: Bearer <api_key>
//   - 请求体: {model, messages, max_tokens, temperature, stream}
//   - 流式帧: SSE，"data: {json}" 行，"data: [DONE]" 终止
//   - 流式增量: choices[0].delta.content
//   - 单次响应: choices[0].message.content
package openai

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"

	"github.com/lwmacct/260825-go-pkg-llmgw/pkg/llmgw"
)

// Adapter OpenAI 兼容协议适配器
type Adapter struct {
	logger *slog.Logger

	// skipped 被跳过的无法解析的流式帧计数
	skipped atomic.Int64
}

// New 创建适配器
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{logger: logger}
}

// SkippedFrames 返回累计跳过的无法解析的流式帧数量
//
// 单个坏帧不会中断流，但必须可观测。
func (a *Adapter) SkippedFrames() int64 {
	return a.skipped.Load()
}

// Generate 实现 [llmgw.Adapter] 接口
func (a *Adapter) Generate(ctx context.Context, rc *resty.Client, cfg *llmgw.ProviderConfig, req *llmgw.Request) <-chan string {
	out := make(chan string, 10)
	go a.generate(ctx, rc, cfg, req, out)
	return out
}

func (a *Adapter) generate(ctx context.Context, rc *resty.Client, cfg *llmgw.ProviderConfig, req *llmgw.Request, out chan<- string) {
	defer close(out)

	messages := make([]map[string]any, 0, 2)
	if req.System != "" {
		messages = append(messages, map[string]any{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]any{"role": "user", "content": req.Prompt})

	payload := map[string]any{
		"model":       cfg.Model,
		"messages":    messages,
		"max_tokens":  req.MaxTokens,
		"temperature": req.Temperature,
		"stream":      req.Stream,
	}

	r := rc.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)

	endpoint := strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions"

	if !req.Stream {
		a.complete(ctx, r, cfg, endpoint, out)
		return
	}
	a.stream(ctx, r, cfg, endpoint, out)
}

// complete 单次完成：一次 JSON 响应，产出一个片段
func (a *Adapter) complete(ctx context.Context, r *resty.Request, cfg *llmgw.ProviderConfig, endpoint string, out chan<- string) {
	var apiResp map[string]any
	resp, err := r.SetResult(&apiResp).Post(endpoint)
	if err != nil {
		llmgw.Emit(ctx, out, "Error: "+err.Error())
		return
	}
	if resp.StatusCode() != http.StatusOK {
		llmgw.Emit(ctx, out, statusFragment(cfg, resp.StatusCode(), resp.String()))
		return
	}
	llmgw.Emit(ctx, out, messageContent(apiResp))
}

// stream 流式完成：逐行解析 SSE，逐片段产出
func (a *Adapter) stream(ctx context.Context, r *resty.Request, cfg *llmgw.ProviderConfig, endpoint string, out chan<- string) {
	resp, err := r.SetDoNotParseResponse(true).Post(endpoint)
	if err != nil {
		llmgw.Emit(ctx, out, "Error: "+err.Error())
		return
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	if resp.StatusCode() != http.StatusOK {
		raw, _ := io.ReadAll(body)
		llmgw.Emit(ctx, out, statusFragment(cfg, resp.StatusCode(), string(raw)))
		return
	}

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data: ")
		if !ok {
			continue
		}
		if data == "[DONE]" {
			return
		}

		var chunk map[string]any
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// 单个坏帧不中断流
			a.skipped.Add(1)
			a.logger.Debug("skipping unparsable stream frame", "provider", cfg.Provider, "error", err)
			continue
		}

		if content := deltaContent(chunk); content != "" {
			if !llmgw.Emit(ctx, out, content) {
				return
			}
		}
	}
}

// statusFragment 将非 200 响应转换为单个错误片段
func statusFragment(cfg *llmgw.ProviderConfig, status int, body string) string {
	return fmt.Sprintf("Error %s: %d - %s", cfg.Provider.DisplayName(), status, strings.TrimSpace(body))
}

// deltaContent 提取流式帧中的 choices[0].delta.content
func deltaContent(chunk map[string]any) string {
	choices := llmgw.GetSlice(chunk["choices"])
	if len(choices) == 0 {
		return ""
	}
	delta := llmgw.GetMap(llmgw.GetMap(choices[0])["delta"])
	return llmgw.GetString(delta["content"])
}

// messageContent 提取单次响应中的 choices[0].message.content
func messageContent(apiResp map[string]any) string {
	choices := llmgw.GetSlice(apiResp["choices"])
	if len(choices) == 0 {
		return ""
	}
	msg := llmgw.GetMap(llmgw.GetMap(choices[0])["message"])
	return llmgw.GetString(msg["content"])
}

// 确保 Adapter 实现了 llmgw.Adapter 接口
var _ llmgw.Adapter = (*Adapter)(nil)
