// Package gemini 实现 Google Gemini 协议的生成适配器
//
// 线协议：
//   - 端点: POST {base_url}/models/{model}:generateContent?key={api_key}
//   - 请求体: {contents, generationConfig, systemInstruction?}
//   - 响应: candidates[0].content.parts[0].text
//
// Gemini 的 generateContent 是单次调用：无论请求方是否要求流式，
// 适配器都只产出一个完整片段。
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/lwmacct/260825-go-pkg-llmgw/pkg/llmgw"
)

// NoCandidatesFragment 响应中没有任何候选时产出的固定错误片段
const NoCandidatesFragment = "Error: no response received from Gemini"

// Adapter Gemini 协议适配器
type Adapter struct {
	logger *slog.Logger
}

// New 创建适配器
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{logger: logger}
}

// Generate 实现 [llmgw.Adapter] 接口
func (a *Adapter) Generate(ctx context.Context, rc *resty.Client, cfg *llmgw.ProviderConfig, req *llmgw.Request) <-chan string {
	out := make(chan string, 1)
	go a.generate(ctx, rc, cfg, req, out)
	return out
}

func (a *Adapter) generate(ctx context.Context, rc *resty.Client, cfg *llmgw.ProviderConfig, req *llmgw.Request, out chan<- string) {
	defer close(out)

	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": req.Prompt}}},
		},
		"generationConfig": map[string]any{
			"maxOutputTokens": req.MaxTokens,
			"temperature":     req.Temperature,
		},
	}
	if req.System != "" {
		payload["systemInstruction"] = map[string]any{
			"parts": []map[string]any{{"text": req.System}},
		}
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(cfg.BaseURL, "/"), cfg.Model, cfg.APIKey)

	var apiResp map[string]any
	resp, err := rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&apiResp).
		Post(endpoint)
	if err != nil {
		llmgw.Emit(ctx, out, "Error: "+err.Error())
		return
	}
	if resp.StatusCode() != http.StatusOK {
		llmgw.Emit(ctx, out, fmt.Sprintf("Error Gemini: %d - %s", resp.StatusCode(), strings.TrimSpace(resp.String())))
		return
	}

	candidates := llmgw.GetSlice(apiResp["candidates"])
	if len(candidates) == 0 {
		llmgw.Emit(ctx, out, NoCandidatesFragment)
		return
	}
	llmgw.Emit(ctx, out, candidateText(candidates[0]))
}

// candidateText 提取候选中的 content.parts[0].text
func candidateText(candidate any) string {
	content := llmgw.GetMap(llmgw.GetMap(candidate)["content"])
	parts := llmgw.GetSlice(content["parts"])
	if len(parts) == 0 {
		return ""
	}
	return llmgw.GetString(llmgw.GetMap(parts[0])["text"])
}

// 确保 Adapter 实现了 llmgw.Adapter 接口
var _ llmgw.Adapter = (*Adapter)(nil)
