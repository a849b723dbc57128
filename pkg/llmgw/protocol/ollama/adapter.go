// Package ollama 实现 Ollama 本地守护进程的生成适配器
//
// 线协议：
//   - 端点: POST {base_url}/api/generate
//   - 请求体: {model, prompt, system, stream, options:{temperature, num_predict}}
//   - 响应: NDJSON 行 {response, done}
//
// 上游无论请求的 stream 标志如何都按 NDJSON 逐行返回。stream 只决定
// 片段何时浮出给消费者：true 时逐行产出，false 时累积全部 response
// 字段后一次性产出拼接结果——线上行为不变。
package ollama

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

// Adapter Ollama 本地协议适配器
//
// 同时服务 ollama、qwen_local、phi4_local 三个种类：本地模型都经由
// 同一个 Ollama 守护进程运行。
type Adapter struct {
	logger *slog.Logger

	// skipped 被跳过的无法解析的 NDJSON 行计数
	skipped atomic.Int64
}

// New 创建适配器
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{logger: logger}
}

// SkippedFrames 返回累计跳过的无法解析的 NDJSON 行数量
func (a *Adapter) SkippedFrames() int64 {
	return a.skipped.Load()
}

// generateLine /api/generate 的单行响应
type generateLine struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate 实现 [llmgw.Adapter] 接口
func (a *Adapter) Generate(ctx context.Context, rc *resty.Client, cfg *llmgw.ProviderConfig, req *llmgw.Request) <-chan string {
	out := make(chan string, 10)
	go a.generate(ctx, rc, cfg, req, out)
	return out
}

func (a *Adapter) generate(ctx context.Context, rc *resty.Client, cfg *llmgw.ProviderConfig, req *llmgw.Request, out chan<- string) {
	defer close(out)

	payload := map[string]any{
		"model":  cfg.Model,
		"prompt": req.Prompt,
		"system": req.System,
		"stream": req.Stream,
		"options": map[string]any{
			"temperature": req.Temperature,
			"num_predict": req.MaxTokens,
		},
	}

	resp, err := rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetDoNotParseResponse(true).
		Post(strings.TrimRight(cfg.BaseURL, "/") + "/api/generate")
	if err != nil {
		llmgw.Emit(ctx, out, fmt.Sprintf("Error Ollama: %s. Is Ollama running?", err.Error()))
		return
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	if resp.StatusCode() != http.StatusOK {
		raw, _ := io.ReadAll(body)
		llmgw.Emit(ctx, out, fmt.Sprintf("Error Ollama: %d - %s", resp.StatusCode(), strings.TrimSpace(string(raw))))
		return
	}

	var full strings.Builder
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var line generateLine
		if err := json.Unmarshal([]byte(text), &line); err != nil {
			// 单个坏行不中断流
			a.skipped.Add(1)
			a.logger.Debug("skipping unparsable NDJSON line", "provider", cfg.Provider, "error", err)
			continue
		}

		if req.Stream {
			if line.Response != "" {
				if !llmgw.Emit(ctx, out, line.Response) {
					return
				}
			}
			if line.Done {
				return
			}
			continue
		}

		full.WriteString(line.Response)
		if line.Done {
			break
		}
	}

	if !req.Stream {
		llmgw.Emit(ctx, out, full.String())
	}
}

// 确保 Adapter 实现了 llmgw.Adapter 接口
var _ llmgw.Adapter = (*Adapter)(nil)
