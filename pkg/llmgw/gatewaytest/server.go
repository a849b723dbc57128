package gatewaytest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// ═══════════════════════════════════════════════════════════════════════════
// 脚本化假上游
// ═══════════════════════════════════════════════════════════════════════════

// Upstream 脚本化的假上游服务器
//
// 按请求路径匹配协议场景：
//   - /chat/completions → openai（按请求体的 stream 标志选择 SSE 或单次 JSON）
//   - /models/{model}:generateContent → gemini
//   - /api/generate → ollama（始终 NDJSON）
//   - /api/tags → tags
type Upstream struct {
	*httptest.Server

	script *Script

	mu   sync.Mutex
	hits map[string]int
}

// NewUpstream 启动假上游
//
// 调用方负责 Close。
func NewUpstream(script *Script) *Upstream {
	u := &Upstream{
		script: script,
		hits:   make(map[string]int),
	}
	u.Server = httptest.NewServer(http.HandlerFunc(u.handle))
	return u
}

// Hits 返回某协议被请求的次数
func (u *Upstream) Hits(protocol string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hits[protocol]
}

func (u *Upstream) handle(w http.ResponseWriter, r *http.Request) {
	protocol := protocolForPath(r.URL.Path)
	if protocol == "" {
		http.NotFound(w, r)
		return
	}

	u.mu.Lock()
	u.hits[protocol]++
	u.mu.Unlock()

	sc := u.script.scenarioFor(protocol)
	if sc == nil {
		http.NotFound(w, r)
		return
	}

	if sc.Status != 0 && sc.Status != http.StatusOK {
		w.WriteHeader(sc.Status)
		_, _ = w.Write([]byte(sc.Body))
		return
	}
	if sc.Body != "" {
		_, _ = w.Write([]byte(sc.Body))
		return
	}

	switch protocol {
	case ProtocolOpenAI:
		u.renderOpenAI(w, r, sc)
	case ProtocolGemini:
		renderGemini(w, sc)
	case ProtocolOllama:
		renderOllama(w, sc)
	case ProtocolTags:
		renderTags(w, sc)
	}
}

// protocolForPath 由请求路径推断协议
func protocolForPath(path string) string {
	switch {
	case strings.HasSuffix(path, "/chat/completions"):
		return ProtocolOpenAI
	case strings.Contains(path, ":generateContent"):
		return ProtocolGemini
	case strings.HasSuffix(path, "/api/generate"):
		return ProtocolOllama
	case strings.HasSuffix(path, "/api/tags"):
		return ProtocolTags
	}
	return ""
}

// renderOpenAI 按请求体的 stream 标志渲染 SSE 或单次 JSON
func (u *Upstream) renderOpenAI(w http.ResponseWriter, r *http.Request, sc *Scenario) {
	var req struct {
		Stream bool `json:"stream"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	if !req.Stream {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{
				map[string]any{
					"message": map[string]any{
						"role":    "assistant",
						"content": strings.Join(sc.Fragments, ""),
					},
				},
			},
		})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	for _, line := range sc.RawLines {
		fmt.Fprintf(w, "%s\n", line)
	}
	for _, frag := range sc.Fragments {
		data, _ := json.Marshal(map[string]any{
			"choices": []any{
				map[string]any{"delta": map[string]any{"content": frag}},
			},
		})
		fmt.Fprintf(w, "data: %s\n\n", data)
	}
	fmt.Fprint(w, "data: [DONE]\n\n")
}

// renderGemini 渲染单次 generateContent 响应
func renderGemini(w http.ResponseWriter, sc *Scenario) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{
						map[string]any{"text": strings.Join(sc.Fragments, "")},
					},
				},
			},
		},
	})
}

// renderOllama 渲染 NDJSON 流
func renderOllama(w http.ResponseWriter, sc *Scenario) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	for _, line := range sc.RawLines {
		fmt.Fprintf(w, "%s\n", line)
	}
	for _, frag := range sc.Fragments {
		data, _ := json.Marshal(map[string]any{"response": frag, "done": false})
		fmt.Fprintf(w, "%s\n", data)
	}
	fmt.Fprint(w, `{"response":"","done":true}`+"\n")
}

// renderTags 渲染 /api/tags 响应
func renderTags(w http.ResponseWriter, sc *Scenario) {
	models := make([]map[string]any, 0, len(sc.Models))
	for _, name := range sc.Models {
		models = append(models, map[string]any{"name": name})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"models": models})
}
