package llmgw

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════
// 本地 Provider 健康探测
// ═══════════════════════════════════════════════════════════════════════════

// HealthCheckTimeout 健康探测的短超时
const HealthCheckTimeout = 5 * time.Second

// HealthStatus 健康探测结果
//
// 这是一个结构化的结果对象而非裸错误：后端不可达时附带安装地址和
// 有序的补救步骤，调用方无需了解后端细节即可渲染可操作的引导。
type HealthStatus struct {
	Available bool     `json:"available"`
	Models    []string `json:"models,omitempty"`
	Message   string   `json:"message,omitempty"`
	Error     string   `json:"error,omitempty"`

	// 连接失败时的补救引导
	InstallURL        string   `json:"install_url,omitempty"`
	SetupInstructions []string `json:"setup_instructions,omitempty"`
}

// tagsResponse Ollama /api/tags 的响应结构
type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// HealthChecker 本地 Provider 健康探测器
type HealthChecker struct {
	registry *Registry
	session  *Session
	logger   *slog.Logger
}

// NewHealthChecker 创建健康探测器
func NewHealthChecker(registry *Registry, session *Session, logger *slog.Logger) *HealthChecker {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthChecker{registry: registry, session: session, logger: logger}
}

// Check 探测本地 Provider 的可用性
//
// 非本地 Provider 直接快速失败，不发起任何网络调用。否则向
// {base_url}/api/tags 发起 GET 探测：
//   - 200: 返回可用模型列表
//   - 非 200: 返回 "HTTP <status>"
//   - 连接失败: 返回结构化补救引导（下载、安装、拉取模型、就绪四步）
//   - 其他异常（超时等）: 返回错误消息
func (h *HealthChecker) Check(ctx context.Context, kind ProviderKind) *HealthStatus {
	cfg, ok := h.registry.Config(kind)
	if !ok {
		return &HealthStatus{Error: "provider not configured"}
	}
	if !cfg.IsLocal {
		return &HealthStatus{Error: "not a local provider"}
	}

	ctx, cancel := context.WithTimeout(ctx, HealthCheckTimeout)
	defer cancel()

	var tags tagsResponse
	resp, err := h.session.Client().R().
		SetContext(ctx).
		SetResult(&tags).
		Get(cfg.BaseURL + "/api/tags")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &HealthStatus{Error: err.Error()}
		}
		h.logger.Info("local provider unreachable", "provider", kind, "base_url", cfg.BaseURL, "error", err)
		return &HealthStatus{
			Error:      fmt.Sprintf("%s is not running", kind.DisplayName()),
			InstallURL: cfg.DownloadURL,
			SetupInstructions: []string{
				fmt.Sprintf("1. Download Ollama: %s", cfg.DownloadURL),
				"2. Install and start Ollama",
				fmt.Sprintf("3. Pull the model: ollama pull %s", cfg.Model),
				"4. Ready to use",
			},
		}
	}
	if resp.StatusCode() != http.StatusOK {
		return &HealthStatus{Error: fmt.Sprintf("HTTP %d", resp.StatusCode())}
	}

	models := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		models = append(models, m.Name)
	}
	return &HealthStatus{
		Available: true,
		Models:    models,
		Message:   fmt.Sprintf("%d models available", len(models)),
	}
}
