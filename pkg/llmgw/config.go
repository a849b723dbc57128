package llmgw

// ═══════════════════════════════════════════════════════════════════════════
// Provider 配置
// ═══════════════════════════════════════════════════════════════════════════

// ProviderConfig 单个 Provider 的配置
//
// JSON 字段与持久化文件格式一一对应，必须精确往返：
//
//	{
//	  "provider": "openai",
//	  "api_key": "",
//	  "base_url": "https://api.openai.com/v1",
//	  "model": "gpt-4o-mini",
//	  "enabled": false,
//	  "is_local": false,
//	  "download_url": "",
//	  "description": "..."
//	}
type ProviderConfig struct {
	// Provider 所属种类
	Provider ProviderKind `json:"provider"`

	// APIKey API 密钥，空字符串表示未设置
	APIKey string `json:"api_key"`

	// BaseURL API 基础地址
	BaseURL string `json:"base_url"`

	// Model 当前选用的模型
	Model string `json:"model"`

	// Enabled 是否已启用（设置了 API Key）
	Enabled bool `json:"enabled"`

	// IsLocal 是否为本地 Provider（localhost 后端，无需 API Key）
	IsLocal bool `json:"is_local"`

	// DownloadURL 本地 Provider 的安装下载地址
	DownloadURL string `json:"download_url"`

	// Description 人类可读的描述
	Description string `json:"description"`
}

// ═══════════════════════════════════════════════════════════════════════════
// 列表投影
// ═══════════════════════════════════════════════════════════════════════════

// ProviderStatus Provider 状态的只读投影
//
// 供配置界面等消费者展示，不暴露 API Key 本身，只暴露是否已设置。
type ProviderStatus struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Enabled     bool   `json:"enabled"`
	IsLocal     bool   `json:"is_local"`
	Model       string `json:"model"`
	HasKey      bool   `json:"has_key"`
	Description string `json:"description"`
	DownloadURL string `json:"download_url,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// statusOf 由配置生成投影
//
// Enabled 对本地 Provider 恒为 true；DownloadURL 只对本地 Provider 暴露。
func statusOf(cfg *ProviderConfig, active bool) ProviderStatus {
	s := ProviderStatus{
		ID:          cfg.Provider.String(),
		Name:        cfg.Provider.DisplayName(),
		Enabled:     cfg.Enabled || cfg.IsLocal,
		IsLocal:     cfg.IsLocal,
		Model:       cfg.Model,
		HasKey:      cfg.APIKey != "",
		Description: cfg.Description,
		IsActive:    active,
	}
	if cfg.IsLocal {
		s.DownloadURL = cfg.DownloadURL
	}
	return s
}
