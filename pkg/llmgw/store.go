package llmgw

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 配置持久化
// ═══════════════════════════════════════════════════════════════════════════

// 本地 Provider Base URL 的环境变量覆盖，前者优先
const (
	EnvOllamaURL     = "MIIA_OLLAMA_URL"
	EnvOllamaBaseURL = "OLLAMA_BASE_URL"
)

// configFile 持久化文件的顶层结构
//
// providers 的值保持 RawMessage，单个条目损坏时只跳过该条目，
// 不影响其他条目的加载。
type configFile struct {
	Providers      map[string]json.RawMessage `json:"providers"`
	ActiveProvider *ProviderKind              `json:"active_provider"`
}

// Store 注册表的 JSON 持久化层
//
// 加载策略（按顺序）：
//  1. 逐条解析文件中的 Provider 条目，损坏的条目记录日志后跳过
//  2. 为文件中缺失的每个 ProviderKind 补全内置默认值
//  3. 应用环境变量对 Ollama Base URL 的覆盖（env > 文件 > 默认值）
//  4. 若没有激活的 Provider，默认激活本地的 Ollama 并立即持久化
//
// 第 4 步是刻意的首次运行策略：避免用户尚未做出任何选择时就呈现
// "未连接" 状态。
//
// I/O 失败只记录日志，绝不向上传播——运行中的进程以内存状态为准。
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore 创建持久化层
//
// path 为配置文件路径；logger 为 nil 时使用 slog.Default()。
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path 返回配置文件路径
func (s *Store) Path() string {
	return s.path
}

// Load 加载注册表状态
//
// 永不失败：文件不存在、整体损坏、单条目损坏都以默认值兜底。
// 返回完整填充的 Provider 配置表（每个种类恰好一份）和激活的种类。
func (s *Store) Load() (map[ProviderKind]*ProviderConfig, ProviderKind) {
	providers := make(map[ProviderKind]*ProviderConfig, len(Kinds()))
	var active ProviderKind

	raw, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
		// 首次运行，全部使用默认值
	case err != nil:
		s.logger.Error("failed to read LLM config", "path", s.path, "error", NewPersistenceError("read", err))
	default:
		var file configFile
		if err := json.Unmarshal(raw, &file); err != nil {
			s.logger.Error("failed to parse LLM config", "path", s.path, "error", err)
			break
		}

		for key, entry := range file.Providers {
			kind := ProviderKind(key)
			if !kind.Valid() {
				s.logger.Warn("skipping unknown provider entry", "provider", key)
				continue
			}
			var cfg ProviderConfig
			if err := json.Unmarshal(entry, &cfg); err != nil {
				s.logger.Warn("skipping corrupt provider entry", "error", NewConfigError(key, err))
				continue
			}
			cfg.Provider = kind
			providers[kind] = &cfg
		}

		if file.ActiveProvider != nil && file.ActiveProvider.Valid() {
			active = *file.ActiveProvider
		}
	}

	// 补全缺失的种类
	for _, kind := range Kinds() {
		if _, ok := providers[kind]; !ok {
			cfg := kind.DefaultConfig()
			providers[kind] = &cfg
		}
	}

	// 环境变量覆盖 Ollama Base URL
	if url := ollamaURLFromEnv(); url != "" {
		providers[KindOllama].BaseURL = url
	}

	// 首次运行策略：默认激活本地 Provider 并立即持久化
	if active == "" {
		active = KindOllama
		if err := s.Save(providers, active); err != nil {
			s.logger.Error("failed to persist first-run default", "error", err)
		}
	}

	return providers, active
}

// Save 将完整注册表状态原子写入配置文件
//
// 先写临时文件再重命名，避免半写状态。失败返回 PersistenceError，
// 由调用方记录日志后继续运行。
func (s *Store) Save(providers map[ProviderKind]*ProviderConfig, active ProviderKind) error {
	out := struct {
		Providers      map[string]*ProviderConfig `json:"providers"`
		ActiveProvider *ProviderKind              `json:"active_provider"`
	}{
		Providers: make(map[string]*ProviderConfig, len(providers)),
	}
	for kind, cfg := range providers {
		out.Providers[kind.String()] = cfg
	}
	if active != "" {
		out.ActiveProvider = &active
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return NewPersistenceError("marshal", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return NewPersistenceError("mkdir", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".llmgw-*.json")
	if err != nil {
		return NewPersistenceError("write", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return NewPersistenceError("write", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return NewPersistenceError("write", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return NewPersistenceError("rename", err)
	}
	return nil
}

// ollamaURLFromEnv 读取环境变量中的 Ollama Base URL 覆盖，第一个非空者生效
func ollamaURLFromEnv() string {
	for _, key := range []string{EnvOllamaURL, EnvOllamaBaseURL} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}
