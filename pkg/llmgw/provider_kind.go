package llmgw

import "strings"

// ProviderKind LLM Provider 种类
//
// 封闭集合：每个种类对应一种后端协议/厂商，注册表在任何时刻都为
// 每个种类维护且仅维护一份配置。
type ProviderKind string

const (
	// KindOpenAI OpenAI 官方 API
	KindOpenAI ProviderKind = "openai"

	// KindGemini Google Gemini API
	KindGemini ProviderKind = "gemini"

	// KindGroq Groq 快速推理 API（OpenAI 兼容）
	KindGroq ProviderKind = "groq"

	// KindMeta Meta Llama API（OpenAI 兼容部署）
	KindMeta ProviderKind = "meta"

	// KindOllama Ollama 本地守护进程
	KindOllama ProviderKind = "ollama"

	// KindQwenLocal Qwen 2.5 本地模型（经由 Ollama 运行）
	KindQwenLocal ProviderKind = "qwen_local"

	// KindPhi4Local Microsoft Phi-4 本地模型（经由 Ollama 运行）
	KindPhi4Local ProviderKind = "phi4_local"
)

// Kinds 按声明顺序返回全部 Provider 种类
//
// 列表投影等需要稳定顺序的场景都以此为准。
func Kinds() []ProviderKind {
	return []ProviderKind{
		KindOpenAI,
		KindGemini,
		KindGroq,
		KindMeta,
		KindOllama,
		KindQwenLocal,
		KindPhi4Local,
	}
}

// String 返回字符串表示
func (k ProviderKind) String() string {
	return string(k)
}

// Valid 判断是否为已知种类
func (k ProviderKind) Valid() bool {
	switch k {
	case KindOpenAI, KindGemini, KindGroq, KindMeta,
		KindOllama, KindQwenLocal, KindPhi4Local:
		return true
	default:
		return false
	}
}

// DisplayName 返回用于展示的名称
//
// 下划线替换为空格并按单词首字母大写，如 "qwen_local" → "Qwen Local"。
func (k ProviderKind) DisplayName() string {
	words := strings.Split(string(k), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// DefaultConfig 返回该种类的内置默认配置
//
// 未知种类返回仅填充 Provider 字段的零值配置。
func (k ProviderKind) DefaultConfig() ProviderConfig {
	if cfg, ok := defaultConfigs[k]; ok {
		return cfg
	}
	return ProviderConfig{Provider: k}
}

// defaultConfigs 各 Provider 种类的内置默认值
var defaultConfigs = map[ProviderKind]ProviderConfig{
	KindOpenAI: {
		Provider:    KindOpenAI,
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		Description: "OpenAI GPT-4o Mini (economical) or GPT-4o (premium)",
	},
	KindGemini: {
		Provider:    KindGemini,
		BaseURL:     "https://generativelanguage.googleapis.com/v1beta",
		Model:       "gemini-1.5-flash",
		Description: "Google Gemini 1.5 Flash (fast) or Pro (advanced)",
	},
	KindGroq: {
		Provider:    KindGroq,
		BaseURL:     "https://api.groq.com/openai/v1",
		Model:       "llama-3.1-8b-instant",
		Description: "Groq - Llama 3.1 8B (ultra fast) or 70B (powerful)",
	},
	KindMeta: {
		Provider:    KindMeta,
		BaseURL:     "https://api.meta.ai/v1",
		Model:       "llama-3.1-8b",
		Description: "Meta Llama (via official API or partner)",
	},
	KindOllama: {
		Provider:    KindOllama,
		BaseURL:     "http://localhost:11434",
		Model:       "llama3.1",
		IsLocal:     true,
		DownloadURL: "https://ollama.com/download",
		Description: "Ollama - run models locally (Llama, Mistral, etc.)",
	},
	KindQwenLocal: {
		Provider:    KindQwenLocal,
		BaseURL:     "http://localhost:11434",
		Model:       "qwen2.5:7b",
		IsLocal:     true,
		DownloadURL: "https://ollama.com/library/qwen2.5",
		Description: "Qwen 2.5 (Alibaba) - open source multilingual model",
	},
	KindPhi4Local: {
		Provider:    KindPhi4Local,
		BaseURL:     "http://localhost:11434",
		Model:       "phi4:14b",
		IsLocal:     true,
		DownloadURL: "https://ollama.com/library/phi4",
		Description: "Microsoft Phi-4 - efficient and capable model",
	},
}
