package llmgw

// ═══════════════════════════════════════════════════════════════════════════
// 模型目录
// ═══════════════════════════════════════════════════════════════════════════

// ModelChoice 可选模型条目
type ModelChoice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ModelsForKind 返回指定 Provider 种类的推荐模型列表
//
// 只是展示用目录，不做强校验：SetModel 接受目录之外的模型名。
func ModelsForKind(kind ProviderKind) []ModelChoice {
	return availableModels[kind]
}

var availableModels = map[ProviderKind][]ModelChoice{
	KindOpenAI: {
		{ID: "gpt-4o-mini", Label: "GPT-4o Mini - fast and economical"},
		{ID: "gpt-4o", Label: "GPT-4o - maximum quality"},
		{ID: "gpt-3.5-turbo", Label: "GPT-3.5 Turbo - legacy"},
	},
	KindGemini: {
		{ID: "gemini-1.5-flash", Label: "Gemini 1.5 Flash - fast"},
		{ID: "gemini-1.5-pro", Label: "Gemini 1.5 Pro - advanced"},
		{ID: "gemini-1.0-pro", Label: "Gemini 1.0 Pro - legacy"},
	},
	KindGroq: {
		{ID: "llama-3.1-8b-instant", Label: "Llama 3.1 8B - ultra fast"},
		{ID: "llama-3.1-70b-versatile", Label: "Llama 3.1 70B - powerful"},
		{ID: "mixtral-8x7b-32768", Label: "Mixtral 8x7B - good balance"},
		{ID: "gemma-7b-it", Label: "Gemma 7B - Google"},
	},
	KindMeta: {
		{ID: "llama-3.1-8b", Label: "Llama 3.1 8B"},
		{ID: "llama-3.1-70b", Label: "Llama 3.1 70B"},
		{ID: "llama-3-8b", Label: "Llama 3 8B"},
	},
	KindOllama: {
		{ID: "llama3.1", Label: "Llama 3.1"},
		{ID: "llama3", Label: "Llama 3"},
		{ID: "mistral", Label: "Mistral"},
		{ID: "codellama", Label: "Code Llama"},
		{ID: "neural-chat", Label: "Neural Chat"},
	},
	KindQwenLocal: {
		{ID: "qwen2.5:0.5b", Label: "Qwen 2.5 0.5B - very light"},
		{ID: "qwen2.5:1.5b", Label: "Qwen 2.5 1.5B - light"},
		{ID: "qwen2.5:7b", Label: "Qwen 2.5 7B - standard"},
		{ID: "qwen2.5:14b", Label: "Qwen 2.5 14B - powerful"},
		{ID: "qwen2.5:32b", Label: "Qwen 2.5 32B - maximum"},
	},
	KindPhi4Local: {
		{ID: "phi4:14b", Label: "Phi-4 14B - standard"},
	},
}
