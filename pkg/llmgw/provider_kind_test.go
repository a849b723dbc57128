package llmgw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds_DeclarationOrder(t *testing.T) {
	kinds := Kinds()

	require.Len(t, kinds, 7)
	assert.Equal(t, []ProviderKind{
		KindOpenAI, KindGemini, KindGroq, KindMeta,
		KindOllama, KindQwenLocal, KindPhi4Local,
	}, kinds)
}

func TestProviderKind_Valid(t *testing.T) {
	for _, kind := range Kinds() {
		assert.True(t, kind.Valid(), "kind %s should be valid", kind)
	}
	assert.False(t, ProviderKind("anthropic").Valid())
	assert.False(t, ProviderKind("").Valid())
}

func TestProviderKind_DisplayName(t *testing.T) {
	assert.Equal(t, "Qwen Local", KindQwenLocal.DisplayName())
	assert.Equal(t, "Phi4 Local", KindPhi4Local.DisplayName())
	assert.Equal(t, "Ollama", KindOllama.DisplayName())
}

func TestProviderKind_DefaultConfig(t *testing.T) {
	cfg := KindOllama.DefaultConfig()

	assert.Equal(t, KindOllama, cfg.Provider)
	assert.Equal(t, "http://localhost:11434", cfg.BaseURL)
	assert.Equal(t, "llama3.1", cfg.Model)
	assert.True(t, cfg.IsLocal)
	assert.Equal(t, "https://ollama.com/download", cfg.DownloadURL)
	assert.Empty(t, cfg.APIKey)
	assert.False(t, cfg.Enabled)
}

func TestProviderKind_DefaultConfig_AllKindsPopulated(t *testing.T) {
	for _, kind := range Kinds() {
		cfg := kind.DefaultConfig()
		assert.Equal(t, kind, cfg.Provider)
		assert.NotEmpty(t, cfg.BaseURL, "kind %s", kind)
		assert.NotEmpty(t, cfg.Model, "kind %s", kind)
		assert.NotEmpty(t, cfg.Description, "kind %s", kind)
		if cfg.IsLocal {
			assert.NotEmpty(t, cfg.DownloadURL, "local kind %s needs a download URL", kind)
		}
	}
}

func TestProviderKind_DefaultConfig_Unknown(t *testing.T) {
	cfg := ProviderKind("anthropic").DefaultConfig()

	assert.Equal(t, ProviderKind("anthropic"), cfg.Provider)
	assert.Empty(t, cfg.BaseURL)
}

func TestModelsForKind(t *testing.T) {
	for _, kind := range Kinds() {
		assert.NotEmpty(t, ModelsForKind(kind), "kind %s should have a model catalog", kind)
	}
	assert.Empty(t, ModelsForKind(ProviderKind("anthropic")))
}

func TestModelsForKind_ContainsDefaultModel(t *testing.T) {
	choices := ModelsForKind(KindQwenLocal)

	ids := make([]string, 0, len(choices))
	for _, c := range choices {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, KindQwenLocal.DefaultConfig().Model)
}
