package llmgw

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger 测试用的静默 logger
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// clearOllamaEnv 清空环境变量覆盖，保证测试看到内置默认值
func clearOllamaEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvOllamaURL, "")
	t.Setenv(EnvOllamaBaseURL, "")
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "llm_config.json"), testLogger())
}

// ═══════════════════════════════════════════════════════════════════════════
// 加载
// ═══════════════════════════════════════════════════════════════════════════

func TestStore_Load_FirstRun(t *testing.T) {
	clearOllamaEnv(t)
	store := newTestStore(t)

	providers, active := store.Load()

	// 每个种类恰好一份默认配置
	require.Len(t, providers, len(Kinds()))
	for _, kind := range Kinds() {
		require.Contains(t, providers, kind)
		assert.Equal(t, kind, providers[kind].Provider)
	}

	ollama := providers[KindOllama]
	assert.Equal(t, "http://localhost:11434", ollama.BaseURL)
	assert.Equal(t, "llama3.1", ollama.Model)
	assert.True(t, ollama.IsLocal)

	// 首次运行策略：默认激活本地 Provider 并立即落盘
	assert.Equal(t, KindOllama, active)
	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	var file configFile
	require.NoError(t, json.Unmarshal(raw, &file))
	require.NotNil(t, file.ActiveProvider)
	assert.Equal(t, KindOllama, *file.ActiveProvider)
	assert.Len(t, file.Providers, len(Kinds()))
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	clearOllamaEnv(t)
	store := newTestStore(t)

	providers, _ := store.Load()
	providers[KindOpenAI].APIKey = "sk-test123"
	providers[KindOpenAI].Enabled = true
	providers[KindGemini].Model = "gemini-2.0-flash"
	require.NoError(t, store.Save(providers, KindOpenAI))

	loaded, active := store.Load()

	assert.Equal(t, KindOpenAI, active)
	assert.Equal(t, "sk-test123", loaded[KindOpenAI].APIKey)
	assert.True(t, loaded[KindOpenAI].Enabled)
	assert.Equal(t, "gemini-2.0-flash", loaded[KindGemini].Model)
	// 未改动的条目保持默认值
	assert.Equal(t, "llama3.1", loaded[KindOllama].Model)
}

func TestStore_Load_CorruptEntrySkipped(t *testing.T) {
	clearOllamaEnv(t)
	store := newTestStore(t)

	// openai 条目损坏，gemini 条目完好
	content := `{
  "providers": {
    "openai": 42,
    "gemini": {"provider": "gemini", "api_key": "g-key", "model": "gemini-1.5-flash", "enabled": true}
  },
  "active_provider": "gemini"
}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0o644))

	providers, active := store.Load()

	// 损坏条目回退到默认值，完好条目保留
	require.Len(t, providers, len(Kinds()))
	assert.Empty(t, providers[KindOpenAI].APIKey)
	assert.Equal(t, "g-key", providers[KindGemini].APIKey)
	assert.Equal(t, KindGemini, active)
}

func TestStore_Load_WholeFileCorrupt(t *testing.T) {
	clearOllamaEnv(t)
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not valid json"), 0o644))

	providers, active := store.Load()

	require.Len(t, providers, len(Kinds()))
	assert.Equal(t, KindOllama, active)
	assert.Equal(t, "http://localhost:11434", providers[KindOllama].BaseURL)
}

func TestStore_Load_UnknownProviderEntrySkipped(t *testing.T) {
	clearOllamaEnv(t)
	store := newTestStore(t)

	content := `{
  "providers": {
    "anthropic": {"provider": "anthropic", "api_key": "a-key"}
  },
  "active_provider": "ollama"
}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0o644))

	providers, _ := store.Load()

	require.Len(t, providers, len(Kinds()))
	assert.NotContains(t, providers, ProviderKind("anthropic"))
}

func TestStore_Load_UnknownActiveProviderIgnored(t *testing.T) {
	clearOllamaEnv(t)
	store := newTestStore(t)

	content := `{"providers": {}, "active_provider": "anthropic"}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0o644))

	_, active := store.Load()

	// 未知的激活种类按未设置处理，首次运行策略接管
	assert.Equal(t, KindOllama, active)
}

// ═══════════════════════════════════════════════════════════════════════════
// 环境变量覆盖
// ═══════════════════════════════════════════════════════════════════════════

func TestStore_Load_EnvOverride(t *testing.T) {
	clearOllamaEnv(t)
	t.Setenv(EnvOllamaBaseURL, "http://gpu-box:11434")
	store := newTestStore(t)

	providers, _ := store.Load()

	assert.Equal(t, "http://gpu-box:11434", providers[KindOllama].BaseURL)
}

func TestStore_Load_EnvOverridePrecedence(t *testing.T) {
	t.Setenv(EnvOllamaURL, "http://primary:11434")
	t.Setenv(EnvOllamaBaseURL, "http://fallback:11434")
	store := newTestStore(t)

	providers, _ := store.Load()

	assert.Equal(t, "http://primary:11434", providers[KindOllama].BaseURL)
}

func TestStore_Load_EnvOverrideBeatsFile(t *testing.T) {
	clearOllamaEnv(t)
	t.Setenv(EnvOllamaURL, "http://env-wins:11434")
	store := newTestStore(t)

	content := `{
  "providers": {
    "ollama": {"provider": "ollama", "base_url": "http://from-file:11434", "model": "llama3.1", "is_local": true}
  },
  "active_provider": "ollama"
}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0o644))

	providers, _ := store.Load()

	assert.Equal(t, "http://env-wins:11434", providers[KindOllama].BaseURL)
}

// ═══════════════════════════════════════════════════════════════════════════
// 保存
// ═══════════════════════════════════════════════════════════════════════════

func TestStore_Save_CreatesParentDir(t *testing.T) {
	clearOllamaEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "dir", "llm_config.json")
	store := NewStore(path, testLogger())

	providers, active := store.Load()
	require.NoError(t, store.Save(providers, active))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStore_Save_NoTempFileLeftBehind(t *testing.T) {
	clearOllamaEnv(t)
	store := newTestStore(t)

	providers, active := store.Load()
	require.NoError(t, store.Save(providers, active))

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(store.Path()), entries[0].Name())
}
