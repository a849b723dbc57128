package llmgw

import (
	"log/slog"
	"sync"
)

// ═══════════════════════════════════════════════════════════════════════════
// Provider 注册表
// ═══════════════════════════════════════════════════════════════════════════

// Registry Provider 注册表
//
// 每个进程（或每个测试实例）创建一份，构造时从磁盘加载，之后只能
// 通过注册表方法变更，每次变更同步持久化。
//
// 并发模型：
//   - 所有变更操作经由同一把锁串行化，防止并发配置调用互相丢失更新
//   - 读取返回配置的值拷贝快照；正在进行的生成不受后续配置写入影响
type Registry struct {
	mu     sync.RWMutex
	store  *Store
	logger *slog.Logger

	providers map[ProviderKind]*ProviderConfig
	active    ProviderKind // 空字符串表示未设置
}

// NewRegistry 创建注册表并从磁盘加载
//
// 加载永不失败（见 [Store.Load]）；logger 为 nil 时使用 slog.Default()。
func NewRegistry(store *Store, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	providers, active := store.Load()
	return &Registry{
		store:     store,
		logger:    logger,
		providers: providers,
		active:    active,
	}
}

// SetAPIKey 设置 API Key
//
// 未知种类返回 false。Enabled 跟随 Key 是否非空，成功后立即持久化。
func (r *Registry) SetAPIKey(kind ProviderKind, key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, ok := r.providers[kind]
	if !ok {
		return false
	}
	cfg.APIKey = key
	cfg.Enabled = key != ""
	r.persistLocked()
	return true
}

// SetModel 设置 Provider 使用的模型
//
// 未知种类返回 false，成功后立即持久化。
func (r *Registry) SetModel(kind ProviderKind, model string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, ok := r.providers[kind]
	if !ok {
		return false
	}
	cfg.Model = model
	r.persistLocked()
	return true
}

// SetActiveProvider 设置激活的 Provider
//
// 失败条件（返回 false，激活状态保持不变）：
//   - 种类未知
//   - 非本地 Provider 且未设置 API Key
func (r *Registry) SetActiveProvider(kind ProviderKind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, ok := r.providers[kind]
	if !ok {
		return false
	}
	if !cfg.IsLocal && cfg.APIKey == "" {
		return false
	}
	r.active = kind
	r.persistLocked()
	return true
}

// ClearActiveProvider 取消激活的 Provider
//
// 之后的生成调用会产出说明片段而非发起网络请求。注意下次从磁盘
// 重新加载时首次运行策略会重新默认激活本地 Provider。
func (r *Registry) ClearActiveProvider() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = ""
	r.persistLocked()
}

// ActiveProvider 返回激活的 Provider 种类
func (r *Registry) ActiveProvider() (ProviderKind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active, r.active != ""
}

// ActiveConfig 返回激活 Provider 配置的值拷贝快照
//
// 调度器在生成开始时调用一次；之后的并发配置写入不会追溯影响
// 进行中的生成。未设置激活 Provider 时返回 false。
func (r *Registry) ActiveConfig() (ProviderConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.active == "" {
		return ProviderConfig{}, false
	}
	cfg, ok := r.providers[r.active]
	if !ok {
		return ProviderConfig{}, false
	}
	return *cfg, true
}

// Config 返回指定种类配置的值拷贝
func (r *Registry) Config(kind ProviderKind) (ProviderConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.providers[kind]
	if !ok {
		return ProviderConfig{}, false
	}
	return *cfg, true
}

// List 返回全部 Provider 的只读状态投影
//
// 顺序遵循 [Kinds] 的声明顺序。
func (r *Registry) List() []ProviderStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ProviderStatus, 0, len(r.providers))
	for _, kind := range Kinds() {
		cfg, ok := r.providers[kind]
		if !ok {
			continue
		}
		result = append(result, statusOf(cfg, r.active == kind))
	}
	return result
}

// persistLocked 持久化当前状态，调用方必须持有写锁
//
// 失败只记录日志：内存状态对运行中的进程保持权威。
func (r *Registry) persistLocked() {
	if err := r.store.Save(r.providers, r.active); err != nil {
		r.logger.Error("failed to persist LLM config", "error", err)
	}
}
