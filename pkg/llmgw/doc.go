// Package llmgw 提供多后端 LLM Provider 的统一网关抽象
//
// 本包将多个互不兼容的 LLM 后端（云端 Chat Completion API、单次生成 API、
// 本地流式守护进程）统一到一个抽象之下：配置 Provider、选择激活的
// Provider，然后通过统一的流式生成入口调用，无需关心底层协议差异。
//
// 核心类型与组件：
//   - [ProviderKind]: Provider 种类枚举（封闭集合）
//   - [ProviderConfig]: 单个 Provider 的配置
//   - [Registry]: Provider 注册表，所有配置变更的唯一入口
//   - [Store]: 注册表的 JSON 持久化层
//   - [Session]: 共享的长连接 HTTP 会话管理器
//   - [HealthChecker]: 本地 Provider 健康探测
//   - [Adapter]: 协议适配器接口
//
// # 三种线协议
//
// 网关需要调和三种不同的上游协议：
//   - OpenAI 兼容（OpenAI/Groq/Meta）: SSE 流式，"data:" 前缀，[DONE] 终止
//   - Gemini: 单次 JSON 响应，无论是否请求流式
//   - Ollama 本地: NDJSON 流式，done 字段终止
//
// # 环境变量
//
// 加载配置时支持覆盖本地 Provider 的 Base URL（按优先级）：
//   - MIIA_OLLAMA_URL
//   - OLLAMA_BASE_URL
//
// # 错误传播策略
//
// generate 调用永远不会向外抛出错误：每种失败模式都转换为一个可读的
// 文本片段或结构化结果对象。上游 4xx/5xx、网络不可达、无激活 Provider
// 等情况都以片段形式呈现给消费者；重试策略由调用方自行决定。
//
// # 协议实现
//
// 具体的适配器实现位于子包：
//   - [pkg/llmgw/protocol/openai]: OpenAI 兼容协议（OpenAI/Groq/Meta）
//   - [pkg/llmgw/protocol/gemini]: Google Gemini 协议
//   - [pkg/llmgw/protocol/ollama]: Ollama 本地 NDJSON 协议
//
// 调度与组合入口位于 [pkg/llmgw/dispatch]，测试用的脚本化上游位于
// [pkg/llmgw/gatewaytest]。
//
// # 包文件组织
//
//   - provider_kind.go: ProviderKind 枚举与默认配置
//   - config.go: ProviderConfig、列表投影
//   - registry.go: Registry 注册表操作
//   - store.go: JSON 持久化与加载策略
//   - session.go: HTTP 会话管理器
//   - health.go: 本地 Provider 健康探测
//   - adapter.go: Adapter 接口与生成请求
//   - models.go: 各 Provider 的可选模型目录
package llmgw
