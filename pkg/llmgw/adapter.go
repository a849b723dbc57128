package llmgw

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// ═══════════════════════════════════════════════════════════════════════════
// 生成请求与适配器接口
// ═══════════════════════════════════════════════════════════════════════════

const (
	// DefaultMaxTokens 默认最大生成 tokens
	DefaultMaxTokens = 2000

	// DefaultTemperature 默认采样温度
	DefaultTemperature = 0.7
)

// Request 统一的生成请求
//
// Temperature 的零值会被原样传给上游（0 是合法温度）；
// 需要默认值时使用 [NewRequest] 构造。
type Request struct {
	// Prompt 用户输入
	Prompt string

	// System 系统提示（可选）
	System string

	// MaxTokens 最大生成 tokens，<= 0 时由调度器回填默认值
	MaxTokens int

	// Temperature 采样温度
	Temperature float64

	// Stream 是否流式输出
	//
	// 对 Gemini 无效（始终单次响应）；对 Ollama 只影响片段何时
	// 浮出给消费者，不改变线上行为。
	Stream bool
}

// NewRequest 创建带默认参数的生成请求
func NewRequest(prompt string) *Request {
	return &Request{
		Prompt:      prompt,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// Adapter 协议适配器接口
//
// 每种上游线协议一个实现，注册在调度器的查找表中——新增后端只需
// 新增一个适配器模块。
//
// 契约：
//   - 返回的通道是有限的、不可重放的；每次调用打开一次全新的上游交换
//   - 任何异常（超时、DNS 失败、非 200 …）都转换为恰好一个可读的
//     错误片段，绝不向调用方抛出
//   - 消费者可随时停止读取：通过取消 ctx 放弃流；适配器保证在所有
//     退出路径上释放上游 HTTP 响应
type Adapter interface {
	// Generate 发起一次生成，返回文本片段通道
	//
	// 通道在生成结束（正常完成、错误、消费者取消）后关闭。
	Generate(ctx context.Context, rc *resty.Client, cfg *ProviderConfig, req *Request) <-chan string
}

// Emit 将一个片段送入输出通道
//
// 消费者已取消时返回 false，适配器应立即停止生产。
func Emit(ctx context.Context, out chan<- string, fragment string) bool {
	select {
	case out <- fragment:
		return true
	case <-ctx.Done():
		return false
	}
}
