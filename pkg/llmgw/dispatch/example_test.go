package dispatch_test

import (
	"context"
	"fmt"

	"github.com/lwmacct/260825-go-pkg-llmgw/pkg/llmgw"
	"github.com/lwmacct/260825-go-pkg-llmgw/pkg/llmgw/dispatch"
)

// 典型用法：配置一个远端 Provider 并流式消费生成结果。
func Example() {
	gw := dispatch.Open("data/llm_config.json", nil)
	defer gw.Close()

	gw.Registry().SetAPIKey(llmgw.KindOpenAI, "sk-xxx")
	gw.Registry().SetActiveProvider(llmgw.KindOpenAI)

	req := llmgw.NewRequest("Why is the sky blue?")
	req.Stream = true
	for fragment := range gw.Generate(context.Background(), req) {
		fmt.Print(fragment)
	}
}
