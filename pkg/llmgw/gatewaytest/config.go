// Package gatewaytest 提供脚本化的假上游服务器，用于网关测试
//
// 通过 YAML 脚本描述各协议的响应场景，[Upstream] 按请求路径匹配场景
// 并以对应协议的帧格式（SSE / 单次 JSON / NDJSON）回放。
//
// 使用示例：
//
//	script, _ := gatewaytest.DefaultScript()
//	upstream := gatewaytest.NewUpstream(script)
//	defer upstream.Close()
//
//	cfg := llmgw.KindOpenAI.DefaultConfig()
//	cfg.BaseURL = upstream.URL
package gatewaytest

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed testdata/script.yaml
var exampleScript []byte

// 场景协议
const (
	ProtocolOpenAI = "openai"
	ProtocolGemini = "gemini"
	ProtocolOllama = "ollama"
	ProtocolTags   = "tags"
)

// Script 上游响应脚本
type Script struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario 单个响应场景
type Scenario struct {
	// Name 场景名称（仅用于可读性）
	Name string `yaml:"name"`

	// Protocol 场景对应的协议: openai | gemini | ollama | tags
	Protocol string `yaml:"protocol"`

	// Status 响应状态码，0 表示 200
	Status int `yaml:"status"`

	// Body 原始响应体；非空时直接返回，跳过帧格式渲染
	Body string `yaml:"body"`

	// Fragments 按协议帧格式逐段发送的文本片段
	Fragments []string `yaml:"fragments"`

	// RawLines 追加在正常帧之前的原始行（用于注入坏帧）
	RawLines []string `yaml:"raw_lines"`

	// Models tags 协议的模型名列表
	Models []string `yaml:"models"`
}

// ParseScript 从字节解析脚本
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, nil
}

// LoadScript 从文件加载脚本
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// DefaultScript 返回内嵌的示例脚本
func DefaultScript() (*Script, error) {
	return ParseScript(exampleScript)
}

// scenarioFor 返回第一个匹配协议的场景
func (s *Script) scenarioFor(protocol string) *Scenario {
	for i := range s.Scenarios {
		if s.Scenarios[i].Protocol == protocol {
			return &s.Scenarios[i]
		}
	}
	return nil
}
