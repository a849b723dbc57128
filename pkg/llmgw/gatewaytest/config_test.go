package gatewaytest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	data := []byte(`
scenarios:
  - name: flaky
    protocol: openai
    status: 500
    body: "upstream exploded"
  - name: chat
    protocol: openai
    fragments: ["a", "b"]
    raw_lines: ["data: {bad"]
`)

	script, err := ParseScript(data)

	require.NoError(t, err)
	require.Len(t, script.Scenarios, 2)
	assert.Equal(t, 500, script.Scenarios[0].Status)
	assert.Equal(t, "upstream exploded", script.Scenarios[0].Body)
	assert.Equal(t, []string{"a", "b"}, script.Scenarios[1].Fragments)
	assert.Equal(t, []string{"data: {bad"}, script.Scenarios[1].RawLines)

	// 同协议多个场景时第一个胜出
	assert.Equal(t, "flaky", script.scenarioFor(ProtocolOpenAI).Name)
	assert.Nil(t, script.scenarioFor(ProtocolGemini))
}

func TestParseScript_Invalid(t *testing.T) {
	_, err := ParseScript([]byte("scenarios: {not a list"))

	assert.Error(t, err)
}

func TestDefaultScript(t *testing.T) {
	script, err := DefaultScript()

	require.NoError(t, err)
	// 每种协议至少一个成功场景
	for _, protocol := range []string{ProtocolOpenAI, ProtocolGemini, ProtocolOllama, ProtocolTags} {
		assert.NotNil(t, script.scenarioFor(protocol), "protocol %s", protocol)
	}
}

func TestLoadScript_MissingFile(t *testing.T) {
	_, err := LoadScript("does-not-exist.yaml")

	assert.Error(t, err)
}
