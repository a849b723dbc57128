package llmgw

// ═══════════════════════════════════════════════════════════════════════════
// 类型转换辅助函数
// ═══════════════════════════════════════════════════════════════════════════

// GetString 将 any 类型安全转换为 string
//
// 非字符串类型返回 ""（空字符串）。用于解析 API 响应 map 中的字符串字段。
func GetString(val any) string {
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

// GetMap 将 any 类型安全转换为 map[string]any
//
// 非 map 类型返回 nil。用于逐层下钻 API 响应结构。
func GetMap(val any) map[string]any {
	if m, ok := val.(map[string]any); ok {
		return m
	}
	return nil
}

// GetSlice 将 any 类型安全转换为 []any
//
// 非 slice 类型返回 nil。用于解析 choices、candidates 等数组字段。
func GetSlice(val any) []any {
	if s, ok := val.([]any); ok {
		return s
	}
	return nil
}
