// Package conv 解析 YAML/JSON 节点配置中的松散类型（map[string]any、[]any）。
// YAML 解码整数得到 int，JSON 解码得到 float64，这里统一处理。
package conv

import (
	"fmt"
	"strconv"
)

// ToFloat64 接受各种整数与浮点类型。
func ToFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// ToInt64 接受整数、浮点（截断）和十进制数字字符串。
func ToInt64(v any) (int64, bool) {
	if s, ok := v.(string); ok {
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err == nil
	}
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case uint64:
		return int64(n), true
	}
	if f, ok := ToFloat64(v); ok {
		return int64(f), true
	}
	return 0, false
}

// Get 按 key 取 T，缺失或类型不符时返回 def。
func Get[T any](m map[string]any, key string, def T) T {
	if v, ok := m[key].(T); ok {
		return v
	}
	return def
}

// Int 按 key 取整数，缺失或无法转换时返回 def。
func Int(m map[string]any, key string, def int) int {
	if n, ok := ToInt64(m[key]); ok {
		return int(n)
	}
	return def
}

// Int64s 把 []any 转为 []int64，无法转换的元素跳过；v 不是 []any 时返回 nil。
func Int64s(v any) []int64 {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(raw))
	for _, e := range raw {
		if n, ok := ToInt64(e); ok {
			out = append(out, n)
		}
	}
	return out
}

// FloatMap 把 map[string]any 转为 map[string]float64，任一值不是数字时报错。
func FloatMap(v any) (map[string]float64, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}
	out := make(map[string]float64, len(raw))
	for k, e := range raw {
		f, ok := ToFloat64(e)
		if !ok {
			return nil, fmt.Errorf("invalid number for %s: %v", k, e)
		}
		out[k] = f
	}
	return out, nil
}
