package utils

import (
	"slices"
	"strings"
)

// Label 是挂在作品或请求上的可解释标签（召回来源、排序模型、过滤统计等）。
// 同名 Label 合并后 Value 以 '|' 分隔、Source 以 ',' 分隔，均去重并保持先后顺序。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Values 返回合并后的各个取值。
func (l Label) Values() []string {
	if l.Value == "" {
		return nil
	}
	return strings.Split(l.Value, "|")
}

// MergeLabel 合并同名 Label，已出现过的取值不重复追加。
func MergeLabel(existing, incoming Label) Label {
	return Label{
		Value:  joinUnique(existing.Value, incoming.Value, "|"),
		Source: joinUnique(existing.Source, incoming.Source, ","),
	}
}

func joinUnique(a, b, sep string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	parts := strings.Split(a, sep)
	for _, p := range strings.Split(b, sep) {
		if !slices.Contains(parts, p) {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, sep)
}
