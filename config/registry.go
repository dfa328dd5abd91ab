// Package config 维护配置驱动的 Node 注册表。
//
// 内置 Node（filter、rank.blend、rerank.diversity、rerank.topn）在 config/builders 的 init 中注册，
// 使用前需要 import _ "github.com/rushteam/artrec/config/builders"（engine 包已经导入）。
package config

import (
	"fmt"
	"slices"
	"sync"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
)

type registry struct {
	mu       sync.RWMutex
	builders map[string]pipeline.NodeBuilder
}

var defaultRegistry = &registry{builders: make(map[string]pipeline.NodeBuilder)}

// Register 注册一种 Node 类型。类型名为空、builder 为 nil 或重复注册时 panic。
func Register(typeName string, builder pipeline.NodeBuilder) {
	if typeName == "" || builder == nil {
		panic("config: Register with empty type name or nil builder")
	}
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	if _, dup := defaultRegistry.builders[typeName]; dup {
		panic("config: Register called twice for " + typeName)
	}
	defaultRegistry.builders[typeName] = builder
}

// Lookup 返回已注册的 builder。
func Lookup(typeName string) (pipeline.NodeBuilder, bool) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	b, ok := defaultRegistry.builders[typeName]
	return b, ok
}

// SupportedTypes 返回已注册的类型（升序）。
func SupportedTypes() []string {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	types := make([]string, 0, len(defaultRegistry.builders))
	for t := range defaultRegistry.builders {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// DefaultFactory 返回包含全部已注册类型的 NodeFactory。
func DefaultFactory() *pipeline.NodeFactory {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	f := pipeline.NewNodeFactory()
	for t, b := range defaultRegistry.builders {
		f.Register(t, b)
	}
	return f
}

// ValidatePipelineConfig 检查所有 Node 类型都已注册，未注册时返回 NOT_SUPPORTED 错误并列出支持的类型。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}
	for i, nc := range cfg.Pipeline.Nodes {
		if _, ok := Lookup(nc.Type); !ok {
			return core.NewDomainError(core.ModuleEngine, core.ErrorCodeNotSupported,
				fmt.Sprintf("config: node %d has unsupported type %q (supported: %v)", i, nc.Type, SupportedTypes()))
		}
	}
	return nil
}
