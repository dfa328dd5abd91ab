package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Config 是 Pipeline 配置文件的顶层结构。
type Config struct {
	Pipeline Spec `yaml:"pipeline" json:"pipeline"`
}

// Spec 描述一条后处理链。
type Spec struct {
	Name  string       `yaml:"name" json:"name"`
	Nodes []NodeConfig `yaml:"nodes" json:"nodes"`
}

// NodeConfig 是单个 Node 的类型与参数，Type 须在 NodeFactory 中注册。
type NodeConfig struct {
	Type   string         `yaml:"type" json:"type"`
	Config map[string]any `yaml:"config" json:"config"`
}

// LoadConfig 读取 Pipeline 配置文件，.json 按 JSON 解析，其余按 YAML 解析。
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read %s: %w", path, err)
	}
	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("pipeline: decode %s: %w", path, err)
	}
	return &cfg, nil
}

// BuildPipeline 是 c.Pipeline.Build 的简写。
func (c *Config) BuildPipeline(factory *NodeFactory) (*Pipeline, error) {
	return c.Pipeline.Build(factory)
}

// Build 按顺序构建 Spec 中的 Node。
func (s Spec) Build(factory *NodeFactory) (*Pipeline, error) {
	p := &Pipeline{Nodes: make([]Node, 0, len(s.Nodes))}
	for i, nc := range s.Nodes {
		node, err := factory.Build(nc.Type, nc.Config)
		if err != nil {
			return nil, fmt.Errorf("pipeline %q node %d (%s): %w", s.Name, i, nc.Type, err)
		}
		p.Nodes = append(p.Nodes, node)
	}
	return p, nil
}

// NodeBuilder 根据参数构建 Node，cfg 可能为 nil。
type NodeBuilder func(cfg map[string]any) (Node, error)

// NodeFactory 按类型名查找 NodeBuilder。
// 全局注册表在 config 包中，这里只是一次构建所用的快照。
type NodeFactory struct {
	builders map[string]NodeBuilder
}

func NewNodeFactory() *NodeFactory {
	return &NodeFactory{builders: make(map[string]NodeBuilder)}
}

func (f *NodeFactory) Register(nodeType string, builder NodeBuilder) {
	f.builders[nodeType] = builder
}

func (f *NodeFactory) Build(nodeType string, cfg map[string]any) (Node, error) {
	if builder, ok := f.builders[nodeType]; ok {
		return builder(cfg)
	}
	return nil, fmt.Errorf("unknown node type %q", nodeType)
}
