package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/artrec/core"
)

func appendNode(name string, id int64) Node {
	return NodeFunc{
		NodeName: name,
		NodeKind: KindRecall,
		Fn: func(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
			return append(items, core.NewItem(id)), nil
		},
	}
}

func TestPipeline_Run(t *testing.T) {
	var seen []string
	p := &Pipeline{
		Nodes: []Node{appendNode("a", 1), appendNode("b", 2)},
		Hooks: []Hook{func(n Node, in, out int, _ time.Duration, err error) {
			seen = append(seen, n.Name())
		}},
	}
	items, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, []string{"a", "b"}, seen)

	extended := p.Append(appendNode("c", 3))
	assert.Len(t, p.Nodes, 2)
	assert.Len(t, extended.Nodes, 3)
}

func TestPipeline_RunError(t *testing.T) {
	boom := errors.New("boom")
	p := &Pipeline{Nodes: []Node{
		NodeFunc{NodeName: "fail", Fn: func(context.Context, *core.RecommendContext, []*core.Item) ([]*core.Item, error) {
			return nil, boom
		}},
		appendNode("never", 1),
	}}
	_, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fail")
}

func TestConfig_LoadAndBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pipeline:
  name: post
  nodes:
    - type: test.append
      config:
        id: 9
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "post", cfg.Pipeline.Name)

	factory := NewNodeFactory()
	factory.Register("test.append", func(c map[string]any) (Node, error) {
		return appendNode("test.append", int64(c["id"].(int))), nil
	})
	p, err := cfg.BuildPipeline(factory)
	require.NoError(t, err)
	items, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(9), items[0].ID)

	cfg.Pipeline.Nodes = append(cfg.Pipeline.Nodes, NodeConfig{Type: "unknown"})
	_, err = cfg.BuildPipeline(factory)
	assert.Error(t, err)
}

func TestLoadConfig_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pipeline":{"name":"post","nodes":[{"type":"rerank.topn","config":{"n":3}}]}}`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Pipeline.Nodes, 1)
	assert.Equal(t, "rerank.topn", cfg.Pipeline.Nodes[0].Type)
	assert.EqualValues(t, 3, cfg.Pipeline.Nodes[0].Config["n"])

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
