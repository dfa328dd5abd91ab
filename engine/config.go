package engine

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/artrec/config"
	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pipeline"
)

// Config 是推荐引擎的运行参数（支持 YAML）。
//
// 示例：
//
//	algorithm_version: v1
//	cache_ttl: 6h
//	profile_window: 720h
//	similarity_threshold: 0.3
//	max_neighbors: 5
//	weights:
//	  content-based: 0.7
//	  collaborative: 0.3
//	  popularity: 1.0
//	default_limit: 12
//	diversity_floor: 6
//	pipeline:
//	  name: post
//	  nodes:
//	    - type: filter
//	      config:
//	        filters:
//	          - type: availability
//	    - type: rerank.diversity
//	      config:
//	        min_fill: 6
type Config struct {
	AlgorithmVersion    string             `yaml:"algorithm_version"`
	CacheTTL            time.Duration      `yaml:"cache_ttl"`
	ProfileWindow       time.Duration      `yaml:"profile_window"`
	SimilarityThreshold float64            `yaml:"similarity_threshold"`
	MaxNeighbors        int                `yaml:"max_neighbors"`
	Weights             map[string]float64 `yaml:"weights"`
	DefaultLimit        int                `yaml:"default_limit"`
	DiversityFloor      int                `yaml:"diversity_floor"`

	// RecallTimeout 是单个召回源的超时时间，0 表示不限
	RecallTimeout time.Duration `yaml:"recall_timeout"`

	// BlacklistKey 是运营黑名单在存储中的 key
	BlacklistKey string `yaml:"blacklist_key"`

	// Pipeline 是后处理链（已购过滤之后执行），为空时使用 diversity → topn
	Pipeline *pipeline.Spec `yaml:"pipeline"`
}

// DefaultConfig 返回 v1 算法的默认参数。
func DefaultConfig() Config {
	return Config{
		AlgorithmVersion:    core.DefaultAlgorithmVersion,
		CacheTTL:            core.DefaultCacheTTL,
		ProfileWindow:       core.DefaultProfileWindow,
		SimilarityThreshold: core.DefaultSimilarityThreshold,
		MaxNeighbors:        core.DefaultMaxNeighbors,
		Weights: map[string]float64{
			string(core.AlgorithmContent):       core.DefaultContentWeight,
			string(core.AlgorithmCollaborative): core.DefaultCollaborativeWeight,
			string(core.AlgorithmPopularity):    core.DefaultPopularityWeight,
		},
		DefaultLimit:   core.DefaultLimit,
		DiversityFloor: core.DefaultDiversityFloor,
		BlacklistKey:   DefaultBlacklistKey,
	}
}

// DefaultBlacklistKey 是运营黑名单的默认 key。
const DefaultBlacklistKey = "blacklist:artworks"

// LoadConfig 从 YAML 文件加载配置，未出现的字段保留默认值。
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig 解析 YAML 配置，未出现的字段保留默认值。
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 校验参数范围与后处理链中的 Node 类型。
func (c Config) Validate() error {
	switch {
	case c.CacheTTL < 0:
		return fmt.Errorf("cache_ttl must not be negative")
	case c.ProfileWindow < 0:
		return fmt.Errorf("profile_window must not be negative")
	case c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1:
		return fmt.Errorf("similarity_threshold must be within [0, 1]")
	case c.DefaultLimit < 0:
		return fmt.Errorf("default_limit must not be negative")
	}
	if c.Pipeline != nil {
		return config.ValidatePipelineConfig(&pipeline.Config{Pipeline: *c.Pipeline})
	}
	return nil
}

func (c Config) weights() map[core.Algorithm]float64 {
	out := make(map[core.Algorithm]float64, len(c.Weights))
	for k, v := range c.Weights {
		out[core.Algorithm(k)] = v
	}
	return out
}

func (c Config) algorithmVersion() string {
	if c.AlgorithmVersion == "" {
		return core.DefaultAlgorithmVersion
	}
	return c.AlgorithmVersion
}

func (c Config) cacheTTL() time.Duration {
	if c.CacheTTL <= 0 {
		return core.DefaultCacheTTL
	}
	return c.CacheTTL
}

func (c Config) profileWindow() time.Duration {
	if c.ProfileWindow <= 0 {
		return core.DefaultProfileWindow
	}
	return c.ProfileWindow
}

func (c Config) defaultLimit() int {
	if c.DefaultLimit <= 0 {
		return core.DefaultLimit
	}
	return c.DefaultLimit
}

func (c Config) blacklistKey() string {
	if c.BlacklistKey == "" {
		return DefaultBlacklistKey
	}
	return c.BlacklistKey
}
