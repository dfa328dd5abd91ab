package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/artrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
		cel.CrossTypeNumericComparisons(true),
	)
}

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Program 是编译好的规则表达式，使用 CEL (Common Expression Language) 语法。
// 编译一次，可被多个请求并发复用。
//
// 可用变量：
//   - item.id / item.score / item.match_score / item.algorithm
//   - item.category / item.price / item.price_range / item.artist_id / item.status / item.popularity
//   - label.<key>（Label 的 Value；不存在的 key 访问会报错，可先用 "key" in label 判断）
//   - rctx.user_id / rctx.limit / rctx.params
//
// 示例：
//   - `item.price <= 500.0`
//   - `item.category != "digital" || item.match_score > 80.0`
//   - `!("blocked" in label)`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式，表达式必须返回 bool。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if ast.OutputType() != cel.BoolType && ast.OutputType() != cel.DynType {
		return nil, fmt.Errorf("expression must return bool, got %s", ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string { return p.expr }

// Evaluate 对单个候选求值。
func (p *Program) Evaluate(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

func buildInput(it *core.Item, rctx *core.RecommendContext) map[string]any {
	labels := make(map[string]any, len(it.Labels))
	for k, v := range it.Labels {
		labels[k] = v.Value
	}

	item := map[string]any{
		"id":          it.ID,
		"score":       it.Score,
		"match_score": it.MatchScore(),
		"algorithm":   string(it.Algorithm),
		"category":    it.Category(),
		"price":       0.0,
		"price_range": "",
		"artist_id":   int64(0),
		"status":      "",
		"popularity":  0.0,
	}
	if a := it.Artwork; a != nil {
		item["price"] = a.Price
		item["price_range"] = string(a.PriceRange)
		item["artist_id"] = a.ArtistID
		item["status"] = string(a.Status)
		item["popularity"] = a.PopularityScore
	}

	ctxInput := map[string]any{
		"user_id": int64(0),
		"limit":   int64(0),
		"params":  map[string]any{},
	}
	if rctx != nil {
		ctxInput["user_id"] = rctx.UserID
		ctxInput["limit"] = int64(rctx.Limit)
		if rctx.Params != nil {
			ctxInput["params"] = rctx.Params
		}
	}

	return map[string]any{
		"item":  item,
		"label": labels,
		"rctx":  ctxInput,
	}
}
