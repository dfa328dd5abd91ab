package filter

import (
	"context"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/pkg/dsl"
)

// ExprFilter 使用 CEL 规则过滤：表达式为 true 的作品保留，false 的过滤。
// 例如 `item.price <= 5000.0 && item.status != "sold"`。
type ExprFilter struct {
	program *dsl.Program
}

// NewExprFilter 编译表达式，编译失败返回错误。
func NewExprFilter(expr string) (*ExprFilter, error) {
	p, err := dsl.Compile(expr)
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "filter: invalid expression", err)
	}
	return &ExprFilter{program: p}, nil
}

func (f *ExprFilter) Name() string { return "filter.expr" }

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	keep, err := f.program.Evaluate(item, rctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
