package filter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/shoprec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// RuleFilter 是基于 CEL (Common Expression Language) 的规则过滤器。
// 每条表达式是一条排除规则：求值为 true 的候选会被过滤掉。
// 表达式在构造时编译一次，求值线程安全，可多次复用。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.score <= 0.0 / item.score < 1.5
//   - 商品：item.id == 42 / item.id in [1, 2, 3]
//   - 上下文：rctx.user_id == 0 && item.score < 2.0
//   - 购物车：size(rctx.cart_product_ids) >= 3 && item.score < 1.0
//
// 示例：
//   - `item.score <= 0.0` → 过滤掉非正分候选
//   - `rctx.user_id == 0 && item.score < 1.0` → 匿名请求只保留高分候选
type RuleFilter struct {
	exprs    []string
	programs []cel.Program
}

// NewRuleFilter 编译一组排除规则。任何一条编译失败都直接返回错误。
func NewRuleFilter(exprs []string) (*RuleFilter, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	programs := make([]cel.Program, 0, len(exprs))
	for _, expr := range exprs {
		if expr == "" {
			continue
		}
		ast, issues := env.Compile(expr)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("compile rule %q: %w", expr, issues.Err())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("program rule %q: %w", expr, err)
		}
		programs = append(programs, prg)
	}

	return &RuleFilter{exprs: exprs, programs: programs}, nil
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if len(f.programs) == 0 {
		return false, nil
	}

	input := buildRuleInput(rctx, item)
	for _, prg := range f.programs {
		out, _, err := prg.Eval(input)
		if err != nil {
			// 规则求值失败时保留候选，不中断整条链路
			continue
		}
		result, ok := out.Value().(bool)
		if !ok {
			continue
		}
		if result {
			return true, nil
		}
	}
	return false, nil
}

// buildRuleInput 构建 CEL 表达式的输入数据
func buildRuleInput(rctx *core.RecommendContext, item *core.Item) map[string]any {
	var userID int64
	var params map[string]any
	cartIDs := []int64{}
	if rctx != nil {
		userID = rctx.UserID
		params = rctx.Params
		cartIDs = rctx.CartProductIDs()
	}
	if params == nil {
		params = map[string]any{}
	}

	return map[string]any{
		"item": map[string]any{
			"id":    item.ID,
			"score": item.Score,
		},
		"rctx": map[string]any{
			"user_id":          userID,
			"params":           params,
			"cart_product_ids": cartIDs,
		},
	}
}
