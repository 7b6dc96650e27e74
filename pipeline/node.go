package pipeline

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// Kind 用于标记 Node 类型，方便观测/治理（例如按阶段打点）。
type Kind string

const (
	KindFilter Kind = "filter" // 过滤阶段：剔除购物车内商品与规则不允许的候选
	KindRank   Kind = "rank"   // 排序阶段：按分数降序、同分按商品 ID 升序
	KindReRank Kind = "rerank" // 重排阶段：截断等最终修饰
)

// Node 是推荐后处理链的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便过滤剔除、排序重排、TopN 截断等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
