package pipeline

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// Pipeline 把推荐结果的后处理拆成可组合的 Node 链：
// 打分变体产出候选后，依次经过过滤 → 排序 → 截断。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
