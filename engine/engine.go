// Package engine 是训练与推荐的编排层：串联数据变换管线，维护
// untrained → trained 状态机，把模型快照以原子交换的方式发布给并发读者。
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/dataset"
	"github.com/rushteam/shoprec/filter"
	"github.com/rushteam/shoprec/pipeline"
	"github.com/rushteam/shoprec/pkg/log"
	"github.com/rushteam/shoprec/rank"
	"github.com/rushteam/shoprec/recommender"
	"github.com/rushteam/shoprec/rerank"
)

// MaxRecommendations 是一次推荐最多返回的商品数。所有变体共用同一上限。
const MaxRecommendations = 10

// TrainStats 是一次训练的观测数据。纯统计用途，不参与打分。
type TrainStats struct {
	Users          int           // 模型中的用户数
	Products       int           // 训练期间观察到的商品数
	Orders         int           // 归入模型的订单数
	OrphanedOrders int           // 因缺少订单元信息被丢弃的订单数
	Duration       time.Duration // 训练耗时
	TrainedAt      time.Time
}

// snapshot 是一次训练的完整产物：模型 + 每个变体的实例（含其派生结构）。
// 整体构建、整体发布，读者绝不会看到新旧混合的状态。
type snapshot struct {
	model        *core.Model
	recommenders map[recommender.Algorithm]recommender.Recommender
	stats        TrainStats
}

// Engine 对外暴露两个操作：Train 与 Recommend。
//
// 并发模型：
//   - Train 持有互斥锁，同一时刻只有一次训练；模型在旁路构建完成后
//     用原子指针一步交换发布
//   - Recommend 只读当前快照，每次请求只解引用一次，多线程并发调用
//     互不阻塞，也不会被进行中的训练阻塞
//   - 训练中途失败时快照不交换，引擎停留在上一个完整模型
//     （从未训练成功则保持 untrained）
type Engine struct {
	cfg   Config
	chain *pipeline.Pipeline

	trainMu sync.Mutex
	current atomic.Pointer[snapshot]
}

// New 创建引擎。配置中的 CEL 规则在这里编译，规则非法直接报错。
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	filters := []filter.Filter{&filter.CartFilter{}}
	if len(cfg.Rules) > 0 {
		rule, err := filter.NewRuleFilter(cfg.Rules)
		if err != nil {
			return nil, err
		}
		filters = append(filters, rule)
	}

	return &Engine{
		cfg: cfg,
		chain: &pipeline.Pipeline{
			Nodes: []pipeline.Node{
				&filter.FilterNode{Filters: filters},
				&rank.SortNode{},
				&rerank.TopNNode{N: MaxRecommendations},
			},
		},
	}, nil
}

// Train 用整批订单数据重建模型并原子发布。
//
// 步骤：聚合订单行 → 归属用户 → 构建购买矩阵 → 各变体预处理钩子 → 发布。
// 只会因输入非法失败（INVALID_INPUT）；失败时引擎状态保持不变。
func (e *Engine) Train(ctx context.Context, orderItems []core.OrderItem, orders []core.OrderMeta) error {
	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	start := time.Now()

	purchaseSets, products, err := dataset.Aggregate(orderItems, !e.cfg.AllowNonPositiveQuantity)
	if err != nil {
		return err
	}

	histories, orphans := dataset.AttachUsers(purchaseSets, orders)
	if orphans > 0 {
		log.Logger().Warn("dropped order items without order metadata",
			zap.Int("orphaned_orders", orphans))
	}

	matrix := dataset.BuildMatrix(histories)

	model := &core.Model{
		Products:  products,
		Histories: histories,
		Matrix:    matrix,
	}

	recommenders := recommender.BuildAll(model)

	// 变体的预处理钩子并发执行，任何一个失败都放弃本次快照
	eg, egctx := errgroup.WithContext(ctx)
	for _, rec := range recommenders {
		if p, ok := rec.(recommender.Preprocessor); ok {
			eg.Go(func() error {
				return p.Preprocess(egctx)
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	orderCount := 0
	for _, bucket := range histories {
		orderCount += len(bucket)
	}
	stats := TrainStats{
		Users:          len(histories),
		Products:       products.Cardinality(),
		Orders:         orderCount,
		OrphanedOrders: orphans,
		Duration:       time.Since(start),
		TrainedAt:      time.Now(),
	}

	e.current.Store(&snapshot{
		model:        model,
		recommenders: recommenders,
		stats:        stats,
	})

	log.Logger().Info("training finished",
		zap.Int("users", stats.Users),
		zap.Int("products", stats.Products),
		zap.Int("orders", stats.Orders),
		zap.Int("orphaned_orders", stats.OrphanedOrders),
		zap.Duration("duration", stats.Duration))

	return nil
}

// Trained 报告引擎是否已有发布过的模型。
func (e *Engine) Trained() bool {
	return e.current.Load() != nil
}

// Stats 返回最近一次成功训练的观测数据。
func (e *Engine) Stats() (TrainStats, bool) {
	snap := e.current.Load()
	if snap == nil {
		return TrainStats{}, false
	}
	return snap.stats, true
}

// Recommend 对当前购物车返回最多 MaxRecommendations 个推荐商品 ID，
// 按分数降序、同分按商品 ID 升序排列，购物车内商品一律排除。
//
//   - algo 为空时使用配置的默认算法；未知标签返回 INVALID_INPUT
//   - 引擎未训练或购物车为空时返回空列表，不视为错误
func (e *Engine) Recommend(
	ctx context.Context,
	rctx *core.RecommendContext,
	algo recommender.Algorithm,
) ([]int64, error) {
	if algo == "" {
		algo = recommender.Algorithm(e.cfg.Algorithm)
	}
	algo, err := recommender.ParseAlgorithm(string(algo))
	if err != nil {
		return nil, err
	}

	snap := e.current.Load()
	if snap == nil {
		return []int64{}, nil
	}
	if rctx == nil || len(rctx.Cart) == 0 {
		return []int64{}, nil
	}

	// 快照里的变体集合在训练时固定，训练之后才注册的变体要等
	// 下一次 Train 才会进入快照，期间视同未就绪
	rec, ok := snap.recommenders[algo]
	if !ok {
		return []int64{}, nil
	}
	scores, err := rec.Score(ctx, rctx)
	if err != nil {
		return nil, err
	}

	items, err := e.chain.Run(ctx, rctx, core.ItemsFromScores(scores))
	if err != nil {
		return nil, err
	}

	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out, nil
}
