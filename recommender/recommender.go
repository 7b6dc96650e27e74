// Package recommender 定义打分契约与四个内置打分变体：
// 热门度（popularity）、Slope One 协同过滤（实时/预计算两种）、订单共现（order_based）。
// 变体之间共享同一份训练产物（core.Model），只各自实现打分函数。
package recommender

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/shoprec/core"
)

// Algorithm 是打分变体的枚举标签。变体的选择由标签驱动，
// 而不是依赖具体类型身份的反射查表。
type Algorithm string

const (
	Popularity           Algorithm = "popularity"             // 全局购买频次，与用户无关
	SlopeOne             Algorithm = "slope_one"              // Slope One 协同过滤，请求时直接从购买矩阵计算
	PreprocessedSlopeOne Algorithm = "slope_one_preprocessed" // Slope One 协同过滤，训练期预计算偏差/频次表
	OrderBased           Algorithm = "order_based"            // 历史订单内的商品共现
)

// ParseAlgorithm 解析算法标签。未知标签返回 INVALID_INPUT。
func ParseAlgorithm(s string) (Algorithm, error) {
	algo := Algorithm(s)
	registryMu.RLock()
	_, ok := registry[algo]
	registryMu.RUnlock()
	if !ok {
		return "", core.NewDomainError(core.ModuleRecommender, core.ErrorCodeInvalidInput,
			fmt.Sprintf("recommender: unknown algorithm %q (supported: %v)", s, Algorithms()))
	}
	return algo, nil
}

// Recommender 是每个打分变体唯一必须实现的能力：
// 对一次请求产出 商品ID → 分数 的 ScoreMap。
//
// 契约约束：
//   - 不得修改 Model（购买矩阵/用户历史/商品集合只读）
//   - 可以返回空 map；不得返回 NaN/±Inf 分数
//   - rctx.UserID 可能是匿名（AnonymousUser）：个性化变体此时退化为
//     与用户无关的策略，而不是报错
//   - ScoreMap 每次调用新建，不跨请求复用或缓存
type Recommender interface {
	Name() string
	Score(ctx context.Context, rctx *core.RecommendContext) (map[int64]float64, error)
}

// Preprocessor 是可选的训练钩子：需要从 Model 派生辅助结构
// （例如相似度/偏差表）的变体实现它，训练管线在模型构建完成后调用。
// 派生结构归变体实例所有，只会被下一次完整训练替换。
type Preprocessor interface {
	Preprocess(ctx context.Context) error
}

// Factory 根据训练产物构造一个变体实例。
// 每次训练都会构造全新实例，派生结构随快照整体发布。
type Factory func(model *core.Model) Recommender

var (
	registry   = make(map[Algorithm]Factory)
	registryMu sync.RWMutex
)

// Register 注册一个打分变体的构造逻辑。内置变体在各自文件的 init 中注册。
func Register(algo Algorithm, factory Factory) {
	if algo == "" || factory == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[algo] = factory
}

// Algorithms 返回当前已注册的变体标签列表（排序），用于错误提示与校验。
func Algorithms() []Algorithm {
	registryMu.RLock()
	defer registryMu.RUnlock()
	algos := make([]Algorithm, 0, len(registry))
	for a := range registry {
		algos = append(algos, a)
	}
	sort.Slice(algos, func(i, j int) bool { return algos[i] < algos[j] })
	return algos
}

// BuildAll 用同一份训练产物构造全部已注册变体。
func BuildAll(model *core.Model) map[Algorithm]Recommender {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make(map[Algorithm]Recommender, len(registry))
	for algo, factory := range registry {
		out[algo] = factory(model)
	}
	return out
}
