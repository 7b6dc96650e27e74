// Package shoprec 是一个可插拔的商品推荐引擎。
//
// 设计要点：
// - 一条训练管线：订单行记录 → 订单聚合 → 用户购买历史 → 购买矩阵，四个打分变体共享
// - 快照发布：训练在旁路构建完整模型后原子交换，打分并发只读、互不阻塞
// - 变体可插拔：实现 Recommender（可选 Preprocessor 钩子）并注册标签即可扩展
// - 统一后处理：购物车排除 / CEL 规则 / 确定性排序 / Top 10 截断对所有变体一致
package shoprec

import (
	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/engine"
	"github.com/rushteam/shoprec/recommender"
)

// 轻量 facade：便于用户直接 import "shoprec" 使用核心抽象。
type Engine = engine.Engine
type Config = engine.Config
type TrainStats = engine.TrainStats

type OrderItem = core.OrderItem
type OrderMeta = core.OrderMeta
type CartItem = core.CartItem
type RecommendContext = core.RecommendContext

type Algorithm = recommender.Algorithm

const (
	Popularity           = recommender.Popularity
	SlopeOne             = recommender.SlopeOne
	PreprocessedSlopeOne = recommender.PreprocessedSlopeOne
	OrderBased           = recommender.OrderBased
)

// MaxRecommendations 是一次推荐最多返回的商品数。
const MaxRecommendations = engine.MaxRecommendations

// New 创建引擎。
func New(cfg Config) (*Engine, error) {
	return engine.New(cfg)
}

// DefaultConfig 返回默认配置。
func DefaultConfig() Config {
	return engine.DefaultConfig()
}
