package engine

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pkg/log"
	"github.com/rushteam/shoprec/recommender"
)

// ExportPopularity 把当前模型的全局热门榜写入有序集合（member 是商品 ID，
// score 是历史累计购买量），供外部消费者按 ZRange 读 TopN。
//
// 纯导出动作：失败不影响引擎状态，引擎也不会读回这份数据。
// 未训练时返回 NOT_FOUND；后端不支持有序集合时返回 NOT_SUPPORTED。
func (e *Engine) ExportPopularity(ctx context.Context, s core.Store, key string) error {
	kv, ok := s.(core.KeyValueStore)
	if !ok {
		return fmt.Errorf("export popularity to %s: %w", s.Name(), core.ErrStoreNotSupported)
	}

	snap := e.current.Load()
	if snap == nil {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeNotFound,
			"engine: no trained model to export")
	}

	scores, err := snap.recommenders[recommender.Popularity].Score(ctx, &core.RecommendContext{})
	if err != nil {
		return err
	}

	for productID, score := range scores {
		if err := kv.ZAdd(ctx, key, score, strconv.FormatInt(productID, 10)); err != nil {
			return err
		}
	}

	log.Logger().Info("exported popularity ranking",
		zap.String("store", kv.Name()),
		zap.String("key", key),
		zap.Int("products", len(scores)))
	return nil
}
