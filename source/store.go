package source

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/shoprec/core"
)

// StoreSource 从 Store 读取训练数据：两个 key 分别存放订单行记录
// 与订单元信息的 JSON 数组。配合 store.RedisStore 即可让采集侧与
// 训练侧通过 Redis 解耦；store.MemoryStore 则用于测试。
type StoreSource struct {
	Store core.Store

	// ItemsKey 存放 []core.OrderItem 的 JSON
	ItemsKey string

	// OrdersKey 存放 []core.OrderMeta 的 JSON
	OrdersKey string
}

func (s *StoreSource) Name() string { return "store" }

func (s *StoreSource) Load(ctx context.Context) ([]core.OrderItem, []core.OrderMeta, error) {
	itemsRaw, err := s.Store.Get(ctx, s.ItemsKey)
	if err != nil {
		return nil, nil, fmt.Errorf("load order items %q: %w", s.ItemsKey, err)
	}
	var items []core.OrderItem
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return nil, nil, fmt.Errorf("parse order items %q: %w", s.ItemsKey, err)
	}

	ordersRaw, err := s.Store.Get(ctx, s.OrdersKey)
	if err != nil {
		return nil, nil, fmt.Errorf("load orders %q: %w", s.OrdersKey, err)
	}
	var orders []core.OrderMeta
	if err := json.Unmarshal(ordersRaw, &orders); err != nil {
		return nil, nil, fmt.Errorf("parse orders %q: %w", s.OrdersKey, err)
	}

	return items, orders, nil
}
