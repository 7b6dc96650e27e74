package source

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// MemorySource 是内存数据源，用于测试/原型，或由调用方自行拼装好数据后喂给引擎。
type MemorySource struct {
	OrderItems []core.OrderItem
	Orders     []core.OrderMeta
}

func (s *MemorySource) Name() string { return "memory" }

func (s *MemorySource) Load(_ context.Context) ([]core.OrderItem, []core.OrderMeta, error) {
	return s.OrderItems, s.Orders, nil
}
