// Package source 提供训练数据源：每次训练整批加载订单行记录与订单元信息。
// 引擎本身不关心数据从哪来；数据库/消息流等接入方只需实现 Source。
package source

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// Source 是训练数据源的抽象：一次性给出整批训练数据。
type Source interface {
	Name() string

	// Load 返回 (订单行记录, 订单元信息)。
	Load(ctx context.Context) ([]core.OrderItem, []core.OrderMeta, error)
}
