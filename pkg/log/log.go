// Package log 提供全局 zap logger。
// 日志纯观测用途：sink 缺失或失败不影响训练/推荐的正确性。
package log

import "go.uber.org/zap"

var logger = zap.NewNop()

// Logger 返回当前全局 logger。默认是 Nop：作为库被引用时不打扰宿主进程。
func Logger() *zap.Logger {
	return logger
}

// SetLogger 由宿主进程注入自己的 logger（例如 zap.NewDevelopment()）。
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
