package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/shoprec/recommender"
)

// Config 是引擎配置（支持 YAML）。
type Config struct {
	// Algorithm 是 Recommend 未显式指定时使用的默认算法标签。
	Algorithm string `yaml:"algorithm"`

	// AllowNonPositiveQuantity 为 true 时恢复对数量 <= 0 的订单行的
	// 透传行为（例如把退货编码为负数量的数据集）；默认严格拒绝。
	AllowNonPositiveQuantity bool `yaml:"allow_nonpositive_quantity"`

	// Rules 是 CEL 排除规则列表，命中任意一条的候选不进入推荐结果。
	Rules []string `yaml:"rules"`
}

// DefaultConfig 返回默认配置：热门度算法、严格数量校验、无额外规则。
func DefaultConfig() Config {
	return Config{
		Algorithm: string(recommender.Popularity),
	}
}

// Validate 校验配置：默认算法标签必须已注册。
func (c *Config) Validate() error {
	if c.Algorithm == "" {
		c.Algorithm = string(recommender.Popularity)
	}
	if _, err := recommender.ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}
	return nil
}

// LoadFromYAML 从 YAML 文件加载引擎配置。
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return &cfg, nil
}
