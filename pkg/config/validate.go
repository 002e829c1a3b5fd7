package config

import (
	"errors"
	"fmt"

	"max.com/treeval/pkg/kafka"
	"max.com/treeval/pkg/lattice"
)

// Validate 校验配置取值
func (c *Config) Validate() error {
	if c.Service.NodeID < 0 || c.Service.NodeID > 1023 {
		return fmt.Errorf("service.node_id must be between 0 and 1023, got %d", c.Service.NodeID)
	}
	if _, err := lattice.NewPricer(lattice.Model(c.Service.DefaultModel)); err != nil {
		return fmt.Errorf("service.default_model: %w", err)
	}

	if c.Redis.TTL < 0 {
		return errors.New("redis.ttl must be >= 0")
	}
	if c.Redis.DB < 0 {
		return errors.New("redis.db must be >= 0")
	}

	if len(c.Kafka.Brokers) > 0 {
		if c.Kafka.ResultTopic == "" || c.Kafka.RequestTopic == "" {
			return errors.New("kafka topics are required when brokers are set")
		}
		if _, err := kafka.ParseCompression(c.Kafka.Compression); err != nil {
			return fmt.Errorf("kafka.compression: %w", err)
		}
	}
	return nil
}
