package config

import "time"

// 可选配置项的默认值
const (
	DefaultModel        = "binomial"
	DefaultNATSSubject  = "valuation.request"
	DefaultNATSQueue    = "pricer"
	DefaultCacheTTL     = 10 * time.Minute
	DefaultResultTopic  = "valuation.results"
	DefaultRequestTopic = "valuation.requests"
	DefaultGroupID      = "pricer"
	DefaultCompression  = "snappy"
)

func (c *Config) applyDefaults() {
	if c.Service.DefaultModel == "" {
		c.Service.DefaultModel = DefaultModel
	}

	if c.NATS.Subject == "" {
		c.NATS.Subject = DefaultNATSSubject
	}
	if c.NATS.Queue == "" {
		c.NATS.Queue = DefaultNATSQueue
	}

	if c.Redis.TTL == 0 {
		c.Redis.TTL = DefaultCacheTTL
	}

	if c.Kafka.ResultTopic == "" {
		c.Kafka.ResultTopic = DefaultResultTopic
	}
	if c.Kafka.RequestTopic == "" {
		c.Kafka.RequestTopic = DefaultRequestTopic
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = DefaultGroupID
	}
	if c.Kafka.Compression == "" {
		c.Kafka.Compression = DefaultCompression
	}
}
