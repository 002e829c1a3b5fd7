// 文件: pkg/config/config.go
// 定价服务配置
//
// 连接地址为空表示不启用对应组件:
// - mysql.dsn 为空      -> 估值记录只保存在内存
// - redis.addr 为空     -> 不缓存估值结果
// - kafka.brokers 为空  -> 不发送结果事件，也不消费批量请求
// - nats.url 为空       -> 不提供请求/应答接口

package config

import "time"

// Config 定价服务的全部配置
type Config struct {
	Service ServiceConfig `yaml:"service"`
	NATS    NATSConfig    `yaml:"nats"`
	Redis   RedisConfig   `yaml:"redis"`
	MySQL   MySQLConfig   `yaml:"mysql"`
	Kafka   KafkaConfig   `yaml:"kafka"`
}

// ServiceConfig 服务自身参数
type ServiceConfig struct {
	// NodeID 雪花算法节点 ID (0-1023)，多实例部署时必须不同
	NodeID int64 `yaml:"node_id"`
	// DefaultModel 请求未指定模型时使用: binomial | trinomial
	DefaultModel string `yaml:"default_model"`
}

// NATSConfig 请求/应答
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
	Queue   string `yaml:"queue"`
}

// RedisConfig 估值结果缓存
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// MySQLConfig 估值记录持久化
type MySQLConfig struct {
	DSN         string `yaml:"dsn"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// KafkaConfig 结果事件 + 批量请求
type KafkaConfig struct {
	Brokers      []string `yaml:"brokers"`
	ResultTopic  string   `yaml:"result_topic"`
	RequestTopic string   `yaml:"request_topic"`
	GroupID      string   `yaml:"group_id"`
	Compression  string   `yaml:"compression"`
}
