package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 连接地址的环境变量覆盖
const (
	EnvNATSURL      = "PRICER_NATS_URL"
	EnvRedisAddr    = "PRICER_REDIS_ADDR"
	EnvMySQLDSN     = "PRICER_MYSQL_DSN"
	EnvKafkaBrokers = "PRICER_KAFKA_BROKERS" // 逗号分隔
)

// LoadDotEnv 加载 .env 文件到进程环境变量，文件不存在时忽略
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}

// Load 读取 YAML 配置文件，先展开 ${VAR} 再解析。
// 空路径返回空配置 (全部走默认值和环境变量)。
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &cfg, nil
}

// LoadAndValidate 加载配置 -> 环境变量覆盖 -> 填默认值 -> 校验
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// applyEnv 环境变量优先于配置文件
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvNATSURL); v != "" {
		c.NATS.URL = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv(EnvMySQLDSN); v != "" {
		c.MySQL.DSN = v
	}
	if v := os.Getenv(EnvKafkaBrokers); v != "" {
		var brokers []string
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		c.Kafka.Brokers = brokers
	}
}
