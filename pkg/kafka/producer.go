// 文件: pkg/kafka/producer.go
// Kafka 生产者
//
// 估值结果以事件形式异步投递，发送失败只计数和记日志，不阻塞定价

package kafka

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IBM/sarama"
)

var ErrProducerClosed = errors.New("producer is closed")

// Message 可投递的消息
type Message interface {
	Topic() string          // 目标 topic
	Key() string            // 分区 key (相同 key 保证顺序)
	Value() ([]byte, error) // 序列化后的消息体
}

// ProducerConfig 生产者配置
type ProducerConfig struct {
	Brokers        []string
	RequiredAcks   sarama.RequiredAcks
	Compression    string // none, gzip, snappy, lz4, zstd
	FlushFrequency time.Duration
	FlushMessages  int
	MaxRetries     int
}

// DefaultProducerConfig 默认配置: leader 确认，snappy 压缩
func DefaultProducerConfig(brokers []string) ProducerConfig {
	return ProducerConfig{
		Brokers:        brokers,
		RequiredAcks:   sarama.WaitForLocal,
		Compression:    "snappy",
		FlushFrequency: 50 * time.Millisecond,
		FlushMessages:  64,
		MaxRetries:     3,
	}
}

// ParseCompression 压缩方式名称转 sarama 编码
func ParseCompression(name string) (sarama.CompressionCodec, error) {
	switch name {
	case "", "none":
		return sarama.CompressionNone, nil
	case "gzip":
		return sarama.CompressionGZIP, nil
	case "snappy":
		return sarama.CompressionSnappy, nil
	case "lz4":
		return sarama.CompressionLZ4, nil
	case "zstd":
		return sarama.CompressionZSTD, nil
	}
	return sarama.CompressionNone, fmt.Errorf("unsupported compression %q", name)
}

func (cfg ProducerConfig) saramaConfig() (*sarama.Config, error) {
	codec, err := ParseCompression(cfg.Compression)
	if err != nil {
		return nil, err
	}

	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = cfg.RequiredAcks
	sc.Producer.Compression = codec
	sc.Producer.Flush.Frequency = cfg.FlushFrequency
	sc.Producer.Flush.Messages = cfg.FlushMessages
	sc.Producer.Retry.Max = cfg.MaxRetries
	sc.Producer.Return.Successes = false
	sc.Producer.Return.Errors = true
	return sc, nil
}

// Producer 异步生产者
type Producer struct {
	producer sarama.AsyncProducer

	sent   atomic.Int64
	failed atomic.Int64

	mu     sync.RWMutex // 保护 closed 与 Input() 之间的竞争
	closed bool
	wg     sync.WaitGroup
}

// NewProducer 创建生产者
func NewProducer(cfg ProducerConfig) (*Producer, error) {
	sc, err := cfg.saramaConfig()
	if err != nil {
		return nil, err
	}
	ap, err := sarama.NewAsyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return newProducer(ap), nil
}

func newProducer(ap sarama.AsyncProducer) *Producer {
	p := &Producer{producer: ap}
	p.wg.Add(1)
	go p.drainErrors()
	return p
}

// Send 序列化并投递一条消息
func (p *Producer) Send(msg Message) error {
	data, err := msg.Value()
	if err != nil {
		return fmt.Errorf("serialize %s message: %w", msg.Topic(), err)
	}
	return p.SendRaw(msg.Topic(), msg.Key(), data)
}

// SendRaw 投递已序列化的消息
func (p *Producer) SendRaw(topic, key string, value []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrProducerClosed
	}

	p.producer.Input() <- &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	}
	p.sent.Add(1)
	return nil
}

func (p *Producer) drainErrors() {
	defer p.wg.Done()
	for err := range p.producer.Errors() {
		p.failed.Add(1)
		log.Printf("[Kafka] send error: topic=%s, err=%v", err.Msg.Topic, err.Err)
	}
}

// ProducerStats 发送统计
type ProducerStats struct {
	Sent   int64
	Failed int64
}

func (p *Producer) Stats() ProducerStats {
	return ProducerStats{
		Sent:   p.sent.Load(),
		Failed: p.failed.Load(),
	}
}

// Close 刷出缓冲并关闭，可重复调用
func (p *Producer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	err := p.producer.Close()
	p.wg.Wait()
	return err
}
