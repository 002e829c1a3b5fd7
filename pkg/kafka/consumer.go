// 文件: pkg/kafka/consumer.go
// Kafka 消费者组
//
// 批量估值请求从这里进入；单条消息处理失败只记日志，offset 照常提交

package kafka

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/IBM/sarama"
)

// ConsumerConfig 消费者配置
type ConsumerConfig struct {
	Brokers       []string
	GroupID       string
	Topics        []string
	OffsetInitial int64 // sarama.OffsetNewest / sarama.OffsetOldest
}

// DefaultConsumerConfig 默认从最早的 offset 开始，避免漏掉启动前积压的请求
func DefaultConsumerConfig(brokers []string, groupID string, topics ...string) ConsumerConfig {
	return ConsumerConfig{
		Brokers:       brokers,
		GroupID:       groupID,
		Topics:        topics,
		OffsetInitial: sarama.OffsetOldest,
	}
}

// Record 一条消费到的消息
type Record struct {
	Topic     string
	Partition int32
	Offset    int64
	Key       []byte
	Value     []byte
}

// Handler 消息处理函数
type Handler func(ctx context.Context, rec Record) error

// Consumer 消费者组封装
type Consumer struct {
	group   sarama.ConsumerGroup
	topics  []string
	handler Handler

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConsumer 创建消费者
func NewConsumer(cfg ConsumerConfig, handler Handler) (*Consumer, error) {
	if len(cfg.Topics) == 0 {
		return nil, errors.New("kafka consumer needs at least one topic")
	}

	sc := sarama.NewConfig()
	sc.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	sc.Consumer.Offsets.Initial = cfg.OffsetInitial
	sc.Consumer.Offsets.AutoCommit.Enable = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, sc)
	if err != nil {
		return nil, fmt.Errorf("create consumer group: %w", err)
	}
	return &Consumer{
		group:   group,
		topics:  cfg.Topics,
		handler: handler,
	}, nil
}

// Start 在后台循环消费，直到 ctx 取消或 Stop
func (c *Consumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		h := &groupHandler{ctx: ctx, handler: c.handler}
		for {
			// rebalance 后 Consume 返回，需要重新加入
			if err := c.group.Consume(ctx, c.topics, h); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				log.Printf("[Kafka] consume error: %v", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

// Stop 停止消费并关闭消费者组
func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	return c.group.Close()
}

type groupHandler struct {
	ctx     context.Context
	handler Handler
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			rec := Record{
				Topic:     msg.Topic,
				Partition: msg.Partition,
				Offset:    msg.Offset,
				Key:       msg.Key,
				Value:     msg.Value,
			}
			if err := h.handler(h.ctx, rec); err != nil {
				log.Printf("[Kafka] handle error: topic=%s, partition=%d, offset=%d, err=%v",
					msg.Topic, msg.Partition, msg.Offset, err)
			}
			session.MarkMessage(msg, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
