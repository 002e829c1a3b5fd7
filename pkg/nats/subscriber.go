// 文件: pkg/nats/subscriber.go
// NATS 订阅者
// 处理函数返回的字节会作为应答发回 (消息带 Reply 时)

package nats

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"
)

// Handler 消息处理函数，reply 为 nil 时不应答
type Handler func(subject string, data []byte) (reply []byte, err error)

// Subscriber NATS 订阅者
type Subscriber struct {
	conn    *nats.Conn
	subs    []*nats.Subscription
	handler Handler
}

// NewSubscriber 创建订阅者
func NewSubscriber(url, name string, handler Handler) (*Subscriber, error) {
	conn, err := connect(url, name)
	if err != nil {
		return nil, err
	}
	return &Subscriber{
		conn:    conn,
		handler: handler,
	}, nil
}

// SubscribeQueue 队列订阅，同组多实例之间负载均衡
func (s *Subscriber) SubscribeQueue(subject, queue string) error {
	sub, err := s.conn.QueueSubscribe(subject, queue, s.dispatch)
	if err != nil {
		return fmt.Errorf("subscribe %s (queue %s): %w", subject, queue, err)
	}
	s.subs = append(s.subs, sub)
	return nil
}

func (s *Subscriber) dispatch(msg *nats.Msg) {
	reply, err := s.handler(msg.Subject, msg.Data)
	if err != nil {
		log.Printf("[NATS] handle error: subject=%s, err=%v", msg.Subject, err)
	}
	if msg.Reply == "" || reply == nil {
		return
	}
	if err := msg.Respond(reply); err != nil {
		log.Printf("[NATS] respond error: subject=%s, err=%v", msg.Subject, err)
	}
}

// Close 退订并关闭连接
func (s *Subscriber) Close() error {
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			log.Printf("[NATS] unsubscribe %s: %v", sub.Subject, err)
		}
	}
	s.conn.Close()
	return nil
}

// =============================================================================
// 便捷方法
// =============================================================================

// UnmarshalJSON 反序列化 JSON
func UnmarshalJSON[T any](data []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// MarshalReply 序列化应答，失败时记录日志并返回 nil (不应答)
func MarshalReply(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[NATS] marshal reply: %v", err)
		return nil
	}
	return data
}
