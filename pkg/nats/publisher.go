// 文件: pkg/nats/publisher.go
// NATS 客户端: 请求/应答
// 定价请求走 request/reply，调用方同步拿到估值结果

package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// connect 统一的连接参数: 带客户端名，断线无限重连
func connect(url, name string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return conn, nil
}

// Client NATS 请求方
type Client struct {
	conn *nats.Conn
}

// NewClient 创建客户端
func NewClient(url, name string) (*Client, error) {
	conn, err := connect(url, name)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Request 发送 JSON 请求并把应答解码到 out，超时由 ctx 控制
func (c *Client) Request(ctx context.Context, subject string, req, out any) error {
	bytes, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", subject, err)
	}

	msg, err := c.conn.RequestWithContext(ctx, subject, bytes)
	if err != nil {
		return fmt.Errorf("request %s: %w", subject, err)
	}
	if err := json.Unmarshal(msg.Data, out); err != nil {
		return fmt.Errorf("decode reply from %s: %w", subject, err)
	}
	return nil
}

// Close 关闭连接 (先把缓冲的消息发出去)
func (c *Client) Close() {
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}
