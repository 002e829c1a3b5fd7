// 文件: pkg/valuation/responder.go
// NATS 请求/应答入口

package valuation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"max.com/treeval/pkg/nats"
)

// DefaultRequestTimeout 单个请求的处理上限
const DefaultRequestTimeout = 5 * time.Second

// Responder 把 NATS 请求交给 Service，应答 JSON Response
type Responder struct {
	svc     *Service
	timeout time.Duration
}

func NewResponder(svc *Service, timeout time.Duration) *Responder {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Responder{svc: svc, timeout: timeout}
}

// Handle 满足 nats.Handler，错误也会作为应答返回给请求方
func (r *Responder) Handle(_ string, data []byte) ([]byte, error) {
	req, err := nats.UnmarshalJSON[Request](data)
	if err != nil {
		err = fmt.Errorf("decode request: %w", err)
		return nats.MarshalReply(Response{Error: err.Error()}), err
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	rec, err := r.svc.Value(ctx, req)
	if err != nil {
		return nats.MarshalReply(Response{Error: err.Error()}), err
	}
	return nats.MarshalReply(Response{Record: rec}), nil
}

// RequestRemote 通过 NATS 向远端定价服务发请求
func RequestRemote(ctx context.Context, client *nats.Client, subject string, req *Request) (*Record, error) {
	var resp Response
	if err := client.Request(ctx, subject, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	if resp.Record == nil {
		return nil, errors.New("empty valuation reply")
	}
	return resp.Record, nil
}
