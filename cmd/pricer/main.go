package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"max.com/treeval/pkg/config"
	"max.com/treeval/pkg/kafka"
	"max.com/treeval/pkg/lattice"
	"max.com/treeval/pkg/nats"
	"max.com/treeval/pkg/valuation"
)

func main() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("[Main] %v", err)
	}
}

// run 唯一的退出路径: 出错时先关闭已创建的组件再返回
func run(args []string) error {
	fs := flag.NewFlagSet("pricer", flag.ContinueOnError)
	var (
		configPath  = fs.String("config", "", "YAML config file")
		envPath     = fs.String("env", ".env", "dotenv file (ignored when missing)")
		demo        = fs.Bool("demo", false, "price the reference scenario with both models and exit")
		requestPath = fs.String("request", "", "price one JSON request file, print the record and exit")
		remote      = fs.Bool("remote", false, "with -request: send it to a running pricer over NATS")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.LoadDotEnv(*envPath); err != nil {
		return err
	}
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		return err
	}

	if *demo {
		return runDemo()
	}
	if *requestPath != "" && *remote {
		return runRemote(cfg, *requestPath)
	}

	if err := valuation.InitSnowflake(cfg.Service.NodeID); err != nil {
		return fmt.Errorf("init snowflake: %w", err)
	}

	srv, err := wire(cfg)
	if err != nil {
		return err
	}
	defer srv.close()

	if *requestPath != "" {
		return runOnce(srv.svc, *requestPath)
	}

	if err := srv.serve(cfg); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Main] shutting down...")
	return nil
}

// =============================================================================
// 组件装配
// =============================================================================

type app struct {
	svc      *valuation.Service
	producer *kafka.Producer
	consumer *kafka.Consumer
	sub      *nats.Subscriber
	rdb      *redis.Client
	cancel   context.CancelFunc
}

func wire(cfg *config.Config) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	var repo valuation.Repository = valuation.NewMemoryRepository()
	if cfg.MySQL.DSN != "" {
		db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		mysqlRepo := valuation.NewMySQLRepository(db)
		if cfg.MySQL.AutoMigrate {
			if err := mysqlRepo.AutoMigrate(); err != nil {
				return nil, fmt.Errorf("migrate valuations: %w", err)
			}
		}
		repo = mysqlRepo
		log.Println("[Main] valuations stored in mysql")
	} else {
		log.Println("[Main] mysql not configured, valuations kept in memory")
	}

	var cache valuation.Cache
	if cfg.Redis.Addr != "" {
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := a.rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			return nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}
		cache = valuation.NewRedisCache(a.rdb, cfg.Redis.TTL)
		log.Printf("[Main] result cache on redis %s (ttl %s)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	var events valuation.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		pcfg := kafka.DefaultProducerConfig(cfg.Kafka.Brokers)
		pcfg.Compression = cfg.Kafka.Compression
		producer, err := kafka.NewProducer(pcfg)
		if err != nil {
			return nil, err
		}
		a.producer = producer
		events = producer
		log.Printf("[Main] publishing valuation events to %s", cfg.Kafka.ResultTopic)
	}

	a.svc = valuation.NewService(repo, cache, events, valuation.Options{
		DefaultModel: lattice.Model(cfg.Service.DefaultModel),
		ResultTopic:  cfg.Kafka.ResultTopic,
	})
	return a, nil
}

// serve 启动 NATS 应答和 Kafka 批量消费
func (a *app) serve(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if len(cfg.Kafka.Brokers) > 0 {
		batch := valuation.NewBatchConsumer(a.svc)
		consumer, err := kafka.NewConsumer(
			kafka.DefaultConsumerConfig(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.RequestTopic),
			batch.Handle,
		)
		if err != nil {
			return err
		}
		consumer.Start(ctx)
		a.consumer = consumer
		log.Printf("[Main] consuming %s (group %s)", cfg.Kafka.RequestTopic, cfg.Kafka.GroupID)
	}

	if cfg.NATS.URL != "" {
		responder := valuation.NewResponder(a.svc, valuation.DefaultRequestTimeout)
		sub, err := nats.NewSubscriber(cfg.NATS.URL, "pricer", responder.Handle)
		if err != nil {
			return err
		}
		if err := sub.SubscribeQueue(cfg.NATS.Subject, cfg.NATS.Queue); err != nil {
			sub.Close()
			return err
		}
		a.sub = sub
		log.Printf("[Main] answering %s (queue %s)", cfg.NATS.Subject, cfg.NATS.Queue)
	}

	if a.consumer == nil && a.sub == nil {
		log.Println("[Main] no transport configured, nothing to serve")
	}
	return nil
}

func (a *app) close() {
	if a.sub != nil {
		a.sub.Close()
	}
	if a.consumer != nil {
		if err := a.consumer.Stop(); err != nil {
			log.Printf("[Main] stop consumer: %v", err)
		}
	}
	if a.cancel != nil {
		a.cancel()
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			log.Printf("[Main] close producer: %v", err)
		}
		stats := a.producer.Stats()
		log.Printf("[Main] events sent=%d failed=%d", stats.Sent, stats.Failed)
	}
	if a.rdb != nil {
		a.rdb.Close()
	}
}

// =============================================================================
// 一次性模式
// =============================================================================

func readRequest(path string) (*valuation.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	var req valuation.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode request %s: %w", path, err)
	}
	return &req, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runOnce(svc *valuation.Service, path string) error {
	req, err := readRequest(path)
	if err != nil {
		return err
	}
	rec, err := svc.Value(context.Background(), req)
	if err != nil {
		return err
	}
	return printJSON(rec)
}

func runRemote(cfg *config.Config, path string) error {
	if cfg.NATS.URL == "" {
		return fmt.Errorf("-remote needs nats.url (or %s)", config.EnvNATSURL)
	}
	req, err := readRequest(path)
	if err != nil {
		return err
	}
	client, err := nats.NewClient(cfg.NATS.URL, "pricer-cli")
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), valuation.DefaultRequestTimeout)
	defer cancel()
	rec, err := valuation.RequestRemote(ctx, client, cfg.NATS.Subject, req)
	if err != nil {
		return err
	}
	return printJSON(rec)
}

// runDemo 2018-01-19 估值、2018-05-19 到期的平值看涨，两笔 2.0 的分红，200 步
func runDemo() error {
	c, err := lattice.NewContract(lattice.Config{
		ValuationDate: time.Date(2018, 1, 19, 0, 0, 0, 0, time.UTC),
		ExpiryDate:    time.Date(2018, 5, 19, 0, 0, 0, 0, time.UTC),
		Type:          lattice.Call,
		SpotPrice:     50,
		Strike:        50,
		Volatility:    0.4,
		RiskFreeRate:  0.09,
		Dividends: []lattice.Dividend{
			{Date: time.Date(2018, 4, 19, 0, 0, 0, 0, time.UTC), Amount: 2},
			{Date: time.Date(2018, 4, 21, 0, 0, 0, 0, time.UTC), Amount: 2},
		},
		PeriodCount: 200,
	})
	if err != nil {
		return err
	}

	for _, m := range []lattice.Model{lattice.ModelBinomial, lattice.ModelTrinomial} {
		pricer, err := lattice.NewPricer(m)
		if err != nil {
			return err
		}
		start := time.Now()
		v, err := pricer.Value(c)
		if err != nil {
			return fmt.Errorf("%s: %w", m, err)
		}
		fmt.Printf("%-10s %.12f  (%s)\n", m, v, time.Since(start))
	}
	return nil
}
