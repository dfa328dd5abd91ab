// Package ingest 从 Kafka 消费行为事件并写入推荐引擎。
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/engine"
)

// Tracker 接收一条行为上报，engine.Engine 实现了该接口。
type Tracker interface {
	Track(ctx context.Context, req engine.TrackRequest) error
}

var _ Tracker = (*engine.Engine)(nil)

// ConsumerConfig Kafka 消费者配置
type ConsumerConfig struct {
	Brokers  []string // Kafka Broker 地址列表
	Topic    string   // 行为事件 Topic
	Group    string   // 消费组
	ClientID string   // 客户端 ID
}

// Consumer 按消费组读取行为事件，逐条调用 Tracker，每批处理完后提交 offset。
// 格式错误或参数不合法的事件记录日志后跳过；存储错误同样跳过，不阻塞后续事件。
type Consumer struct {
	client  *kgo.Client
	tracker Tracker
	logger  *zap.Logger
}

// NewConsumer 创建消费者（不会立即连接 Broker）。
func NewConsumer(cfg ConsumerConfig, tracker Tracker, logger *zap.Logger) (*Consumer, error) {
	if cfg.Topic == "" || len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("ingest: brokers and topic are required")
	}
	if cfg.Group == "" {
		cfg.Group = "artrec-behavior"
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "artrec-ingest"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.ConsumerGroup(cfg.Group),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, err
	}
	return &Consumer{client: client, tracker: tracker, logger: logger}, nil
}

// Run 持续消费直到 ctx 取消或客户端关闭。
func (c *Consumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			c.logger.Warn("fetch behavior events failed",
				zap.String("topic", topic),
				zap.Int32("partition", partition),
				zap.Error(err),
			)
		})
		fetches.EachRecord(func(rec *kgo.Record) {
			if err := HandleRecord(ctx, c.tracker, rec); err != nil {
				c.logger.Warn("drop behavior event",
					zap.String("topic", rec.Topic),
					zap.Int64("offset", rec.Offset),
					zap.Error(err),
				)
			}
		})
		if err := c.client.CommitUncommittedOffsets(ctx); err != nil {
			c.logger.Warn("commit offsets failed", zap.Error(err))
		}
	}
}

// Close 关闭客户端，Run 随之返回。
func (c *Consumer) Close() {
	c.client.Close()
}

// ErrDecode 表示消息体不是合法的行为事件 JSON。
var ErrDecode = errors.New("ingest: decode behavior event")

// HandleRecord 解码一条消息并上报。
func HandleRecord(ctx context.Context, tracker Tracker, rec *kgo.Record) error {
	var req engine.TrackRequest
	if err := json.Unmarshal(rec.Value, &req); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := tracker.Track(ctx, req); err != nil {
		if core.IsInvalidInput(err) {
			return err
		}
		return fmt.Errorf("ingest: track user %d: %w", req.UserID, err)
	}
	return nil
}

// NewRecord 把行为上报编码为消息，按用户 id 分区以保证同一用户的事件有序。
func NewRecord(topic string, req engine.TrackRequest) (*kgo.Record, error) {
	value, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return &kgo.Record{
		Topic: topic,
		Key:   []byte(strconv.FormatInt(req.UserID, 10)),
		Value: value,
	}, nil
}
