package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/config"
	"github.com/yamamahashayer/Minterviewer-sub004/internal/constants"
	"github.com/yamamahashayer/Minterviewer-sub004/internal/tracing"
	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

// ErrNotFound is returned when a key is not found in Redis.
// It wraps the underlying redis.Nil error for abstraction.
var ErrNotFound = redis.Nil

// 为Redis操作定义专用tracer
var redisTracer = otel.Tracer("minterviewer-matcher/storage/redis")

// Redis操作前缀采样率配置
var redisKeySamplingRates = map[string]float64{
	"app:match:result:": 0.1, // 结果缓存读写采样10%
	"app:match:lock:":   0.5, // 锁操作采样50%
	"app:job:":          0.25,
}

// 随机数生成器
var (
	rnd      *rand.Rand
	rndMutex sync.Mutex
)

func init() {
	source := rand.NewSource(time.Now().UnixNano())
	rnd = rand.New(source)
}

// shouldSampleRedisOp 根据key前缀决定是否需要创建span
func shouldSampleRedisOp(key string) bool {
	if key == "" {
		return false
	}

	for prefix, rate := range redisKeySamplingRates {
		if strings.HasPrefix(key, prefix) {
			return randFloat() < rate
		}
	}

	// 默认采样率5%
	return randFloat() < 0.05
}

func randFloat() float64 {
	rndMutex.Lock()
	defer rndMutex.Unlock()
	return rnd.Float64()
}

// Redis wraps the Redis client
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter creates a new Redis client connection
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		// 连接池设置
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// 超时设置
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,

		// 重试设置
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: time.Duration(cfg.MinRetryBackoffMS) * time.Millisecond,
		MaxRetryBackoff: time.Duration(cfg.MaxRetryBackoffMS) * time.Millisecond,

		// 连接生命周期
		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute,
		ConnMaxIdleTime: time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute,
	}

	client := redis.NewClient(opt)

	// 添加OpenTelemetry钩子, 记录所有Redis操作
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("failed to instrument Redis with OpenTelemetry: %w", err)
	}

	// Ping to check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return &Redis{
		Client: client,
		config: cfg,
	}, nil
}

// Close closes the Redis client connection
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping checks the Redis connection
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return r.Client.Ping(ctx).Err()
}

// Get 获取键的值
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	if r.Client == nil {
		return "", fmt.Errorf("redis客户端未初始化")
	}

	var span trace.Span

	// 根据key前缀决定是否创建span
	if shouldSampleRedisOp(key) {
		ctx, span = redisTracer.Start(ctx, "Redis.Get", trace.WithSpanKind(trace.SpanKindClient))
		defer span.End()

		span.SetAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", "GET"),
			attribute.String("db.redis.key", tracing.SafeRedisKey(key)),
			// 设置标志位，避免与redisotel hook产生的span重复
			attribute.Bool("otel.propagate_to_child", false),
		)
	}

	val, err := r.Client.Get(ctx, key).Result()

	if span != nil {
		if err != nil {
			// key不存在不算错误
			if err == redis.Nil {
				span.SetStatus(codes.Ok, "key not found")
				span.SetAttributes(attribute.Bool("db.redis.key_exists", false))
			} else {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return "", err
		}

		span.SetAttributes(
			attribute.Bool("db.redis.key_exists", true),
			attribute.Int("db.redis.value_length", len(val)),
		)
		span.SetStatus(codes.Ok, "")
	}

	return val, err
}

// Set 设置键的值
func (r *Redis) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	var span trace.Span

	if shouldSampleRedisOp(key) {
		ctx, span = redisTracer.Start(ctx, "Redis.Set", trace.WithSpanKind(trace.SpanKindClient))
		defer span.End()

		span.SetAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", "SET"),
			attribute.String("db.redis.key", tracing.SafeRedisKey(key)),
			attribute.Int("db.redis.value_length", len(value)),
			attribute.Bool("otel.propagate_to_child", false),
		)

		if expiration > 0 {
			span.SetAttributes(attribute.Int64("db.redis.expiration_ms", expiration.Milliseconds()))
		}
	}

	err := r.Client.Set(ctx, key, value, expiration).Err()

	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		span.SetStatus(codes.Ok, "")
	}

	return err
}

// Del 删除键
func (r *Redis) Del(ctx context.Context, key string) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	return r.Client.Del(ctx, key).Err()
}

// CacheSuggestions 将排序完成的建议列表序列化后缓存。
// 空结果同样缓存，避免无候选人时每次请求都打穿到MySQL。
func (r *Redis) CacheSuggestions(ctx context.Context, organizationID, jobID string, suggestions []types.Suggestion, ttl time.Duration) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}

	payload, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("序列化建议列表失败: %w", err)
	}

	key := fmt.Sprintf(constants.KeyMatchResult, organizationID, jobID)
	return r.Set(ctx, key, string(payload), ttl)
}

// GetCachedSuggestions 读取缓存的建议列表。
// 缓存未命中时返回 ErrNotFound。
func (r *Redis) GetCachedSuggestions(ctx context.Context, organizationID, jobID string) ([]types.Suggestion, error) {
	if r.Client == nil {
		return nil, fmt.Errorf("redis client is not initialized")
	}

	key := fmt.Sprintf(constants.KeyMatchResult, organizationID, jobID)
	payload, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var suggestions []types.Suggestion
	if err := json.Unmarshal([]byte(payload), &suggestions); err != nil {
		// 缓存内容损坏时删掉重算，不让坏数据一直命中
		_ = r.InvalidateSuggestions(ctx, organizationID, jobID)
		return nil, fmt.Errorf("反序列化缓存的建议列表失败: %w", err)
	}
	return suggestions, nil
}

// InvalidateSuggestions 删除指定岗位的建议缓存
func (r *Redis) InvalidateSuggestions(ctx context.Context, organizationID, jobID string) error {
	key := fmt.Sprintf(constants.KeyMatchResult, organizationID, jobID)
	return r.Del(ctx, key)
}

// AcquireComputeLock 尝试获取指定岗位排序计算的分布式锁
func (r *Redis) AcquireComputeLock(ctx context.Context, organizationID, jobID string, expiration time.Duration) (string, error) {
	key := fmt.Sprintf(constants.KeyMatchLock, organizationID, jobID)
	return r.AcquireLock(ctx, key, expiration)
}

// ReleaseComputeLock 释放指定岗位排序计算的分布式锁
func (r *Redis) ReleaseComputeLock(ctx context.Context, organizationID, jobID string, lockValue string) (bool, error) {
	key := fmt.Sprintf(constants.KeyMatchLock, organizationID, jobID)
	return r.ReleaseLock(ctx, key, lockValue)
}

// AcquireLock 尝试获取一个分布式锁
func (r *Redis) AcquireLock(ctx context.Context, lockKey string, expiration time.Duration) (string, error) {
	if r.Client == nil {
		return "", fmt.Errorf("redis client is not initialized")
	}
	// 生成一个随机值作为锁的持有者标识
	lockValue := fmt.Sprintf("%d", time.Now().UnixNano())
	// 尝试设置一个带过期时间的key，NX保证了原子性
	ok, err := r.Client.SetNX(ctx, lockKey, lockValue, expiration).Result()
	if err != nil {
		return "", err
	}
	if ok {
		return lockValue, nil
	}
	// 未能获取锁
	return "", nil
}

// ReleaseLock 释放一个分布式锁，使用Lua脚本保证原子性
func (r *Redis) ReleaseLock(ctx context.Context, lockKey string, lockValue string) (bool, error) {
	if r.Client == nil {
		return false, fmt.Errorf("redis client is not initialized")
	}
	// Lua脚本: 如果key存在且值匹配，则删除key
	script := `
        if redis.call("get", KEYS[1]) == ARGV[1] then
            return redis.call("del", KEYS[1])
        else
            return 0
        end
    `
	res, err := r.Client.Eval(ctx, script, []string{lockKey}, lockValue).Result()
	if err != nil {
		return false, err
	}

	if released, ok := res.(int64); ok && released == 1 {
		return true, nil
	}

	return false, nil // 锁不存在或不属于当前持有者
}

// CacheJobSnapshot 缓存岗位快照，供排序计算复用
func (r *Redis) CacheJobSnapshot(ctx context.Context, snapshot *types.JobSnapshot, ttl time.Duration) error {
	if snapshot == nil {
		return fmt.Errorf("岗位快照不能为空")
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("序列化岗位快照失败: %w", err)
	}
	key := fmt.Sprintf(constants.KeyJobSnapshot, snapshot.JobID)
	return r.Set(ctx, key, string(payload), ttl)
}

// GetCachedJobSnapshot 读取缓存的岗位快照，未命中返回 ErrNotFound
func (r *Redis) GetCachedJobSnapshot(ctx context.Context, jobID string) (*types.JobSnapshot, error) {
	key := fmt.Sprintf(constants.KeyJobSnapshot, jobID)
	payload, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var snapshot types.JobSnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		_ = r.Del(ctx, key)
		return nil, fmt.Errorf("反序列化岗位快照失败: %w", err)
	}
	return &snapshot, nil
}
