package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	Namespace string
	TTL       time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:      "localhost",
		Port:      "6379",
		Password:  "",
		DB:        0,
		Namespace: "skybook",
		TTL:       24 * time.Hour,
	}
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisStoreFromClient(client, cfg.Namespace, cfg.TTL), nil
}

func NewRedisStoreFromClient(client *redis.Client, namespace string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, namespace: namespace, ttl: ttl}
}

func (s *RedisStore) redisKey(key Key) string {
	if s.namespace == "" {
		return "session:" + string(key)
	}
	return s.namespace + ":session:" + string(key)
}

func (s *RedisStore) Get(ctx context.Context, key Key) (string, error) {
	if !key.valid() {
		return "", ErrUnknownKey
	}

	v, err := s.client.Get(ctx, s.redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrAbsent
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *RedisStore) Put(ctx context.Context, key Key, value string) error {
	if !key.valid() {
		return ErrUnknownKey
	}
	return s.client.Set(ctx, s.redisKey(key), value, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, key Key) error {
	if !key.valid() {
		return ErrUnknownKey
	}
	return s.client.Del(ctx, s.redisKey(key)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
