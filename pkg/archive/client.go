package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Client provides namespace-scoped Redis operations for the tune archive.
// It is safe for concurrent use.
type Client struct {
	rdb       *redis.Client
	namespace string
}

// NewClient creates an archive client for the given namespace.
// Returns an error if namespace is empty or contains the key separator.
func NewClient(redisOpts *redis.Options, namespace string) (*Client, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}
	if strings.Contains(namespace, ":") {
		return nil, fmt.Errorf("namespace cannot contain ':'")
	}

	return &Client{
		rdb:       redis.NewClient(redisOpts),
		namespace: namespace,
	}, nil
}

// Namespace returns the namespace all keys are scoped to.
func (c *Client) Namespace() string {
	return c.namespace
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// SaveTune writes a tune and its seed index entry in one transaction, then
// publishes the record on the namespace's events channel.
func (c *Client) SaveTune(ctx context.Context, t *Tune) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid tune: %w", err)
	}

	hash, err := TuneToHash(t)
	if err != nil {
		return fmt.Errorf("failed to serialize tune: %w", err)
	}

	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, TuneKey(c.namespace, t.ID), hash)
		pipe.HSet(ctx, SeedKey(c.namespace, t.Seed), t.Layout(), t.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write tune to Redis: %w", err)
	}

	tuneJSON, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal tune for event: %w", err)
	}

	if err := c.rdb.Publish(ctx, TuneEventsChannel(c.namespace), tuneJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish tune event: %w", err)
	}

	return nil
}

// GetTune retrieves a tune by ID.
// Returns (nil, redis.Nil) if the tune doesn't exist; use IsNotFound to check.
func (c *Client) GetTune(ctx context.Context, tuneID string) (*Tune, error) {
	hashData, err := c.rdb.HGetAll(ctx, TuneKey(c.namespace, tuneID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read tune from Redis: %w", err)
	}

	// HGetAll returns an empty map for missing keys
	if len(hashData) == 0 {
		return nil, redis.Nil
	}

	t, err := HashToTune(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize tune: %w", err)
	}

	return t, nil
}

// TuneExists checks if a tune exists without fetching it.
func (c *Client) TuneExists(ctx context.Context, tuneID string) (bool, error) {
	exists, err := c.rdb.Exists(ctx, TuneKey(c.namespace, tuneID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check tune existence: %w", err)
	}
	return exists > 0, nil
}

// FindBySeed returns the ID of the tune archived for seed with the given
// layout. Returns ("", redis.Nil) if there is none.
func (c *Client) FindBySeed(ctx context.Context, seed string, phrases, repeats int) (string, error) {
	id, err := c.rdb.HGet(ctx, SeedKey(c.namespace, seed), LayoutField(phrases, repeats)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", redis.Nil
		}
		return "", fmt.Errorf("failed to read seed index: %w", err)
	}
	return id, nil
}

// ScanTunes returns the IDs of all tunes whose ID starts with prefix. An empty
// prefix matches every tune. Uses SCAN so large archives do not block Redis.
func (c *Client) ScanTunes(ctx context.Context, prefix string) ([]string, error) {
	keyPrefix := TuneKeyPrefix(c.namespace)
	pattern := keyPrefix + escapeGlob(prefix) + "*"

	var ids []string
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan tunes: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}

// ListTunes returns every tune in the namespace, oldest first. Records that
// cannot be read are skipped with a warning.
func (c *Client) ListTunes(ctx context.Context) ([]*Tune, error) {
	ids, err := c.ScanTunes(ctx, "")
	if err != nil {
		return nil, err
	}

	tunes := make([]*Tune, 0, len(ids))
	for _, id := range ids {
		t, err := c.GetTune(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				continue // removed since the scan
			}
			log.Printf("[WARN] Skipping malformed tune: key=%s (error: %v)", TuneKey(c.namespace, id), err)
			continue
		}
		tunes = append(tunes, t)
	}

	sort.SliceStable(tunes, func(i, j int) bool {
		return tunes[i].CreatedAtMs < tunes[j].CreatedAtMs
	})

	return tunes, nil
}

// Subscription is an active Pub/Sub subscription to tune events.
// Callers must call Close when done.
type Subscription struct {
	events <-chan *Tune
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of archived tunes. It is closed when the
// subscription is closed or its context is cancelled.
func (s *Subscription) Events() <-chan *Tune {
	return s.events
}

// Errors returns non-fatal subscription errors such as undecodable messages.
// The subscription keeps running after an error.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Safe to call more than once.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeTuneEvents subscribes to tunes saved in this namespace.
// Delivery is at-most-once: Redis drops messages for slow subscribers.
func (c *Client) SubscribeTuneEvents(ctx context.Context) (*Subscription, error) {
	pubsub := c.rdb.Subscribe(ctx, TuneEventsChannel(c.namespace))

	// Wait for the subscription to be confirmed so no event published after
	// this call returns is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to tune events: %w", err)
	}

	eventsChan := make(chan *Tune, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var t Tune
				if err := json.Unmarshal([]byte(msg.Payload), &t); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal tune event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &t:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}

// escapeGlob quotes the characters SCAN MATCH treats specially.
func escapeGlob(s string) string {
	return strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`).Replace(s)
}
