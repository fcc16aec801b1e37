package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the Redis client used for driver availability lookups and
// trip update pub/sub. A handle is injected wherever it is needed; there
// is no package-level client.
type Cache struct {
	client *redis.Client
}

// NewCache connects to Redis and verifies the connection.
func NewCache(redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &Cache{client: client}, nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// SetDriverAvailability stores driver availability status
func (c *Cache) SetDriverAvailability(ctx context.Context, driverID uint, isAvailable bool) error {
	key := fmt.Sprintf("driver:availability:%d", driverID)
	value := "true"
	if !isAvailable {
		value = "false"
	}
	return c.client.Set(ctx, key, value, time.Hour).Err()
}

// GetDriverAvailability retrieves driver availability status. The database
// row stays authoritative; this is a read-side hint for the listing path.
func (c *Cache) GetDriverAvailability(ctx context.Context, driverID uint) (bool, error) {
	key := fmt.Sprintf("driver:availability:%d", driverID)
	result, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return result == "true", nil
}

// PublishTripUpdate publishes a trip status change to Redis pub/sub so
// other API instances can fan it out to their own WebSocket clients.
func (c *Cache) PublishTripUpdate(ctx context.Context, tripID uint, status string, data map[string]interface{}) error {
	updateData := map[string]interface{}{
		"tripId":    tripID,
		"status":    status,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return c.client.Publish(ctx, "trip:updates", jsonData).Err()
}
