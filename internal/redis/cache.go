package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// ParcelCacheTTL is short because a parcel flips to paid the moment its
// payment is confirmed.
const ParcelCacheTTL = 30 * time.Second

const parcelCachePrefix = "cache:parcel:"

// CachedParcel represents a cached parcel entity.
type CachedParcel struct {
	ID            string  `json:"id"`
	SenderEmail   string  `json:"sender_email"`
	Name          string  `json:"name"`
	Cost          float64 `json:"cost"`
	PaymentStatus string  `json:"payment_status"`
	TrackingID    string  `json:"tracking_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// GetParcel retrieves a parcel from cache.
func (s *CacheStore) GetParcel(ctx context.Context, parcelID string) (*CachedParcel, error) {
	key := parcelCachePrefix + parcelID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var parcel CachedParcel
	if err := json.Unmarshal(data, &parcel); err != nil {
		return nil, err
	}
	return &parcel, nil
}

// SetParcel stores a parcel in cache.
func (s *CacheStore) SetParcel(ctx context.Context, parcel *CachedParcel) error {
	key := parcelCachePrefix + parcel.ID
	data, err := json.Marshal(parcel)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ParcelCacheTTL).Err()
}

// InvalidateParcel removes a parcel from cache.
func (s *CacheStore) InvalidateParcel(ctx context.Context, parcelID string) error {
	key := parcelCachePrefix + parcelID
	return s.client.Del(ctx, key).Err()
}
