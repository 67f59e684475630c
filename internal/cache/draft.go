package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"vrajamarii/internal/evaluation"
)

const (
	draftKeyPrefix = "evaluation:draft:"
	lockKeyPrefix  = "evaluation:submit:"
)

// DraftStore keeps in-progress evaluation forms between requests. Every save
// refreshes the expiry, so a draft lives for ttl after its last change.
type DraftStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewDraftStore(client redis.Cmdable, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

func draftKey(userID uuid.UUID) string {
	return draftKeyPrefix + userID.String()
}

func lockKey(userID uuid.UUID) string {
	return lockKeyPrefix + userID.String()
}

// Load returns the user's draft. found is false when none is stored.
func (s *DraftStore) Load(ctx context.Context, userID uuid.UUID) (*evaluation.Form, bool, error) {
	data, err := s.client.Get(ctx, draftKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var form evaluation.Form
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	if form.UserID != userID {
		return nil, false, fmt.Errorf("draft under %s belongs to %s", userID, form.UserID)
	}
	return &form, true, nil
}

func (s *DraftStore) Save(ctx context.Context, form *evaluation.Form) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(form.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store draft in Redis: %w", err)
	}
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, draftKey(userID)).Err()
}

// AcquireSubmitLock claims the user's single submission slot. It returns
// false while another submission holds it. The lock expires after ttl so a
// crashed request cannot block the user for good.
func (s *DraftStore) AcquireSubmitLock(ctx context.Context, userID uuid.UUID, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, lockKey(userID), time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	return ok, nil
}

func (s *DraftStore) ReleaseSubmitLock(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, lockKey(userID)).Err()
}
