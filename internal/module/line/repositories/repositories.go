package repositories

import (
	"context"
	"sort"

	"booking-portal/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
)

const userIDsKey = "line:user_ids"

type Repositories interface {
	AddUserID(ctx context.Context, userID string) error
	ListUserIDs(ctx context.Context) ([]string, error)
}

type repositories struct {
	redisClient redis.UniversalClient
}

// New stores LINE user ids in a Redis set shared by every instance.
func New(redisClient redis.UniversalClient) Repositories {
	return &repositories{redisClient: redisClient}
}

func (r *repositories) AddUserID(ctx context.Context, userID string) error {
	if err := r.redisClient.SAdd(ctx, userIDsKey, userID).Err(); err != nil {
		return errors.Wrap(errors.KindServerError, err, "error store line user id")
	}
	return nil
}

func (r *repositories) ListUserIDs(ctx context.Context) ([]string, error) {
	ids, err := r.redisClient.SMembers(ctx, userIDsKey).Result()
	if err != nil {
		return nil, errors.Wrap(errors.KindServerError, err, "error list line user ids")
	}
	sort.Strings(ids)
	return ids, nil
}
