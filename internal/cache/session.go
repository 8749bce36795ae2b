package cache

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis"
)

const revokedTokenPrefix = "mdt:session:revoked:"

type (
	SessionCache struct {
		rc *redis.Client
	}

	// InterSessionCache tracks tokens revoked before their natural expiry.
	InterSessionCache interface {
		Revoke(tokenId, officerId string, ttl time.Duration) error
		IsRevoked(tokenId string) (bool, error)
	}
)

type revokedToken struct {
	OfficerId string `json:"officerId"`
	RevokedAt int64  `json:"revokedAt"`
}

func newSessionCacheInterface(r *redis.Client) InterSessionCache {
	return &SessionCache{
		rc: r,
	}
}

func (s SessionCache) Revoke(tokenId, officerId string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	value, err := sonic.MarshalString(revokedToken{
		OfficerId: officerId,
		RevokedAt: time.Now().Unix(),
	})
	if err != nil {
		return err
	}

	return s.rc.Set(revokedTokenPrefix+tokenId, value, ttl).Err()
}

func (s SessionCache) IsRevoked(tokenId string) (bool, error) {
	n, err := s.rc.Exists(revokedTokenPrefix + tokenId).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
