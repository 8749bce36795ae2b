package global

import (
	"mdt/config"
)

var (
	Layout  = "2006-01-02 15:04:05"
	Config  config.App
	Version string
)

// SignKey is the HMAC key for session tokens.
func SignKey() []byte {
	return []byte(Config.Jwt.Secret)
}
