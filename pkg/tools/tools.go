package tools

import (
	"strings"

	"github.com/rs/xid"
)

// RandId returns a sortable, url-safe unique id.
func RandId() string {
	return xid.New().String()
}

// NewId prefixes a fresh id, e.g. "pt-c9on6mt3e1fg00crhdag".
func NewId(prefix string) string {
	return prefix + "-" + RandId()
}

func BoolPtr(b bool) *bool {
	return &b
}

func StringPtr(s string) *string {
	return &s
}

func Int64Ptr(i int64) *int64 {
	return &i
}

// ContainsAny reports whether s contains one of subs.
func ContainsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Deref returns the pointed string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
