package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader is the request header clients use to make a mutation retry-safe.
const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotentReplayedHeader is set on responses served from the idempotency ledger.
const IdempotentReplayedHeader = "Idempotent-Replayed"

const maxIdempotencyKeyLength = 255

// ErrInvalidIdempotencyKey is returned for keys that are too long or contain whitespace.
var ErrInvalidIdempotencyKey = errors.New("invalid Idempotency-Key header")

// IdempotencyKeyFromRequest returns the trimmed Idempotency-Key header. An absent
// header yields an empty token, which disables deduplication.
func IdempotencyKeyFromRequest(c *gin.Context) (string, error) {
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLength || strings.ContainsAny(key, " \t\r\n") {
		return "", ErrInvalidIdempotencyKey
	}
	return key, nil
}
