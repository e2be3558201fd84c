package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// DefaultLimit and MaxLimit bound list page sizes.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Cursor marks the last row of a page of GL headers ordered by posting date, creation time and id.
type Cursor struct {
	PostingDate time.Time
	CreatedAt   time.Time
	HeaderID    string
}

// EncodeToken creates a base64 encoded token from a posting date, creation time and header id.
func EncodeToken(c Cursor) string {
	tokenStr := strings.Join([]string{c.PostingDate.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.HeaderID}, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	postingDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (posting date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	if parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (missing header id)")
	}

	return Cursor{PostingDate: postingDate, CreatedAt: createdAt, HeaderID: parts[2]}, nil
}

// After reports whether a row sorts strictly after the cursor in ascending order.
func (c Cursor) After(postingDate, createdAt time.Time, headerID string) bool {
	if !postingDate.Equal(c.PostingDate) {
		return postingDate.After(c.PostingDate)
	}
	if !createdAt.Equal(c.CreatedAt) {
		return createdAt.After(c.CreatedAt)
	}
	return headerID > c.HeaderID
}

// ClampLimit applies the default and maximum page sizes.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
