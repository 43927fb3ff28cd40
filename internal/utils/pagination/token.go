package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const fieldSeparator = "|"

// EncodeIDToken creates a base64 encoded cursor pointing after the row with the given id.
// The scope (e.g. "sale") keeps a token for one listing from being replayed against another.
func EncodeIDToken(scope string, id int64) string {
	return EncodeMultiFieldToken(scope, strconv.FormatInt(id, 10))
}

// DecodeIDToken parses a cursor produced by EncodeIDToken for the same scope.
func DecodeIDToken(scope, token string) (int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	if parts[0] != scope {
		return 0, fmt.Errorf("invalid pagination token scope %q", parts[0])
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid pagination token format (id parse): %q", parts[1])
	}
	return id, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, fieldSeparator)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), fieldSeparator), nil
}
