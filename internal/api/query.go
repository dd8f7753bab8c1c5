package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

// ParseBoolQuery reads an optional boolean query parameter. true/1/yes and
// false/0/no are accepted in any case; a missing or empty value yields nil.
func ParseBoolQuery(q url.Values, key string) (*bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	var v bool
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		v = true
	case "false", "0", "no":
		v = false
	default:
		return nil, fmt.Errorf("%w: query parameter %q must be a boolean, got %q", types.ErrInvalidArgument, key, raw)
	}
	return &v, nil
}

// ParseStatusQuery reads an optional task status query parameter.
func ParseStatusQuery(q url.Values, key string) (*types.TaskStatus, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	status, err := types.ParseTaskStatus(raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// ParseID parses a positive integer path parameter.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", types.ErrInvalidArgument, raw)
	}
	return id, nil
}
