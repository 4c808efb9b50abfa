package common

import (
	"fmt"
	"strconv"
	"strings"

	"daily-planner-go/internal/domain/plans"
)

func ParseDateParam(value string) (*plans.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := plans.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// ParseOptionalInt returns nil for an empty value.
func ParseOptionalInt(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid int")
	}
	return &parsed, nil
}

func ParseID(value string) (int64, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return parsed, nil
}

func ParseBoolParam(value string, fallback bool) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}
