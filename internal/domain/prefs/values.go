package prefs

import (
	"context"
	"errors"
	"strconv"
)

// GetString returns "" for a missing key.
func GetString(ctx context.Context, s Store, key string) (string, error) {
	value, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return value, err
}

// GetInt returns 0 for a missing or non-numeric value.
func GetInt(ctx context.Context, s Store, key string) (int, error) {
	value, err := GetString(ctx, s, key)
	if err != nil || value == "" {
		return 0, err
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, nil
	}
	return parsed, nil
}

// GetBool returns false for a missing or unparsable value.
func GetBool(ctx context.Context, s Store, key string) (bool, error) {
	value, err := GetString(ctx, s, key)
	if err != nil || value == "" {
		return false, err
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, nil
	}
	return parsed, nil
}

func SetInt(ctx context.Context, s Store, key string, value int) error {
	return s.Set(ctx, key, strconv.Itoa(value))
}

func SetBool(ctx context.Context, s Store, key string, value bool) error {
	return s.Set(ctx, key, strconv.FormatBool(value))
}
