package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type supportedTypes interface {
	bool | int | float64 | string | time.Duration | uuid.UUID
}

func Must[T any](val T, err error) T {
	if err != nil {
		panic(fmt.Errorf("failed to parse environment: %w", err))
	}
	return val
}

func Parse[T supportedTypes](key string) (T, error) {
	var blank T

	str, ok := os.LookupEnv(key)
	if !ok {
		return blank, fmt.Errorf("env %s with type %T not found", key, blank)
	}

	value, err := parseTypedValue[T](str)
	if err != nil {
		return blank, fmt.Errorf("env %s with type %T has invalid value: %w", key, blank, err)
	}

	return value, nil
}

func ParseDefault[T supportedTypes](key string, def T) T {
	value, err := Parse[T](key)
	if err != nil {
		return def
	}
	return value
}

func parseTypedValue[T supportedTypes](value string) (T, error) {
	var v any
	var err error
	var blank T
	switch any(blank).(type) {
	case bool:
		v, err = strconv.ParseBool(value)
	case int:
		v, err = strconv.Atoi(value)
	case float64:
		v, err = strconv.ParseFloat(value, 64)
	case string:
		v, err = strings.TrimSpace(value), nil
		if v == "" {
			err = errors.New("got blank value")
		}
	case time.Duration:
		v, err = time.ParseDuration(value)
	case uuid.UUID:
		v, err = uuid.Parse(value)
	default:
		return blank, fmt.Errorf("unsupported value type %T", blank)
	}

	if err != nil {
		return blank, fmt.Errorf("failed to convert to type %T: %w", blank, err)
	}
	return v.(T), nil
}
