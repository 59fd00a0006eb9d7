package client

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"google.golang.org/protobuf/types/known/structpb"
)

func stringMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func getObject(m map[string]any, key string) map[string]any {
	o, _ := m[key].(map[string]any)
	return o
}

// getUnix reads a numeric unix-seconds field; absent fields give the zero time.
func getUnix(m map[string]any, key string) time.Time {
	f, ok := m[key].(float64)
	if !ok || f <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(f), 0).UTC()
}

func decodeUser(m map[string]any) (User, error) {
	u := getObject(m, "user")
	if u == nil || getString(u, "id") == "" {
		return User{}, fmt.Errorf("%w: user", ErrMalformedResponse)
	}
	return User{ID: getString(u, "id"), Email: getString(u, "email")}, nil
}

func decodeRows(m map[string]any) ([]models.Row, error) {
	raw, ok := m["rows"]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: rows", ErrMalformedResponse)
	}
	rows := make([]models.Row, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: rows[%d]", ErrMalformedResponse, i)
		}
		rows = append(rows, models.Row(obj))
	}
	return rows, nil
}

func encode(fields map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return s, nil
}
