package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/client/clienttest"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/google/uuid"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

const (
	userA = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	userB = "16fd2706-8baf-433b-82eb-8c7fada847da"
)

type fakeSessions struct {
	s  models.Session
	ok bool
}

func (f fakeSessions) Current() (models.Session, bool) { return f.s, f.ok }

func signedIn(userID string) fakeSessions {
	return fakeSessions{s: models.Session{UserID: userID, RawToken: "tok-" + userID}, ok: true}
}

// tableStore is an in-memory remote store: inserts get an id and a
// creation time, selects honor equality filters, ordering and limits.
type tableStore struct {
	mu     sync.Mutex
	tables map[string][]models.Row
	seq    int
}

func newTableStore() *tableStore {
	return &tableStore{tables: map[string][]models.Row{}}
}

func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return v
}

func (s *tableStore) insert(ctx context.Context, token, table string, row models.Row) (models.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	stored := models.Row{
		"id":         uuid.NewString(),
		"created_at": testNow.Add(time.Duration(s.seq) * time.Second).Format(time.RFC3339Nano),
	}
	for k, v := range row {
		stored[k] = normalizeValue(v)
	}
	s.tables[table] = append(s.tables[table], stored)
	return stored, nil
}

func (s *tableStore) add(table string, row models.Row) {
	_, _ = s.insert(context.Background(), "", table, row)
}

func (s *tableStore) selectRows(ctx context.Context, token string, q client.Query) ([]models.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Row
	for _, row := range s.tables[q.Table] {
		match := true
		for k, v := range q.Filters {
			if fmt.Sprint(row[k]) != v {
				match = false
			}
		}
		if match {
			out = append(out, row)
		}
	}
	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := fmt.Sprint(out[i][q.OrderBy]), fmt.Sprint(out[j][q.OrderBy])
			if q.Ascending {
				return a < b
			}
			return a > b
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *tableStore) update(ctx context.Context, token, table string, filters map[string]string, patch models.Row) ([]models.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Row
	for _, row := range s.tables[table] {
		match := true
		for k, v := range filters {
			if fmt.Sprint(row[k]) != v {
				match = false
			}
		}
		if !match {
			continue
		}
		for k, v := range patch {
			row[k] = normalizeValue(v)
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *tableStore) fake() *clienttest.Fake {
	return &clienttest.Fake{
		InsertFunc: s.insert,
		SelectFunc: s.selectRows,
		UpdateFunc: s.update,
	}
}

func profileRow(userID, name string) models.Row {
	return models.Row{
		"id":         uuid.NewString(),
		"user_id":    userID,
		"full_name":  name,
		"created_at": testNow.Format(time.RFC3339Nano),
		"updated_at": testNow.Format(time.RFC3339Nano),
	}
}
