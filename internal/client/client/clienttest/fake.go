// Package clienttest provides a scriptable client.RemoteStore for tests.
package clienttest

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
)

// Call is one recorded invocation.
type Call struct {
	Method string
	Token  string
	Table  string
	Query  client.Query
	Row    models.Row
}

// Fake records every call and delegates to the optional hook of the same
// name. A nil hook succeeds with zero values.
type Fake struct {
	SignInFunc         func(ctx context.Context, email, password string) (client.AuthResult, error)
	SignUpFunc         func(ctx context.Context, email, password, fullName string) (models.SignUpResult, error)
	SignOutFunc        func(ctx context.Context, token string) error
	GetUserFunc        func(ctx context.Context, token string) (client.User, error)
	ResetPasswordFunc  func(ctx context.Context, email, redirectTo string) error
	UpdatePasswordFunc func(ctx context.Context, token, password string) error
	SelectFunc         func(ctx context.Context, token string, q client.Query) ([]models.Row, error)
	InsertFunc         func(ctx context.Context, token, table string, row models.Row) (models.Row, error)
	UpdateFunc         func(ctx context.Context, token, table string, filters map[string]string, patch models.Row) ([]models.Row, error)
	HasRoleFunc        func(ctx context.Context, token string, role models.Role, userID string) (bool, error)

	mu    sync.Mutex
	calls []Call
}

var _ client.RemoteStore = (*Fake)(nil)

func (f *Fake) record(c Call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

// Calls returns the recorded calls in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many times method was called.
func (f *Fake) Count(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *Fake) Close() error { return nil }

func (f *Fake) SignIn(ctx context.Context, email, password string) (client.AuthResult, error) {
	f.record(Call{Method: "SignIn"})
	if f.SignInFunc == nil {
		return client.AuthResult{}, nil
	}
	return f.SignInFunc(ctx, email, password)
}

func (f *Fake) SignUp(ctx context.Context, email, password, fullName string) (models.SignUpResult, error) {
	f.record(Call{Method: "SignUp"})
	if f.SignUpFunc == nil {
		return models.SignUpResult{}, nil
	}
	return f.SignUpFunc(ctx, email, password, fullName)
}

func (f *Fake) SignOut(ctx context.Context, token string) error {
	f.record(Call{Method: "SignOut", Token: token})
	if f.SignOutFunc == nil {
		return nil
	}
	return f.SignOutFunc(ctx, token)
}

func (f *Fake) GetUser(ctx context.Context, token string) (client.User, error) {
	f.record(Call{Method: "GetUser", Token: token})
	if f.GetUserFunc == nil {
		return client.User{}, nil
	}
	return f.GetUserFunc(ctx, token)
}

func (f *Fake) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	f.record(Call{Method: "ResetPasswordForEmail"})
	if f.ResetPasswordFunc == nil {
		return nil
	}
	return f.ResetPasswordFunc(ctx, email, redirectTo)
}

func (f *Fake) UpdatePassword(ctx context.Context, token, password string) error {
	f.record(Call{Method: "UpdatePassword", Token: token})
	if f.UpdatePasswordFunc == nil {
		return nil
	}
	return f.UpdatePasswordFunc(ctx, token, password)
}

func (f *Fake) Select(ctx context.Context, token string, q client.Query) ([]models.Row, error) {
	f.record(Call{Method: "Select", Token: token, Table: q.Table, Query: q})
	if f.SelectFunc == nil {
		return nil, nil
	}
	return f.SelectFunc(ctx, token, q)
}

func (f *Fake) Insert(ctx context.Context, token, table string, row models.Row) (models.Row, error) {
	f.record(Call{Method: "Insert", Token: token, Table: table, Row: row})
	if f.InsertFunc == nil {
		return row, nil
	}
	return f.InsertFunc(ctx, token, table, row)
}

func (f *Fake) Update(ctx context.Context, token, table string, filters map[string]string, patch models.Row) ([]models.Row, error) {
	f.record(Call{Method: "Update", Token: token, Table: table, Row: patch, Query: client.Query{Table: table, Filters: filters}})
	if f.UpdateFunc == nil {
		return nil, nil
	}
	return f.UpdateFunc(ctx, token, table, filters, patch)
}

func (f *Fake) HasRole(ctx context.Context, token string, role models.Role, userID string) (bool, error) {
	f.record(Call{Method: "HasRole", Token: token})
	if f.HasRoleFunc == nil {
		return false, nil
	}
	return f.HasRoleFunc(ctx, token, role, userID)
}
