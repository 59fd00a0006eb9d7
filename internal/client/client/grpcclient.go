package client

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/observability"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "/fittrack.store.v1.RemoteStore/"

const (
	methodSignIn        = serviceName + "SignInWithPassword"
	methodSignUp        = serviceName + "SignUp"
	methodSignOut       = serviceName + "SignOut"
	methodGetUser       = serviceName + "GetUser"
	methodResetPassword = serviceName + "ResetPasswordForEmail"
	methodUpdateUser    = serviceName + "UpdateUser"
	methodSelect        = serviceName + "Select"
	methodInsert        = serviceName + "Insert"
	methodUpdate        = serviceName + "Update"
	methodRPC           = serviceName + "Rpc"
)

// Options configure a GRPCClient.
type Options struct {
	Endpoint string
	APIKey   string
	// Timeout bounds every call; zero leaves calls unbounded.
	Timeout time.Duration
	TLS     bool
}

// GRPCClient talks to the remote store over gRPC. Payloads are
// google.protobuf.Struct messages so no generated stubs are involved.
type GRPCClient struct {
	opts Options
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
	now  func() time.Time
}

var _ RemoteStore = (*GRPCClient)(nil)

func withBearer(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, "Bearer "+token)
	return metadata.NewOutgoingContext(ctx, md)
}

// apiKeyInterceptor attaches the project key to every call and records
// call metrics.
func (s *GRPCClient) apiKeyInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx = metadata.AppendToOutgoingContext(ctx, common.APIKeyHeaderName, s.opts.APIKey)

	start := time.Now()
	err := invoker(ctx, method, req, reply, cc, opts...)
	observability.RecordRemoteCall(shortMethod(method), time.Since(start), err)

	return err
}

func shortMethod(method string) string {
	if len(method) > len(serviceName) && method[:len(serviceName)] == serviceName {
		return method[len(serviceName):]
	}
	return method
}

func NewGRPCClient(opts Options) (*GRPCClient, error) {
	c := &GRPCClient{opts: opts, now: time.Now}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	creds := insecure.NewCredentials()
	if s.opts.TLS {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	conn, err := grpc.NewClient(s.opts.Endpoint,
		grpc.WithTransportCredentials(creds),
		grpc.WithUnaryInterceptor(s.apiKeyInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.cc = conn
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// call performs one unary call and returns the decoded reply.
func (s *GRPCClient) call(ctx context.Context, method, token string, req map[string]any) (map[string]any, error) {
	in, err := encode(req)
	if err != nil {
		return nil, err
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	out := &structpb.Struct{}
	if err := s.cc.Invoke(withBearer(ctx, token), method, in, out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (AuthResult, error) {
	resp, err := s.call(ctx, methodSignIn, "", map[string]any{"email": email, "password": password})
	if err != nil {
		return AuthResult{}, mapSignInError(err)
	}

	user, err := decodeUser(resp)
	if err != nil {
		return AuthResult{}, err
	}
	token := getString(resp, "access_token")
	if token == "" {
		return AuthResult{}, ErrMalformedResponse
	}

	res := AuthResult{
		AccessToken: token,
		UserID:      user.ID,
		Email:       user.Email,
		IssuedAt:    getUnix(resp, "issued_at"),
		ExpiresAt:   getUnix(resp, "expires_at"),
	}
	if res.IssuedAt.IsZero() {
		res.IssuedAt = s.now().UTC()
	}
	return res, nil
}

func (s *GRPCClient) SignUp(ctx context.Context, email, password, fullName string) (models.SignUpResult, error) {
	req := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]any{"full_name": fullName},
	}
	resp, err := s.call(ctx, methodSignUp, "", req)
	if err != nil {
		return models.SignUpResult{}, mapError(err)
	}

	user, err := decodeUser(resp)
	if err != nil {
		return models.SignUpResult{}, err
	}
	// Without an explicit flag the account is assumed to need confirmation.
	confirm, ok := resp["confirmation_required"].(bool)
	if !ok {
		confirm = true
	}
	return models.SignUpResult{UserID: user.ID, ConfirmationRequired: confirm}, nil
}

func (s *GRPCClient) SignOut(ctx context.Context, token string) error {
	_, err := s.call(ctx, methodSignOut, token, map[string]any{})
	return mapError(err)
}

func (s *GRPCClient) GetUser(ctx context.Context, token string) (User, error) {
	resp, err := s.call(ctx, methodGetUser, token, map[string]any{})
	if err != nil {
		return User{}, mapError(err)
	}
	return decodeUser(resp)
}

func (s *GRPCClient) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	_, err := s.call(ctx, methodResetPassword, "", map[string]any{"email": email, "redirect_to": redirectTo})
	return mapError(err)
}

func (s *GRPCClient) UpdatePassword(ctx context.Context, token, password string) error {
	_, err := s.call(ctx, methodUpdateUser, token, map[string]any{"password": password})
	return mapError(err)
}

func (s *GRPCClient) Select(ctx context.Context, token string, q Query) ([]models.Row, error) {
	req := map[string]any{
		"table":   q.Table,
		"filters": stringMap(q.Filters),
	}
	if q.OrderBy != "" {
		req["order"] = map[string]any{"column": q.OrderBy, "ascending": q.Ascending}
	}
	if q.Limit > 0 {
		req["limit"] = q.Limit
	}

	resp, err := s.call(ctx, methodSelect, token, req)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeRows(resp)
}

func (s *GRPCClient) Insert(ctx context.Context, token, table string, row models.Row) (models.Row, error) {
	resp, err := s.call(ctx, methodInsert, token, map[string]any{"table": table, "row": map[string]any(row)})
	if err != nil {
		return nil, mapError(err)
	}
	rows, err := decodeRows(resp)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (s *GRPCClient) Update(ctx context.Context, token, table string, filters map[string]string, patch models.Row) ([]models.Row, error) {
	req := map[string]any{
		"table":   table,
		"filters": stringMap(filters),
		"patch":   map[string]any(patch),
	}
	resp, err := s.call(ctx, methodUpdate, token, req)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeRows(resp)
}

func (s *GRPCClient) HasRole(ctx context.Context, token string, role models.Role, userID string) (bool, error) {
	req := map[string]any{
		"function": ProcHasRole,
		"args":     map[string]any{"_role": string(role), "_user_id": userID},
	}
	resp, err := s.call(ctx, methodRPC, token, req)
	if err != nil {
		return false, mapError(err)
	}
	result, ok := resp["result"].(bool)
	if !ok {
		return false, ErrMalformedResponse
	}
	return result, nil
}
