package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fuel/internal/common"
	pb "github.com/dmitrijs2005/fuel/internal/proto"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.FuelServiceClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	onTokens     func(access, refresh string)

	// serialises refreshes so concurrent calls rotate the token once
	refreshMu sync.Mutex
}

// NewFuelClient connects to endpointURL. Extra dial options are appended
// after the defaults (tests pass a bufconn dialer here).
func NewFuelClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewFuelServiceClient(conn)
	return c, nil
}

func withMetadata(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	if len(md.Get(common.RequestIDHeaderName)) == 0 {
		md.Set(common.RequestIDHeaderName, uuid.NewString())
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, _ := c.Tokens()
	err := invoker(withMetadata(ctx, access), method, req, reply, cc, opts...)
	if err == nil || method == pb.FullMethod(pb.MethodRefreshToken) {
		return err
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}

	if rerr := c.refresh(ctx, access); rerr != nil {
		return rerr
	}

	access, _ = c.Tokens()
	return invoker(withMetadata(ctx, access), method, req, reply, cc, opts...)
}

// refresh rotates the token pair unless another caller already replaced
// stale in the meantime.
func (c *GRPCClient) refresh(ctx context.Context, stale string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	access, refresh := c.Tokens()
	if access != stale {
		return nil
	}
	if refresh == "" {
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}

	resp, err := c.client.RefreshToken(ctx, &pb.RefreshRequest{RefreshToken: refresh})
	if err != nil {
		// an expired or revoked refresh token ends the session
		if status.Code(err) == codes.Unauthenticated {
			c.setTokens("", "", true)
		}
		return err
	}
	c.setTokens(resp.AccessToken, resp.RefreshToken, true)
	return nil
}

func (c *GRPCClient) Tokens() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshToken
}

func (c *GRPCClient) SetTokens(access, refresh string) {
	c.setTokens(access, refresh, false)
}

func (c *GRPCClient) OnTokens(fn func(access, refresh string)) {
	c.mu.Lock()
	c.onTokens = fn
	c.mu.Unlock()
}

func (c *GRPCClient) setTokens(access, refresh string, notify bool) {
	c.mu.Lock()
	c.accessToken, c.refreshToken = access, refresh
	fn := c.onTokens
	c.mu.Unlock()

	if notify && fn != nil {
		fn(access, refresh)
	}
}

func (c *GRPCClient) Signup(ctx context.Context, req *pb.SignupRequest) (*pb.UserData, error) {
	resp, err := c.client.Signup(ctx, req)
	if err != nil {
		return nil, c.mapError(err)
	}
	c.setTokens(resp.AccessToken, resp.RefreshToken, true)
	return &resp.User, nil
}

func (c *GRPCClient) Login(ctx context.Context, email, password string) error {
	resp, err := c.client.Login(ctx, &pb.Credentials{Email: email, Password: password})
	if err != nil {
		return c.mapError(err)
	}
	c.setTokens(resp.AccessToken, resp.RefreshToken, true)
	return nil
}

// Logout revokes the refresh token on the server and forgets both tokens
// locally. Local state is cleared even when the server cannot be reached.
func (c *GRPCClient) Logout(ctx context.Context) error {
	_, refresh := c.Tokens()
	c.setTokens("", "", true)
	if refresh == "" {
		return nil
	}
	if _, err := c.client.Logout(ctx, &pb.RefreshRequest{RefreshToken: refresh}); err != nil {
		return c.mapError(err)
	}
	return nil
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	resp, err := c.client.Ping(ctx, &pb.Empty{})
	if err != nil {
		return c.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) GetProfile(ctx context.Context) (*pb.UserData, error) {
	resp, err := c.client.GetProfile(ctx, &pb.Empty{})
	if err != nil {
		return nil, c.mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) UpdateProfile(ctx context.Context, update *pb.ProfileUpdate) (*pb.UserData, error) {
	resp, err := c.client.UpdateProfile(ctx, update)
	if err != nil {
		return nil, c.mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.AlreadyExists:
		return ErrConflict
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalid, st.Message())
	case codes.Canceled:
		return context.Canceled
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
