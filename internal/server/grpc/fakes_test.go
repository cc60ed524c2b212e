package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/dmitrijs2005/fuel/internal/logging"
	pb "github.com/dmitrijs2005/fuel/internal/proto"
	"github.com/dmitrijs2005/fuel/internal/server/models"
	"github.com/dmitrijs2005/fuel/internal/server/services"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

const testSecret = "secret"

type fakeUsers struct {
	signupIn  services.SignupInput
	signupErr error
	loginErr  error
	refresh   func(string) (*services.TokenPair, error)
	loggedOut []string
}

func (f *fakeUsers) Signup(_ context.Context, in services.SignupInput) (*services.Account, *services.TokenPair, error) {
	f.signupIn = in
	if f.signupErr != nil {
		return nil, nil, f.signupErr
	}
	prof := models.DefaultProfile()
	return &services.Account{User: &models.User{ID: "u1", Email: in.Email, Name: in.Name}, Profile: prof},
		&services.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (*services.TokenPair, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &services.TokenPair{AccessToken: "a-" + email, RefreshToken: "r"}, nil
}

func (f *fakeUsers) RefreshToken(_ context.Context, token string) (*services.TokenPair, error) {
	if f.refresh != nil {
		return f.refresh(token)
	}
	return &services.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil
}

func (f *fakeUsers) Logout(_ context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

type fakeProfiles struct {
	gotUser  string
	gotPatch *models.ProfilePatch
	err      error
}

func (f *fakeProfiles) account(userID string) *services.Account {
	return &services.Account{
		User:    &models.User{ID: userID, Email: "joe@ucla.edu", Name: "Joe Bruin"},
		Profile: models.DefaultProfile(),
	}
}

func (f *fakeProfiles) Get(_ context.Context, userID string) (*services.Account, error) {
	f.gotUser = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.account(userID), nil
}

func (f *fakeProfiles) Update(_ context.Context, userID string, patch *models.ProfilePatch) (*services.Account, error) {
	f.gotUser, f.gotPatch = userID, patch
	if f.err != nil {
		return nil, f.err
	}
	acc := f.account(userID)
	patch.Apply(acc.Profile)
	acc.Profile.Recompute()
	return acc, nil
}

func newTestServer(us *fakeUsers, ps *fakeProfiles) *GRPCServer {
	return NewGRPCServer("", logging.NewNop(), us, ps, testSecret)
}

// startBufconn serves s in memory and returns a connected client.
func startBufconn(t *testing.T, s *GRPCServer) pb.FuelServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := s.NewServer()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return pb.NewFuelServiceClient(conn)
}

