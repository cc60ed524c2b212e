// Package grpc exposes the user and profile services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/fuel/internal/logging"
	pb "github.com/dmitrijs2005/fuel/internal/proto"
	"github.com/dmitrijs2005/fuel/internal/server/models"
	"github.com/dmitrijs2005/fuel/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the part of services.UserService the handlers use.
type UserService interface {
	Signup(ctx context.Context, in services.SignupInput) (*services.Account, *services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// ProfileService is the part of services.ProfileService the handlers use.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*services.Account, error)
	Update(ctx context.Context, userID string, patch *models.ProfilePatch) (*services.Account, error)
}

type GRPCServer struct {
	pb.UnimplementedFuelServiceServer
	address   string
	users     UserService
	profiles  ProfileService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us UserService, ps ProfileService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		profiles:  ps,
		jwtSecret: []byte(secretKey),
	}
}

// NewServer builds a grpc.Server with the request id, logging and access
// token interceptors and registers s on it.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		s.requestIDInterceptor,
		s.loggingInterceptor,
		s.accessTokenInterceptor,
	))
	srv := grpc.NewServer(opts...)
	pb.RegisterFuelServiceServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	return srv.Serve(listen)
}
