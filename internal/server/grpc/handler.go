package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fuel/internal/common"
	pb "github.com/dmitrijs2005/fuel/internal/proto"
	"github.com/dmitrijs2005/fuel/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Signup(ctx context.Context, req *pb.SignupRequest) (*pb.AuthResponse, error) {
	in := services.SignupInput{Email: req.Email, Password: req.Password, Name: req.Name}
	if req.Profile != nil {
		in.Profile = toPatch(req.Profile)
	}

	acc, tokens, err := s.users.Signup(ctx, in)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", acc.User.ID)
	return &pb.AuthResponse{
		User:         toUserData(acc),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.Credentials) (*pb.TokenPair, error) {
	tokens, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &pb.TokenPair{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshRequest) (*pb.TokenPair, error) {
	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &pb.TokenPair{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *pb.RefreshRequest) (*pb.Empty, error) {
	if req.RefreshToken == "" {
		return &pb.Empty{}, nil
	}
	if err := s.users.Logout(ctx, req.RefreshToken); err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.Empty) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *pb.Empty) (*pb.UserData, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	acc, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	out := toUserData(acc)
	return &out, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *pb.ProfileUpdate) (*pb.UserData, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	acc, err := s.profiles.Update(ctx, userID, toPatch(req))
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	out := toUserData(acc)
	return &out, nil
}

// mapError converts service errors into gRPC statuses. Validation messages
// are passed through; internal details are logged, never returned.
func (s *GRPCServer) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}
	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}
