package client

import (
	"context"

	pb "github.com/dmitrijs2005/fuel/internal/proto"
)

type Client interface {
	Close() error
	Signup(ctx context.Context, req *pb.SignupRequest) (*pb.UserData, error)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	GetProfile(ctx context.Context) (*pb.UserData, error)
	UpdateProfile(ctx context.Context, update *pb.ProfileUpdate) (*pb.UserData, error)

	// Tokens returns the current access and refresh tokens.
	Tokens() (access, refresh string)
	// SetTokens installs a previously saved session.
	SetTokens(access, refresh string)
	// OnTokens registers a callback run after every token change made by
	// the client itself (login, signup, refresh, logout).
	OnTokens(fn func(access, refresh string))
}
