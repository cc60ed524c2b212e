package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "fuel.v1.FuelService"

const (
	MethodSignup        = "Signup"
	MethodLogin         = "Login"
	MethodRefreshToken  = "RefreshToken"
	MethodLogout        = "Logout"
	MethodPing          = "Ping"
	MethodGetProfile    = "GetProfile"
	MethodUpdateProfile = "UpdateProfile"
)

// FullMethod returns the "/service/method" name used by interceptors.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type FuelServiceServer interface {
	Signup(context.Context, *SignupRequest) (*AuthResponse, error)
	Login(context.Context, *Credentials) (*TokenPair, error)
	RefreshToken(context.Context, *RefreshRequest) (*TokenPair, error)
	Logout(context.Context, *RefreshRequest) (*Empty, error)
	Ping(context.Context, *Empty) (*PingResponse, error)
	GetProfile(context.Context, *Empty) (*UserData, error)
	UpdateProfile(context.Context, *ProfileUpdate) (*UserData, error)
}

// UnimplementedFuelServiceServer answers every method with
// codes.Unimplemented. Embed it to stay forward compatible.
type UnimplementedFuelServiceServer struct{}

func (UnimplementedFuelServiceServer) Signup(context.Context, *SignupRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Signup not implemented")
}
func (UnimplementedFuelServiceServer) Login(context.Context, *Credentials) (*TokenPair, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedFuelServiceServer) RefreshToken(context.Context, *RefreshRequest) (*TokenPair, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedFuelServiceServer) Logout(context.Context, *RefreshRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedFuelServiceServer) Ping(context.Context, *Empty) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedFuelServiceServer) GetProfile(context.Context, *Empty) (*UserData, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedFuelServiceServer) UpdateProfile(context.Context, *ProfileUpdate) (*UserData, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProfile not implemented")
}

func RegisterFuelServiceServer(s grpc.ServiceRegistrar, srv FuelServiceServer) {
	s.RegisterService(&FuelService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler. The
// interceptor chain sees the decoded Go request.
func unaryHandler[Req, Resp any](method string, call func(FuelServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := &structpb.Struct{}
		if err := dec(in); err != nil {
			return nil, err
		}
		req := new(Req)
		if err := FromStruct(in, req); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
		}

		invoke := func(ctx context.Context, r any) (any, error) {
			return call(srv.(FuelServiceServer), ctx, r.(*Req))
		}

		var out any
		var err error
		if interceptor == nil {
			out, err = invoke(ctx, req)
		} else {
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			out, err = interceptor(ctx, req, info, invoke)
		}
		if err != nil {
			return nil, err
		}

		resp, err := ToStruct(out)
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		return resp, nil
	}
}

var FuelService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FuelServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodSignup, Handler: unaryHandler(MethodSignup, FuelServiceServer.Signup)},
		{MethodName: MethodLogin, Handler: unaryHandler(MethodLogin, FuelServiceServer.Login)},
		{MethodName: MethodRefreshToken, Handler: unaryHandler(MethodRefreshToken, FuelServiceServer.RefreshToken)},
		{MethodName: MethodLogout, Handler: unaryHandler(MethodLogout, FuelServiceServer.Logout)},
		{MethodName: MethodPing, Handler: unaryHandler(MethodPing, FuelServiceServer.Ping)},
		{MethodName: MethodGetProfile, Handler: unaryHandler(MethodGetProfile, FuelServiceServer.GetProfile)},
		{MethodName: MethodUpdateProfile, Handler: unaryHandler(MethodUpdateProfile, FuelServiceServer.UpdateProfile)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fuel/v1/fuel.proto",
}

type FuelServiceClient interface {
	Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Login(ctx context.Context, in *Credentials, opts ...grpc.CallOption) (*TokenPair, error)
	RefreshToken(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*TokenPair, error)
	Logout(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*Empty, error)
	Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error)
	GetProfile(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserData, error)
	UpdateProfile(ctx context.Context, in *ProfileUpdate, opts ...grpc.CallOption) (*UserData, error)
}

type fuelServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFuelServiceClient(cc grpc.ClientConnInterface) FuelServiceClient {
	return &fuelServiceClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	req, err := ToStruct(in)
	if err != nil {
		return nil, err
	}
	reply := &structpb.Struct{}
	if err := cc.Invoke(ctx, FullMethod(method), req, reply, opts...); err != nil {
		return nil, err
	}
	out := new(Resp)
	if err := FromStruct(reply, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fuelServiceClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[SignupRequest, AuthResponse](ctx, c.cc, MethodSignup, in, opts)
}

func (c *fuelServiceClient) Login(ctx context.Context, in *Credentials, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[Credentials, TokenPair](ctx, c.cc, MethodLogin, in, opts)
}

func (c *fuelServiceClient) RefreshToken(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[RefreshRequest, TokenPair](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *fuelServiceClient) Logout(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[RefreshRequest, Empty](ctx, c.cc, MethodLogout, in, opts)
}

func (c *fuelServiceClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[Empty, PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *fuelServiceClient) GetProfile(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserData, error) {
	return invoke[Empty, UserData](ctx, c.cc, MethodGetProfile, in, opts)
}

func (c *fuelServiceClient) UpdateProfile(ctx context.Context, in *ProfileUpdate, opts ...grpc.CallOption) (*UserData, error) {
	return invoke[ProfileUpdate, UserData](ctx, c.cc, MethodUpdateProfile, in, opts)
}
