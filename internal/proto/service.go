package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "memorylane.v1.MemoryLane"

const (
	MemoryLane_SignUp_FullMethodName          = "/memorylane.v1.MemoryLane/SignUp"
	MemoryLane_SignIn_FullMethodName          = "/memorylane.v1.MemoryLane/SignIn"
	MemoryLane_RefreshToken_FullMethodName    = "/memorylane.v1.MemoryLane/RefreshToken"
	MemoryLane_SignOut_FullMethodName         = "/memorylane.v1.MemoryLane/SignOut"
	MemoryLane_GetUser_FullMethodName         = "/memorylane.v1.MemoryLane/GetUser"
	MemoryLane_Ping_FullMethodName            = "/memorylane.v1.MemoryLane/Ping"
	MemoryLane_ListMemories_FullMethodName    = "/memorylane.v1.MemoryLane/ListMemories"
	MemoryLane_InsertMemory_FullMethodName    = "/memorylane.v1.MemoryLane/InsertMemory"
	MemoryLane_DeleteMemory_FullMethodName    = "/memorylane.v1.MemoryLane/DeleteMemory"
	MemoryLane_CreateUploadURL_FullMethodName = "/memorylane.v1.MemoryLane/CreateUploadURL"
	MemoryLane_GetPublicURL_FullMethodName    = "/memorylane.v1.MemoryLane/GetPublicURL"
)

// MemoryLaneServer is the server API for the MemoryLane service.
type MemoryLaneServer interface {
	SignUp(context.Context, *SignUpRequest) (*AuthResponse, error)
	SignIn(context.Context, *SignInRequest) (*AuthResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error)
	GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	ListMemories(context.Context, *ListMemoriesRequest) (*ListMemoriesResponse, error)
	InsertMemory(context.Context, *InsertMemoryRequest) (*InsertMemoryResponse, error)
	DeleteMemory(context.Context, *DeleteMemoryRequest) (*DeleteMemoryResponse, error)
	CreateUploadURL(context.Context, *CreateUploadURLRequest) (*CreateUploadURLResponse, error)
	GetPublicURL(context.Context, *GetPublicURLRequest) (*GetPublicURLResponse, error)
}

// UnimplementedMemoryLaneServer answers codes.Unimplemented for every method.
type UnimplementedMemoryLaneServer struct{}

func (UnimplementedMemoryLaneServer) SignUp(context.Context, *SignUpRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignUp not implemented")
}
func (UnimplementedMemoryLaneServer) SignIn(context.Context, *SignInRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignIn not implemented")
}
func (UnimplementedMemoryLaneServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedMemoryLaneServer) SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignOut not implemented")
}
func (UnimplementedMemoryLaneServer) GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUser not implemented")
}
func (UnimplementedMemoryLaneServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedMemoryLaneServer) ListMemories(context.Context, *ListMemoriesRequest) (*ListMemoriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMemories not implemented")
}
func (UnimplementedMemoryLaneServer) InsertMemory(context.Context, *InsertMemoryRequest) (*InsertMemoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method InsertMemory not implemented")
}
func (UnimplementedMemoryLaneServer) DeleteMemory(context.Context, *DeleteMemoryRequest) (*DeleteMemoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteMemory not implemented")
}
func (UnimplementedMemoryLaneServer) CreateUploadURL(context.Context, *CreateUploadURLRequest) (*CreateUploadURLResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateUploadURL not implemented")
}
func (UnimplementedMemoryLaneServer) GetPublicURL(context.Context, *GetPublicURLRequest) (*GetPublicURLResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPublicURL not implemented")
}

// unary adapts a typed method into a grpc.MethodHandler, running the
// server's interceptor chain when one is installed.
func unary[Req, Resp any](fullMethod string, call func(MemoryLaneServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MemoryLaneServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MemoryLaneServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// MemoryLane_ServiceDesc is the grpc.ServiceDesc for the MemoryLane service.
var MemoryLane_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MemoryLaneServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SignUp", Handler: unary(MemoryLane_SignUp_FullMethodName, MemoryLaneServer.SignUp)},
		{MethodName: "SignIn", Handler: unary(MemoryLane_SignIn_FullMethodName, MemoryLaneServer.SignIn)},
		{MethodName: "RefreshToken", Handler: unary(MemoryLane_RefreshToken_FullMethodName, MemoryLaneServer.RefreshToken)},
		{MethodName: "SignOut", Handler: unary(MemoryLane_SignOut_FullMethodName, MemoryLaneServer.SignOut)},
		{MethodName: "GetUser", Handler: unary(MemoryLane_GetUser_FullMethodName, MemoryLaneServer.GetUser)},
		{MethodName: "Ping", Handler: unary(MemoryLane_Ping_FullMethodName, MemoryLaneServer.Ping)},
		{MethodName: "ListMemories", Handler: unary(MemoryLane_ListMemories_FullMethodName, MemoryLaneServer.ListMemories)},
		{MethodName: "InsertMemory", Handler: unary(MemoryLane_InsertMemory_FullMethodName, MemoryLaneServer.InsertMemory)},
		{MethodName: "DeleteMemory", Handler: unary(MemoryLane_DeleteMemory_FullMethodName, MemoryLaneServer.DeleteMemory)},
		{MethodName: "CreateUploadURL", Handler: unary(MemoryLane_CreateUploadURL_FullMethodName, MemoryLaneServer.CreateUploadURL)},
		{MethodName: "GetPublicURL", Handler: unary(MemoryLane_GetPublicURL_FullMethodName, MemoryLaneServer.GetPublicURL)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "memorylane/v1/memorylane.proto",
}

func RegisterMemoryLaneServer(s grpc.ServiceRegistrar, srv MemoryLaneServer) {
	s.RegisterService(&MemoryLane_ServiceDesc, srv)
}

// MemoryLaneClient is the client API for the MemoryLane service.
type MemoryLaneClient interface {
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error)
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	ListMemories(ctx context.Context, in *ListMemoriesRequest, opts ...grpc.CallOption) (*ListMemoriesResponse, error)
	InsertMemory(ctx context.Context, in *InsertMemoryRequest, opts ...grpc.CallOption) (*InsertMemoryResponse, error)
	DeleteMemory(ctx context.Context, in *DeleteMemoryRequest, opts ...grpc.CallOption) (*DeleteMemoryResponse, error)
	CreateUploadURL(ctx context.Context, in *CreateUploadURLRequest, opts ...grpc.CallOption) (*CreateUploadURLResponse, error)
	GetPublicURL(ctx context.Context, in *GetPublicURLRequest, opts ...grpc.CallOption) (*GetPublicURLResponse, error)
}

type memoryLaneClient struct {
	cc grpc.ClientConnInterface
}

func NewMemoryLaneClient(cc grpc.ClientConnInterface) MemoryLaneClient {
	return &memoryLaneClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *memoryLaneClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MemoryLane_SignUp_FullMethodName, in, opts)
}

func (c *memoryLaneClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MemoryLane_SignIn_FullMethodName, in, opts)
}

func (c *memoryLaneClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MemoryLane_RefreshToken_FullMethodName, in, opts)
}

func (c *memoryLaneClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error) {
	return invoke[SignOutResponse](ctx, c.cc, MemoryLane_SignOut_FullMethodName, in, opts)
}

func (c *memoryLaneClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*GetUserResponse, error) {
	return invoke[GetUserResponse](ctx, c.cc, MemoryLane_GetUser_FullMethodName, in, opts)
}

func (c *memoryLaneClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MemoryLane_Ping_FullMethodName, in, opts)
}

func (c *memoryLaneClient) ListMemories(ctx context.Context, in *ListMemoriesRequest, opts ...grpc.CallOption) (*ListMemoriesResponse, error) {
	return invoke[ListMemoriesResponse](ctx, c.cc, MemoryLane_ListMemories_FullMethodName, in, opts)
}

func (c *memoryLaneClient) InsertMemory(ctx context.Context, in *InsertMemoryRequest, opts ...grpc.CallOption) (*InsertMemoryResponse, error) {
	return invoke[InsertMemoryResponse](ctx, c.cc, MemoryLane_InsertMemory_FullMethodName, in, opts)
}

func (c *memoryLaneClient) DeleteMemory(ctx context.Context, in *DeleteMemoryRequest, opts ...grpc.CallOption) (*DeleteMemoryResponse, error) {
	return invoke[DeleteMemoryResponse](ctx, c.cc, MemoryLane_DeleteMemory_FullMethodName, in, opts)
}

func (c *memoryLaneClient) CreateUploadURL(ctx context.Context, in *CreateUploadURLRequest, opts ...grpc.CallOption) (*CreateUploadURLResponse, error) {
	return invoke[CreateUploadURLResponse](ctx, c.cc, MemoryLane_CreateUploadURL_FullMethodName, in, opts)
}

func (c *memoryLaneClient) GetPublicURL(ctx context.Context, in *GetPublicURLRequest, opts ...grpc.CallOption) (*GetPublicURLResponse, error) {
	return invoke[GetPublicURLResponse](ctx, c.cc, MemoryLane_GetPublicURL_FullMethodName, in, opts)
}
