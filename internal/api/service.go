package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "daylog.v1.DaylogService"

const (
	DaylogService_Ping_FullMethodName             = "/daylog.v1.DaylogService/Ping"
	DaylogService_RegisterUser_FullMethodName     = "/daylog.v1.DaylogService/RegisterUser"
	DaylogService_GetSalt_FullMethodName          = "/daylog.v1.DaylogService/GetSalt"
	DaylogService_Login_FullMethodName            = "/daylog.v1.DaylogService/Login"
	DaylogService_RefreshToken_FullMethodName     = "/daylog.v1.DaylogService/RefreshToken"
	DaylogService_ListRecords_FullMethodName      = "/daylog.v1.DaylogService/ListRecords"
	DaylogService_GetRecordsByDate_FullMethodName = "/daylog.v1.DaylogService/GetRecordsByDate"
	DaylogService_CreateRecord_FullMethodName     = "/daylog.v1.DaylogService/CreateRecord"
	DaylogService_UpdateRecord_FullMethodName     = "/daylog.v1.DaylogService/UpdateRecord"
	DaylogService_DeleteRecord_FullMethodName     = "/daylog.v1.DaylogService/DeleteRecord"
)

// DaylogServiceClient is the client API for DaylogService.
type DaylogServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (*ListRecordsResponse, error)
	GetRecordsByDate(ctx context.Context, in *GetRecordsByDateRequest, opts ...grpc.CallOption) (*GetRecordsByDateResponse, error)
	CreateRecord(ctx context.Context, in *CreateRecordRequest, opts ...grpc.CallOption) (*CreateRecordResponse, error)
	UpdateRecord(ctx context.Context, in *UpdateRecordRequest, opts ...grpc.CallOption) (*UpdateRecordResponse, error)
	DeleteRecord(ctx context.Context, in *DeleteRecordRequest, opts ...grpc.CallOption) (*DeleteRecordResponse, error)
}

type daylogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDaylogServiceClient(cc grpc.ClientConnInterface) DaylogServiceClient {
	return &daylogServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *daylogServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, DaylogService_Ping_FullMethodName, in, opts)
}

func (c *daylogServiceClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	return invoke[RegisterUserResponse](ctx, c.cc, DaylogService_RegisterUser_FullMethodName, in, opts)
}

func (c *daylogServiceClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, DaylogService_GetSalt_FullMethodName, in, opts)
}

func (c *daylogServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, DaylogService_Login_FullMethodName, in, opts)
}

func (c *daylogServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, DaylogService_RefreshToken_FullMethodName, in, opts)
}

func (c *daylogServiceClient) ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (*ListRecordsResponse, error) {
	return invoke[ListRecordsResponse](ctx, c.cc, DaylogService_ListRecords_FullMethodName, in, opts)
}

func (c *daylogServiceClient) GetRecordsByDate(ctx context.Context, in *GetRecordsByDateRequest, opts ...grpc.CallOption) (*GetRecordsByDateResponse, error) {
	return invoke[GetRecordsByDateResponse](ctx, c.cc, DaylogService_GetRecordsByDate_FullMethodName, in, opts)
}

func (c *daylogServiceClient) CreateRecord(ctx context.Context, in *CreateRecordRequest, opts ...grpc.CallOption) (*CreateRecordResponse, error) {
	return invoke[CreateRecordResponse](ctx, c.cc, DaylogService_CreateRecord_FullMethodName, in, opts)
}

func (c *daylogServiceClient) UpdateRecord(ctx context.Context, in *UpdateRecordRequest, opts ...grpc.CallOption) (*UpdateRecordResponse, error) {
	return invoke[UpdateRecordResponse](ctx, c.cc, DaylogService_UpdateRecord_FullMethodName, in, opts)
}

func (c *daylogServiceClient) DeleteRecord(ctx context.Context, in *DeleteRecordRequest, opts ...grpc.CallOption) (*DeleteRecordResponse, error) {
	return invoke[DeleteRecordResponse](ctx, c.cc, DaylogService_DeleteRecord_FullMethodName, in, opts)
}

// DaylogServiceServer is the server API for DaylogService. Implementations
// must embed UnimplementedDaylogServiceServer.
type DaylogServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	ListRecords(context.Context, *ListRecordsRequest) (*ListRecordsResponse, error)
	GetRecordsByDate(context.Context, *GetRecordsByDateRequest) (*GetRecordsByDateResponse, error)
	CreateRecord(context.Context, *CreateRecordRequest) (*CreateRecordResponse, error)
	UpdateRecord(context.Context, *UpdateRecordRequest) (*UpdateRecordResponse, error)
	DeleteRecord(context.Context, *DeleteRecordRequest) (*DeleteRecordResponse, error)
	mustEmbedUnimplementedDaylogServiceServer()
}

// UnimplementedDaylogServiceServer answers every method with
// codes.Unimplemented.
type UnimplementedDaylogServiceServer struct{}

func (UnimplementedDaylogServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedDaylogServiceServer) RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterUser not implemented")
}
func (UnimplementedDaylogServiceServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSalt not implemented")
}
func (UnimplementedDaylogServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedDaylogServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedDaylogServiceServer) ListRecords(context.Context, *ListRecordsRequest) (*ListRecordsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRecords not implemented")
}
func (UnimplementedDaylogServiceServer) GetRecordsByDate(context.Context, *GetRecordsByDateRequest) (*GetRecordsByDateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRecordsByDate not implemented")
}
func (UnimplementedDaylogServiceServer) CreateRecord(context.Context, *CreateRecordRequest) (*CreateRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateRecord not implemented")
}
func (UnimplementedDaylogServiceServer) UpdateRecord(context.Context, *UpdateRecordRequest) (*UpdateRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateRecord not implemented")
}
func (UnimplementedDaylogServiceServer) DeleteRecord(context.Context, *DeleteRecordRequest) (*DeleteRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteRecord not implemented")
}
func (UnimplementedDaylogServiceServer) mustEmbedUnimplementedDaylogServiceServer() {}

func RegisterDaylogServiceServer(s grpc.ServiceRegistrar, srv DaylogServiceServer) {
	s.RegisterService(&DaylogService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, decoding
// the request and routing through the server's interceptor chain.
func unaryHandler[Req any, Resp any](fullMethod string, call func(DaylogServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DaylogServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DaylogServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var DaylogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DaylogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(DaylogService_Ping_FullMethodName, DaylogServiceServer.Ping)},
		{MethodName: "RegisterUser", Handler: unaryHandler(DaylogService_RegisterUser_FullMethodName, DaylogServiceServer.RegisterUser)},
		{MethodName: "GetSalt", Handler: unaryHandler(DaylogService_GetSalt_FullMethodName, DaylogServiceServer.GetSalt)},
		{MethodName: "Login", Handler: unaryHandler(DaylogService_Login_FullMethodName, DaylogServiceServer.Login)},
		{MethodName: "RefreshToken", Handler: unaryHandler(DaylogService_RefreshToken_FullMethodName, DaylogServiceServer.RefreshToken)},
		{MethodName: "ListRecords", Handler: unaryHandler(DaylogService_ListRecords_FullMethodName, DaylogServiceServer.ListRecords)},
		{MethodName: "GetRecordsByDate", Handler: unaryHandler(DaylogService_GetRecordsByDate_FullMethodName, DaylogServiceServer.GetRecordsByDate)},
		{MethodName: "CreateRecord", Handler: unaryHandler(DaylogService_CreateRecord_FullMethodName, DaylogServiceServer.CreateRecord)},
		{MethodName: "UpdateRecord", Handler: unaryHandler(DaylogService_UpdateRecord_FullMethodName, DaylogServiceServer.UpdateRecord)},
		{MethodName: "DeleteRecord", Handler: unaryHandler(DaylogService_DeleteRecord_FullMethodName, DaylogServiceServer.DeleteRecord)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "daylog/v1/service",
}
