// Package grpc exposes the daylog service over gRPC: account methods are
// public, record methods require an access token.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/daylog/internal/api"
	"github.com/dmitrijs2005/daylog/internal/logging"
	"github.com/dmitrijs2005/daylog/internal/server/models"
	"github.com/dmitrijs2005/daylog/internal/server/services"
	"github.com/dmitrijs2005/daylog/internal/timex"
	"google.golang.org/grpc"
)

type UserService interface {
	Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type RecordService interface {
	List(ctx context.Context, userID string) ([]models.Record, error)
	ListByDate(ctx context.Context, userID string, date timex.Date) ([]models.Record, error)
	Create(ctx context.Context, userID string, r *models.Record) (*models.Record, error)
	Update(ctx context.Context, userID string, id int64, r *models.Record) (*models.Record, error)
	Delete(ctx context.Context, userID string, id int64) error
}

type GRPCServer struct {
	api.UnimplementedDaylogServiceServer
	address   string
	users     UserService
	records   RecordService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us UserService, rs RecordService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		records:   rs,
		jwtSecret: []byte(secretKey),
	}
}

// newServer builds a grpc.Server with the interceptor chain and the service
// registered.
func (s *GRPCServer) newServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor)}, opts...)
	srv := grpc.NewServer(opts...)
	api.RegisterDaylogServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled,
// then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-stopped:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
