package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/memorylane/internal/logging"
	pb "github.com/dmitrijs2005/memorylane/internal/proto"
	"github.com/dmitrijs2005/memorylane/internal/server/models"
	"github.com/dmitrijs2005/memorylane/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	SignUp(ctx context.Context, email, password string) (*services.Session, error)
	SignIn(ctx context.Context, email, password string) (*services.Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type memorySvc interface {
	List(ctx context.Context, callerID, userID string) ([]*models.Memory, error)
	Insert(ctx context.Context, callerID string, m *models.Memory) (*models.Memory, error)
	Delete(ctx context.Context, callerID, id string) error
}

type storageSvc interface {
	CreateUploadURL(ctx context.Context, userID, key, contentType string) (string, error)
	PublicURL(userID, key string) (string, error)
}

type GRPCServer struct {
	pb.UnimplementedMemoryLaneServer
	address   string
	users     userSvc
	memories  memorySvc
	storage   storageSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us userSvc, ms memorySvc, ss storageSvc, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		memories:  ms,
		storage:   ss,
		jwtSecret: []byte(secretKey),
	}
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	pb.RegisterMemoryLaneServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
