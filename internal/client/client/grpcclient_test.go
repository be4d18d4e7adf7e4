package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/memorylane/internal/client/models"
	"github.com/dmitrijs2005/memorylane/internal/common"
	pb "github.com/dmitrijs2005/memorylane/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// gateway is a minimal in-process server. Any token other than validToken
// is rejected as expired.
type gateway struct {
	pb.UnimplementedMemoryLaneServer

	mu         sync.Mutex
	validToken string
	refreshes  atomic.Int32
	signOutErr error
	gotSignOut string
	memories   []*pb.Memory
	inserted   *pb.Memory
}

func (g *gateway) checkToken(ctx context.Context) error {
	md, _ := metadata.FromIncomingContext(ctx)
	toks := md.Get(common.AccessTokenHeaderName)
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(toks) != 1 || toks[0] != g.validToken {
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}
	return nil
}

func (g *gateway) SignIn(_ context.Context, req *pb.SignInRequest) (*pb.AuthResponse, error) {
	if req.Password != "secret1" {
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidCredentials.Error())
	}
	g.mu.Lock()
	g.validToken = "A1"
	g.mu.Unlock()
	return &pb.AuthResponse{
		AccessToken:  "A1",
		RefreshToken: "R1",
		ExpiresAt:    1700000000,
		User:         &pb.User{Id: "u1", Email: req.Email, CreatedAt: "2024-05-01T10:00:00Z"},
	}, nil
}

func (g *gateway) SignUp(context.Context, *pb.SignUpRequest) (*pb.AuthResponse, error) {
	return nil, status.Error(codes.AlreadyExists, common.ErrUserAlreadyExists.Error())
}

func (g *gateway) RefreshToken(_ context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {
	g.refreshes.Add(1)
	time.Sleep(20 * time.Millisecond)
	if req.RefreshToken != "R1" {
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}
	g.mu.Lock()
	g.validToken = "A2"
	g.mu.Unlock()
	return &pb.RefreshTokenResponse{AccessToken: "A2", RefreshToken: "R2", ExpiresAt: 1700000900}, nil
}

func (g *gateway) SignOut(_ context.Context, req *pb.SignOutRequest) (*pb.SignOutResponse, error) {
	g.gotSignOut = req.RefreshToken
	return &pb.SignOutResponse{}, g.signOutErr
}

func (g *gateway) ListMemories(ctx context.Context, _ *pb.ListMemoriesRequest) (*pb.ListMemoriesResponse, error) {
	if err := g.checkToken(ctx); err != nil {
		return nil, err
	}
	return &pb.ListMemoriesResponse{Memories: g.memories}, nil
}

func (g *gateway) InsertMemory(ctx context.Context, req *pb.InsertMemoryRequest) (*pb.InsertMemoryResponse, error) {
	if err := g.checkToken(ctx); err != nil {
		return nil, err
	}
	g.inserted = req.Memory
	m := *req.Memory
	m.Id = "m-new"
	m.CreatedAt = "2024-05-02T08:00:00.123Z"
	return &pb.InsertMemoryResponse{Memory: &m}, nil
}

func (g *gateway) DeleteMemory(ctx context.Context, req *pb.DeleteMemoryRequest) (*pb.DeleteMemoryResponse, error) {
	if err := g.checkToken(ctx); err != nil {
		return nil, err
	}
	return nil, status.Error(codes.NotFound, "memory not found")
}

func (g *gateway) Ping(context.Context, *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func dialGateway(t *testing.T, g *gateway) *GRPCClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	pb.RegisterMemoryLaneServer(s, g)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := NewMemoryLaneClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSignIn_StartsSession(t *testing.T) {
	c := dialGateway(t, &gateway{})

	sess, err := c.SignIn(context.Background(), "ann@example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "A1", sess.AccessToken)
	assert.Equal(t, "R1", sess.RefreshToken)
	assert.Equal(t, time.Unix(1700000000, 0), sess.ExpiresAt)
	assert.Equal(t, "u1", sess.User.ID)
	assert.Equal(t, "ann@example.com", sess.User.Email)
	assert.Equal(t, 2024, sess.User.CreatedAt.Year())

	access, refresh := c.tokens()
	assert.Equal(t, "A1", access)
	assert.Equal(t, "R1", refresh)
}

func TestAuthErrors_KeepServerMessage(t *testing.T) {
	c := dialGateway(t, &gateway{})

	_, err := c.SignIn(context.Background(), "ann@example.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "invalid login credentials", err.Error())

	_, err = c.SignUp(context.Background(), "ann@example.com", "secret1")
	require.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, "user already registered", err.Error())
}

func TestInterceptor_RefreshesExpiredTokenAndRetries(t *testing.T) {
	g := &gateway{memories: []*pb.Memory{{Id: "m1", Title: "Lake"}}}
	c := dialGateway(t, g)

	_, err := c.SignIn(context.Background(), "ann@example.com", "secret1")
	require.NoError(t, err)

	var got []string
	c.OnTokens(func(a, r string, exp time.Time) {
		got = append(got, a, r)
		assert.Equal(t, time.Unix(1700000900, 0), exp)
	})

	g.mu.Lock()
	g.validToken = "rotated-elsewhere"
	g.mu.Unlock()

	items, err := c.ListMemories(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Lake", items[0].Title)
	assert.Equal(t, []string{"A2", "R2"}, got)
	assert.EqualValues(t, 1, g.refreshes.Load())
}

func TestInterceptor_ConcurrentExpiredCallsRefreshOnce(t *testing.T) {
	g := &gateway{}
	c := dialGateway(t, g)
	c.UseSession(&models.Session{AccessToken: "A0", RefreshToken: "R1"})

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.ListMemories(context.Background(), "u1")
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, g.refreshes.Load())
}

func TestInterceptor_NoRefreshTokenSurfacesExpiry(t *testing.T) {
	g := &gateway{}
	c := dialGateway(t, g)
	c.UseSession(&models.Session{AccessToken: "stale"})

	_, err := c.ListMemories(context.Background(), "u1")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "token expired", err.Error())
	assert.EqualValues(t, 0, g.refreshes.Load())
}

func TestInsertMemory_MapsBothWays(t *testing.T) {
	g := &gateway{validToken: "A1"}
	c := dialGateway(t, g)
	c.UseSession(&models.Session{AccessToken: "A1"})

	out, err := c.InsertMemory(context.Background(), &models.Memory{
		UserID:    "u1",
		Title:     "Trip",
		DateLabel: "May 2024",
		Attachments: []models.Attachment{
			{URL: "http://gw/media/u1/a.mp4", Kind: models.KindVideo},
			{URL: "http://gw/media/u1/b.jpg", Kind: models.KindImage},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, g.inserted)
	assert.Equal(t, "May 2024", g.inserted.Date)
	assert.Equal(t, "video", g.inserted.Attachments[0].Type)

	assert.Equal(t, "m-new", out.ID)
	assert.Equal(t, models.KindImage, out.Attachments[1].Kind)
	assert.Equal(t, 123*time.Millisecond, time.Duration(out.CreatedAt.Nanosecond()))
}

func TestDeleteMemory_NotFound(t *testing.T) {
	c := dialGateway(t, &gateway{validToken: "A1"})
	c.UseSession(&models.Session{AccessToken: "A1"})

	err := c.DeleteMemory(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "memory not found", err.Error())
}

func TestSignOut_DropsTokensEvenOnError(t *testing.T) {
	g := &gateway{signOutErr: status.Error(codes.Unavailable, "db down")}
	c := dialGateway(t, g)
	c.UseSession(&models.Session{AccessToken: "A1", RefreshToken: "R1"})

	err := c.SignOut(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "R1", g.gotSignOut)

	access, refresh := c.tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	require.NoError(t, c.SignOut(context.Background()))
}

func TestPing(t *testing.T) {
	c := dialGateway(t, &gateway{})
	require.NoError(t, c.Ping(context.Background()))
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		code codes.Code
		want error
	}{
		{codes.Unauthenticated, ErrUnauthorized},
		{codes.PermissionDenied, ErrForbidden},
		{codes.AlreadyExists, ErrAlreadyExists},
		{codes.InvalidArgument, ErrInvalidArgument},
		{codes.NotFound, ErrNotFound},
		{codes.Unavailable, ErrUnavailable},
		{codes.DeadlineExceeded, ErrUnavailable},
	}
	for _, tt := range tests {
		err := c.mapError(status.Error(tt.code, "msg"))
		assert.ErrorIs(t, err, tt.want, tt.code.String())
		assert.Equal(t, "msg", err.Error())
	}

	assert.Nil(t, c.mapError(nil))

	plain := errors.New("boom")
	assert.Same(t, plain, c.mapError(plain))

	assert.Equal(t, "internal error", c.mapError(status.Error(codes.Internal, "internal error")).Error())
}

func TestServerError_EmptyMessage(t *testing.T) {
	err := &ServerError{Kind: ErrForbidden}
	assert.Equal(t, "forbidden", err.Error())
}
