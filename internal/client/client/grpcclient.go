package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/memorylane/internal/client/models"
	"github.com/dmitrijs2005/memorylane/internal/common"
	pb "github.com/dmitrijs2005/memorylane/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	dialOpts    []grpc.DialOption
	conn        *grpc.ClientConn
	client      pb.MemoryLaneClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	onTokens     TokenListener

	// serializes refreshes so concurrent expired calls rotate the pair once
	refreshMu sync.Mutex
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken = access
	s.refreshToken = refresh
	s.mu.Unlock()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	access, _ := s.tokens()

	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) || method == pb.MemoryLane_RefreshToken_FullMethodName {
		return err
	}

	fresh, rerr := s.refresh(ctx, access)
	if rerr != nil {
		return rerr
	}

	return invoker(withAccessToken(ctx, fresh), method, req, reply, cc, opts...)
}

// refresh rotates the token pair unless another call already replaced stale.
func (s *GRPCClient) refresh(ctx context.Context, stale string) (string, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	access, refresh := s.tokens()
	if access != stale {
		return access, nil
	}
	if refresh == "" {
		return "", status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}

	resp, err := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: refresh})
	if err != nil {
		return "", err
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)

	s.mu.RLock()
	fn := s.onTokens
	s.mu.RUnlock()
	if fn != nil {
		fn(resp.AccessToken, resp.RefreshToken, time.Unix(resp.ExpiresAt, 0))
	}

	return resp.AccessToken, nil
}

func NewMemoryLaneClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, dialOpts: opts}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, s.dialOpts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewMemoryLaneClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) OnTokens(fn TokenListener) {
	s.mu.Lock()
	s.onTokens = fn
	s.mu.Unlock()
}

// UseSession makes the client act on behalf of a restored session; nil signs it out locally.
func (s *GRPCClient) UseSession(sess *models.Session) {
	if sess == nil {
		s.setTokens("", "")
		return
	}
	s.setTokens(sess.AccessToken, sess.RefreshToken)
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := s.client.SignUp(ctx, &pb.SignUpRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.startSession(resp), nil
}

func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := s.client.SignIn(ctx, &pb.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	return s.startSession(resp), nil
}

func (s *GRPCClient) startSession(resp *pb.AuthResponse) *models.Session {
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	sess := &models.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Unix(resp.ExpiresAt, 0),
	}
	if resp.User != nil {
		sess.User = *fromPBUser(resp.User)
	}
	return sess
}

// SignOut revokes the refresh token. Local tokens are dropped even when the
// server call fails.
func (s *GRPCClient) SignOut(ctx context.Context) error {
	_, refresh := s.tokens()
	defer s.setTokens("", "")

	if refresh == "" {
		return nil
	}

	if _, err := s.client.SignOut(ctx, &pb.SignOutRequest{RefreshToken: refresh}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) GetUser(ctx context.Context) (*models.User, error) {
	resp, err := s.client.GetUser(ctx, &pb.GetUserRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.User == nil {
		return nil, ErrNotFound
	}
	return fromPBUser(resp.User), nil
}

func (s *GRPCClient) ListMemories(ctx context.Context, userID string) ([]*models.Memory, error) {
	resp, err := s.client.ListMemories(ctx, &pb.ListMemoriesRequest{UserId: userID})
	if err != nil {
		return nil, s.mapError(err)
	}

	out := make([]*models.Memory, 0, len(resp.Memories))
	for _, m := range resp.Memories {
		if m != nil {
			out = append(out, fromPBMemory(m))
		}
	}
	return out, nil
}

func (s *GRPCClient) InsertMemory(ctx context.Context, m *models.Memory) (*models.Memory, error) {
	resp, err := s.client.InsertMemory(ctx, &pb.InsertMemoryRequest{Memory: toPBMemory(m)})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Memory == nil {
		return nil, ErrNotFound
	}
	return fromPBMemory(resp.Memory), nil
}

func (s *GRPCClient) DeleteMemory(ctx context.Context, id string) error {
	if _, err := s.client.DeleteMemory(ctx, &pb.DeleteMemoryRequest{Id: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) CreateUploadURL(ctx context.Context, key, contentType string) (string, error) {
	resp, err := s.client.CreateUploadURL(ctx, &pb.CreateUploadURLRequest{Key: key, ContentType: contentType})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Url, nil
}

func (s *GRPCClient) GetPublicURL(ctx context.Context, key string) (string, error) {
	resp, err := s.client.GetPublicURL(ctx, &pb.GetPublicURLRequest{Key: key})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Url, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var kind error
	switch st.Code() {
	case codes.Unauthenticated:
		kind = ErrUnauthorized
	case codes.PermissionDenied:
		kind = ErrForbidden
	case codes.AlreadyExists:
		kind = ErrAlreadyExists
	case codes.InvalidArgument:
		kind = ErrInvalidArgument
	case codes.NotFound:
		kind = ErrNotFound
	case codes.Unavailable, codes.DeadlineExceeded:
		kind = ErrUnavailable
	default:
		return errors.New(st.Message())
	}
	return &ServerError{Kind: kind, Message: st.Message()}
}
