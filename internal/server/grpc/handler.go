package grpc

import (
	"context"
	"time"

	pb "github.com/dmitrijs2005/memorylane/internal/proto"
	"github.com/dmitrijs2005/memorylane/internal/server/models"
	"github.com/dmitrijs2005/memorylane/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) SignUp(ctx context.Context, req *pb.SignUpRequest) (*pb.AuthResponse, error) {
	sess, err := s.users.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Registered", "user_id", sess.User.ID)
	return toAuthResponse(sess), nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *pb.SignInRequest) (*pb.AuthResponse, error) {
	sess, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Signed in", "user_id", sess.User.ID)
	return toAuthResponse(sess), nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {
	pair, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt.Unix(),
	}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *pb.SignOutRequest) (*pb.SignOutResponse, error) {
	if err := s.users.SignOut(ctx, req.RefreshToken); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.SignOutResponse{}, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, _ *pb.GetUserRequest) (*pb.GetUserResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.GetUserResponse{User: toPBUser(u)}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) ListMemories(ctx context.Context, req *pb.ListMemoriesRequest) (*pb.ListMemoriesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.memories.List(ctx, userID, req.UserId)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := make([]*pb.Memory, 0, len(items))
	for _, m := range items {
		out = append(out, toPBMemory(m))
	}
	return &pb.ListMemoriesResponse{Memories: out}, nil
}

func (s *GRPCServer) InsertMemory(ctx context.Context, req *pb.InsertMemoryRequest) (*pb.InsertMemoryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req.Memory == nil {
		return nil, status.Error(codes.InvalidArgument, "memory is required")
	}

	m, err := s.memories.Insert(ctx, userID, fromPBMemory(req.Memory))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Memory inserted", "memory_id", m.ID, "attachments", len(m.Attachments))
	return &pb.InsertMemoryResponse{Memory: toPBMemory(m)}, nil
}

func (s *GRPCServer) DeleteMemory(ctx context.Context, req *pb.DeleteMemoryRequest) (*pb.DeleteMemoryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.memories.Delete(ctx, userID, req.Id); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.DeleteMemoryResponse{}, nil
}

func (s *GRPCServer) CreateUploadURL(ctx context.Context, req *pb.CreateUploadURLRequest) (*pb.CreateUploadURLResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	url, err := s.storage.CreateUploadURL(ctx, userID, req.Key, req.ContentType)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.CreateUploadURLResponse{Key: req.Key, Url: url}, nil
}

func (s *GRPCServer) GetPublicURL(ctx context.Context, req *pb.GetPublicURLRequest) (*pb.GetPublicURLResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	url, err := s.storage.PublicURL(userID, req.Key)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.GetPublicURLResponse{Url: url}, nil
}

// --- mapping ---

func toAuthResponse(sess *services.Session) *pb.AuthResponse {
	return &pb.AuthResponse{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    sess.ExpiresAt.Unix(),
		User:         toPBUser(sess.User),
	}
}

func toPBUser(u *models.User) *pb.User {
	if u == nil {
		return nil
	}
	out := &pb.User{Id: u.ID, Email: u.Email}
	if !u.CreatedAt.IsZero() {
		out.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func toPBMemory(m *models.Memory) *pb.Memory {
	out := &pb.Memory{
		Id:          m.ID,
		UserId:      m.UserID,
		Title:       m.Title,
		Date:        m.Date,
		Description: m.Description,
		Attachments: make([]*pb.Attachment, 0, len(m.Attachments)),
	}
	if !m.CreatedAt.IsZero() {
		out.CreatedAt = m.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	for _, a := range m.Attachments {
		out.Attachments = append(out.Attachments, &pb.Attachment{Url: a.URL, Type: string(a.Kind)})
	}
	return out
}

func fromPBMemory(m *pb.Memory) *models.Memory {
	out := &models.Memory{
		UserID:      m.UserId,
		Title:       m.Title,
		Date:        m.Date,
		Description: m.Description,
		Attachments: make([]models.Attachment, 0, len(m.Attachments)),
	}
	for _, a := range m.Attachments {
		if a == nil {
			continue
		}
		out.Attachments = append(out.Attachments, models.Attachment{URL: a.Url, Kind: models.AttachmentKind(a.Type)})
	}
	return out
}
