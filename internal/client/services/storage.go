package services

import (
	"context"

	"github.com/dmitrijs2005/memorylane/internal/netx"
)

type UploadURLIssuer interface {
	CreateUploadURL(ctx context.Context, key, contentType string) (string, error)
	GetPublicURL(ctx context.Context, key string) (string, error)
}

// PresignedStore uploads through presigned PUT URLs issued by the gateway.
type PresignedStore struct {
	issuer UploadURLIssuer
	put    func(ctx context.Context, url, contentType string, body []byte) error
}

func NewPresignedStore(issuer UploadURLIssuer) *PresignedStore {
	return &PresignedStore{issuer: issuer, put: netx.UploadToPresignedURL}
}

func (s *PresignedStore) Upload(ctx context.Context, key, contentType string, body []byte) error {
	url, err := s.issuer.CreateUploadURL(ctx, key, contentType)
	if err != nil {
		return err
	}
	return s.put(ctx, url, contentType, body)
}

func (s *PresignedStore) PublicURL(ctx context.Context, key string) (string, error) {
	return s.issuer.GetPublicURL(ctx, key)
}
