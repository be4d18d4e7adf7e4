package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/memorylane/internal/common"
	"github.com/dmitrijs2005/memorylane/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemoriesRepo struct {
	listUser string
	listOut  []*models.Memory

	inserted *models.Memory

	deletedID, deletedOwner string
	deleteErr               error
}

func (f *fakeMemoriesRepo) ListByUser(_ context.Context, userID string) ([]*models.Memory, error) {
	f.listUser = userID
	return f.listOut, nil
}

func (f *fakeMemoriesRepo) Create(_ context.Context, m *models.Memory) (*models.Memory, error) {
	m.ID = "m-new"
	f.inserted = m
	return m, nil
}

func (f *fakeMemoriesRepo) Delete(_ context.Context, id, userID string) error {
	f.deletedID, f.deletedOwner = id, userID
	return f.deleteErr
}

func newMemoryService(repo *fakeMemoriesRepo) *MemoryService {
	return NewMemoryService(nil, &fakeRepoManager{m: repo})
}

func TestMemoryService_List(t *testing.T) {
	repo := &fakeMemoriesRepo{listOut: []*models.Memory{{ID: "m1"}}}
	s := newMemoryService(repo)

	got, err := s.List(context.Background(), "u1", "u1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "u1", repo.listUser)

	_, err = s.List(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "u1", repo.listUser)

	_, err = s.List(context.Background(), "u1", "u2")
	require.ErrorIs(t, err, common.ErrorForbidden)
}

func TestMemoryService_Insert_KeepsAttachmentOrder(t *testing.T) {
	repo := &fakeMemoriesRepo{}
	s := newMemoryService(repo)

	in := &models.Memory{
		ID:    "client-chosen",
		Title: "Summer at the Lake",
		Attachments: []models.Attachment{
			{URL: "http://x/3.jpg", Kind: models.KindImage},
			{URL: "http://x/1.mp4", Kind: models.KindVideo},
			{URL: "http://x/2.jpg", Kind: models.KindImage},
		},
	}
	got, err := s.Insert(context.Background(), "u1", in)
	require.NoError(t, err)
	assert.Equal(t, "m-new", got.ID)
	assert.Equal(t, "u1", repo.inserted.UserID)
	assert.Equal(t, "http://x/3.jpg", repo.inserted.Attachments[0].URL)
	assert.Equal(t, "http://x/2.jpg", repo.inserted.Attachments[2].URL)
}

func TestMemoryService_Insert_Rejects(t *testing.T) {
	s := newMemoryService(&fakeMemoriesRepo{})
	one := []models.Attachment{{URL: "http://x/a.jpg", Kind: models.KindImage}}

	tests := []struct {
		name string
		m    *models.Memory
		want error
	}{
		{"foreign owner", &models.Memory{UserID: "u2", Title: "t", Attachments: one}, common.ErrorForbidden},
		{"blank title", &models.Memory{Title: "   ", Attachments: one}, common.ErrorValidation},
		{"no attachments", &models.Memory{Title: "t"}, common.ErrorValidation},
		{"empty url", &models.Memory{Title: "t", Attachments: []models.Attachment{{Kind: models.KindImage}}}, common.ErrorValidation},
		{"bad kind", &models.Memory{Title: "t", Attachments: []models.Attachment{{URL: "u", Kind: "audio"}}}, common.ErrorValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Insert(context.Background(), "u1", tt.m)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMemoryService_Delete(t *testing.T) {
	repo := &fakeMemoriesRepo{}
	s := newMemoryService(repo)

	require.NoError(t, s.Delete(context.Background(), "u1", "m1"))
	assert.Equal(t, "m1", repo.deletedID)
	assert.Equal(t, "u1", repo.deletedOwner)

	require.ErrorIs(t, s.Delete(context.Background(), "u1", ""), common.ErrorValidation)

	repo.deleteErr = common.ErrorNotFound
	require.ErrorIs(t, s.Delete(context.Background(), "u1", "m1"), common.ErrorNotFound)
}
