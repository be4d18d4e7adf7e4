package client

import (
	"time"

	"github.com/dmitrijs2005/memorylane/internal/client/models"
	pb "github.com/dmitrijs2005/memorylane/internal/proto"
)

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func fromPBUser(u *pb.User) *models.User {
	return &models.User{ID: u.Id, Email: u.Email, CreatedAt: parseTime(u.CreatedAt)}
}

func fromPBMemory(m *pb.Memory) *models.Memory {
	out := &models.Memory{
		ID:          m.Id,
		UserID:      m.UserId,
		Title:       m.Title,
		DateLabel:   m.Date,
		Description: m.Description,
		Attachments: make([]models.Attachment, 0, len(m.Attachments)),
		CreatedAt:   parseTime(m.CreatedAt),
	}
	for _, a := range m.Attachments {
		if a == nil {
			continue
		}
		out.Attachments = append(out.Attachments, models.Attachment{URL: a.Url, Kind: models.AttachmentKind(a.Type)})
	}
	return out
}

func toPBMemory(m *models.Memory) *pb.Memory {
	out := &pb.Memory{
		Id:          m.ID,
		UserId:      m.UserID,
		Title:       m.Title,
		Date:        m.DateLabel,
		Description: m.Description,
		Attachments: make([]*pb.Attachment, 0, len(m.Attachments)),
	}
	for _, a := range m.Attachments {
		out.Attachments = append(out.Attachments, &pb.Attachment{Url: a.URL, Type: string(a.Kind)})
	}
	return out
}
