package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/memorylane/internal/client/models"
	"github.com/dmitrijs2005/memorylane/internal/filex"
	"github.com/dmitrijs2005/memorylane/internal/logging"
	"golang.org/x/sync/errgroup"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateUploading  State = "uploading"
	StateInserting  State = "inserting"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Ordering selects how picked media is arranged before upload.
type Ordering int

const (
	// OrderCoverFirst moves Draft.Cover to position 0 and keeps the rest in pick order.
	OrderCoverFirst Ordering = iota
	// OrderPickOrder always uploads in pick order and ignores Draft.Cover.
	OrderPickOrder
)

// Draft is the add-memory form.
type Draft struct {
	Title       string
	DateLabel   string
	Description string
	Media       []models.PickedMedia
	Cover       *int
}

type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
	PublicURL(ctx context.Context, key string) (string, error)
}

type MemoryWriter interface {
	InsertMemory(ctx context.Context, m *models.Memory) (*models.Memory, error)
}

type Uploader struct {
	store       ObjectStore
	writer      MemoryWriter
	sessions    SessionSource
	readFile    func(path string) ([]byte, error)
	now         func() time.Time
	concurrency int
	ordering    Ordering
	logger      logging.Logger
}

type UploaderOption func(*Uploader)

// WithConcurrency limits uploads in flight per save; n <= 0 means no limit.
func WithConcurrency(n int) UploaderOption {
	return func(u *Uploader) { u.concurrency = n }
}

func WithOrdering(o Ordering) UploaderOption {
	return func(u *Uploader) { u.ordering = o }
}

func WithFileReader(fn func(path string) ([]byte, error)) UploaderOption {
	return func(u *Uploader) { u.readFile = fn }
}

func WithClock(fn func() time.Time) UploaderOption {
	return func(u *Uploader) { u.now = fn }
}

func WithLogger(l logging.Logger) UploaderOption {
	return func(u *Uploader) { u.logger = l }
}

func NewUploader(store ObjectStore, writer MemoryWriter, sessions SessionSource, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		store:    store,
		writer:   writer,
		sessions: sessions,
		readFile: os.ReadFile,
		now:      time.Now,
		ordering: OrderCoverFirst,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Save validates d, uploads every item concurrently, then inserts exactly one
// memory referencing the uploads in issue order. onState may be nil.
//
// The save is not cancellable: ctx only carries values once Save starts.
// Objects uploaded before a failure are left in the store.
func (u *Uploader) Save(ctx context.Context, d Draft, onState func(State)) (*models.Memory, error) {
	ctx = context.WithoutCancel(ctx)

	set := func(s State) {
		if onState != nil {
			onState(s)
		}
	}
	fail := func(err error) (*models.Memory, error) {
		set(StateFailed)
		u.logger.Warn(ctx, "save memory failed", "error", err)
		return nil, err
	}

	set(StateValidating)

	if err := validateDraft(d); err != nil {
		return fail(err)
	}
	userID, err := currentUserID(ctx, u.sessions)
	if err != nil {
		return fail(err)
	}

	items := u.order(d)

	set(StateUploading)

	attachments, err := u.uploadAll(ctx, userID, items)
	if err != nil {
		return fail(err)
	}

	set(StateInserting)

	saved, err := u.writer.InsertMemory(ctx, &models.Memory{
		UserID:      userID,
		Title:       strings.TrimSpace(d.Title),
		DateLabel:   strings.TrimSpace(d.DateLabel),
		Description: d.Description,
		Attachments: attachments,
	})
	if err != nil {
		return fail(fmt.Errorf("%w: insert memory: %w", ErrSaveFailed, err))
	}

	set(StateDone)
	u.logger.Info(ctx, "memory saved", "id", saved.ID, "attachments", len(attachments))
	return saved, nil
}

func validateDraft(d Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	if len(d.Media) == 0 {
		return ErrNoMedia
	}
	if d.Cover != nil && (*d.Cover < 0 || *d.Cover >= len(d.Media)) {
		return ErrInvalidCover
	}
	for _, m := range d.Media {
		if !m.Kind.Valid() {
			return fmt.Errorf("%w: %q", ErrUnsupportedMedia, m.Kind)
		}
	}
	return nil
}

func (u *Uploader) order(d Draft) []models.PickedMedia {
	items := make([]models.PickedMedia, 0, len(d.Media))
	if u.ordering == OrderPickOrder || d.Cover == nil {
		return append(items, d.Media...)
	}

	k := *d.Cover
	items = append(items, d.Media[k])
	items = append(items, d.Media[:k]...)
	return append(items, d.Media[k+1:]...)
}

// uploadAll runs one task per item and fails on the first error.
func (u *Uploader) uploadAll(ctx context.Context, userID string, items []models.PickedMedia) ([]models.Attachment, error) {
	stamp := u.now().UnixMilli()
	out := make([]models.Attachment, len(items))

	g, gctx := errgroup.WithContext(ctx)
	if u.concurrency > 0 {
		g.SetLimit(u.concurrency)
	}

	for i, item := range items {
		g.Go(func() error {
			name := mediaName(item)
			key := fmt.Sprintf("%s/%d-%d-%s", userID, stamp, i, filex.SanitizeName(name))

			body, err := u.readFile(item.Path)
			if err != nil {
				return fmt.Errorf("%w: read %s: %w", ErrSaveFailed, name, err)
			}
			if err := u.store.Upload(gctx, key, item.ContentType(), body); err != nil {
				return fmt.Errorf("%w: upload %s: %w", ErrSaveFailed, name, err)
			}
			url, err := u.store.PublicURL(gctx, key)
			if err != nil {
				return fmt.Errorf("%w: public url of %s: %w", ErrSaveFailed, name, err)
			}

			out[i] = models.Attachment{URL: url, Kind: item.Kind}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func mediaName(m models.PickedMedia) string {
	if m.Name != "" {
		return m.Name
	}
	return filepath.Base(m.Path)
}
