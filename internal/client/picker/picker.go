// Package picker is the terminal stand-in for a device media library: the
// user types local file paths and gets back typed media items.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrijs2005/memorylane/internal/client/models"
)

var (
	ErrCanceled       = errors.New("picking canceled")
	ErrUnsupported    = errors.New("unsupported media file")
	ErrTooMany        = errors.New("only one item may be picked")
	ErrInvalidQuality = errors.New("quality must be between 0 and 1")
)

type Options struct {
	AllowMultiple bool
	// Kinds restricts the accepted media; empty accepts images and videos.
	Kinds   []models.AttachmentKind
	Quality float64
}

// Prompter shows prompt and returns one line typed by the user.
type Prompter func(prompt string) (string, error)

type Picker struct {
	prompt Prompter
}

func New(prompt Prompter) *Picker {
	return &Picker{prompt: prompt}
}

// Pick asks for one or more paths. An empty answer is a cancellation.
func (p *Picker) Pick(ctx context.Context, opts Options) ([]models.PickedMedia, error) {
	if opts.Quality < 0 || opts.Quality > 1 {
		return nil, ErrInvalidQuality
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := "Enter path to a photo or video"
	if opts.AllowMultiple {
		text = "Enter paths to photos or videos, separated by ';'"
	}
	line, err := p.prompt(text + " (empty to cancel)")
	if err != nil {
		return nil, err
	}

	paths := splitPaths(line)
	if len(paths) == 0 {
		return nil, ErrCanceled
	}
	if !opts.AllowMultiple && len(paths) > 1 {
		return nil, ErrTooMany
	}

	out := make([]models.PickedMedia, 0, len(paths))
	for _, path := range paths {
		kind, err := detectKind(path)
		if err != nil {
			return nil, err
		}
		if len(opts.Kinds) > 0 && !slices.Contains(opts.Kinds, kind) {
			return nil, fmt.Errorf("%w: %s is a %s", ErrUnsupported, path, kind)
		}
		out = append(out, models.PickedMedia{
			Path:    path,
			Name:    filepath.Base(path),
			Kind:    kind,
			Quality: opts.Quality,
		})
	}
	return out, nil
}

func splitPaths(line string) []string {
	var out []string
	for _, part := range strings.Split(line, ";") {
		part = strings.Trim(strings.TrimSpace(part), `"'`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// detectKind trusts a known extension and sniffs the content otherwise.
func detectKind(path string) (models.AttachmentKind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrUnsupported, path)
	}

	if kind, ok := models.KindFromExt(path); ok {
		return kind, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}

	ct := http.DetectContentType(head[:n])
	switch {
	case strings.HasPrefix(ct, "image/"):
		return models.KindImage, nil
	case strings.HasPrefix(ct, "video/"):
		return models.KindVideo, nil
	default:
		return "", fmt.Errorf("%w: %s (%s)", ErrUnsupported, path, ct)
	}
}
