package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/memorylane/internal/client/config"
	"github.com/dmitrijs2005/memorylane/internal/client/models"
	"github.com/dmitrijs2005/memorylane/internal/client/picker"
	"github.com/dmitrijs2005/memorylane/internal/client/services"
)

var errCoverChoice = errors.New("cover must be one of the listed item numbers")

func stateText(s services.State, items int) string {
	switch s {
	case services.StateValidating:
		return "Checking the form..."
	case services.StateUploading:
		return fmt.Sprintf("Uploading %d item(s)...", items)
	case services.StateInserting:
		return "Saving memory..."
	default:
		return ""
	}
}

// pickMedia gathers media, appending every extra pick to the selection.
func (a *App) pickMedia(ctx context.Context) ([]models.PickedMedia, error) {
	opts := picker.Options{AllowMultiple: true, Quality: a.config.PickerQuality}

	var selected []models.PickedMedia
	for {
		picked, err := a.picker.Pick(ctx, opts)
		switch {
		case errors.Is(err, picker.ErrCanceled):
			return selected, nil
		case err != nil:
			notice(a.out, "Could not add media", err)
		default:
			selected = append(selected, picked...)
		}

		if len(selected) > 0 {
			for i, m := range selected {
				fmt.Fprintf(a.out, "  %d. %s (%s)\n", i+1, m.Name, m.Kind)
			}
		}
		if !confirm(a.reader, "Add more?", a.out) {
			return selected, nil
		}
	}
}

func (a *App) chooseCover(media []models.PickedMedia) (*int, error) {
	if len(media) < 2 || a.config.UploadOrder == config.OrderPick {
		return nil, nil
	}

	ans, err := getSimpleText(a.reader, "Cover item number (Enter keeps the first)", a.out)
	if err != nil {
		return nil, err
	}
	ans = strings.TrimSpace(ans)
	if ans == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(ans)
	if err != nil || n < 1 || n > len(media) {
		return nil, errCoverChoice
	}
	idx := n - 1
	return &idx, nil
}

// Add runs the add-memory form and saves it. Saving can't be interrupted once started.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Date (e.g. Summer 2023)", a.out)
	if err != nil {
		return err
	}
	desc, err := getMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	media, err := a.pickMedia(ctx)
	if err != nil {
		return err
	}

	cover, err := a.chooseCover(media)
	if err != nil {
		notice(a.out, "Invalid cover", err)
		return err
	}

	d := services.Draft{
		Title:       title,
		DateLabel:   date,
		Description: desc,
		Media:       media,
		Cover:       cover,
	}

	m, err := a.saver.Save(ctx, d, func(s services.State) {
		if text := stateText(s, len(media)); text != "" {
			faintText.Fprintln(a.out, text)
		}
	})
	if err != nil {
		notice(a.out, saveTitle(err), err)
		return err
	}

	success(a.out, "Memory %q saved", m.Title)
	return a.List(ctx)
}

func saveTitle(err error) string {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrNoMedia),
		errors.Is(err, services.ErrInvalidCover):
		return "Missing information"
	case errors.Is(err, services.ErrNotSignedIn):
		return "Not signed in"
	default:
		return "Save failed"
	}
}
