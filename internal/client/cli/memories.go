package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/memorylane/internal/client/carousel"
	"github.com/dmitrijs2005/memorylane/internal/client/models"
)

var errNoSuchMemory = errors.New("no memory matches this id")

// newPlayer is a test seam for the carousel's video players.
var newPlayer carousel.PlayerFactory = carousel.NewStatePlayer

// List reloads the memory list and prints it, newest first. On failure the
// previous list stays on screen.
func (a *App) List(ctx context.Context) error {
	items, err := a.memories.Refresh(ctx)
	if err != nil {
		notice(a.out, "Could not load memories", err)
		if len(items) == 0 {
			return err
		}
		faintText.Fprintln(a.out, "Showing the last loaded list:")
	}

	renderCards(a.out, items)
	return err
}

// lookup resolves a memory by id prefix, taken from args or asked for.
func (a *App) lookup(ctx context.Context, args []string) (*models.Memory, error) {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		var err error
		id, err = getSimpleText(a.reader, "Enter memory id", a.out)
		if err != nil {
			return nil, err
		}
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errNoSuchMemory
	}

	if m := a.memories.Find(id); m != nil {
		return m, nil
	}
	if len(a.memories.Items()) == 0 {
		if _, err := a.memories.Refresh(ctx); err != nil {
			return nil, err
		}
		if m := a.memories.Find(id); m != nil {
			return m, nil
		}
	}
	return nil, errNoSuchMemory
}

// Show opens the detail carousel for one memory.
func (a *App) Show(ctx context.Context, args []string) error {
	m, err := a.lookup(ctx, args)
	if err != nil {
		notice(a.out, "Memory not found", err)
		return err
	}
	if len(m.Attachments) == 0 {
		faintText.Fprintln(a.out, "This memory has no media.")
		return nil
	}

	c := carousel.New(m.Attachments, newPlayer)
	defer func() {
		if err := c.Close(); err != nil {
			a.logger.Warn(ctx, "player close error", "error", err)
		}
	}()

	if m.DateLabel != "" {
		fmt.Fprintln(a.out, m.DateLabel)
	}
	if m.Description != "" {
		fmt.Fprintln(a.out, m.Description)
	}

	for {
		renderPage(a.out, m, c)

		cmd, err := getSimpleText(a.reader, "(n)ext, (p)rev, page number, (q)uit", a.out)
		if err != nil {
			return nil
		}

		switch cmd = strings.ToLower(cmd); cmd {
		case "n", "next":
			c.ScrollTo(c.Active() + 1)
		case "p", "prev":
			c.ScrollTo(c.Active() - 1)
		case "q", "quit", "back", "":
			return nil
		default:
			n, err := strconv.Atoi(cmd)
			if err != nil {
				fmt.Fprintln(a.out, "Unknown command:", cmd)
				continue
			}
			c.ScrollTo(n - 1)
		}
	}
}

// Delete removes a memory after confirmation and reloads the list.
func (a *App) Delete(ctx context.Context, args []string) error {
	m, err := a.lookup(ctx, args)
	if err != nil {
		notice(a.out, "Memory not found", err)
		return err
	}

	if !confirm(a.reader, fmt.Sprintf("Delete %q?", m.Title), a.out) {
		return nil
	}

	if err := a.memories.Delete(ctx, m.ID); err != nil {
		notice(a.out, "Delete failed", err)
		return err
	}
	success(a.out, "Memory deleted")

	return a.List(ctx)
}
