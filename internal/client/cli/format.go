package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/memorylane/internal/client/carousel"
	"github.com/dmitrijs2005/memorylane/internal/client/models"
)

const (
	shortIDLen   = 8
	previewWidth = 60
	previewLines = 2
)

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// preview wraps text into at most lines lines of width runes, marking a cut with "…".
func preview(text string, width, lines int) []string {
	words := strings.Fields(text)
	var out []string
	var cur strings.Builder

	for i, w := range words {
		if cur.Len() > 0 && utf8.RuneCountInString(cur.String())+1+utf8.RuneCountInString(w) > width {
			out = append(out, cur.String())
			cur.Reset()
			if len(out) == lines {
				out[lines-1] = truncate(out[lines-1], width-1) + "…"
				return out
			}
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
		if i == len(words)-1 {
			out = append(out, truncate(cur.String(), width))
		}
	}
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func renderCards(w io.Writer, items []*models.Memory) {
	if len(items) == 0 {
		faintText.Fprintln(w, "No memories yet. Use 'add' to create one.")
		return
	}
	for i, m := range items {
		renderCard(w, i+1, m)
	}
}

func renderCard(w io.Writer, n int, m *models.Memory) {
	cover := "none"
	if c := m.Cover(); c != nil {
		cover = string(c.Kind)
	}

	fmt.Fprintf(w, "%2d. %s  %s\n", n, faintText.Sprint(shortID(m.ID)), m.DateLabel)
	fmt.Fprintf(w, "    %s  [%d items, cover: %s]\n", accentText.Sprint(m.Title), len(m.Attachments), cover)
	for _, line := range preview(m.Description, previewWidth, previewLines) {
		fmt.Fprintf(w, "    %s\n", line)
	}
}

func renderPage(w io.Writer, m *models.Memory, c *carousel.Carousel) {
	i := c.Active()
	a := c.Attachment(i)

	state := ""
	if a.Kind == models.KindVideo {
		if c.Playing(i) {
			state = successText.Sprint(" ▶ playing (loop)")
		} else {
			state = faintText.Sprint(" ❚❚ paused")
		}
	}

	fmt.Fprintf(w, "%s  [%d/%d] %s%s\n", accentText.Sprint(m.Title), i+1, c.Len(), a.Kind, state)
	fmt.Fprintf(w, "  %s\n", a.URL)
}
