package sheets

import (
	"fmt"
	"strings"

	"github.com/fleetworks/fleet-maintenance-api/models"
)

// NoPhotoPlaceholder is written into a link cell when an item has no photo.
const NoPhotoPlaceholder = "(no photo)"

// EncodeReadable flattens tyre entries into the newline-separated
// "position: number" blob stored in a single sheet cell.
func EncodeReadable(entries []models.TyreEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s: %s", e.Position, e.Number))
	}
	return strings.Join(lines, "\n")
}

// EncodeImageReadable flattens image entries into a newline-separated
// position list.
func EncodeImageReadable(entries []models.ImageEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Position)
	}
	return strings.Join(lines, "\n")
}

// EncodeLinks flattens position/link pairs into the newline-separated
// "position: link" blob, substituting the placeholder when no link exists.
func EncodeLinks(entries []models.LinkEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		link := e.PhotoLink
		if link == "" {
			link = NoPhotoPlaceholder
		}
		lines = append(lines, fmt.Sprintf("%s: %s", e.Position, link))
	}
	return strings.Join(lines, "\n")
}

// DecodeReadable parses a readable blob back into position/number pairs.
// A line without a colon degrades to the whole line as position with an
// empty number; decoding never fails.
func DecodeReadable(blob string) []models.TyreEntry {
	out := []models.TyreEntry{}
	for _, line := range splitLines(blob) {
		pos, num, found := strings.Cut(line, ":")
		if found {
			out = append(out, models.TyreEntry{
				Position: strings.TrimSpace(pos),
				Number:   strings.TrimSpace(num),
			})
		} else {
			out = append(out, models.TyreEntry{Position: line})
		}
	}
	return out
}

// DecodeLinks parses a links blob back into position/link pairs. The split
// prefers ": " over a bare ":" so that links containing colons survive.
// The placeholder and empty values normalize to an empty link.
func DecodeLinks(blob string) []models.LinkEntry {
	out := []models.LinkEntry{}
	for _, line := range splitLines(blob) {
		var pos, link string
		var found bool
		if strings.Contains(line, ": ") {
			pos, link, found = strings.Cut(line, ": ")
		} else {
			pos, link, found = strings.Cut(line, ":")
		}
		if !found {
			out = append(out, models.LinkEntry{Position: strings.TrimSpace(pos)})
			continue
		}
		link = strings.TrimSpace(link)
		if link == NoPhotoPlaceholder {
			link = ""
		}
		out = append(out, models.LinkEntry{
			Position:  strings.TrimSpace(pos),
			PhotoLink: link,
		})
	}
	return out
}

// splitLines splits a cell blob on newlines, trimming whitespace and
// dropping blank lines.
func splitLines(blob string) []string {
	var lines []string
	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
