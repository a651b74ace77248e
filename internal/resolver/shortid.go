package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/dyluth/makemusic/pkg/archive"
	"github.com/google/uuid"
)

// MinShortIDLength is the minimum length accepted for a short ID prefix.
const MinShortIDLength = 6

// maxListedMatches caps how many IDs FormatAmbiguousError prints.
const maxListedMatches = 10

// TuneFinder is the part of the archive client the resolver needs.
type TuneFinder interface {
	TuneExists(ctx context.Context, tuneID string) (bool, error)
	ScanTunes(ctx context.Context, prefix string) ([]string, error)
}

// ResolveTuneID resolves a short ID prefix to a full tune UUID.
//
// A full UUID is checked for existence and returned as-is. Anything else must
// be at least MinShortIDLength characters and match exactly one archived tune.
func ResolveTuneID(ctx context.Context, finder TuneFinder, shortID string) (string, error) {
	shortID = strings.ToLower(strings.TrimSpace(shortID))

	if _, err := uuid.Parse(shortID); err == nil && len(shortID) == 36 {
		exists, err := finder.TuneExists(ctx, shortID)
		if err != nil {
			return "", fmt.Errorf("failed to verify tune existence: %w", err)
		}
		if !exists {
			return "", &NotFoundError{ShortID: shortID}
		}
		return shortID, nil
	}

	if len(shortID) < MinShortIDLength {
		return "", fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(shortID))
	}

	matches, err := finder.ScanTunes(ctx, shortID)
	if err != nil {
		return "", fmt.Errorf("failed to search for tune: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{ShortID: shortID}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{ShortID: shortID, Matches: matches}
	}
}

// NotFoundError indicates no tunes matched the short ID.
type NotFoundError struct {
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no tunes found matching '%s'", e.ShortID)
}

// AmbiguousError indicates multiple tunes matched the short ID.
type AmbiguousError struct {
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous short ID '%s' matches %d tunes", e.ShortID, len(e.Matches))
}

// FormatAmbiguousError lists the matching IDs (up to ten) for display.
func FormatAmbiguousError(err *AmbiguousError) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ambiguous short ID '%s' matches %d tunes:\n", err.ShortID, len(err.Matches))

	shown := err.Matches
	if len(shown) > maxListedMatches {
		shown = shown[:maxListedMatches]
	}
	for _, id := range shown {
		fmt.Fprintf(&sb, "  %s\n", id)
	}
	if extra := len(err.Matches) - len(shown); extra > 0 {
		fmt.Fprintf(&sb, "  ...and %d more\n", extra)
	}

	sb.WriteString("\nUse a longer prefix to uniquely identify the tune.")
	return sb.String()
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	_, ok := err.(*AmbiguousError)
	return ok
}

var _ TuneFinder = (*archive.Client)(nil)
