package shelf

import (
	"context"
	"fmt"
	"io"

	"github.com/dyluth/makemusic/pkg/archive"
)

// GetTune writes a single tune. The default and json formats write the full
// record as pretty JSON; abc writes only the ABC document so it can be
// redirected straight into a file.
func GetTune(ctx context.Context, client *archive.Client, tuneID string, format OutputFormat, w io.Writer) error {
	t, err := client.GetTune(ctx, tuneID)
	if err != nil {
		if archive.IsNotFound(err) {
			return &TuneNotFoundError{TuneID: tuneID}
		}
		return fmt.Errorf("failed to fetch tune: %w", err)
	}

	switch format {
	case OutputFormatDefault, OutputFormatJSON, "":
		if err := FormatSingleJSON(w, t); err != nil {
			return fmt.Errorf("failed to format tune: %w", err)
		}
	case OutputFormatABC:
		if _, err := io.WriteString(w, t.ABC); err != nil {
			return fmt.Errorf("failed to write ABC output: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format for get: %s (use json or abc)", format)
	}

	return nil
}

// TuneNotFoundError is returned when the requested tune does not exist.
type TuneNotFoundError struct {
	TuneID string
}

func (e *TuneNotFoundError) Error() string {
	return fmt.Sprintf("tune with ID '%s' not found", e.TuneID)
}

// IsNotFound returns true if the error is a TuneNotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*TuneNotFoundError)
	return ok
}
