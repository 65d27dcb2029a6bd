package pipeline

import (
	"context"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/matzehuels/clawplot/pkg/errors"
	"github.com/matzehuels/clawplot/pkg/observability"
)

// writeProduct atomically replaces dir/name with data, so a browser or
// LaTeX run reading the plot directory never sees a partial file.
func (r *Runner) writeProduct(ctx context.Context, dir, name, kind string, data []byte) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	observability.Pipeline().OnProductWritten(ctx, kind, len(data))
	return nil
}
