package configfiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/kamild1996/tf2-bot-detector/internal/safefile"
)

// LoadFile reads, parses and schema-validates the document at path.
//
// If fetcher is non-nil and the local document carries an update URL, a
// remote refresh is attempted: the fetched bytes are parsed and validated,
// and on success replace both the in-memory document and the local file.
// Any fetch or remote-parse failure falls back to the local content and is
// only logged.
//
// On failure the returned document is fresh()'s default-constructed value,
// never a partially populated one.
func LoadFile[T File](ctx context.Context, path string, codec Codec, fetcher Fetcher, log *slog.Logger, fresh func() T) (T, error) {
	file, err := loadLocal(path, codec, fresh)
	if err != nil {
		return fresh(), err
	}

	if fetcher == nil {
		return file, nil
	}

	url := file.Envelope().UpdateURL()
	if url == "" {
		return file, nil
	}

	data, err := fetcher.Fetch(ctx, url)
	if err != nil {
		log.Warn("auto-update failed, using local copy", "path", path, "error", err)
		return file, nil
	}

	updated, err := parseDocument(url, data, codec, fresh)
	if err != nil {
		log.Warn("auto-update returned an invalid document, using local copy", "path", path, "error", err)
		return file, nil
	}
	updated.Envelope().FileName = filepath.Base(path)

	if err := SaveFile(updated, path, codec); err != nil {
		log.Warn("failed to persist auto-updated document", "path", path, "error", err)
	}

	log.Info("auto-updated document", "path", path, "url", url)
	return updated, nil
}

// SaveFile serializes the document and writes it to path atomically, so a
// partial write can never corrupt the previous valid file.
func SaveFile(f File, path string, codec Codec) error {
	data, err := codec.Serialize(f)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", path, err)
	}

	if err := safefile.WriteAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

func loadLocal[T File](path string, codec Codec, fresh func() T) (T, error) {
	var zero T

	f, info, err := safefile.OpenRegular(path)
	if err != nil {
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if info.Size() > MaxDocumentSize {
		return zero, fmt.Errorf("open %s: document too large: %d bytes (max %d)", path, info.Size(), MaxDocumentSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxDocumentSize+1))
	if err != nil {
		return zero, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) > MaxDocumentSize {
		return zero, fmt.Errorf("read %s: document too large: %d bytes (max %d)", path, len(data), MaxDocumentSize)
	}

	file, err := parseDocument(path, data, codec, fresh)
	if err != nil {
		return zero, err
	}
	file.Envelope().FileName = filepath.Base(path)

	return file, nil
}

// parseDocument parses data into a fresh document and validates any declared
// schema. A schema mismatch fails the parse, it is never silently skipped.
func parseDocument[T File](origin string, data []byte, codec Codec, fresh func() T) (T, error) {
	var zero T

	file := fresh()
	if err := codec.Parse(data, file); err != nil {
		return zero, &ParseError{Path: origin, Err: err}
	}

	if schema := file.Envelope().Schema; schema != nil {
		if err := file.ValidateSchema(*schema); err != nil {
			var mismatch *SchemaMismatchError
			if errors.As(err, &mismatch) {
				return zero, fmt.Errorf("%s: %w", origin, err)
			}
			return zero, fmt.Errorf("validate schema of %s: %w", origin, err)
		}
	}

	return file, nil
}
