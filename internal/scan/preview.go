package scan

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	humanize "github.com/dustin/go-humanize"
)

// savePreview downloads url and stores it at path. Decodable images are
// re-encoded into the format named by path's extension; anything else is
// stored as downloaded. Nothing is written when the download fails.
func (s *Scanner) savePreview(ctx context.Context, url, path string) error {
	var buf bytes.Buffer
	if _, err := s.res.DownloadImage(ctx, url, &buf); err != nil {
		return fmt.Errorf("download preview: %w", err)
	}
	reencoded, err := writeImage(path, buf.Bytes())
	if err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	s.log.Info().Str("preview", path).Str("size", humanize.Bytes(uint64(buf.Len()))).Bool("reencoded", reencoded).Msg("wrote preview")
	return nil
}

func writeImage(path string, data []byte) (bool, error) {
	if _, err := imaging.FormatFromFilename(path); err == nil {
		if img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true)); err == nil {
			if err := imaging.Save(img, path); err == nil {
				return true, nil
			}
		}
	}
	return false, os.WriteFile(path, data, 0o644)
}
