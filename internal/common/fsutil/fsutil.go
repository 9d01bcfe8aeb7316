package fsutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/models/Lora
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// PathExists checks if the given path exists.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// SearchFiles walks every root recursively and returns the regular files whose
// name ends with one of suffixes (case-insensitive). Missing roots are skipped.
// The result is sorted and free of duplicates.
func SearchFiles(roots []string, suffixes []string) ([]string, error) {
	lower := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		if s != "" {
			lower = append(lower, strings.ToLower(s))
		}
	}
	seen := make(map[string]struct{})
	var out []string
	for _, root := range roots {
		base, err := ExpandHome(root)
		if err != nil {
			return nil, err
		}
		if !PathExists(base) {
			continue
		}
		err = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				// unreadable sub trees are skipped, the root itself is not
				if p == base {
					return err
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			name := strings.ToLower(d.Name())
			for _, s := range lower {
				if strings.HasSuffix(name, s) {
					if _, ok := seen[p]; !ok {
						seen[p] = struct{}{}
						out = append(out, p)
					}
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", base, err)
		}
	}
	sort.Strings(out)
	return out, nil
}

// SHA256File returns the lowercase hex SHA-256 of the file content.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SplitName splits the base name of path into stem and extension.
func SplitName(path string) (stem, ext string) {
	name := filepath.Base(path)
	ext = filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

// ReplaceFilename makes name safe to use as a single path component.
func ReplaceFilename(name string) string {
	r := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", "\x00", "",
	)
	s := strings.TrimSpace(r.Replace(name))
	s = strings.Trim(s, ".")
	if s == "" {
		return "_"
	}
	return s
}

// MoveFile renames src to dst, creating dst's directory. It refuses to
// overwrite an existing dst and is a no-op when both paths are equal.
func MoveFile(src, dst string) error {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return nil
	}
	if PathExists(dst) {
		return fmt.Errorf("move %s: destination %s exists", src, dst)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return os.Rename(src, dst)
}
