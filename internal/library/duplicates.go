package library

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/krisk248/IITM-reap-project/internal/media"
	"github.com/krisk248/IITM-reap-project/internal/models"
)

// Duplicates walks root, hashes every video file's full contents in a
// single streaming pass, and returns the groups of paths that share a
// digest. Only groups with at least two members are returned; groups
// appear in the order their digest was first seen, and paths within a
// group follow walk order.
func (s *Scanner) Duplicates(ctx context.Context, root string, onFile func(path string)) ([]models.DuplicateGroup, error) {
	root = filepath.Clean(root)

	byDigest := make(map[string][]string)
	var order []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !media.IsVideo(path, s.exts) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		digest, err := hashFile(path)
		if err != nil {
			s.logger.Warn("hash failed", "file", path, "err", err)
			return nil
		}

		if _, seen := byDigest[digest]; !seen {
			order = append(order, digest)
		}
		byDigest[digest] = append(byDigest[digest], path)

		if onFile != nil {
			onFile(path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	var groups []models.DuplicateGroup
	for _, digest := range order {
		if paths := byDigest[digest]; len(paths) > 1 {
			groups = append(groups, models.DuplicateGroup{Digest: digest, Paths: paths})
		}
	}

	return groups, nil
}

// hashFile streams a file through MD5 in 8 KiB chunks.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	buf := make([]byte, 8192)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
