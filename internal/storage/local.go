package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evelahealth/evela-backend/internal/platform/envutil"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

// FileStore persists uploaded report files on local disk. Stored names get a
// random suffix so two uploads with the same client filename never collide.
type FileStore struct {
	log *logger.Logger
	dir string
}

func NewFileStore(baseLog *logger.Logger) (*FileStore, error) {
	dir := envutil.Str("UPLOADS_DIR", "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %q: %w", dir, err)
	}
	return &FileStore{
		log: baseLog.With("service", "FileStore"),
		dir: dir,
	}, nil
}

// Save writes data under a randomized name derived from the client filename
// and returns the path relative to the uploads directory.
func (s *FileStore) Save(fileName string, data []byte) (string, error) {
	name := storedName(fileName)
	full := filepath.Join(s.dir, name)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	s.log.Info("Stored upload", "path", name, "size_bytes", len(data))
	return name, nil
}

// Read loads a previously stored file by its relative path.
func (s *FileStore) Read(relPath string) ([]byte, error) {
	clean := filepath.Clean(relPath)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid upload path %q", relPath)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, clean))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

// Remove deletes a stored file, ignoring files already gone.
func (s *FileStore) Remove(relPath string) error {
	clean := filepath.Clean(relPath)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid upload path %q", relPath)
	}
	err := os.Remove(filepath.Join(s.dir, clean))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func storedName(fileName string) string {
	base := filepath.Base(strings.TrimSpace(fileName))
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	stem = sanitizeStem(stem)
	if stem == "" {
		stem = "report"
	}
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%s_%s%s", stem, hex.EncodeToString(buf), strings.ToLower(ext))
}

func sanitizeStem(stem string) string {
	var b strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
