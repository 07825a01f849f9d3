package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// Export File Storage
// ============================================================

// FileStorage раскладывает сгенерированные экспорты по проектам.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) ProjectDir(projectID string) string {
	return filepath.Join(s.root, projectID)
}

func (s *FileStorage) PNGPath(projectID string, dpi int) string {
	return filepath.Join(s.ProjectDir(projectID), fmt.Sprintf("plan_%ddpi.png", dpi))
}

func (s *FileStorage) PDFPath(projectID string) string {
	return filepath.Join(s.ProjectDir(projectID), "plan.pdf")
}

func (s *FileStorage) EnsureDir(projectID string) error {
	if err := os.MkdirAll(s.ProjectDir(projectID), 0o755); err != nil {
		return fmt.Errorf("mkdir project dir: %w", err)
	}
	return nil
}

func (s *FileStorage) SaveFile(projectID, target string, data []byte) error {
	if err := s.EnsureDir(projectID); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}
