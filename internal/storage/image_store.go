package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrUnsupportedImageType = errors.New("unsupported image type")

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageStore writes uploaded movie posters under a fixed media prefix.
type ImageStore struct {
	baseDir string
}

func NewImageStore(baseDir string) *ImageStore {
	return &ImageStore{baseDir: baseDir}
}

// SaveMoviePoster stores the uploaded file under <base>/movies/ and returns
// the path recorded on the movie row.
func (s *ImageStore) SaveMoviePoster(movieID int64, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", ErrUnsupportedImageType
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(s.baseDir, "movies")
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d_%s%s", movieID, time.Now().Format("20060102150405"), ext)
	destPath := filepath.Join(destDir, filename)

	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(destPath)
		return "", err
	}

	return filepath.Join("movies", filename), nil
}
