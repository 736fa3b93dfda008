package admin

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
)

// ImageUploader sends an image file to the API and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, filename string, r io.Reader, progress client.ProgressFunc) (string, error)
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// checkImagePath rejects paths that are missing, directories, or not images.
func checkImagePath(field, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return invalid(field, "File gambar tidak ditemukan")
	}
	if info.IsDir() {
		return invalid(field, "Pilih file gambar, bukan folder")
	}
	if !imageExts[strings.ToLower(filepath.Ext(path))] {
		return invalid(field, "Format gambar harus jpg, png, gif, atau webp")
	}
	return nil
}

func uploadFile(ctx context.Context, up ImageUploader, path string, progress client.ProgressFunc) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only
	url, err := up.UploadImage(ctx, filepath.Base(path), f, progress)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}
