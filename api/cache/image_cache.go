package cache

import (
	"crypto/md5" //nolint:gosec
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
)

// ImageCache keeps downscaled copies of catalog artwork on disk so posters
// are served from the cinelist server instead of hitting TMDB per page view.
type ImageCache struct {
	cacheDir  string
	client    *http.Client
	maxWidth  int
	maxHeight int
}

// NewImageCache creates an image cache rooted at cacheDir.
func NewImageCache(cacheDir string) *ImageCache {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		log.Errorf("Failed to create image cache directory: %v", err)
	}

	return &ImageCache{
		cacheDir:  cacheDir,
		maxWidth:  500, // poster rendition width served by the UI
		maxHeight: 750,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// getCacheFilePath returns the file path for a cached image.
func (ic *ImageCache) getCacheFilePath(imageURL string) string {
	hash := md5.Sum([]byte(imageURL)) //nolint:gosec
	ext := filepath.Ext(imageURL)
	if ext == "" || len(ext) > 10 {
		ext = ".jpg"
	}
	return filepath.Join(ic.cacheDir, fmt.Sprintf("%x%s", hash, ext))
}

// GetCachedImagePath returns the local path for an image, downloading and
// downscaling it on first use.
func (ic *ImageCache) GetCachedImagePath(imageURL string) (string, error) {
	if imageURL == "" {
		return "", nil
	}

	cacheFilePath := ic.getCacheFilePath(imageURL)
	if _, err := os.Stat(cacheFilePath); err == nil {
		return cacheFilePath, nil
	}

	return ic.downloadAndCache(imageURL, cacheFilePath)
}

func (ic *ImageCache) downloadAndCache(imageURL, cacheFilePath string) (string, error) {
	tempFilePath := filepath.Join(filepath.Dir(cacheFilePath), "tmp_"+filepath.Base(cacheFilePath))
	defer os.Remove(tempFilePath) //nolint:errcheck

	resp, err := ic.client.Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}
	if contentType := resp.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("invalid content type: %s", contentType)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > ic.maxWidth || bounds.Dy() > ic.maxHeight {
		img = imaging.Fit(img, ic.maxWidth, ic.maxHeight, imaging.Lanczos)
	}

	if err := imaging.Save(img, tempFilePath); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	// Rename is atomic, concurrent requests never observe a partial file.
	if err := os.Rename(tempFilePath, cacheFilePath); err != nil {
		return "", fmt.Errorf("failed to move temp file: %w", err)
	}

	log.Debugf("Cached image: %s -> %s", imageURL, cacheFilePath)
	return cacheFilePath, nil
}

// CleanupOldImages removes cached files older than maxAge.
func (ic *ImageCache) CleanupOldImages(maxAge time.Duration) error {
	entries, err := os.ReadDir(ic.cacheDir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(ic.cacheDir, entry.Name())); err != nil {
				log.Errorf("Failed to remove old cached image %s: %v", entry.Name(), err)
			}
		}
	}
	return nil
}
