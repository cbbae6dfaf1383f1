package state

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
)

// MaxImageSize caps the files accepted as meal images. References are kept
// inline in the image map, so every toggle rewrites them.
const MaxImageSize = 8 << 20

// EncodeImage turns raw image bytes into a data URL
// ("data:image/png;base64,...").
func EncodeImage(data []byte) string {
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ReadImage loads and encodes the file at path.
func ReadImage(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat image: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxImageSize {
		return "", fmt.Errorf("image is %s, limit is %s", humanize.IBytes(uint64(info.Size())), humanize.IBytes(MaxImageSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return EncodeImage(data), nil
}

// ImageInfo describes a stored image reference.
type ImageInfo struct {
	MIME string
	Size int // decoded payload bytes
}

// DecodeImage parses a reference produced by EncodeImage.
func DecodeImage(ref string) (ImageInfo, error) {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return ImageInfo{}, fmt.Errorf("not a data URL")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return ImageInfo{}, fmt.Errorf("data URL has no payload")
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return ImageInfo{}, fmt.Errorf("data URL is not base64")
	}
	n, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("failed to decode image payload: %w", err)
	}
	return ImageInfo{MIME: mime, Size: len(n)}, nil
}
