package stagepage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 80

var errNotImage = errors.New("not a decodable image")

// processImage decodes an image from src, resizes it to maxWidth if wider,
// and encodes it as JPEG. It returns the encoded bytes and final dimensions.
func processImage(src io.Reader, maxWidth int) ([]byte, int, int, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", errNotImage, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if maxWidth > 0 && w > maxWidth {
		newH := h * maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, 0, 0, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), w, h, nil
}

// assetPath maps a request path below /assets/ onto the assets directory.
// It returns false for paths that escape the directory.
func assetPath(dir, name string) (string, bool) {
	if name == "" || strings.Contains(name, "\x00") {
		return "", false
	}
	clean := path.Clean("/" + name)
	if clean == "/" {
		return "", false
	}
	return filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), true
}

func (a *App) handleAsset(c echo.Context) error {
	full, ok := assetPath(a.Config.AssetsDir, c.Param("*"))
	if !ok {
		return echo.ErrNotFound
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return echo.ErrNotFound
	}

	asset, err := a.assets.Load(full, info.ModTime(), func() (processedAsset, error) {
		return a.loadAsset(full)
	})
	if err != nil {
		if os.IsNotExist(err) {
			return echo.ErrNotFound
		}
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, asset.contentType)
	http.ServeContent(c.Response(), c.Request(), info.Name(), asset.modTime, bytes.NewReader(asset.data))
	return nil
}

func (a *App) loadAsset(full string) (processedAsset, error) {
	raw, err := os.ReadFile(full)
	if err != nil {
		return processedAsset{}, err
	}
	data, w, h, err := processImage(bytes.NewReader(raw), a.Config.MaxImageWidth)
	if errors.Is(err, errNotImage) {
		log.Debug().Str("path", full).Err(err).Msg("serving asset unprocessed")
		return processedAsset{data: raw, contentType: http.DetectContentType(raw)}, nil
	}
	if err != nil {
		return processedAsset{}, err
	}
	log.Debug().Str("path", full).Int("width", w).Int("height", h).Int("bytes", len(data)).Msg("processed asset")
	return processedAsset{data: data, contentType: "image/jpeg"}, nil
}
