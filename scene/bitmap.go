package scene

import (
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/blezek/tga"
	_ "github.com/ftrvxmtrx/tga"
	_ "github.com/oov/psd"
	_ "golang.org/x/image/bmp"
)

// Extensions tried when the referenced file is not a decodable image, e.g. a
// compressed engine texture converted next to the original.
var bitmapExts = []string{".png", ".tga", ".psd", ".bmp", ".jpg", ".gif"}

type bitmapInfo struct {
	path   string
	width  int
	height int
	alpha  bool
	err    error
}

type bitmapCache struct {
	root  string
	infos map[string]*bitmapInfo
}

func (c *bitmapCache) candidates(name string) []string {
	p := filepath.Join(c.root, filepath.FromSlash(name))
	r := []string{p}
	base := strings.TrimSuffix(p, filepath.Ext(p))
	for _, ext := range bitmapExts {
		if base+ext != p {
			r = append(r, base+ext)
		}
	}
	return r
}

func (c *bitmapCache) get(name string) *bitmapInfo {
	if t, ok := c.infos[name]; ok {
		return t
	}
	t := &bitmapInfo{err: os.ErrNotExist}
	c.infos[name] = t
	for _, p := range c.candidates(name) {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		t.path = p
		t.err = t.load()
		if t.err == nil {
			break
		}
	}
	return t
}

func (t *bitmapInfo) load() error {
	f, err := os.Open(t.path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil && strings.ToLower(filepath.Ext(t.path)) == ".tga" {
		// blezek/tga reads footer extensions the registered decoder rejects.
		if _, serr := f.Seek(0, io.SeekStart); serr != nil {
			return serr
		}
		img, err = tga.Decode(f)
	}
	if err != nil {
		return err
	}
	b := img.Bounds()
	t.width, t.height = b.Dx(), b.Dy()
	t.alpha = hasAlpha(img)
	return nil
}

func hasAlpha(img image.Image) bool {
	switch img.ColorModel() {
	case color.YCbCrModel, color.CMYKModel, color.GrayModel, color.Gray16Model:
		return false
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}

// LoadBitmap creates a bitmap texmap for path and, when a texture root is set,
// fills in the image size and alpha presence from the file found there.
func (s *Scene) LoadBitmap(path string) *Bitmap {
	b := NewBitmap(path)
	if s.TextureRoot == "" || path == "" {
		return b
	}
	if s.bitmaps == nil || s.bitmaps.root != s.TextureRoot {
		s.bitmaps = &bitmapCache{root: s.TextureRoot, infos: map[string]*bitmapInfo{}}
	}
	if t := s.bitmaps.get(b.Path); t.err == nil {
		b.Loaded = true
		b.Width, b.Height = t.width, t.height
		b.HasAlpha = t.alpha
	}
	return b
}
