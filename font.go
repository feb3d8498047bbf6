package glyphrun

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/go-text/typesetting/font"
	"golang.org/x/exp/slices"
)

// Registry is an ordered chain of loaded faces: the first is the primary,
// the rest are fallbacks consulted in order. It is owned by the caller and
// read-only after loading, so it can be shared between render calls.
type Registry struct {
	faces []font.Face
	names []string
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Load reads and parses a font file. When path does not name a readable
// file it is retried as a system font name via findfont. Any failure is a
// load error: fatal, surfaced immediately, no fallback.
func (reg *Registry) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		fpath, ferr := findfont.Find(path)
		if ferr != nil {
			return fmt.Errorf("%w: %s: %v", ErrFontLoad, path, err)
		}
		log.Debug().Str("name", path).Str("path", fpath).Msg("resolved system font")
		if data, err = os.ReadFile(fpath); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFontLoad, fpath, err)
		}
	}
	return reg.LoadBytes(filepath.Base(path), data)
}

// LoadBytes parses in-memory font data, e.g. an embedded TTF.
func (reg *Registry) LoadBytes(name string, data []byte) error {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFontLoad, name, err)
	}
	reg.faces = append(reg.faces, face)
	reg.names = append(reg.names, name)
	log.Debug().Str("name", name).Int("index", len(reg.faces)-1).Msg("loaded font")
	return nil
}

// LoadDir loads every .ttf/.otf in dir. When primary is non-empty the file
// with that name is sorted to the front of the chain.
func (reg *Registry) LoadDir(dir string, primary string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFontLoad, dir, err)
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		if a.Name() == primary {
			return -1
		}
		return 0
	})
	for _, entry := range entries {
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".ttf", ".otf":
			if err := reg.Load(filepath.Join(dir, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// Faces returns the chain in fallback order, primary first.
func (reg *Registry) Faces() []font.Face {
	return reg.faces
}

func (reg *Registry) Len() int {
	return len(reg.faces)
}

// Name returns the name the face at index i was loaded under.
func (reg *Registry) Name(i int) string {
	return reg.names[i]
}

// ResolveFace returns the first face whose character map covers r, or the
// primary when none does. This makes a Registry usable wherever a
// shaping.Fontmap is expected.
func (reg *Registry) ResolveFace(r rune) font.Face {
	for _, face := range reg.faces {
		if _, ok := face.NominalGlyph(r); ok {
			return face
		}
	}
	if len(reg.faces) > 0 {
		return reg.faces[0]
	}
	return nil
}
