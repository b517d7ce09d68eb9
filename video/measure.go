package video

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"storyreel/composition"
)

type faceKey struct {
	name string
	size float64
}

// FontMeasurer measures text with TrueType/OpenType fonts loaded from disk.
// Fonts are looked up by name; unknown names use the default font.
type FontMeasurer struct {
	mu       sync.Mutex
	fonts    map[string]*opentype.Font
	fallback *opentype.Font
	faces    map[faceKey]font.Face
}

// NewFontMeasurer loads the font file at path as the default font, registered under name
func NewFontMeasurer(name, path string) (*FontMeasurer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	return NewFontMeasurerFromBytes(name, data)
}

// NewFontMeasurerFromBytes is NewFontMeasurer for a font already in memory
func NewFontMeasurerFromBytes(name string, data []byte) (*FontMeasurer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
	}
	return &FontMeasurer{
		fonts:    map[string]*opentype.Font{name: f},
		fallback: f,
		faces:    make(map[faceKey]font.Face),
	}, nil
}

// Measure returns the advance width of text in pixels at 72 DPI
func (m *FontMeasurer) Measure(text string, ref composition.FontRef) (int, error) {
	if ref.Size <= 0 {
		return 0, fmt.Errorf("invalid font size %v", ref.Size)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(ref)
	if err != nil {
		return 0, err
	}
	return font.MeasureString(face, text).Ceil(), nil
}

func (m *FontMeasurer) face(ref composition.FontRef) (font.Face, error) {
	key := faceKey{name: ref.Name, size: ref.Size}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}

	f, ok := m.fonts[ref.Name]
	if !ok {
		f = m.fallback
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    ref.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	m.faces[key] = face
	return face, nil
}
