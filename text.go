package nuclea

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content    string
	Font       Font
	Align      TextAlign
	WrapWidth  float64 // 0 = no wrapping
	Color      Color
	LineHeight float64 // override; 0 = use Font.LineHeight()

	// Cached layout (unexported)
	layoutDirty bool
	measuredW   float64
	measuredH   float64
	lines       []textLine

	// Rendering cache (unexported)
	image      *ebiten.Image
	imageDirty bool
}

// textLine is one laid-out line.
type textLine struct {
	text  string
	width float64
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// Measured returns the laid-out width and height.
func (tb *TextBlock) Measured() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// Lines returns the content of each laid-out line.
func (tb *TextBlock) Lines() []string {
	lines := tb.layout()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text
	}
	return out
}

// layout recomputes line breaks if dirty. Returns the cached lines.
func (tb *TextBlock) layout() []textLine {
	if !tb.layoutDirty {
		return tb.lines
	}
	tb.layoutDirty = false
	tb.imageDirty = true
	tb.lines = tb.lines[:0]
	tb.measuredW, tb.measuredH = 0, 0
	if tb.Font == nil || tb.Content == "" {
		return tb.lines
	}

	for _, para := range strings.Split(tb.Content, "\n") {
		tb.wrapParagraph(para)
	}
	for _, l := range tb.lines {
		tb.measuredW = max(tb.measuredW, l.width)
	}
	tb.measuredH = float64(len(tb.lines)) * tb.lineHeight()
	return tb.lines
}

// wrapParagraph breaks one paragraph greedily at spaces. A single word wider
// than WrapWidth gets a line of its own.
func (tb *TextBlock) wrapParagraph(para string) {
	width := func(s string) float64 {
		w, _ := tb.Font.MeasureString(s)
		return w
	}
	if tb.WrapWidth <= 0 {
		tb.lines = append(tb.lines, textLine{text: para, width: width(para)})
		return
	}
	words := strings.Fields(para)
	if len(words) == 0 {
		tb.lines = append(tb.lines, textLine{})
		return
	}
	cur := words[0]
	for _, w := range words[1:] {
		next := cur + " " + w
		if width(next) > tb.WrapWidth {
			tb.lines = append(tb.lines, textLine{text: cur, width: width(cur)})
			cur = w
			continue
		}
		cur = next
	}
	tb.lines = append(tb.lines, textLine{text: cur, width: width(cur)})
}

// alignOffset returns the x offset of a line within the block.
func (tb *TextBlock) alignOffset(lineW float64) float64 {
	boxW := tb.measuredW
	if tb.WrapWidth > 0 {
		boxW = tb.WrapWidth
	}
	switch tb.Align {
	case TextAlignCenter:
		return (boxW - lineW) / 2
	case TextAlignRight:
		return boxW - lineW
	default:
		return 0
	}
}

// --- Node text helpers ---

// SetText replaces a text node's content and resizes its layout box.
func (n *Node) SetText(content string) {
	if n.TextBlock == nil || n.TextBlock.Content == content {
		return
	}
	n.TextBlock.Content = content
	n.TextBlock.layoutDirty = true
	n.syncTextSize()
}

// SetWrapWidth sets the wrap width of a text node and resizes its layout box.
func (n *Node) SetWrapWidth(w float64) {
	if n.TextBlock == nil {
		return
	}
	n.TextBlock.WrapWidth = w
	n.TextBlock.layoutDirty = true
	n.syncTextSize()
}

// SetAlign sets the horizontal alignment of a text node.
func (n *Node) SetAlign(a TextAlign) {
	if n.TextBlock == nil {
		return
	}
	n.TextBlock.Align = a
	n.TextBlock.imageDirty = true
	n.syncTextSize()
}

// syncTextSize makes the layout box match the measured text so that
// sections can stack text like any other element.
func (n *Node) syncTextSize() {
	tb := n.TextBlock
	if tb == nil {
		return
	}
	w, h := tb.Measured()
	if tb.WrapWidth > 0 && tb.Align != TextAlignLeft {
		w = tb.WrapWidth
	}
	n.SetSize(w, h)
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("nuclea: failed to parse TTF data: %w", err)
	}
	return NewTTFFont(source, size), nil
}

// NewTTFFont creates a font of the given size from a parsed face source, so
// one source can serve several sizes.
func NewTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// --- Built-in faces ---

// FontFamily is a set of parsed Go font faces.
type FontFamily struct {
	Regular *text.GoTextFaceSource
	Bold    *text.GoTextFaceSource
	Mono    *text.GoTextFaceSource
}

// LoadGoFonts parses the Go font family shipped with golang.org/x/image.
func LoadGoFonts() (*FontFamily, error) {
	var fam FontFamily
	for _, f := range []struct {
		dst  **text.GoTextFaceSource
		name string
		data []byte
	}{
		{&fam.Regular, "regular", goregular.TTF},
		{&fam.Bold, "bold", gobold.TTF},
		{&fam.Mono, "mono", gomono.TTF},
	} {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(f.data))
		if err != nil {
			return nil, fmt.Errorf("nuclea: load go font %s: %w", f.name, err)
		}
		*f.dst = src
	}
	return &fam, nil
}

// --- Text rendering helper (used by render.go) ---

// textImage returns the block rendered to a cached image, re-rendering only
// when the layout changed.
func (tb *TextBlock) textImage() *ebiten.Image {
	lines := tb.layout()
	f, ok := tb.Font.(*TTFFont)
	if !ok || tb.measuredW == 0 || tb.measuredH == 0 {
		return nil
	}
	boxW := tb.measuredW
	if tb.WrapWidth > 0 {
		boxW = max(boxW, tb.WrapWidth)
	}
	w := int(boxW) + 1
	h := int(tb.measuredH) + 1

	if !tb.imageDirty && tb.image != nil {
		return tb.image
	}
	tb.imageDirty = false

	if tb.image != nil {
		b := tb.image.Bounds()
		if b.Dx() != w || b.Dy() != h {
			tb.image.Deallocate()
			tb.image = ebiten.NewImage(w, h)
		} else {
			tb.image.Clear()
		}
	} else {
		tb.image = ebiten.NewImage(w, h)
	}

	lh := tb.lineHeight()
	for i, l := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(tb.alignOffset(l.width), float64(i)*lh)
		op.ColorScale.ScaleWithColor(tb.Color.toRGBA())
		op.LineSpacing = lh
		text.Draw(tb.image, l.text, f.face, op)
	}
	return tb.image
}
