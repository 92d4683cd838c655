package raster

import (
	"image"
	"image/color"
	"strings"
	"unicode"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// canvas acumula operaciones de dibujo mientras avanza el cursor vertical;
// el alto final del lienzo se conoce solo al terminar el layout.
type canvas struct {
	width int
	y     int
	ops   []func(dst *image.RGBA)

	face  font.Face
	lineH int
	glyph *sfnt.Font // nil con la fuente de mapa de bits (solo ASCII)
	buf   sfnt.Buffer
}

func newCanvas(width int, face font.Face, glyph *sfnt.Font) *canvas {
	return &canvas{
		width: width,
		y:     margin,
		face:  face,
		lineH: face.Metrics().Height.Ceil() + linePadding,
		glyph: glyph,
	}
}

func (c *canvas) contentWidth() int { return c.width - 2*margin }

func (c *canvas) gap(px int) { c.y += px }

// line escribe una o más líneas (con ajuste de palabras) a todo el ancho.
func (c *canvas) line(s string, bold bool) {
	for _, l := range c.wrap(c.printable(s), c.contentWidth()) {
		c.text(margin, c.y, l, bold)
		c.y += c.lineH
	}
}

// columns dos columnas de igual ancho; el cursor avanza según la más alta.
func (c *canvas) columns(left, right []string) {
	colW := c.contentWidth()/2 - cellPadding
	top := c.y
	leftH := c.column(margin, top, colW, left)
	rightH := c.column(margin+c.contentWidth()/2+cellPadding, top, colW, right)
	c.y = top + max(leftH, rightH)
}

func (c *canvas) column(x, top, w int, lines []string) int {
	y := top
	for _, s := range lines {
		label, value, labelled := strings.Cut(s, ": ")
		for i, l := range c.wrap(c.printable(s), w) {
			// la etiqueta "X:" va en negrita, como en la vista HTML
			if i == 0 && labelled && value != "" {
				c.text(x, y, label+":", true)
				c.text(x+c.measure(label+": "), y, strings.TrimPrefix(l, label+": "), false)
			} else {
				c.text(x, y, l, false)
			}
			y += c.lineH
		}
	}
	return y - top
}

func (c *canvas) rule() {
	y := c.y
	x0, x1 := margin, c.width-margin
	c.ops = append(c.ops, func(dst *image.RGBA) {
		fill(dst, image.Rect(x0, y, x1, y+1), colorBorder)
	})
	c.y++
}

// tableRow fila de la tabla de ítems con bordes; el texto se recorta al ancho de la celda.
func (c *canvas) tableRow(cells []string, header bool) {
	widths := columnWidths(c.contentWidth(), tableWeights)
	h := c.lineH + 2*cellPadding
	top := c.y

	x := margin
	for i, w := range widths {
		cell := image.Rect(x, top, x+w, top+h)
		text := ""
		if i < len(cells) {
			text = c.fit(c.printable(cells[i]), w-2*cellPadding)
		}
		c.ops = append(c.ops, func(dst *image.RGBA) {
			if header {
				fill(dst, cell, colorHeadBg)
			}
			border(dst, cell, colorBorder)
		})
		c.text(x+cellPadding, top+cellPadding, text, header)
		x += w
	}
	c.y += h
}

// image dibuja img escalada a lo sumo a maxW x maxH (0 = sin límite), conservando proporción.
func (c *canvas) image(img image.Image, maxW, maxH int, centered bool) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	w, h := b.Dx(), b.Dy()
	if w > maxW {
		h = h * maxW / w
		w = maxW
	}
	if maxH > 0 && h > maxH {
		w = w * maxH / h
		h = maxH
	}
	if w < 1 || h < 1 {
		return
	}
	x := margin
	if centered {
		x = (c.width - w) / 2
	}
	dstRect := image.Rect(x, c.y, x+w, c.y+h)
	c.ops = append(c.ops, func(dst *image.RGBA) {
		draw.CatmullRom.Scale(dst, dstRect, img, b, draw.Over, nil)
	})
	c.y += h
}

// text dibuja s con su borde superior en top. La negrita se simula con doble trazo.
func (c *canvas) text(x, top int, s string, bold bool) {
	if s == "" {
		return
	}
	face := c.face
	baseline := top + face.Metrics().Ascent.Ceil()
	c.ops = append(c.ops, func(dst *image.RGBA) {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(colorText), Face: face}
		d.Dot = fixed.P(x, baseline)
		d.DrawString(s)
		if bold {
			d.Dot = fixed.P(x+1, baseline)
			d.DrawString(s)
		}
	})
}

// ── helpers ───────────────────────────────────────────────────────────────────

func fill(dst *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func border(dst *image.RGBA, r image.Rectangle, col color.Color) {
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	fill(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}

func columnWidths(total int, weights []float64) []int {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	out := make([]int, len(weights))
	used := 0
	for i, w := range weights {
		out[i] = int(float64(total) * w / sum)
		used += out[i]
	}
	out[len(out)-1] += total - used
	return out
}

func (c *canvas) measure(s string) int {
	return font.MeasureString(c.face, s).Ceil()
}

// fit recorta s para que quepa en maxPx, terminando en "...".
func (c *canvas) fit(s string, maxPx int) string {
	if c.measure(s) <= maxPx {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && c.measure(string(r)+"...") > maxPx {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

// wrap parte s en líneas de a lo sumo maxPx; las palabras más largas se recortan.
func (c *canvas) wrap(s string, maxPx int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := ""
	for _, w := range words {
		next := w
		if cur != "" {
			next = cur + " " + w
		}
		if c.measure(next) <= maxPx {
			cur = next
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
		}
		cur = c.fit(w, maxPx)
	}
	return append(lines, cur)
}

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// printable adapta s a los glifos disponibles. Con la fuente de mapa de bits reduce
// a ASCII imprimible: quita diacríticos ("São" → "Sao") y reemplaza el resto por "?".
// Con una fuente TTF solo reemplaza las runas que la fuente no cubre.
func (c *canvas) printable(s string) string {
	if c.glyph == nil {
		folded, _, err := transform.String(foldDiacritics, s)
		if err != nil {
			folded = s
		}
		s = folded
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if c.glyph == nil {
			if r >= 0x20 && r < 0x7f {
				return r
			}
			return '?'
		}
		if !unicode.IsPrint(r) {
			return '?'
		}
		if gi, err := c.glyph.GlyphIndex(&c.buf, r); err != nil || gi == 0 {
			return '?'
		}
		return r
	}, s)
}
