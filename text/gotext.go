package text

import (
	"bytes"
	"fmt"
	"iter"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// noWrapWidth is the physical line width used when wrapping is disabled.
// Large enough that no realistic single line reaches it.
const noWrapWidth = 100000.0

// GoTextProvider is a layout Provider backed by go-text/typesetting's
// HarfBuzz shaper, with font metrics from golang.org/x/image/font/sfnt.
// It supports kerning, ligatures and complex scripts.
//
// Fonts are registered once with RegisterFont; parsed fonts are cached for
// the provider's lifetime. GoTextProvider is safe for concurrent use: the
// parsed font.Font values are read-only, font.Face instances are created
// per call (font.Face is not concurrent-safe), and HarfbuzzShaper
// instances are pooled since they carry mutable buffers.
type GoTextProvider struct {
	shaperPool sync.Pool

	mu     sync.RWMutex
	fonts  []*registeredFont
	byName map[string]*registeredFont
}

// registeredFont pairs the two parses of one font file: sfnt for metrics
// and naming, go-text for shaping.
type registeredFont struct {
	id     int
	name   string
	meta   *sfnt.Font
	shaped *font.Font
}

// NewGoTextProvider creates an empty provider. At least one font must be
// registered before layouts can be built.
func NewGoTextProvider() *GoTextProvider {
	return &GoTextProvider{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		byName: make(map[string]*registeredFont),
	}
}

// RegisterFont parses TTF/OTF data and adds it to the provider, returning
// a stable font id. The data slice must not be modified afterwards.
// The font becomes resolvable through Style.FontStack under its family
// name; the first registered font is the default.
func (p *GoTextProvider) RegisterFont(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, ErrEmptyFontData
	}

	meta, err := sfnt.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("text: parse font metrics: %w", err)
	}
	shaped, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("text: parse font for shaping: %w", err)
	}

	var buf sfnt.Buffer
	name, _ := meta.Name(&buf, sfnt.NameIDFamily)

	p.mu.Lock()
	defer p.mu.Unlock()

	f := &registeredFont{
		id:     len(p.fonts),
		name:   name,
		meta:   meta,
		shaped: shaped.Font,
	}
	p.fonts = append(p.fonts, f)
	if name != "" {
		key := strings.ToLower(name)
		if _, exists := p.byName[key]; !exists {
			p.byName[key] = f
		}
	}
	return f.id, nil
}

// resolveFont matches a comma-separated family stack against registered
// fonts. Unmatched stacks fall back to the first registered font; full
// fallback policy stays with the host.
func (p *GoTextProvider) resolveFont(stack string) (*registeredFont, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.fonts) == 0 {
		return nil, ErrNoFont
	}
	for _, family := range strings.Split(stack, ",") {
		family = strings.ToLower(strings.TrimSpace(family))
		if family == "" {
			continue
		}
		if f, ok := p.byName[family]; ok {
			return f, nil
		}
	}
	return p.fonts[0], nil
}

// BuildLayout implements Provider.
func (p *GoTextProvider) BuildLayout(content string, style Style, scale float64) (Layout, error) {
	if scale <= 0 {
		scale = 1
	}
	f, err := p.resolveFont(style.FontStack)
	if err != nil {
		return nil, fmt.Errorf("text: build layout: %w", err)
	}

	ppem := style.FontSize * scale

	var buf sfnt.Buffer
	metrics, err := f.meta.Metrics(&buf, floatToFixed(ppem), xfont.HintingFull)
	if err != nil {
		return nil, fmt.Errorf("text: font metrics at %gpx: %w", ppem, err)
	}

	l := &gotextLayout{
		src:        content,
		fontID:     f.id,
		size:       ppem,
		ascent:     fixedToFloat(metrics.Ascent),
		descent:    fixedToFloat(metrics.Descent),
		lineHeight: fixedToFloat(metrics.Height) * style.lineSpacing(),
	}

	if content != "" {
		start := 0
		for _, raw := range strings.Split(content, "\n") {
			para := strings.TrimSuffix(raw, "\r")
			l.paras = append(l.paras, shapedParagraph{
				start:  start,
				end:    start + len(para),
				glyphs: p.shapeParagraph(f, para, ppem, start),
			})
			start += len(raw) + 1
		}
	}

	l.breakInto(0)
	return l, nil
}

// shapeParagraph shapes one hard-break-free paragraph and returns glyphs
// carrying byte offsets into the full source text.
func (p *GoTextProvider) shapeParagraph(f *registeredFont, para string, ppem float64, base int) []shapedGlyph {
	if para == "" {
		return nil
	}

	runes := []rune(para)

	// Map rune index -> byte offset within the paragraph. Shaping output
	// reports cluster starts as rune indices.
	runeByte := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		runeByte[i] = off
		off += utf8.RuneLen(r)
	}
	runeByte[len(runes)] = off

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: baseDirection(para),
		Face:      font.NewFace(f.shaped),
		Size:      floatToFixed(ppem),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := p.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	p.shaperPool.Put(hb)

	glyphs := make([]shapedGlyph, 0, len(out.Glyphs))
	x := 0.0
	for _, g := range out.Glyphs {
		adv := fixedToFloat(g.Advance)
		runeIdx := g.TextIndex()
		if runeIdx < 0 || runeIdx >= len(runes) {
			runeIdx = 0
		}
		glyphs = append(glyphs, shapedGlyph{
			id:      uint32(g.GlyphID),
			x:       x + fixedToFloat(g.XOffset),
			y:       fixedToFloat(g.YOffset),
			advance: adv,
			cluster: base + runeByte[runeIdx],
			space:   runes[runeIdx] == ' ' || runes[runeIdx] == '\t',
		})
		x += adv
	}
	return glyphs
}

// shapedGlyph is one positioned glyph with its source byte offset.
// x is relative to the paragraph pen origin until line breaking rebases it.
type shapedGlyph struct {
	id      uint32
	x       float64
	y       float64
	advance float64
	cluster int
	space   bool
}

// shapedParagraph is a hard-break paragraph with its byte range in the
// source text (end excludes the newline).
type shapedParagraph struct {
	start, end int
	glyphs     []shapedGlyph
}

// layoutLine is one produced line after breaking.
type layoutLine struct {
	start, end int
	width      float64
	glyphs     []shapedGlyph
}

// gotextLayout implements Layout and GlyphSource. All coordinates are
// physical pixels.
type gotextLayout struct {
	src    string
	fontID int
	size   float64

	ascent     float64
	descent    float64
	lineHeight float64

	paras []shapedParagraph
	lines []layoutLine
	width float64
}

// BreakLines implements Layout.
func (l *gotextLayout) BreakLines(maxWidthPhysical float64) {
	l.breakInto(maxWidthPhysical)
}

// breakInto recomputes lines with greedy breaking at the last space-break
// opportunity, falling back to a mid-word break for single words wider
// than the line.
func (l *gotextLayout) breakInto(maxWidth float64) {
	l.lines = l.lines[:0]
	l.width = 0

	for pi := range l.paras {
		para := &l.paras[pi]

		if len(para.glyphs) == 0 {
			// Empty paragraphs still produce a line so they contribute
			// line height.
			l.appendLine(layoutLine{start: para.start, end: para.end})
			continue
		}
		if maxWidth <= 0 {
			l.emitLine(para, para.glyphs, 0, para.end)
			continue
		}

		lineStart := 0
		lastBreak := -1
		startX := para.glyphs[0].x

		for i := range para.glyphs {
			g := &para.glyphs[i]
			glyphEnd := g.x - startX + g.advance

			if g.space {
				lastBreak = i
			}

			if glyphEnd > maxWidth && lineStart < i {
				breakAt := i
				if lastBreak > lineStart {
					breakAt = lastBreak + 1
				}
				if breakAt >= len(para.glyphs) {
					breakAt = i
				}

				l.emitLine(para, para.glyphs[lineStart:breakAt], startX, para.glyphs[breakAt].cluster)

				lineStart = breakAt
				lastBreak = -1
				startX = para.glyphs[lineStart].x
			}
		}

		if lineStart < len(para.glyphs) {
			l.emitLine(para, para.glyphs[lineStart:], startX, para.end)
		}
	}
}

// emitLine rebases a glyph slice to x=0 and appends it as a line ending at
// byte offset end.
func (l *gotextLayout) emitLine(para *shapedParagraph, glyphs []shapedGlyph, startX float64, end int) {
	line := layoutLine{
		start:  para.start,
		end:    end,
		glyphs: make([]shapedGlyph, len(glyphs)),
	}
	if len(glyphs) > 0 {
		line.start = glyphs[0].cluster
		for i, g := range glyphs {
			g.x -= startX
			line.glyphs[i] = g
		}
		last := &line.glyphs[len(line.glyphs)-1]
		line.width = last.x + last.advance
	}
	l.appendLine(line)
}

func (l *gotextLayout) appendLine(line layoutLine) {
	l.lines = append(l.lines, line)
	if line.width > l.width {
		l.width = line.width
	}
}

// Width implements Layout.
func (l *gotextLayout) Width() float64 {
	return l.width
}

// LineCount implements Layout.
func (l *gotextLayout) LineCount() int {
	return len(l.lines)
}

// Lines implements Layout.
func (l *gotextLayout) Lines() iter.Seq[LineMetrics] {
	return func(yield func(LineMetrics) bool) {
		for i := range l.lines {
			m := LineMetrics{
				Width:      l.lines[i].width,
				LineHeight: l.lineHeight,
				Ascent:     l.ascent,
				Descent:    l.descent,
			}
			if !yield(m) {
				return
			}
		}
	}
}

// HitTest implements Layout. The offset resolves to the nearest glyph
// cluster start, using the advance midpoint as the flip threshold.
func (l *gotextLayout) HitTest(xPhysical, yPhysical float64) int {
	if len(l.lines) == 0 {
		return 0
	}

	idx := 0
	if l.lineHeight > 0 && yPhysical > 0 {
		idx = int(yPhysical / l.lineHeight)
	}
	if idx >= len(l.lines) {
		idx = len(l.lines) - 1
	}
	line := &l.lines[idx]

	for i := range line.glyphs {
		g := &line.glyphs[i]
		if xPhysical < g.x+g.advance/2 {
			return g.cluster
		}
	}
	return line.end
}

// GlyphRuns implements GlyphSource: one run per line, baselines stacked by
// line height.
func (l *gotextLayout) GlyphRuns() []GlyphRun {
	runs := make([]GlyphRun, 0, len(l.lines))
	for i := range l.lines {
		line := &l.lines[i]
		run := GlyphRun{
			FontID:   l.fontID,
			Size:     l.size,
			Baseline: float64(i)*l.lineHeight + l.ascent,
			Glyphs:   make([]PositionedGlyph, len(line.glyphs)),
		}
		for j, g := range line.glyphs {
			run.Glyphs[j] = PositionedGlyph{
				ID:      g.id,
				X:       g.x,
				Y:       g.y,
				Advance: g.advance,
			}
		}
		runs = append(runs, run)
	}
	return runs
}

// baseDirection resolves the paragraph base direction from its bidi
// ordering. Anything that is not clearly right-to-left shapes LTR; run
// reordering policy beyond the shaper's output is out of scope here.
func baseDirection(para string) di.Direction {
	p := bidi.Paragraph{}
	if _, err := p.SetString(para, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return di.DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return di.DirectionLTR
	}
	run := ordering.Run(0)
	if run.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune. Mixed-script
// text shapes with the dominant leading script; hosts needing per-script
// runs should split before building layouts.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a float64 pixel value to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a 26.6 fixed point value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
