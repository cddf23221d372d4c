package glyf

import (
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/funit"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// Simple glyph point flag bits, per the OpenType "glyf" specification.
const (
	flagOnCurvePoint      = 0x01
	flagXShortVector      = 0x02
	flagYShortVector      = 0x04
	flagRepeat            = 0x08
	flagXIsSameOrPositive = 0x10
	flagYIsSameOrPositive = 0x20
)

// Composite glyph component flag bits.
const (
	compArgsAreWords    = 0x0001
	compArgsAreXY       = 0x0002
	compWeHaveScale     = 0x0008
	compMoreComponents  = 0x0020
	compWeHaveXYScale   = 0x0040
	compWeHave2x2       = 0x0080
	compWeHaveInstructs = 0x0100
)

// SimpleGlyph is a fully decoded simple (non-composite) glyph outline.
type SimpleGlyph struct {
	EndPtsOfContours []uint16
	Instructions     []byte
	OnCurve          []bool
	X, Y             []int16 // absolute point coordinates, one entry per point
}

// GlyphComponent is one component reference of a composite glyph. Args
// holds its raw, already-parsed placement bytes (2 or 4 bytes of
// x/y-or-point-index values, plus an optional scale block), kept opaque
// because interpreting a component's transform is outside this module's
// scope.
type GlyphComponent struct {
	Flags      uint16
	GlyphIndex uint16
	Args       []byte
}

// CompositeGlyph is a glyph assembled from other glyphs.
type CompositeGlyph struct {
	Components   []GlyphComponent
	Instructions []byte
}

// Glyph is one entry of a "glyf" table. Outline is either a *SimpleGlyph
// or a *CompositeGlyph, or nil for an empty glyph (loca offset run of
// zero length, e.g. the space glyph).
type Glyph struct {
	XMin, YMin, XMax, YMax int16
	Outline                interface{}
}

// Bounds returns the glyph's bounding box in font design units.
func (g *Glyph) Bounds() funit.Rect {
	return funit.Rect{
		LLx: funit.Int16(g.XMin), LLy: funit.Int16(g.YMin),
		URx: funit.Int16(g.XMax), URy: funit.Int16(g.YMax),
	}
}

// FontBounds folds Bounds over every glyph, skipping nil entries (empty
// glyphs), to give the whole glyph set's bounding box.
func FontBounds(glyphs []*Glyph) funit.Rect {
	var r funit.Rect
	for _, g := range glyphs {
		if g == nil {
			continue
		}
		r.Extend(g.Bounds())
	}
	return r
}

// DecodeGlyf reads every glyph outline named by loca's offsets out of a
// "glyf" table.
func DecodeGlyf(data *fontdata.Data, offsets []uint32) ([]*Glyph, error) {
	glyphs := make([]*Glyph, len(offsets)-1)
	for i := range glyphs {
		start, end := offsets[i], offsets[i+1]
		if end == start {
			continue
		}
		sub, err := data.Slice(int(start), int(end-start))
		if err != nil {
			return nil, &sfnterror.CorruptTable{Tag: table.TagGlyf.String(), Reason: "loca offset exceeds glyf table bounds"}
		}
		g, err := decodeGlyph(sub)
		if err != nil {
			return nil, err
		}
		glyphs[i] = g
	}
	return glyphs, nil
}

func decodeGlyph(data *fontdata.Data) (*Glyph, error) {
	if data.Length() < 10 {
		return nil, &sfnterror.CorruptTable{Tag: table.TagGlyf.String(), Reason: "glyph shorter than 10-byte header"}
	}
	numContours, err := data.ReadShort(0)
	if err != nil {
		return nil, err
	}
	xMin, err := data.ReadShort(2)
	if err != nil {
		return nil, err
	}
	yMin, err := data.ReadShort(4)
	if err != nil {
		return nil, err
	}
	xMax, err := data.ReadShort(6)
	if err != nil {
		return nil, err
	}
	yMax, err := data.ReadShort(8)
	if err != nil {
		return nil, err
	}

	g := &Glyph{XMin: xMin, YMin: yMin, XMax: xMax, YMax: yMax}
	if numContours >= 0 {
		simple, err := decodeSimpleGlyph(data, int(numContours))
		if err != nil {
			return nil, err
		}
		g.Outline = simple
	} else {
		composite, err := decodeCompositeGlyph(data)
		if err != nil {
			return nil, err
		}
		g.Outline = composite
	}
	return g, nil
}

func decodeSimpleGlyph(data *fontdata.Data, numContours int) (*SimpleGlyph, error) {
	g := &SimpleGlyph{EndPtsOfContours: make([]uint16, numContours)}
	pos := 10
	for i := range g.EndPtsOfContours {
		v, err := data.ReadUShort(pos)
		if err != nil {
			return nil, err
		}
		g.EndPtsOfContours[i] = v
		pos += 2
	}
	numPoints := 0
	if numContours > 0 {
		numPoints = int(g.EndPtsOfContours[numContours-1]) + 1
	}

	instructionLength, err := data.ReadUShort(pos)
	if err != nil {
		return nil, err
	}
	pos += 2
	instructions, err := data.Slice(pos, int(instructionLength))
	if err != nil {
		return nil, &sfnterror.CorruptTable{Tag: table.TagGlyf.String(), Reason: "instructions run past glyph end"}
	}
	g.Instructions = append([]byte(nil), instructions.Bytes()...)
	pos += int(instructionLength)

	flags := make([]byte, numPoints)
	for i := 0; i < numPoints; {
		f, err := data.ReadUByte(pos)
		if err != nil {
			return nil, err
		}
		pos++
		flags[i] = f
		i++
		if f&flagRepeat != 0 {
			repeat, err := data.ReadUByte(pos)
			if err != nil {
				return nil, err
			}
			pos++
			for r := 0; r < int(repeat) && i < numPoints; r++ {
				flags[i] = f
				i++
			}
		}
	}

	g.OnCurve = make([]bool, numPoints)
	g.X = make([]int16, numPoints)
	g.Y = make([]int16, numPoints)

	var x int32
	for i, f := range flags {
		g.OnCurve[i] = f&flagOnCurvePoint != 0
		switch {
		case f&flagXShortVector != 0:
			v, err := data.ReadUByte(pos)
			if err != nil {
				return nil, err
			}
			pos++
			if f&flagXIsSameOrPositive != 0 {
				x += int32(v)
			} else {
				x -= int32(v)
			}
		case f&flagXIsSameOrPositive == 0:
			v, err := data.ReadShort(pos)
			if err != nil {
				return nil, err
			}
			pos += 2
			x += int32(v)
		}
		g.X[i] = int16(x)
	}

	var y int32
	for i, f := range flags {
		switch {
		case f&flagYShortVector != 0:
			v, err := data.ReadUByte(pos)
			if err != nil {
				return nil, err
			}
			pos++
			if f&flagYIsSameOrPositive != 0 {
				y += int32(v)
			} else {
				y -= int32(v)
			}
		case f&flagYIsSameOrPositive == 0:
			v, err := data.ReadShort(pos)
			if err != nil {
				return nil, err
			}
			pos += 2
			y += int32(v)
		}
		g.Y[i] = int16(y)
	}

	return g, nil
}

func decodeCompositeGlyph(data *fontdata.Data) (*CompositeGlyph, error) {
	comp := &CompositeGlyph{}
	pos := 10
	weHaveInstructions := false
	for {
		flags, err := data.ReadUShort(pos)
		if err != nil {
			return nil, err
		}
		glyphIndex, err := data.ReadUShort(pos + 2)
		if err != nil {
			return nil, err
		}
		pos += 4

		argSize := 2
		if flags&compArgsAreWords != 0 {
			argSize = 4
		}
		size := argSize
		switch {
		case flags&compWeHaveScale != 0:
			size += 2
		case flags&compWeHaveXYScale != 0:
			size += 4
		case flags&compWeHave2x2 != 0:
			size += 8
		}
		argsData, err := data.Slice(pos, size)
		if err != nil {
			return nil, &sfnterror.CorruptTable{Tag: table.TagGlyf.String(), Reason: "composite component args run past glyph end"}
		}
		pos += size

		if flags&compWeHaveInstructs != 0 {
			weHaveInstructions = true
		}

		comp.Components = append(comp.Components, GlyphComponent{
			Flags:      flags,
			GlyphIndex: glyphIndex,
			Args:       append([]byte(nil), argsData.Bytes()...),
		})

		if flags&compMoreComponents == 0 {
			break
		}
	}

	if weHaveInstructions {
		length, err := data.ReadUShort(pos)
		if err == nil {
			pos += 2
			instr, err := data.Slice(pos, int(length))
			if err == nil {
				comp.Instructions = append([]byte(nil), instr.Bytes()...)
			}
		}
	}
	return comp, nil
}

// EncodeGlyf writes glyphs back to their wire form, returning the packed
// "glyf" bytes and the numGlyphs+1 loca offsets into them. Every glyph is
// padded to a 2-byte boundary, as required by "loca" format 0.
func EncodeGlyf(glyphs []*Glyph) (glyfData []byte, offsets []uint32) {
	offsets = make([]uint32, len(glyphs)+1)
	var buf []byte
	for i, g := range glyphs {
		offsets[i] = uint32(len(buf))
		buf = append(buf, encodeGlyph(g)...)
	}
	offsets[len(glyphs)] = uint32(len(buf))
	return buf, offsets
}

func encodeGlyph(g *Glyph) []byte {
	if g == nil || g.Outline == nil {
		return nil
	}

	var numContours int16
	var body []byte
	switch d := g.Outline.(type) {
	case *SimpleGlyph:
		numContours = int16(len(d.EndPtsOfContours))
		body = encodeSimpleGlyph(d)
	case *CompositeGlyph:
		numContours = -1
		body = encodeCompositeGlyph(d)
	default:
		return nil
	}

	buf := fontdata.NewGrowable(10 + len(body))
	_, _ = buf.WriteShort(0, numContours)
	_, _ = buf.WriteShort(2, g.XMin)
	_, _ = buf.WriteShort(4, g.YMin)
	_, _ = buf.WriteShort(6, g.XMax)
	_, _ = buf.WriteShort(8, g.YMax)
	_, _ = buf.WriteBytes(10, body)
	out := buf.Bytes()
	if len(out)%2 != 0 {
		out = append(out, 0)
	}
	return out
}

func encodeSimpleGlyph(g *SimpleGlyph) []byte {
	numPoints := len(g.X)
	flags := make([]byte, numPoints)
	var xBytes, yBytes []byte
	var prevX, prevY int16
	for i := range flags {
		var f byte
		if g.OnCurve[i] {
			f |= flagOnCurvePoint
		}
		dx := int32(g.X[i]) - int32(prevX)
		switch {
		case dx == 0:
			f |= flagXIsSameOrPositive
		case dx >= -255 && dx <= 255:
			f |= flagXShortVector
			if dx > 0 {
				f |= flagXIsSameOrPositive
				xBytes = append(xBytes, byte(dx))
			} else {
				xBytes = append(xBytes, byte(-dx))
			}
		default:
			xBytes = append(xBytes, byte(dx>>8), byte(dx))
		}
		dy := int32(g.Y[i]) - int32(prevY)
		switch {
		case dy == 0:
			f |= flagYIsSameOrPositive
		case dy >= -255 && dy <= 255:
			f |= flagYShortVector
			if dy > 0 {
				f |= flagYIsSameOrPositive
				yBytes = append(yBytes, byte(dy))
			} else {
				yBytes = append(yBytes, byte(-dy))
			}
		default:
			yBytes = append(yBytes, byte(dy>>8), byte(dy))
		}
		flags[i] = f
		prevX, prevY = g.X[i], g.Y[i]
	}

	var flagBytes []byte
	for i := 0; i < len(flags); {
		f := flags[i]
		run := 1
		for i+run < len(flags) && flags[i+run] == f && run < 256 {
			run++
		}
		if run > 1 {
			flagBytes = append(flagBytes, f|flagRepeat, byte(run-1))
		} else {
			flagBytes = append(flagBytes, f)
		}
		i += run
	}

	size := 2*len(g.EndPtsOfContours) + 2 + len(g.Instructions) + len(flagBytes) + len(xBytes) + len(yBytes)
	buf := fontdata.NewGrowable(size)
	pos := 0
	for _, e := range g.EndPtsOfContours {
		_, _ = buf.WriteUShort(pos, e)
		pos += 2
	}
	_, _ = buf.WriteUShort(pos, uint16(len(g.Instructions)))
	pos += 2
	_, _ = buf.WriteBytes(pos, g.Instructions)
	pos += len(g.Instructions)
	_, _ = buf.WriteBytes(pos, flagBytes)
	pos += len(flagBytes)
	_, _ = buf.WriteBytes(pos, xBytes)
	pos += len(xBytes)
	_, _ = buf.WriteBytes(pos, yBytes)
	return buf.Bytes()
}

func encodeCompositeGlyph(g *CompositeGlyph) []byte {
	var buf []byte
	for i, c := range g.Components {
		flags := c.Flags &^ compMoreComponents &^ compWeHaveInstructs
		if i < len(g.Components)-1 {
			flags |= compMoreComponents
		}
		if len(g.Instructions) > 0 && i == len(g.Components)-1 {
			flags |= compWeHaveInstructs
		}
		buf = append(buf, byte(flags>>8), byte(flags), byte(c.GlyphIndex>>8), byte(c.GlyphIndex))
		buf = append(buf, c.Args...)
	}
	if len(g.Instructions) > 0 {
		l := len(g.Instructions)
		buf = append(buf, byte(l>>8), byte(l))
		buf = append(buf, g.Instructions...)
	}
	return buf
}
