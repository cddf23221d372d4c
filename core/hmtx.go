package core

import (
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

// LongHorMetric is one entry of the leading, fully-specified run of the
// "hmtx" table.
type LongHorMetric struct {
	AdvanceWidth uint16
	Lsb          int16
}

// Hmtx holds the decoded "hmtx" table. Metrics has one entry per glyph
// covered by the leading run (hhea.numberOfHMetrics); LeftSideBearings
// holds the left side bearing for every glyph after that run, each
// reusing Metrics[len(Metrics)-1].AdvanceWidth as its advance width.
type Hmtx struct {
	Metrics          []LongHorMetric
	LeftSideBearings []int16
}

// AdvanceWidth returns the advance width for glyph gid, applying the
// "reuse the last metric" rule for glyphs beyond the explicit run.
func (h *Hmtx) AdvanceWidth(gid int) uint16 {
	if len(h.Metrics) == 0 {
		return 0
	}
	if gid < len(h.Metrics) {
		return h.Metrics[gid].AdvanceWidth
	}
	return h.Metrics[len(h.Metrics)-1].AdvanceWidth
}

// LeftSideBearing returns the left side bearing for glyph gid.
func (h *Hmtx) LeftSideBearing(gid int) int16 {
	if gid < len(h.Metrics) {
		return h.Metrics[gid].Lsb
	}
	idx := gid - len(h.Metrics)
	if idx < 0 || idx >= len(h.LeftSideBearings) {
		return 0
	}
	return h.LeftSideBearings[idx]
}

// DecodeHmtx reads an "hmtx" table. numberOfHMetrics and numGlyphs come
// from the "hhea" and "maxp" tables respectively — the cross-table
// dependency is resolved by the caller passing them explicitly rather
// than hmtx reaching back into its siblings itself.
func DecodeHmtx(data *fontdata.Data, numberOfHMetrics, numGlyphs int) (*Hmtx, error) {
	if numberOfHMetrics < 0 || numGlyphs < numberOfHMetrics {
		return nil, &sfnterror.CorruptTable{Tag: table.TagHmtx.String(), Reason: "numberOfHMetrics exceeds numGlyphs"}
	}
	need := numberOfHMetrics*4 + (numGlyphs-numberOfHMetrics)*2
	if data.Length() < need {
		return nil, &sfnterror.CorruptTable{Tag: table.TagHmtx.String(), Reason: "table shorter than metric arrays require"}
	}
	h := &Hmtx{
		Metrics:          make([]LongHorMetric, numberOfHMetrics),
		LeftSideBearings: make([]int16, numGlyphs-numberOfHMetrics),
	}
	off := 0
	for i := range h.Metrics {
		aw, err := data.ReadUShort(off)
		if err != nil {
			return nil, err
		}
		lsb, err := data.ReadShort(off + 2)
		if err != nil {
			return nil, err
		}
		h.Metrics[i] = LongHorMetric{AdvanceWidth: aw, Lsb: lsb}
		off += 4
	}
	for i := range h.LeftSideBearings {
		lsb, err := data.ReadShort(off)
		if err != nil {
			return nil, err
		}
		h.LeftSideBearings[i] = lsb
		off += 2
	}
	return h, nil
}

// EncodeHmtx writes h back to its wire form.
func EncodeHmtx(h *Hmtx) []byte {
	size := len(h.Metrics)*4 + len(h.LeftSideBearings)*2
	buf := fontdata.NewGrowable(size)
	off := 0
	for _, m := range h.Metrics {
		_, _ = buf.WriteUShort(off, m.AdvanceWidth)
		_, _ = buf.WriteShort(off+2, m.Lsb)
		off += 4
	}
	for _, lsb := range h.LeftSideBearings {
		_, _ = buf.WriteShort(off, lsb)
		off += 2
	}
	return buf.Bytes()
}

// HmtxBuilder is the editable builder for the "hmtx" table. Because
// decoding hmtx needs numberOfHMetrics and numGlyphs from sibling tables,
// the builder captures them at construction rather than deriving them
// from a back-pointer to the Font.
type HmtxBuilder struct {
	table.Base
	numberOfHMetrics int
	numGlyphs        int
	model            *Hmtx
	hasModel         bool
	cached           []byte
}

// NewHmtxBuilder wraps pristine "hmtx" bytes in a builder, given the
// numberOfHMetrics (from "hhea") and numGlyphs (from "maxp") needed to
// decode it.
func NewHmtxBuilder(data *fontdata.Data, numberOfHMetrics, numGlyphs int) *HmtxBuilder {
	return &HmtxBuilder{
		Base:             table.NewBase(table.TagHmtx, data),
		numberOfHMetrics: numberOfHMetrics,
		numGlyphs:        numGlyphs,
	}
}

// Model returns the decoded "hmtx" table.
func (b *HmtxBuilder) Model() (*Hmtx, error) {
	if b.hasModel {
		return b.model, nil
	}
	if b.Data() == nil {
		return nil, nil
	}
	m, err := DecodeHmtx(b.Data(), b.numberOfHMetrics, b.numGlyphs)
	if err != nil {
		return nil, err
	}
	b.model = m
	b.hasModel = true
	return m, nil
}

// SetModel replaces the decoded model and raises modelChanged.
func (b *HmtxBuilder) SetModel(m *Hmtx) {
	b.model = m
	b.hasModel = true
	b.numberOfHMetrics = len(m.Metrics)
	b.numGlyphs = len(m.Metrics) + len(m.LeftSideBearings)
	b.cached = nil
	b.SetModelChanged()
}

func (b *HmtxBuilder) ReadyToSerialize() bool {
	return b.Data() != nil || b.hasModel
}

func (b *HmtxBuilder) bytesToWrite() ([]byte, error) {
	if !b.ModelChanged() && b.Data() != nil {
		return b.Data().Bytes(), nil
	}
	if b.cached != nil {
		return b.cached, nil
	}
	m, err := b.Model()
	if err != nil {
		return nil, err
	}
	b.cached = EncodeHmtx(m)
	return b.cached, nil
}

func (b *HmtxBuilder) DataSizeToSerialize() int {
	bs, err := b.bytesToWrite()
	if err != nil {
		return 0
	}
	return len(bs)
}

func (b *HmtxBuilder) Serialize(out *fontdata.Data) (int, error) {
	bs, err := b.bytesToWrite()
	if err != nil {
		return 0, err
	}
	return out.WriteBytes(0, bs)
}
