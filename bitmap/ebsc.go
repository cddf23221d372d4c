package bitmap

import (
	"github.com/tesserfont/sfnt/fontdata"
	"github.com/tesserfont/sfnt/sfnterror"
	"github.com/tesserfont/sfnt/table"
)

const ebscHeaderSize = 8 // version Fixed, numSizes uint32
const bitmapScaleTableSize = 24 + 4 // hori, vert sbitLineMetrics; ppemX/ppemY/substitutePpemX/substitutePpemY

// BitmapScale is one "EBSC" bitmapScaleTable entry: a strike that
// substitutes another strike's bitmaps at a different point size instead
// of shipping its own.
type BitmapScale struct {
	Hori, Vert                       SbitLineMetrics
	PpemX, PpemY                     uint8
	SubstitutePpemX, SubstitutePpemY uint8
}

// EBSC is a decode-only view of the "EBSC" table. The upstream reference
// implementation notes its own EBSC support as incomplete for lack of
// test fonts; this module mirrors that scope and never materializes an
// editable model for it: no builder is registered for "EBSC", so
// FromFont wraps it in a table.OpaqueBuilder.
type EBSC struct {
	Version uint32
	Scales  []BitmapScale
}

// DecodeEBSC parses an "EBSC" table for inspection.
func DecodeEBSC(data *fontdata.Data) (*EBSC, error) {
	if data.Length() < ebscHeaderSize {
		return nil, &sfnterror.CorruptTable{Tag: table.TagEBSC.String(), Reason: "EBSC shorter than its header"}
	}
	version, err := data.ReadULong(0)
	if err != nil {
		return nil, err
	}
	numSizes, err := data.ReadULongAsInt(4)
	if err != nil {
		return nil, err
	}
	if data.Length() < ebscHeaderSize+numSizes*bitmapScaleTableSize {
		return nil, &sfnterror.CorruptTable{Tag: table.TagEBSC.String(), Reason: "EBSC shorter than its bitmapScaleTable array"}
	}

	e := &EBSC{Version: version, Scales: make([]BitmapScale, numSizes)}
	for i := range e.Scales {
		base := ebscHeaderSize + i*bitmapScaleTableSize
		hori, err := decodeSbitLineMetrics(data, base)
		if err != nil {
			return nil, err
		}
		vert, err := decodeSbitLineMetrics(data, base+12)
		if err != nil {
			return nil, err
		}
		ppemX, err := data.ReadUByte(base + 24)
		if err != nil {
			return nil, err
		}
		ppemY, err := data.ReadUByte(base + 25)
		if err != nil {
			return nil, err
		}
		subX, err := data.ReadUByte(base + 26)
		if err != nil {
			return nil, err
		}
		subY, err := data.ReadUByte(base + 27)
		if err != nil {
			return nil, err
		}
		e.Scales[i] = BitmapScale{
			Hori: hori, Vert: vert,
			PpemX: ppemX, PpemY: ppemY,
			SubstitutePpemX: subX, SubstitutePpemY: subY,
		}
	}
	return e, nil
}
