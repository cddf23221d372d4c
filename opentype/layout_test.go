package opentype

import (
	"testing"

	"github.com/tesserfont/sfnt/fontdata"
)

// buildTestGSUB assembles a minimal version-1.0 GSUB table: one script
// ("latn") with no LangSys records, one feature ("liga") pointing at
// lookup 0, and one lookup with a single subtable offset.
func buildTestGSUB(t *testing.T) []byte {
	t.Helper()
	const (
		headerSize     = 10
		scriptListOff  = headerSize        // 10
		scriptTableOff = scriptListOff + 8 // 18 (list header 2 + 1 record * 6)
		featureListOff = scriptTableOff + 4 // 22 (script table: 2+2)
		featureTabOff  = featureListOff + 8 // 30
		lookupListOff  = featureTabOff + 6  // 36
		lookupTabOff   = lookupListOff + 4  // 40
		total          = lookupTabOff + 8   // 48
	)
	buf := fontdata.NewGrowable(total)
	_, _ = buf.WriteUShort(0, 1) // majorVersion
	_, _ = buf.WriteUShort(2, 0) // minorVersion
	_, _ = buf.WriteUShort(4, scriptListOff)
	_, _ = buf.WriteUShort(6, featureListOff)
	_, _ = buf.WriteUShort(8, lookupListOff)

	_, _ = buf.WriteUShort(scriptListOff, 1) // scriptCount
	_, _ = buf.WriteBytes(scriptListOff+2, []byte("latn"))
	_, _ = buf.WriteUShort(scriptListOff+6, uint16(scriptTableOff-scriptListOff))

	_, _ = buf.WriteUShort(scriptTableOff, 0)   // defaultLangSysOffset (none)
	_, _ = buf.WriteUShort(scriptTableOff+2, 0) // langSysCount

	_, _ = buf.WriteUShort(featureListOff, 1) // featureCount
	_, _ = buf.WriteBytes(featureListOff+2, []byte("liga"))
	_, _ = buf.WriteUShort(featureListOff+6, uint16(featureTabOff-featureListOff))

	_, _ = buf.WriteUShort(featureTabOff, 0)   // featureParamsOffset
	_, _ = buf.WriteUShort(featureTabOff+2, 1) // lookupIndexCount
	_, _ = buf.WriteUShort(featureTabOff+4, 0) // lookupIndices[0]

	_, _ = buf.WriteUShort(lookupListOff, 1) // lookupCount
	_, _ = buf.WriteUShort(lookupListOff+2, uint16(lookupTabOff-lookupListOff))

	_, _ = buf.WriteUShort(lookupTabOff, 4)   // lookupType
	_, _ = buf.WriteUShort(lookupTabOff+2, 0) // lookupFlag
	_, _ = buf.WriteUShort(lookupTabOff+4, 1) // subtableCount
	_, _ = buf.WriteUShort(lookupTabOff+6, 20) // subtable offset (opaque)

	return buf.Bytes()
}

func TestDecodeGSUB(t *testing.T) {
	g, err := DecodeGSUB(fontdata.New(buildTestGSUB(t)))
	if err != nil {
		t.Fatal(err)
	}
	script, ok := g.ScriptList["latn"]
	if !ok {
		t.Fatal("expected a \"latn\" script record")
	}
	if script.DefaultLangSys != nil {
		t.Fatal("expected no default LangSys")
	}
	if len(g.FeatureList) != 1 || g.FeatureList[0].Tag != "liga" {
		t.Fatalf("FeatureList = %+v, want one \"liga\" feature", g.FeatureList)
	}
	if len(g.FeatureList[0].LookupIndices) != 1 || g.FeatureList[0].LookupIndices[0] != 0 {
		t.Fatalf("liga's lookup indices = %v, want [0]", g.FeatureList[0].LookupIndices)
	}
	if len(g.LookupList) != 1 || g.LookupList[0].Type != 4 {
		t.Fatalf("LookupList = %+v, want one type-4 lookup", g.LookupList)
	}
	if len(g.LookupList[0].SubtableOffsets) != 1 || g.LookupList[0].SubtableOffsets[0] != 20 {
		t.Fatalf("SubtableOffsets = %v, want [20]", g.LookupList[0].SubtableOffsets)
	}
}

func TestDecodeGDEF(t *testing.T) {
	// header(12) + glyph ClassDef format 1 at 12 + mark ClassDef format 1 at 24
	glyphCD := ClassDef{10: 1, 11: 1, 12: 2}
	glyphBytes := glyphCD.Encode()
	markCD := ClassDef{5: 3}
	markBytes := markCD.Encode()

	glyphOff := 12
	markOff := glyphOff + len(glyphBytes)
	total := markOff + len(markBytes)

	buf := fontdata.NewGrowable(total)
	_, _ = buf.WriteUShort(0, 1) // majorVersion
	_, _ = buf.WriteUShort(2, 0) // minorVersion
	_, _ = buf.WriteUShort(4, uint16(glyphOff))
	_, _ = buf.WriteUShort(6, 0) // attachListOffset (absent)
	_, _ = buf.WriteUShort(8, 0) // ligCaretListOffset (absent)
	_, _ = buf.WriteUShort(10, uint16(markOff))
	_, _ = buf.WriteBytes(glyphOff, glyphBytes)
	_, _ = buf.WriteBytes(markOff, markBytes)

	g, err := DecodeGDEF(fontdata.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if g.GlyphClassDef[10] != 1 || g.GlyphClassDef[12] != 2 {
		t.Fatalf("GlyphClassDef = %v, want to include 10:1 and 12:2", g.GlyphClassDef)
	}
	if g.MarkAttachClassDef[5] != 3 {
		t.Fatalf("MarkAttachClassDef = %v, want to include 5:3", g.MarkAttachClassDef)
	}
}
