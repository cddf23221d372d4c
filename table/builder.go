package table

import "github.com/tesserfont/sfnt/fontdata"

// Table is a decoded table: its directory header plus the bytes it was
// built from or last serialized to.
type Table struct {
	Header Record
	Data   *fontdata.Data
}

// Builder is implemented by every per-tag table builder. It follows a
// Pristine/Edited/ReSerialized state machine: while ModelChanged reports
// false the backing Data is authoritative and Serialize need only copy
// it; once the model has been touched, Serialize recomputes the byte
// layout from scratch.
type Builder interface {
	// Tag reports the 4-byte table tag this builder produces.
	Tag() Tag

	// ReadyToSerialize reports whether enough state exists to emit bytes.
	// The Font serializer must not call Serialize when this is false.
	ReadyToSerialize() bool

	// DataSizeToSerialize returns the byte count Serialize would write.
	DataSizeToSerialize() int

	// Serialize writes the table body into out, starting at offset 0, and
	// returns the number of bytes written.
	Serialize(out *fontdata.Data) (int, error)
}

// Base is embedded by every model-backed table builder. It holds the
// pristine backing bytes (if any) and the modelChanged flag that decides
// whether Serialize can reuse them verbatim.
//
// Base itself does not implement Builder: concrete builders embed it for
// the modelChanged bookkeeping and provide their own ReadyToSerialize,
// DataSizeToSerialize, and Serialize built on top of it.
type Base struct {
	tag          Tag
	data         *fontdata.Data // nil for a builder created from scratch
	modelChanged bool
}

// NewBase constructs a Base over the given tag and backing data. data may
// be nil for a builder created from scratch (no backing bytes yet), in
// which case ModelChanged starts true.
func NewBase(tag Tag, data *fontdata.Data) Base {
	return Base{tag: tag, data: data, modelChanged: data == nil}
}

// Tag reports the table tag.
func (b *Base) Tag() Tag { return b.tag }

// Data returns the backing bytes, or nil if none have been set. Editing
// the model leaves them in place; ModelChanged reports whether they are
// still authoritative.
func (b *Base) Data() *fontdata.Data { return b.data }

// ModelChanged reports whether the in-memory model is authoritative over
// the backing bytes.
func (b *Base) ModelChanged() bool { return b.modelChanged }

// SetModelChanged raises the modelChanged flag. Every accessor that
// mutates a builder's model must call this.
func (b *Base) SetModelChanged() { b.modelChanged = true }

// SetData replaces the backing bytes, invalidating the model-changed flag
// (the fresh bytes become authoritative) and invoking onReplace, the
// subDataSet hook a concrete builder uses to drop any cached decoded
// model. onReplace may be nil.
func (b *Base) SetData(d *fontdata.Data, onReplace func()) {
	b.data = d
	b.modelChanged = false
	if onReplace != nil {
		onReplace()
	}
}
