package table

import "github.com/tesserfont/sfnt/fontdata"

// OpaqueBuilder preserves a table's bytes verbatim without decoding them.
// It backs unknown-tag tables encountered by the loader and any table
// this module declares pass-through only (EBSC).
type OpaqueBuilder struct {
	Base
}

// NewOpaqueBuilder wraps data without interpreting it.
func NewOpaqueBuilder(tag Tag, data *fontdata.Data) *OpaqueBuilder {
	return &OpaqueBuilder{Base: NewBase(tag, data)}
}

func (o *OpaqueBuilder) ReadyToSerialize() bool { return o.Data() != nil }

func (o *OpaqueBuilder) DataSizeToSerialize() int {
	if o.Data() == nil {
		return 0
	}
	return o.Data().Length()
}

func (o *OpaqueBuilder) Serialize(out *fontdata.Data) (int, error) {
	if o.Data() == nil {
		return 0, nil
	}
	return out.WriteBytes(0, o.Data().Bytes())
}
