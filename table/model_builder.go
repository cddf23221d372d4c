package table

import "github.com/tesserfont/sfnt/fontdata"

// Decode turns raw table bytes into a decoded model.
type Decode[T any] func(*fontdata.Data) (T, error)

// Encode turns a decoded model back into its wire bytes.
type Encode[T any] func(T) []byte

// ModelBuilder is the generic realization of the Pristine/Edited/
// ReSerialized builder-lifecycle state machine: a table starts as
// Pristine bytes, transitions to Edited once a caller asks for (and
// potentially mutates) its decoded Model, and Serialize picks the cheap
// path — copying the pristine bytes — unless the model has been touched.
//
// The small, fully-materialized tables (head, hhea, maxp, OS/2, name,
// post, and cmap) are built on top of this instead of hand-rolling the
// same modelChanged bookkeeping once per table. The hmtx, loca and glyf
// builders embed Base directly, since each needs construction-time values
// from other tables.
type ModelBuilder[T any] struct {
	Base
	decode Decode[T]
	encode Encode[T]

	model    T
	hasModel bool

	cached []byte // memoized Encode() result while modelChanged is true
}

// NewModelBuilder wraps pristine bytes in a ModelBuilder. data may be nil
// to start from an empty model (the caller must then call SetModel before
// the builder is ready to serialize).
func NewModelBuilder[T any](tag Tag, data *fontdata.Data, decode Decode[T], encode Encode[T]) *ModelBuilder[T] {
	return &ModelBuilder[T]{
		Base:   NewBase(tag, data),
		decode: decode,
		encode: encode,
	}
}

// Model returns the decoded model, materializing it from the backing
// bytes on first access.
func (m *ModelBuilder[T]) Model() (T, error) {
	if m.hasModel {
		return m.model, nil
	}
	var zero T
	if m.Data() == nil {
		return zero, nil
	}
	v, err := m.decode(m.Data())
	if err != nil {
		return zero, err
	}
	m.model = v
	m.hasModel = true
	return m.model, nil
}

// SetModel replaces the decoded model outright and raises modelChanged.
func (m *ModelBuilder[T]) SetModel(v T) {
	m.model = v
	m.hasModel = true
	m.cached = nil
	m.SetModelChanged()
}

// Mutate fetches the current model, applies fn, and marks it changed. fn
// receives a pointer so it can edit in place regardless of whether T is
// itself a pointer type.
func (m *ModelBuilder[T]) Mutate(fn func(*T)) error {
	v, err := m.Model()
	if err != nil {
		return err
	}
	fn(&v)
	m.SetModel(v)
	return nil
}

// ReadyToSerialize reports whether the builder has either pristine bytes
// or a materialized model to draw from.
func (m *ModelBuilder[T]) ReadyToSerialize() bool {
	return m.Data() != nil || m.hasModel
}

func (m *ModelBuilder[T]) bytesToWrite() ([]byte, error) {
	if !m.ModelChanged() && m.Data() != nil {
		return m.Data().Bytes(), nil
	}
	if m.cached != nil {
		return m.cached, nil
	}
	v, err := m.Model()
	if err != nil {
		return nil, err
	}
	m.cached = m.encode(v)
	return m.cached, nil
}

// DataSizeToSerialize returns the byte count Serialize would write.
func (m *ModelBuilder[T]) DataSizeToSerialize() int {
	b, err := m.bytesToWrite()
	if err != nil {
		return 0
	}
	return len(b)
}

// Serialize writes the table body into out at offset 0.
func (m *ModelBuilder[T]) Serialize(out *fontdata.Data) (int, error) {
	b, err := m.bytesToWrite()
	if err != nil {
		return 0, err
	}
	return out.WriteBytes(0, b)
}
