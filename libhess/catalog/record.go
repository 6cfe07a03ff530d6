package catalog

import (
	"github.com/fine-structures/hess/hess"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// TableRecord is the stored form of a hess.Table.
type TableRecord struct {
	Kind int32       `protobuf:"varint,1,opt,name=kind,proto3" json:"kind,omitempty"`
	Path []int32     `protobuf:"varint,2,rep,packed,name=path,proto3" json:"path,omitempty"`
	Rows []*TableRow `protobuf:"bytes,3,rep,name=rows,proto3" json:"rows,omitempty"`
}

func (m *TableRecord) Reset()         { *m = TableRecord{} }
func (m *TableRecord) String() string { return proto.CompactTextString(m) }
func (*TableRecord) ProtoMessage()    {}

// TableRow is one nonzero row of a TableRecord.
type TableRow struct {
	Partition []int32 `protobuf:"varint,1,rep,packed,name=partition,proto3" json:"partition,omitempty"`
	Coeffs    []int64 `protobuf:"zigzag64,2,rep,packed,name=coeffs,proto3" json:"coeffs,omitempty"`
}

func (m *TableRow) Reset()         { *m = TableRow{} }
func (m *TableRow) String() string { return proto.CompactTextString(m) }
func (*TableRow) ProtoMessage()    {}

// CatalogState is stored under gCatalogStateKey.
type CatalogState struct {
	MajorVers int32 `protobuf:"varint,1,opt,name=major_vers,json=majorVers,proto3" json:"major_vers,omitempty"`
	MinorVers int32 `protobuf:"varint,2,opt,name=minor_vers,json=minorVers,proto3" json:"minor_vers,omitempty"`

	// NumTables[kind*(hess.MaxSize+1) + n] counts stored tables of that kind and size.
	NumTables []uint64 `protobuf:"varint,3,rep,packed,name=num_tables,json=numTables,proto3" json:"num_tables,omitempty"`
}

func (m *CatalogState) Reset()         { *m = CatalogState{} }
func (m *CatalogState) String() string { return proto.CompactTextString(m) }
func (*CatalogState) ProtoMessage()    {}

func toInt32s(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func toInts(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}

// NewTableRecord returns the stored form of T (nonzero rows only).
func NewTableRecord(T *hess.Table) *TableRecord {
	rec := &TableRecord{
		Kind: int32(T.Kind),
		Path: toInt32s(T.Path),
	}
	for _, row := range T.Rows() {
		rec.Rows = append(rec.Rows, &TableRow{
			Partition: toInt32s(row.Partition),
			Coeffs:    row.Coeffs,
		})
	}
	return rec
}

// Table rebuilds the hess.Table rec describes.
func (rec *TableRecord) Table() (*hess.Table, error) {
	kind := hess.TableKind(rec.Kind)
	if !kind.IsValid() {
		return nil, errors.Wrapf(hess.ErrUnmarshal, "bad table kind %d", rec.Kind)
	}
	path := hess.Path(toInts(rec.Path))
	if err := path.Validate(); err != nil {
		return nil, errors.Wrap(hess.ErrUnmarshal, err.Error())
	}
	T := hess.NewTable(kind, path)
	maxRow := T.MaxDegree() + 1
	for _, row := range rec.Rows {
		part := hess.Partition(toInts(row.Partition))
		if part.Size() != len(path) || !part.IsValid() || len(row.Coeffs) > maxRow {
			return nil, errors.Wrapf(hess.ErrUnmarshal, "bad row %v for %v[%v]", part, kind, path)
		}
		T.SetRow(part, row.Coeffs)
	}
	return T, nil
}

// MarshalTable encodes T for storage.
func MarshalTable(T *hess.Table) ([]byte, error) {
	return proto.Marshal(NewTableRecord(T))
}

// UnmarshalTable decodes a table written by MarshalTable.
func UnmarshalTable(buf []byte) (*hess.Table, error) {
	var rec TableRecord
	if err := proto.Unmarshal(buf, &rec); err != nil {
		return nil, errors.Wrap(hess.ErrUnmarshal, err.Error())
	}
	return rec.Table()
}
