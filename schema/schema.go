// Package schema represents the Parquet schema tree: the Primitive/Group
// node variants, their depth-first Thrift serialisation, and the
// ColumnDescriptor derivation for leaf columns.
package schema

import (
	parquet "github.com/segmentio/parquet-core"
	"github.com/segmentio/parquet-core/format"
)

// PhysicalType is the physical (on-disk) type of a leaf column. The width of
// FixedLenByteArray lives in the Length field, not in the tag itself.
type PhysicalType struct {
	Kind   format.Type
	Length int32 // only meaningful when Kind == format.FixedLenByteArray
}

func (t PhysicalType) String() string {
	if t.Kind == format.FixedLenByteArray {
		return "FIXED_LEN_BYTE_ARRAY(" + itoa(t.Length) + ")"
	}
	return t.Kind.String()
}

func itoa(n int32) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Repetition is the repetition of a schema node. The root node carries none;
// every descendant carries exactly one.
type Repetition format.FieldRepetitionType

const (
	Required = Repetition(format.Required)
	Optional = Repetition(format.Optional)
	Repeated = Repetition(format.Repeated)
)

func (r Repetition) String() string { return format.FieldRepetitionType(r).String() }

// Info bundles the properties common to both schema node variants.
type Info struct {
	Name       string
	Repetition Repetition
	FieldID    *int32
	IsRoot     bool
}

// Node is a schema tree node: exactly one of Primitive or Group is set,
// discriminated by IsGroup.
type Node struct {
	Info Info

	IsGroup bool

	// Primitive fields, valid when !IsGroup.
	Physical      PhysicalType
	ConvertedType *format.ConvertedType
	LogicalType   *format.LogicalType

	// Group fields, valid when IsGroup.
	Fields []*Node
}

// NewPrimitive constructs a leaf node.
func NewPrimitive(name string, repetition Repetition, physical PhysicalType) *Node {
	return &Node{
		Info:     Info{Name: name, Repetition: repetition},
		IsGroup:  false,
		Physical: physical,
	}
}

// NewGroup constructs a group node with the given children.
func NewGroup(name string, repetition Repetition, fields ...*Node) *Node {
	return &Node{
		Info:    Info{Name: name, Repetition: repetition},
		IsGroup: true,
		Fields:  fields,
	}
}

// NewRoot constructs the root group node (no repetition, IsRoot set).
func NewRoot(name string, fields ...*Node) *Node {
	n := NewGroup(name, Required, fields...)
	n.Info.IsRoot = true
	return n
}

// ToThrift flattens the tree into the depth-first []format.SchemaElement
// sequence used by the file footer.
func (n *Node) ToThrift() ([]format.SchemaElement, error) {
	if !n.Info.IsRoot {
		return nil, parquet.NewOutOfSpecError("ToThrift", "root schema node must be a group with IsRoot set")
	}
	var elements []format.SchemaElement
	appendThrift(n, &elements)
	return elements, nil
}

func appendThrift(n *Node, elements *[]format.SchemaElement) {
	if n.IsGroup {
		var repetitionType *format.FieldRepetitionType
		if !n.Info.IsRoot {
			rt := format.FieldRepetitionType(n.Info.Repetition)
			repetitionType = &rt
		}
		numChildren := int32(len(n.Fields))
		*elements = append(*elements, format.SchemaElement{
			RepetitionType: repetitionType,
			Name:           n.Info.Name,
			NumChildren:    &numChildren,
			ConvertedType:  n.ConvertedType,
			FieldID:        n.Info.FieldID,
			LogicalType:    n.LogicalType,
		})
		for _, field := range n.Fields {
			appendThrift(field, elements)
		}
		return
	}

	typ := n.Physical.Kind
	rt := format.FieldRepetitionType(n.Info.Repetition)
	element := format.SchemaElement{
		Type:           &typ,
		RepetitionType: &rt,
		Name:           n.Info.Name,
		ConvertedType:  n.ConvertedType,
		FieldID:        n.Info.FieldID,
		LogicalType:    n.LogicalType,
	}
	if typ == format.FixedLenByteArray {
		length := n.Physical.Length
		element.TypeLength = &length
	}
	*elements = append(*elements, element)
}

// FromThrift rebuilds a schema tree from its depth-first flattened form.
func FromThrift(elements []format.SchemaElement) (*Node, error) {
	if len(elements) == 0 {
		return nil, parquet.NewOutOfSpecError("FromThrift", "schema has no elements")
	}
	root, rest, err := nodeFromThrift(elements, true)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, parquet.NewOutOfSpecError("FromThrift", "trailing schema elements after root")
	}
	return root, nil
}

func nodeFromThrift(elements []format.SchemaElement, isRoot bool) (*Node, []format.SchemaElement, error) {
	if len(elements) == 0 {
		return nil, nil, parquet.NewOutOfSpecError("FromThrift", "unexpected end of schema elements")
	}
	e := elements[0]
	rest := elements[1:]

	repetition := Required
	if e.RepetitionType != nil {
		repetition = Repetition(*e.RepetitionType)
	}

	if e.NumChildren != nil {
		n := &Node{
			Info: Info{
				Name:       e.Name,
				Repetition: repetition,
				FieldID:    e.FieldID,
				IsRoot:     isRoot,
			},
			IsGroup:       true,
			ConvertedType: e.ConvertedType,
			LogicalType:   e.LogicalType,
		}
		for i := int32(0); i < *e.NumChildren; i++ {
			var child *Node
			var err error
			child, rest, err = nodeFromThrift(rest, false)
			if err != nil {
				return nil, nil, err
			}
			n.Fields = append(n.Fields, child)
		}
		return n, rest, nil
	}

	if e.Type == nil {
		return nil, nil, parquet.NewOutOfSpecError("FromThrift", "leaf schema element %q has no type", e.Name)
	}
	physical := PhysicalType{Kind: *e.Type}
	if *e.Type == format.FixedLenByteArray {
		if e.TypeLength == nil {
			return nil, nil, parquet.NewOutOfSpecError("FromThrift", "FIXED_LEN_BYTE_ARRAY element %q has no type_length", e.Name)
		}
		physical.Length = *e.TypeLength
	}
	n := &Node{
		Info: Info{
			Name:       e.Name,
			Repetition: repetition,
			FieldID:    e.FieldID,
			IsRoot:     isRoot,
		},
		IsGroup:       false,
		Physical:      physical,
		ConvertedType: e.ConvertedType,
		LogicalType:   e.LogicalType,
	}
	return n, rest, nil
}

// ColumnDescriptor describes one leaf column: its primitive type, the
// maximum definition/repetition levels needed to reconstruct nesting, and
// its dotted path from the schema root.
type ColumnDescriptor struct {
	Node         *Node
	MaxDefLevel  int16
	MaxRepLevel  int16
	PathInSchema []string
}

// Physical returns the column's physical type.
func (c *ColumnDescriptor) Physical() PhysicalType { return c.Node.Physical }

// Columns walks the tree and returns the ColumnDescriptor for every leaf, in
// depth-first order — the same order as ToThrift/FromThrift.
func Columns(root *Node) []*ColumnDescriptor {
	var out []*ColumnDescriptor
	walkColumns(root, 0, 0, nil, &out)
	return out
}

func walkColumns(n *Node, defLevel, repLevel int16, path []string, out *[]*ColumnDescriptor) {
	if !n.Info.IsRoot {
		path = append(path, n.Info.Name)
		switch n.Info.Repetition {
		case Optional:
			defLevel++
		case Repeated:
			defLevel++
			repLevel++
		}
	}

	if !n.IsGroup {
		pathCopy := make([]string, len(path))
		copy(pathCopy, path)
		*out = append(*out, &ColumnDescriptor{
			Node:         n,
			MaxDefLevel:  defLevel,
			MaxRepLevel:  repLevel,
			PathInSchema: pathCopy,
		})
		return
	}

	for _, field := range n.Fields {
		walkColumns(field, defLevel, repLevel, path, out)
	}
}
