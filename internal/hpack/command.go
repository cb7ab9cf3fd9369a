package hpack

// IndexingMode selects the literal representation on the wire.
type IndexingMode int

const (
	// NoIndex emits the field without touching the dynamic table.
	NoIndex IndexingMode = iota
	// Incremental emits the field and inserts it into the dynamic table.
	Incremental
	// NeverIndexed emits the field and forbids any downstream re-indexing.
	NeverIndexed
)

func (m IndexingMode) String() string {
	switch m {
	case NoIndex:
		return "no-index"
	case Incremental:
		return "incremental"
	case NeverIndexed:
		return "never-indexed"
	default:
		return "unknown"
	}
}

// Command is the unit exchanged between Context and Compressor/Decompressor.
// Exactly one concrete type exists per wire representation.
type Command interface {
	isCommand()
}

// Indexed references a full (name, value) entry by combined index.
// Indices are 0-based here; the wire carries index+1.
type Indexed struct {
	Index int
}

// Literal carries a field whose value travels as a literal string. The name
// is either a combined-index reference (NameIndex >= 0) or the literal Name
// string (NameIndex == -1).
type Literal struct {
	Mode      IndexingMode
	NameIndex int
	Name      string
	Value     string
}

// LiteralName builds a Literal whose name travels as a literal string.
func LiteralName(mode IndexingMode, name string, value string) Literal {
	return Literal{Mode: mode, NameIndex: -1, Name: name, Value: value}
}

// LiteralIndexedName builds a Literal whose name references a table entry.
func LiteralIndexedName(mode IndexingMode, nameIndex int, value string) Literal {
	return Literal{Mode: mode, NameIndex: nameIndex, Value: value}
}

// ChangeTableSize announces a new maximum dynamic-table size.
type ChangeTableSize struct {
	Size int
}

func (Indexed) isCommand()         {}
func (Literal) isCommand()         {}
func (ChangeTableSize) isCommand() {}
