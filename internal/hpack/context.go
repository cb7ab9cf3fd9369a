package hpack

// IndexingPolicy governs whether encoding may reference and populate the
// dynamic and static tables.
type IndexingPolicy string

const (
	IndexAll    IndexingPolicy = "all"
	IndexStatic IndexingPolicy = "static"
	IndexNever  IndexingPolicy = "never"
)

// HuffmanPolicy governs how string literals are written on the wire.
type HuffmanPolicy string

const (
	HuffmanAlways  HuffmanPolicy = "always"
	HuffmanNever   HuffmanPolicy = "never"
	HuffmanShorter HuffmanPolicy = "shorter"
)

const DefaultMaxTableSize = 4096

// Options configures one connection direction of the codec.
type Options struct {
	TableSize int
	Indexing  IndexingPolicy
	Huffman   HuffmanPolicy
}

func (o *Options) applyDefaults() {
	if o.TableSize == 0 {
		o.TableSize = DefaultMaxTableSize
	}
	if o.Indexing == "" {
		o.Indexing = IndexAll
	}
	if o.Huffman == "" {
		o.Huffman = HuffmanShorter
	}
}

// Context owns one direction's dynamic table and interprets commands
// semantically. It is the only component with persistent mutable state and
// must not be shared between goroutines without external locking.
type Context struct {
	dynamic []HeaderField // most recently inserted first
	size    int           // current octet size of the dynamic table
	limit   int           // maximum octet size of the dynamic table
	options Options
}

func NewContext(options Options) *Context {
	options.applyDefaults()
	return &Context{
		limit:   options.TableSize,
		options: options,
	}
}

// Dup returns a snapshot independent of further mutation. The dynamic table
// is deep-copied; the static table stays shared.
func (c *Context) Dup() *Context {
	dup := *c
	dup.dynamic = make([]HeaderField, len(c.dynamic))
	copy(dup.dynamic, c.dynamic)
	return &dup
}

// Options returns the configuration the Context was created with.
func (c *Context) Options() Options {
	return c.options
}

// Size returns the dynamic table's current octet size.
func (c *Context) Size() int {
	return c.size
}

// Len returns the number of dynamic table entries.
func (c *Context) Len() int {
	return len(c.dynamic)
}

// Limit returns the dynamic table's maximum octet size.
func (c *Context) Limit() int {
	return c.limit
}

// DynamicEntries returns a copy of the dynamic table, most recent first.
func (c *Context) DynamicEntries() []HeaderField {
	entries := make([]HeaderField, len(c.dynamic))
	copy(entries, c.dynamic)
	return entries
}

// Dereference resolves a combined 0-based index: 0..60 hit the static table,
// anything above resolves into the dynamic table at index-61.
func (c *Context) Dereference(index int) (HeaderField, error) {
	if index < 0 {
		return HeaderField{}, compressionError("index %d out of table bounds", index)
	}
	if index < STATIC_TABLE_SIZE {
		return staticTable[index], nil
	}
	dynIndex := index - STATIC_TABLE_SIZE
	if dynIndex >= len(c.dynamic) {
		return HeaderField{}, compressionError("index %d out of table bounds", index)
	}
	return c.dynamic[dynIndex], nil
}

// Decode interprets one command, returning the emitted header field or nil
// when the command emits nothing (table size change). Incremental literals
// mutate the dynamic table; no other representation does.
func (c *Context) Decode(cmd Command) (*HeaderField, error) {
	switch cmd := cmd.(type) {
	case Indexed:
		emitted, err := c.Dereference(cmd.Index)
		if err != nil {
			return nil, err
		}
		return &emitted, nil

	case Literal:
		name := cmd.Name
		if cmd.NameIndex >= 0 {
			ref, err := c.Dereference(cmd.NameIndex)
			if err != nil {
				return nil, err
			}
			name = ref.Name
		}

		emitted := HeaderField{Name: name, Value: cmd.Value}
		switch cmd.Mode {
		case Incremental:
			c.add(HeaderField{Name: name, Value: cmd.Value})
		case NoIndex:
			// table stays untouched
		case NeverIndexed:
			emitted.NeverIndexed = true
		default:
			return nil, compressionError("invalid indexing mode %d", cmd.Mode)
		}
		return &emitted, nil

	case ChangeTableSize:
		c.SetTableSize(cmd.Size)
		return nil, nil

	default:
		return nil, compressionError("invalid command type %T", cmd)
	}
}

// Encode turns a header list into the command sequence the peer must decode.
// Every command is immediately fed back through Decode on this same Context,
// so the sender's table mirrors the one the receiver will build. Without the
// mirroring both tables diverge after the first incremental insertion.
func (c *Context) Encode(headers []HeaderField) ([]Command, error) {
	commands := make([]Command, 0, len(headers))

	for _, h := range headers {
		cmd := c.AddCommand(h)
		if _, err := c.Decode(cmd); err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}

	return commands, nil
}

// AddCommand picks the representation for one header field. The static table
// is scanned first (an exact match short-circuits, the first name-only match
// is remembered); the dynamic table is scanned only under the "all" policy
// and only while no exact match was found. A name-only match found in the
// static scan is never displaced by a later dynamic one.
func (c *Context) AddCommand(h HeaderField) Command {
	if h.NeverIndexed {
		return c.neverIndexedCommand(h)
	}

	exact := -1
	nameOnly := -1

	if c.options.Indexing == IndexAll || c.options.Indexing == IndexStatic {
		for i := range staticTable {
			if staticTable[i].Name != h.Name {
				continue
			}
			if staticTable[i].Value == h.Value {
				exact = i
				break
			}
			if nameOnly == -1 {
				nameOnly = i
			}
		}
	}

	if c.options.Indexing == IndexAll && exact == -1 {
		for i := range c.dynamic {
			if c.dynamic[i].Name != h.Name {
				continue
			}
			if c.dynamic[i].Value == h.Value {
				exact = STATIC_TABLE_SIZE + i
				break
			}
			if nameOnly == -1 {
				nameOnly = STATIC_TABLE_SIZE + i
			}
		}
	}

	if exact >= 0 {
		return Indexed{Index: exact}
	}

	var cmd Literal
	if nameOnly >= 0 {
		cmd = LiteralIndexedName(Incremental, nameOnly, h.Value)
	} else {
		cmd = LiteralName(Incremental, h.Name, h.Value)
	}

	// Restricted policies keep the name/value encoding chosen above but must
	// never populate the dynamic table.
	if c.options.Indexing != IndexAll {
		cmd.Mode = NoIndex
	}
	return cmd
}

// neverIndexedCommand skips value matching entirely; a sensitive value must
// not end up referenced through any table. Name-only reuse is still allowed.
func (c *Context) neverIndexedCommand(h HeaderField) Command {
	if c.options.Indexing != IndexNever {
		for i := range staticTable {
			if staticTable[i].Name == h.Name {
				return LiteralIndexedName(NeverIndexed, i, h.Value)
			}
		}
	}
	return LiteralName(NeverIndexed, h.Name, h.Value)
}

// SetTableSize updates the maximum dynamic table size and evicts from the
// tail until the invariant holds again. A local configuration change and a
// peer-sent ChangeTableSize go through this same path.
func (c *Context) SetTableSize(size int) {
	c.limit = size
	c.makeRoom(0)
}

// add inserts a field at the front of the dynamic table. A field larger than
// the whole table empties it and is not cached; the header was still emitted
// to the caller.
func (c *Context) add(h HeaderField) {
	if !c.makeRoom(h.Size()) {
		return
	}

	c.dynamic = append(c.dynamic, HeaderField{})
	copy(c.dynamic[1:], c.dynamic)
	c.dynamic[0] = h
	c.size += h.Size()
}

// makeRoom evicts oldest entries until needed octets fit, reporting whether
// they ever can.
func (c *Context) makeRoom(needed int) bool {
	for c.size+needed > c.limit && len(c.dynamic) > 0 {
		last := len(c.dynamic) - 1
		c.size -= c.dynamic[last].Size()
		c.dynamic = c.dynamic[:last]
	}
	return c.size+needed <= c.limit
}
