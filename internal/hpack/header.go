package hpack

// HeaderField is one (name, value) pair. NeverIndexed marks a sensitive
// field that intermediaries must not cache or re-transmit in indexed form.
type HeaderField struct {
	Name         string
	Value        string
	NeverIndexed bool
}

func NewHeaderField(name string, value string, neverIndexed bool) HeaderField {
	return HeaderField{
		Name:         name,
		Value:        value,
		NeverIndexed: neverIndexed,
	}
}

// Size returns the octets the field occupies in a table, as defined by
// RFC 7541 section 4.1: name length + value length + 32 bytes of overhead.
func (h HeaderField) Size() int {
	return len(h.Name) + len(h.Value) + 32
}

const STATIC_TABLE_SIZE = 61

// staticTable holds the 61 predefined entries of RFC 7541 Appendix A at
// combined indices 0..60. It is shared by every Context and never mutated.
// Generated with tools/staticTable from the RFC listing.
var staticTable = [STATIC_TABLE_SIZE]HeaderField{
	{Name: ":authority"},
	{Name: ":method", Value: "GET"},
	{Name: ":method", Value: "POST"},
	{Name: ":path", Value: "/"},
	{Name: ":path", Value: "/index.html"},
	{Name: ":scheme", Value: "http"},
	{Name: ":scheme", Value: "https"},
	{Name: ":status", Value: "200"},
	{Name: ":status", Value: "204"},
	{Name: ":status", Value: "206"},
	{Name: ":status", Value: "304"},
	{Name: ":status", Value: "400"},
	{Name: ":status", Value: "404"},
	{Name: ":status", Value: "500"},
	{Name: "accept-charset"},
	{Name: "accept-encoding", Value: "gzip, deflate"},
	{Name: "accept-language"},
	{Name: "accept-ranges"},
	{Name: "accept"},
	{Name: "access-control-allow-origin"},
	{Name: "age"},
	{Name: "allow"},
	{Name: "authorization"},
	{Name: "cache-control"},
	{Name: "content-disposition"},
	{Name: "content-encoding"},
	{Name: "content-language"},
	{Name: "content-length"},
	{Name: "content-location"},
	{Name: "content-range"},
	{Name: "content-type"},
	{Name: "cookie"},
	{Name: "date"},
	{Name: "etag"},
	{Name: "expect"},
	{Name: "expires"},
	{Name: "from"},
	{Name: "host"},
	{Name: "if-match"},
	{Name: "if-modified-since"},
	{Name: "if-none-match"},
	{Name: "if-range"},
	{Name: "if-unmodified-since"},
	{Name: "last-modified"},
	{Name: "link"},
	{Name: "location"},
	{Name: "max-forwards"},
	{Name: "proxy-authenticate"},
	{Name: "proxy-authorization"},
	{Name: "range"},
	{Name: "referer"},
	{Name: "refresh"},
	{Name: "retry-after"},
	{Name: "server"},
	{Name: "set-cookie"},
	{Name: "strict-transport-security"},
	{Name: "transfer-encoding"},
	{Name: "user-agent"},
	{Name: "vary"},
	{Name: "via"},
	{Name: "www-authenticate"},
}
