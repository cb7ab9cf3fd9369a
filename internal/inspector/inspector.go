// Package inspector exposes the codec over HTTP for debugging header blocks
// captured from real connections. One inspector instance models one
// connection: a decode direction and an encode direction whose dynamic
// tables evolve across requests, the way they would on a live peer.
package inspector

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"hpackCodec/internal/helper"
	"hpackCodec/internal/hpack"
	"hpackCodec/internal/logging"
)

type Inspector struct {
	// guards both directions; HPACK state must be applied strictly in order
	mutex sync.Mutex

	options      hpack.Options
	compressor   *hpack.Compressor
	decompressor *hpack.Decompressor
	logger       logging.Logger
}

func New(options hpack.Options, logger logging.Logger) *Inspector {
	return &Inspector{
		options:      options,
		compressor:   hpack.NewCompressor(options),
		decompressor: hpack.NewDecompressor(options),
		logger:       logger,
	}
}

type headerJSON struct {
	Name         string `json:"name"`
	Value        string `json:"value"`
	NeverIndexed bool   `json:"never_indexed,omitempty"`
}

type tableJSON struct {
	Size    int          `json:"size"`
	Limit   int          `json:"limit"`
	Entries []headerJSON `json:"entries"`
}

type decodeResponse struct {
	Headers []headerJSON `json:"headers"`
	Table   tableJSON    `json:"table"`
}

type encodeResponse struct {
	Block string    `json:"block"`
	Table tableJSON `json:"table"`
}

func (ins *Inspector) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/decode", ins.handleDecode)
	r.Post("/encode", ins.handleEncode)
	r.Get("/table", ins.handleTable)
	r.Post("/reset", ins.handleReset)
	return r
}

// Start blocks serving the inspector API on the given port.
func (ins *Inspector) Start(port int) error {
	ins.logger.Log(logging.LogLevelInfo, "inspector listening on :%d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), ins.Router())
}

// handleDecode accepts a hex-dumped header block and replies with the
// decoded header list plus the decoder's table state.
func (ins *Inspector) handleDecode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	block, err := helper.ParseHexBlock(string(body))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ins.mutex.Lock()
	headers, err := ins.decompressor.Decode(block)
	table := ins.decompressor.Context()
	response := decodeResponse{
		Headers: toHeaderJSON(headers),
		Table:   toTableJSON(table),
	}
	ins.mutex.Unlock()

	if err != nil {
		ins.logger.Log(logging.LogLevelWarn, "decode of %d octets failed: %v", len(block), err)
		status := http.StatusInternalServerError
		if errors.Is(err, hpack.ErrProtocol) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}

	ins.logger.Log(logging.LogLevelDebug, "decoded %d octets into %d headers", len(block), len(headers))
	writeJSON(w, response)
}

// handleEncode accepts "name: value" lines and replies with the compressed
// block in hex plus the encoder's table state.
func (ins *Inspector) handleEncode(w http.ResponseWriter, r *http.Request) {
	headers, err := helper.ReadHeaderList(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ins.mutex.Lock()
	block, err := ins.compressor.Encode(headers)
	response := encodeResponse{
		Block: hex.EncodeToString(block),
		Table: toTableJSON(ins.compressor.Context()),
	}
	ins.mutex.Unlock()

	if err != nil {
		ins.logger.Log(logging.LogLevelWarn, "encode of %d headers failed: %v", len(headers), err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	ins.logger.Log(logging.LogLevelDebug, "encoded %d headers into %d octets", len(headers), len(block))
	writeJSON(w, response)
}

// handleTable dumps both directions' dynamic tables.
func (ins *Inspector) handleTable(w http.ResponseWriter, r *http.Request) {
	ins.mutex.Lock()
	response := map[string]tableJSON{
		"decoder": toTableJSON(ins.decompressor.Context()),
		"encoder": toTableJSON(ins.compressor.Context()),
	}
	ins.mutex.Unlock()

	writeJSON(w, response)
}

// handleReset drops all table state, as if the connection restarted.
func (ins *Inspector) handleReset(w http.ResponseWriter, r *http.Request) {
	ins.mutex.Lock()
	ins.compressor = hpack.NewCompressor(ins.options)
	ins.decompressor = hpack.NewDecompressor(ins.options)
	ins.mutex.Unlock()

	ins.logger.Log(logging.LogLevelInfo, "codec state reset")
	w.WriteHeader(http.StatusNoContent)
}

func toHeaderJSON(headers []hpack.HeaderField) []headerJSON {
	out := make([]headerJSON, 0, len(headers))
	for _, h := range headers {
		out = append(out, headerJSON{Name: h.Name, Value: h.Value, NeverIndexed: h.NeverIndexed})
	}
	return out
}

func toTableJSON(ctx *hpack.Context) tableJSON {
	return tableJSON{
		Size:    ctx.Size(),
		Limit:   ctx.Limit(),
		Entries: toHeaderJSON(ctx.DynamicEntries()),
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	// an encode failure here means the client went away mid-write
	_ = encoder.Encode(v)
}
