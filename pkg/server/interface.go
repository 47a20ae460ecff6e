/*
Package server implements msgpack IPC for name index queries.

The server provides a minimal interface for exact-name lookup and prefix
enumeration using msgpack serialization over stdin/stdout.

# IPC

The server operates on a request response model where clients send
structured messages via stdin and receive responses through stdout.
Each message contains an ID field, an op selector, and a key when the
operation needs one.

An exact lookup:

	{"id": "req_001", "op": "search", "k": "sam"}

responds with the per-category weights when the name is a complete entry:

	{"id": "req_001", "f": true, "w": {"f": 0.00276, "m": 0.00051}, "t": 12}

A name present only as a prefix of longer names answers exactly like a name
never stored: found=false. The index cannot tell those two apart.

A prefix enumeration:

	{"id": "req_002", "op": "complete", "k": "sam", "l": 24}

responds with pre-formatted display lines, one per stored name strictly
longer than the queried prefix, in lexicographic order:

	{"id": "req_002", "e": ["samuel              (m:0.0027)"], "c": 1, "t": 40}

Unknown ops and out-of-bounds keys produce an error frame with a code,
never a crash. Timings are microseconds.
*/
package server

// Request is the envelope for every incoming message
type Request struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"` // "search", "complete", "health"
	Key   string `msgpack:"k,omitempty"`
	Limit int    `msgpack:"l,omitempty"`
}

// SearchResponse answers an exact-name lookup
type SearchResponse struct {
	ID        string             `msgpack:"id"`
	Found     bool               `msgpack:"f"`
	Weights   map[string]float64 `msgpack:"w,omitempty"`
	TimeTaken int64              `msgpack:"t"`
}

// CompleteResponse answers a prefix enumeration
type CompleteResponse struct {
	ID        string   `msgpack:"id"`
	Entries   []string `msgpack:"e"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// StatusResponse signals readiness and health
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
