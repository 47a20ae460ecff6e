package server

import (
	"bytes"
	"testing"

	"github.com/bastiangx/nameserve/pkg/config"
	"github.com/bastiangx/nameserve/pkg/nametrie"
	"github.com/vmihailenco/msgpack/v5"
)

func testIndex(t *testing.T) *nametrie.Trie {
	t.Helper()
	trie := nametrie.New()
	trie.Insert("sam", "f", 0.00276)
	trie.Insert("sam", "m", 0.00051)
	trie.Insert("samuel", "m", 0.00270)
	return trie
}

// run feeds the encoded requests through a server and returns a decoder over
// everything it wrote.
func run(t *testing.T, requests ...Request) *msgpack.Decoder {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, request := range requests {
		if err := enc.Encode(request); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}

	var out bytes.Buffer
	srv := newServer(testIndex(t), config.DefaultConfig(), &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil {
		t.Fatalf("decoding ready frame: %v", err)
	}
	if ready.Status != "ready" {
		t.Fatalf("first frame status = %q, want ready", ready.Status)
	}
	return dec
}

func TestSearchOp(t *testing.T) {
	dec := run(t,
		Request{ID: "1", Op: "search", Key: "sam"},
		Request{ID: "2", Op: "search", Key: "samu"},
	)

	var hit SearchResponse
	if err := dec.Decode(&hit); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if !hit.Found || hit.Weights["f"] != 0.00276 || hit.Weights["m"] != 0.00051 {
		t.Errorf("search(sam) = %+v, want found with f:0.00276 m:0.00051", hit)
	}

	var miss SearchResponse
	if err := dec.Decode(&miss); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	// A pure path prefix answers not-found, same as a name never stored.
	if miss.Found || len(miss.Weights) != 0 {
		t.Errorf("search(samu) = %+v, want not found", miss)
	}
}

func TestCompleteOp(t *testing.T) {
	dec := run(t, Request{ID: "1", Op: "complete", Key: "sam", Limit: 24})

	var response CompleteResponse
	if err := dec.Decode(&response); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if response.Count != 1 || len(response.Entries) != 1 {
		t.Fatalf("complete(sam) = %+v, want exactly the samuel line", response)
	}
	if response.Entries[0] != "samuel              (m:0.0027)" {
		t.Errorf("entry = %q", response.Entries[0])
	}
}

func TestCompleteLimit(t *testing.T) {
	dec := run(t, Request{ID: "1", Op: "complete", Key: "s", Limit: 1})

	var response CompleteResponse
	if err := dec.Decode(&response); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if response.Count != 1 {
		t.Errorf("limit 1 returned %d entries", response.Count)
	}
}

func TestBadRequests(t *testing.T) {
	dec := run(t,
		Request{ID: "1", Op: "resolve", Key: "sam"},
		Request{ID: "2", Op: "search", Key: ""},
		Request{ID: "3", Op: "search", Key: "sam123"},
	)

	for _, id := range []string{"1", "2", "3"} {
		var failure ErrorResponse
		if err := dec.Decode(&failure); err != nil {
			t.Fatalf("decoding error frame %s: %v", id, err)
		}
		if failure.ID != id || failure.Code != 400 {
			t.Errorf("frame = %+v, want id %s code 400", failure, id)
		}
	}
}

func TestHealthOp(t *testing.T) {
	dec := run(t, Request{ID: "1", Op: "health"})

	var status StatusResponse
	if err := dec.Decode(&status); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("health = %+v, want ok", status)
	}
}
