package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/nameserve/internal/utils"
	"github.com/bastiangx/nameserve/pkg/config"
	"github.com/bastiangx/nameserve/pkg/nametrie"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for name index queries
type Server struct {
	index nametrie.Index
	cfg   *config.Config
	dec   *msgpack.Decoder
	enc   *msgpack.Encoder
}

// NewServer creates a new query server using stdin/stdout for IPC
func NewServer(index nametrie.Index, cfg *config.Config) *Server {
	return newServer(index, cfg, os.Stdin, os.Stdout)
}

func newServer(index nametrie.Index, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		index: index,
		cfg:   cfg,
		dec:   msgpack.NewDecoder(r),
		enc:   msgpack.NewEncoder(w),
	}
}

// Start begins decoding requests until the input stream closes
func (s *Server) Start() error {
	log.Debug("Starting server.")

	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches on the op selector
func (s *Server) handleRequest(request Request) {
	switch request.Op {
	case "search":
		s.handleSearch(request)
	case "complete":
		s.handleComplete(request)
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown op: %s", request.Op), 400)
	}
}

// handleSearch answers an exact-name lookup
func (s *Server) handleSearch(request Request) {
	if !s.validKey(request) {
		return
	}

	start := time.Now()
	weights, found := s.index.Search(request.Key)
	elapsed := time.Since(start)

	s.send(SearchResponse{
		ID:        request.ID,
		Found:     found,
		Weights:   weights,
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleComplete answers a prefix enumeration, truncated to the limit
func (s *Server) handleComplete(request Request) {
	if !s.validKey(request) {
		return
	}

	limit := request.Limit
	if limit < 1 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	entries := s.index.EnumeratePrefix(request.Key)
	elapsed := time.Since(start)

	if len(entries) > limit {
		entries = entries[:limit]
	}

	s.send(CompleteResponse{
		ID:        request.ID,
		Entries:   entries,
		Count:     len(entries),
		TimeTaken: elapsed.Microseconds(),
	})
}

// validKey enforces the configured key bounds and the name-shape filter,
// sending the error frame itself when the key is rejected.
func (s *Server) validKey(request Request) bool {
	key := request.Key
	if len(key) < s.cfg.Server.MinPrefix {
		s.sendError(request.ID, fmt.Sprintf("Key shorter than %d characters", s.cfg.Server.MinPrefix), 400)
		log.Debug("Key too short in request", "id", request.ID)
		return false
	}
	if len(key) > s.cfg.Server.MaxPrefix {
		s.sendError(request.ID, fmt.Sprintf("Key exceeds maximum length of %d characters", s.cfg.Server.MaxPrefix), 400)
		log.Debug("Key too long in request", "id", request.ID)
		return false
	}
	if s.cfg.Server.EnableFilter && !utils.IsValidName(key) {
		s.sendError(request.ID, "Key is not name-shaped", 400)
		log.Debug("Key rejected by filter", "id", request.ID, "key", key)
		return false
	}
	return true
}

// send encodes one response frame onto the output stream
func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error frame
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
