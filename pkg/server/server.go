package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thebyteslayer/sodium/pkg/log"
	"github.com/thebyteslayer/sodium/pkg/metrics"
	"github.com/thebyteslayer/sodium/pkg/pool"
	"github.com/thebyteslayer/sodium/pkg/protocol"
)

// Server accepts TCP connections and pipelines one response line per
// request line. All blocking work runs on the worker pool; the connection
// goroutine only parses, awaits the reply, and writes.
type Server struct {
	listener net.Listener
	pool     *pool.Pool
	logger   zerolog.Logger
}

// New binds the listener. The pool must already be running.
func New(bindAddr string, p *pool.Pool) (*Server, error) {
	listener, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		pool:     p,
		logger:   log.WithComponent("server"),
	}, nil
}

// Addr returns the bound address, useful when binding port 0.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Run accepts connections until ctx is canceled. Accept errors on a live
// listener are logged and the loop continues; no connection error ever
// propagates out to the accept loop.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error().Err(err).Msg("Error accepting TCP connection")
			continue
		}
		go s.handleConn(conn)
	}
}

// handleConn reads LF-terminated lines until EOF, strictly pipelining one
// response per request. A write failure terminates only this connection.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	logger := s.logger.With().
		Str("conn_id", uuid.NewString()).
		Str("remote_addr", conn.RemoteAddr().String()).
		Logger()

	metrics.ConnectionsActive.Inc()
	defer metrics.ConnectionsActive.Dec()

	reader := bufio.NewReader(conn)
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			logger.Error().Err(readErr).Msg("Error reading from TCP stream")
			return
		}

		// A final unterminated line before EOF is still a request.
		request := strings.TrimSpace(line)
		if request != "" {
			response := s.serve(logger, request)
			if _, err := conn.Write([]byte(response + "\n")); err != nil {
				logger.Error().Err(err).Msg("Failed to send response")
				return
			}
		}

		if readErr == io.EOF {
			return
		}
	}
}

// serve parses one request line, dispatches it through the pool, and
// formats the single response line.
func (s *Server) serve(logger zerolog.Logger, request string) string {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.RequestDuration)

	cmd, err := protocol.Parse(request)
	if err != nil {
		logger.Warn().Str("request", request).Msg("Invalid endpoint accessed")
		metrics.RequestsTotal.WithLabelValues("invalid", "error").Inc()
		return "ERROR: Invalid endpoint format"
	}

	logger.Info().Msg(request)

	res, err := s.pool.Dispatch(cmd)
	if err != nil {
		metrics.DispatchFailuresTotal.Inc()
		metrics.RequestsTotal.WithLabelValues(commandName(cmd), "error").Inc()
		return "ERROR: Failed to queue task"
	}
	if res.Err != nil {
		metrics.RequestsTotal.WithLabelValues(commandName(cmd), "error").Inc()
		return "ERROR: " + res.Err.Error()
	}

	metrics.RequestsTotal.WithLabelValues(commandName(cmd), "ok").Inc()
	return formatResponse(cmd, res)
}

// formatResponse renders the response lexicon: OK, NULL, 1/0, the raw
// value, a space-joined list, or (empty).
func formatResponse(cmd protocol.Command, res pool.Result) string {
	switch cmd.(type) {
	case protocol.Set:
		return "OK"
	case protocol.Get:
		if !res.Found {
			return "NULL"
		}
		return res.Value
	case protocol.Delete:
		if res.Existed {
			return "1"
		}
		return "0"
	case protocol.Keys, protocol.Search:
		if len(res.Keys) == 0 {
			return "(empty)"
		}
		return strings.Join(res.Keys, " ")
	default:
		return "ERROR: Invalid endpoint format"
	}
}

func commandName(cmd protocol.Command) string {
	switch cmd.(type) {
	case protocol.Set:
		return "set"
	case protocol.Get:
		return "get"
	case protocol.Delete:
		return "delete"
	case protocol.Keys:
		return "keys"
	case protocol.Search:
		return "search"
	default:
		return "unknown"
	}
}
