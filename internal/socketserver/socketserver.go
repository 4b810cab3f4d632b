// Package socketserver implements the two always-on local socket listeners
// (§4.10): a TCP listener accepting newline-framed connections and a UDP
// listener accepting single-datagram payloads, both injecting externally
// produced result payloads into a handler.
package socketserver

import (
	"bufio"
	"net"

	"github.com/google/uuid"

	"github.com/relaymon/agent/pkg/log"
)

// PayloadHandler receives one externally-submitted result payload.
type PayloadHandler func(payload []byte)

// Server owns the TCP acceptor and UDP connection. TCPCloser and UDPCloser
// return their close functions; the agent's socket ledger holds those two
// functions so stop can drain acceptor and connection handles uniformly.
type Server struct {
	tcp net.Listener
	udp net.PacketConn
}

// Listen binds both a TCP listener and a UDP connection to addr
// ("host:port") and starts accepting traffic in the background, delivering
// every payload to handle. Bind failures are fatal to the caller (§4.1
// start: "Errors binding sockets are fatal").
func Listen(addr string, handle PayloadHandler) (*Server, error) {
	tcpLn, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	udpConn, err := net.ListenPacket("udp", addr)
	if err != nil {
		tcpLn.Close()
		return nil, err
	}

	s := &Server{tcp: tcpLn, udp: udpConn}
	go s.acceptTCP(handle)
	go s.readUDP(handle)
	return s, nil
}

func (s *Server) acceptTCP(handle PayloadHandler) {
	for {
		conn, err := s.tcp.Accept()
		if err != nil {
			return // listener closed
		}
		go s.handleConn(conn, handle)
	}
}

func (s *Server) handleConn(conn net.Conn, handle PayloadHandler) {
	defer conn.Close()
	connID := uuid.NewString()
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		payload := make([]byte, len(line))
		copy(payload, line)
		handle(payload)
	}
	if err := scanner.Err(); err != nil {
		log.Warnf("socketserver: tcp connection %s: %v", connID, err)
	}
}

func (s *Server) readUDP(handle PayloadHandler) {
	buf := make([]byte, 64*1024)
	for {
		n, _, err := s.udp.ReadFrom(buf)
		if err != nil {
			return // connection closed
		}
		payload := make([]byte, n)
		copy(payload, buf[:n])
		handle(payload)
	}
}

// TCPCloser returns the acceptor handle (stop-server semantics).
func (s *Server) TCPCloser() func() error { return s.tcp.Close }

// UDPCloser returns the connection handle (close-connection semantics).
func (s *Server) UDPCloser() func() error { return s.udp.Close }
