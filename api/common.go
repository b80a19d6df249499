package api

import (
	"fmt"
	"net"
	"time"
)

// Service is the address of a peer service.
type Service struct {
	Address string
	Port    string
}

func (s *Service) Target() string {
	return net.JoinHostPort(s.Address, s.Port)
}

// ServiceReachable checks that something accepts TCP connections on the
// service address.
func (s *Service) ServiceReachable() error {
	conn, err := net.DialTimeout("tcp", s.Target(), 2*time.Second)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.Target(), err)
	}
	return conn.Close()
}
