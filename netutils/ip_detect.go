package netutils

import (
	"net"
)

// GuessLocalIP finds the outbound interface address, falling back on
// loopback when the host has no route at all.
func GuessLocalIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1", nil
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}
