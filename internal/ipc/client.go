package ipc

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"
)

// DialTimeout bounds a whole request round trip
const DialTimeout = 2 * time.Second

// Send writes one command to the socket at path and returns the reply.
// An "error: ..." reply is returned as an error.
func Send(path, command string) (string, error) {
	conn, err := net.DialTimeout("unix", path, DialTimeout)
	if err != nil {
		return "", fmt.Errorf("failed to connect to veil socket: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(DialTimeout)); err != nil {
		return "", err
	}

	if _, err := fmt.Fprintln(conn, command); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read reply: %w", err)
	}
	reply = strings.TrimSpace(reply)

	if msg, ok := strings.CutPrefix(reply, "error: "); ok {
		return "", fmt.Errorf("%s", msg)
	}
	return strings.TrimSpace(strings.TrimPrefix(reply, "ok")), nil
}
