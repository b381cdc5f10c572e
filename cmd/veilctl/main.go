package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chess10kp/veil/internal/config"
	"github.com/chess10kp/veil/internal/ipc"
)

func socketPath() string {
	if path := os.Getenv("VEIL_SOCKET"); path != "" {
		return path
	}
	cfg, err := config.LoadConfig(config.DefaultPath)
	if err == nil && cfg.SocketPath != "" {
		return cfg.SocketPath
	}
	return config.DefaultConfig.SocketPath
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := strings.Join(os.Args[1:], " ")
	switch command {
	case "help", "-h", "--help":
		printUsage()
		return
	}

	reply, err := ipc.Send(socketPath(), command)
	if err != nil {
		fmt.Fprintf(os.Stderr, "veilctl: %v\n", err)
		os.Exit(1)
	}
	if reply != "" {
		fmt.Println(reply)
	}
}

func printUsage() {
	fmt.Println("veilctl - Control veil from the command line")
	fmt.Println()
	fmt.Println("Usage: veilctl <command>")
	fmt.Println()
	fmt.Println("Commands:")
	for _, c := range ipc.Usage {
		fmt.Printf("  %s\n", c)
	}
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  veilctl toggle        # Fold or unfold the hidden items (bind to a key)")
	fmt.Println("  veilctl idle hide     # Show hidden items until the idle timeout")
	fmt.Println("  veilctl status        # Print the controller state as JSON")
	fmt.Println()
	fmt.Println("The socket path comes from $VEIL_SOCKET or socket_path in the config.")
}
