package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/chess10kp/veil/internal/app"
	"github.com/chess10kp/veil/internal/config"
)

const pidFile = "/tmp/veil.pid"

// ensureSingleInstance replaces a running daemon with this one
func ensureSingleInstance() error {
	if data, err := os.ReadFile(pidFile); err == nil {
		if pid, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil && pid != os.Getpid() {
			if process, err := os.FindProcess(pid); err == nil {
				if err := process.Signal(syscall.Signal(0)); err == nil {
					log.Printf("Stopping previous instance (pid %d)", pid)
					process.Signal(syscall.SIGTERM)
				}
			}
		}
	}
	return os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func cleanup() {
	os.Remove(pidFile)
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func main() {
	configPath := config.DefaultPath
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-h", "--help", "help":
			fmt.Println("Usage: veil [config path]")
			return
		default:
			configPath = os.Args[1]
		}
	}

	cfg, err := config.LoadAndValidateConfig(configPath)
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.Defaults()
	}

	logFile, err := openLog(cfg.LogPath)
	if err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	} else {
		log.Printf("Failed to open log file %s: %v", cfg.LogPath, err)
	}

	if err := ensureSingleInstance(); err != nil {
		log.Fatalf("Failed to ensure single instance: %v", err)
	}
	defer cleanup()

	a, err := app.NewApp(cfg, configPath)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
