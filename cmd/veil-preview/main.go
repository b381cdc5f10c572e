package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chess10kp/veil/internal/config"
	"github.com/chess10kp/veil/internal/preview"
	"github.com/chess10kp/veil/internal/zone"
)

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath, "Path to configuration file")
		expanded   = flag.Bool("expanded", false, "Start with hidden items shown")
		width      = flag.Int("width", 1280, "Simulated bar width in pixels before the terminal reports its size")
	)
	flag.Parse()

	cfg, err := config.LoadAndValidateConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "veil-preview: %v\n", err)
		os.Exit(1)
	}

	settings, err := cfg.Settings(!*expanded)
	if err != nil {
		fmt.Fprintf(os.Stderr, "veil-preview: %v\n", err)
		os.Exit(1)
	}

	model := preview.NewModel(settings, zone.Identity(), float64(*width))
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "veil-preview: %v\n", err)
		os.Exit(1)
	}
}
