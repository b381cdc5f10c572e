package bar

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joshuarubin/go-sway"
)

// DefaultMaxLength is used when the output width cannot be read
const DefaultMaxLength = 10000.0

const swayTimeout = 2 * time.Second

// MaxLength returns the width that pushes every hidden item off screen.
// A configured value wins; otherwise sway is asked for the output width.
func MaxLength(configured int, output string) float64 {
	if configured > 0 {
		return float64(configured)
	}

	ctx, cancel := context.WithTimeout(context.Background(), swayTimeout)
	defer cancel()

	width, err := outputWidth(ctx, output)
	if err != nil {
		log.Printf("[BAR] Failed to read output width, using %g: %v", DefaultMaxLength, err)
		return DefaultMaxLength
	}
	return width
}

func outputWidth(ctx context.Context, output string) (float64, error) {
	client, err := sway.New(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to sway: %w", err)
	}

	outputs, err := client.GetOutputs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get outputs: %w", err)
	}

	width := widestOutput(outputs, output)
	if width <= 0 {
		return 0, fmt.Errorf("no active output")
	}
	return width, nil
}

// widestOutput returns the width of the named output, or of the widest
// active output when name is empty or not found.
func widestOutput(outputs []sway.Output, name string) float64 {
	var widest int64
	for _, o := range outputs {
		if !o.Active {
			continue
		}
		if name != "" && o.Name == name {
			return float64(o.Rect.Width)
		}
		if o.Rect.Width > widest {
			widest = o.Rect.Width
		}
	}
	return float64(widest)
}
