package bar

import (
	"log"
	"os"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

const defaultStyles = `
* {
    font-family: "Iosevka", monospace;
    font-size: 14px;
    font-weight: bold;
    margin: 0;
    padding: 0;
}

window#veil {
    background-color: #0e1419;
    border-bottom: 1px solid #444444;
}

label.item {
    color: #ebdbb2;
    padding: 0 8px;
}

image.separator {
    color: #888888;
}

image.separator.head {
    color: #ebdbb2;
}

image.separator.disabled {
    color: #504945;
}

image.separator.pulse-generic {
    color: #89b4fa;
}

image.separator.pulse-alignment {
    color: #50fa7b;
}

image.separator.pulse-level-change {
    color: #fabd2f;
}

popover label {
    color: #ebdbb2;
    padding: 8px;
}
`

// SetupStyles installs the built-in styles on the default screen
func SetupStyles() {
	addProvider(defaultStyles, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
}

// LoadCustomCSS layers a user stylesheet over the built-in one
func LoadCustomCSS(path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[BAR] Failed to read css %s: %v", path, err)
		return
	}
	addProvider(string(data), gtk.STYLE_PROVIDER_PRIORITY_USER)
}

func addProvider(css string, priority uint) {
	screen, err := gdk.ScreenGetDefault()
	if err != nil || screen == nil {
		log.Printf("[BAR] Warning: Failed to get default screen: %v", err)
		return
	}

	provider, err := gtk.CssProviderNew()
	if err != nil {
		log.Printf("[BAR] Warning: Failed to create css provider: %v", err)
		return
	}
	if err := provider.LoadFromData(css); err != nil {
		log.Printf("[BAR] Warning: Failed to load styles: %v", err)
		return
	}

	gtk.AddProviderForScreen(screen, provider, priority)
}
