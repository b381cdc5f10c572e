package bar

import (
	"fmt"
	"log"
	"time"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
	lru "github.com/hashicorp/golang-lru/v2"
)

// FallbackGlyph is loaded when a theme names an icon the icon theme lacks
const FallbackGlyph = "image-missing"

// GlyphCache keeps separator pixbufs keyed by icon name and size.
// It is only used from the GTK main loop.
type GlyphCache struct {
	cache    *lru.Cache[string, *gdk.Pixbuf]
	theme    *gtk.IconTheme
	fallback string
	hits     int
	misses   int
}

// NewGlyphCache creates a cache holding at most size pixbufs
func NewGlyphCache(size int) (*GlyphCache, error) {
	if size <= 0 {
		size = 32
	}

	cache, err := lru.New[string, *gdk.Pixbuf](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create glyph cache: %w", err)
	}

	iconTheme, err := gtk.IconThemeGetDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to get default icon theme: %w", err)
	}

	return &GlyphCache{
		cache:    cache,
		theme:    iconTheme,
		fallback: FallbackGlyph,
	}, nil
}

func glyphKey(name string, size int) string {
	return fmt.Sprintf("%s@%d", name, size)
}

// Get returns the pixbuf for name, loading it on a miss
func (g *GlyphCache) Get(name string, size int) (*gdk.Pixbuf, error) {
	if name == "" {
		name = g.fallback
	}

	key := glyphKey(name, size)
	if pixbuf, ok := g.cache.Get(key); ok {
		g.hits++
		return pixbuf, nil
	}
	g.misses++

	pixbuf, err := g.load(name, size)
	if err != nil {
		if name == g.fallback {
			return nil, err
		}
		log.Printf("[GLYPHS] Failed to load '%s' (%v), using '%s'", name, err, g.fallback)
		pixbuf, err = g.Get(g.fallback, size)
		if err != nil {
			return nil, err
		}
	}

	g.cache.Add(key, pixbuf)
	log.Printf("[GLYPHS] STORED: %s (cache size: %d)", key, g.cache.Len())
	return pixbuf, nil
}

func (g *GlyphCache) load(name string, size int) (*gdk.Pixbuf, error) {
	if !g.theme.HasIcon(name) {
		return nil, fmt.Errorf("icon '%s' not found in theme", name)
	}

	pixbuf, err := g.theme.LoadIcon(name, size, gtk.ICON_LOOKUP_USE_BUILTIN)
	if err != nil {
		return nil, err
	}
	if pixbuf == nil {
		return nil, fmt.Errorf("icon '%s' loaded empty", name)
	}
	return pixbuf, nil
}

// Preload warms the cache with the glyphs of the active theme
func (g *GlyphCache) Preload(names []string, size int) {
	start := time.Now()
	for _, name := range names {
		if _, err := g.Get(name, size); err != nil {
			log.Printf("[GLYPHS] Failed to preload '%s': %v", name, err)
		}
	}
	log.Printf("[GLYPHS] Preloaded %d glyphs in %v", len(names), time.Since(start))
}

// Stats returns cache statistics
func (g *GlyphCache) Stats() (hits, misses, size int) {
	return g.hits, g.misses, g.cache.Len()
}

// Clear empties the cache, used when the icon theme changes
func (g *GlyphCache) Clear() {
	g.cache.Purge()
	log.Printf("[GLYPHS] Cache cleared")
}
