// Package layer binds the parts of gtk-layer-shell the bar surface needs.
package layer

/*
#cgo pkg-config: gtk-layer-shell-0
#include <stdlib.h>
#include <gtk-layer-shell.h>
*/
import "C"
import "unsafe"

// Layer represents a layer shell layer
type Layer int

const (
	LayerBackground Layer = 0
	LayerBottom     Layer = 1
	LayerTop        Layer = 2
	LayerOverlay    Layer = 3
)

// Edge represents a screen edge
type Edge int

const (
	EdgeLeft   Edge = 0
	EdgeRight  Edge = 1
	EdgeTop    Edge = 2
	EdgeBottom Edge = 3
)

// KeyboardMode represents keyboard focus mode
type KeyboardMode int

const (
	KeyboardModeNone      KeyboardMode = 0
	KeyboardModeExclusive KeyboardMode = 1
	KeyboardModeOnDemand  KeyboardMode = 2
)

// Surface describes how a window sits on the output
type Surface struct {
	Namespace     string
	Layer         Layer
	Anchors       []Edge
	ExclusiveZone int
	Keyboard      KeyboardMode
}

// Configure turns window into a layer surface. It must run before the
// window is realized.
func Configure(window unsafe.Pointer, s Surface) {
	w := (*C.GtkWindow)(window)

	C.gtk_layer_init_for_window(w)

	if s.Namespace != "" {
		ns := C.CString(s.Namespace)
		defer C.free(unsafe.Pointer(ns))
		C.gtk_layer_set_namespace(w, ns)
	}

	C.gtk_layer_set_layer(w, C.GtkLayerShellLayer(s.Layer))
	for _, edge := range s.Anchors {
		C.gtk_layer_set_anchor(w, C.GtkLayerShellEdge(edge), 1)
	}
	C.gtk_layer_set_exclusive_zone(w, C.int(s.ExclusiveZone))
	C.gtk_layer_set_keyboard_mode(w, C.GtkLayerShellKeyboardMode(s.Keyboard))
}

// IsSupported reports whether the compositor speaks the layer shell protocol
func IsSupported() bool {
	return C.gtk_layer_is_supported() != 0
}
