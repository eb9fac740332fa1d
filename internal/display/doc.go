// Package display hosts toasts as GTK4 layer-shell popups.
//
// Manager is the toast.SurfaceFactory: every toast gets a PopupSurface, an
// undecorated window placed at the toast's global position through
// layer-shell margins on the monitor containing it. Monitors, timers and
// text measurement come from GDK, the glib main loop and Pango, so a
// Registry built on this package runs entirely on the GTK main thread.
package display
