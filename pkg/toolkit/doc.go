// Package toolkit is a small in-memory widget toolkit modelled on GTK 2.
//
// It provides the live object graph that the dump package serializes:
// classes with single inheritance and typed, introspectable properties,
// containers with packing (child) properties, and buttons that manage
// their own internal children the way GTK buttons do.
//
// # Classes
//
// The registry knows GtkWidget, GtkContainer, GtkBin, GtkWindow, GtkBox,
// GtkHBox, GtkVBox, GtkTable, GtkButton, GtkToggleButton, GtkCheckButton,
// GtkLabel, GtkEntry and GtkImage. Properties are listed base class first,
// so the order is stable for every instance of a class.
//
// # Usage
//
//	win := toolkit.MustNew("GtkWindow")
//	_ = win.SetAny("title", "Preferences")
//	btn := toolkit.MustNew("GtkButton")
//	_ = btn.SetAny("label", "_Close")
//	_ = win.Add(btn)
//
//	d := dump.New(toolkit.Provider{}, dump.Options{})
//	_ = d.Dump(os.Stdout, win)
//
// Widgets are not safe for concurrent use. Callers that share a tree
// between goroutines must serialize access themselves.
package toolkit
