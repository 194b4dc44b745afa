// Package dump serializes a live widget tree into builder markup.
//
// The [Dumper] walks the tree depth-first in pre-order through an
// [introspect.Provider] and produces a [Document]: one [Object] per visited
// widget with its non-default properties, its user-visible children and the
// packing properties it has inside its parent container. [WriteMarkup] turns
// the document into the markup format:
//
//	<?xml version="1.0"?>
//	<interface>
//	  <object class="GtkWindow" id="widget1">
//	    <property name="title">My Window</property>
//	    <child>
//	      <object class="GtkButton" id="widget2">
//	        <property name="label">Click</property>
//	      </object>
//	      <packing>
//	        <property name="expand">True</property>
//	      </packing>
//	    </child>
//	  </object>
//	</interface>
//
// # Naming
//
// Every visited widget is registered in a traversal-scoped [Registry] before
// anything about it is emitted. Widgets that were never explicitly named
// (empty name, or a name equal to the class name) get a synthetic id made of
// a prefix and a counter ("widget1", "widget2", ...). The registry is also
// what resolves "mnemonic-widget" references; a reference to a widget that
// has not been visited yet is dropped.
//
// # Errors
//
// An enum value without a symbolic name aborts the whole dump with an
// UNKNOWN_ENUM error. [Dumper.Dump] renders into memory first, so nothing
// reaches the sink when a dump fails.
package dump
