// Package snapshot builds live toolkit trees from declarative descriptions.
//
// A snapshot is a tree of nodes written in TOML, YAML or JSON:
//
//	[root]
//	class = "GtkWindow"
//	name = "main"
//	properties = { title = "Preferences" }
//
//	[[root.children]]
//	class = "GtkVBox"
//
//	[[root.children.children]]
//	class = "GtkLabel"
//	properties = { label = "_Name", use-underline = true, mnemonic-widget = "@name-entry" }
//
//	[[root.children.children]]
//	class = "GtkEntry"
//	name = "name-entry"
//	packing = { padding = 6 }
//
// Property values are coerced with [toolkit.Coerce]: enums and flags take
// symbolic names, object properties take "@name" references to another
// node. References are resolved once the whole tree exists, so they may
// point forward.
//
// Children are built and packed before the properties of their parent are
// applied, and properties are applied in class order. A button whose
// label is set therefore replaces any child the snapshot gave it, exactly
// as the toolkit would at run time.
package snapshot
