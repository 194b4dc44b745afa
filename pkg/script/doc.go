// Package script runs Go snippets against a live widget tree.
//
// An [Interpreter] wraps one persistent yaegi interpreter: declarations made
// by one run stay visible to the next. Scripts see the standard library and
// a "treedump" package bound to the interpreter's current root:
//
//	treedump.Root()          // *toolkit.Widget, the live root
//	treedump.Object(id)      // widget with that raw identity, or nil
//	treedump.Find("email")   // first widget named "email", or nil
//	treedump.Dump()          // markup of the live tree
//
// Standard output and standard error of each run are captured separately
// and handed to the caller's [LogFunc] loggers after the run finishes. A
// failing run appends the interpreter error to the captured error text and
// returns a SCRIPT error.
//
//	in := script.New(script.Options{Root: root})
//	err := in.Run(ctx, `treedump.Find("email").SetAny("text", "a@b.c")`,
//	    func(s string, _ any) { fmt.Print(s) },
//	    func(s string, _ any) { fmt.Fprint(os.Stderr, s) },
//	    nil)
//
// The interpreter never calls into the serializer on its own; Dump is only
// reachable from script code.
package script
