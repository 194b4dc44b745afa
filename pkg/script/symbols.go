package script

import (
	"reflect"

	"github.com/traefik/yaegi/interp"

	"github.com/matzehuels/treedump/pkg/toolkit"
)

// PackagePath is the import path of the package scripts use to reach the
// live tree. It is imported automatically.
const PackagePath = "treedump"

// exports builds the symbol table of the treedump script package. Every
// function reads the root at call time, so SetRoot applies to running
// sessions.
func (i *Interpreter) exports() interp.Exports {
	return interp.Exports{
		PackagePath + "/treedump": {
			"Widget": reflect.ValueOf((*toolkit.Widget)(nil)),

			"Root":   reflect.ValueOf(i.Root),
			"Object": reflect.ValueOf(i.object),
			"Find":   reflect.ValueOf(i.find),
			"Dump":   reflect.ValueOf(i.dumpRoot),
		},
	}
}

// object turns a raw widget identity into the widget, searching the live
// tree. Unknown identities yield nil.
func (i *Interpreter) object(id uint64) *toolkit.Widget {
	root := i.Root()
	if root == nil {
		return nil
	}
	return toolkit.FindByID(root, id)
}

func (i *Interpreter) find(name string) *toolkit.Widget {
	root := i.Root()
	if root == nil {
		return nil
	}
	return toolkit.FindByName(root, name)
}
