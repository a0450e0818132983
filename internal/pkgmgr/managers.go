package pkgmgr

import (
	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
)

// All returns every client in deterministic order.
func All(r execx.Runner) []Client {
	return []Client{
		NewBrew(r),
		NewMas(r),
		NewApt(r),
		NewDnf(r),
		NewWinget(r),
		NewSnap(r),
	}
}

// ByName returns the client for an ecosystem name.
// Returns errors.ErrNoManager for unrecognized names.
func ByName(r execx.Runner, name string) (Client, error) {
	for _, c := range All(r) {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrNoManager, "%s", name)
}
