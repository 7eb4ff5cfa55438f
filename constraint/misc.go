// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/opencad/kernel/entity"
)

func init() {
	Register(WhereDragged, buildWhereDragged)
}

// buildWhereDragged contributes no equations, and nothing else in the
// repository reads a WhereDragged constraint, so it neither pins the
// dragged point nor influences which parameters stay free.
func buildWhereDragged(es *entity.Store, c *Constraint) Equations {
	return nil
}
