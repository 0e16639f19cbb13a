package unit

import (
	"nebula/backend/view"
	"nebula/backend/view/impl"
)

var viewFac view.Factory[string] = impl.NewView[string]
