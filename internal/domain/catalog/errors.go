package catalog

import (
	"errors"
)

// Sentinel error kinds for this package, usable with errors.Is.
var (
	ErrInvalidCatalog = errors.New("invalid skill catalog")
	ErrInvalidRoles   = errors.New("invalid role templates")
	ErrLoadCatalog    = errors.New("load skill catalog failed")
	ErrLoadRoles      = errors.New("load role templates failed")
)
