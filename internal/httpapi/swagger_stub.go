//go:build !swagger

package httpapi

import "github.com/go-chi/chi/v5"

// MountSwagger serves nothing in default builds; see swagger.go.
func MountSwagger(chi.Router) {}
