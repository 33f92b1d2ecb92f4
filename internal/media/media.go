package media

import (
	"context"
	"io"
)

// Asset es una imagen ya subida al host de medios.
type Asset struct {
	URL      string
	PublicID string
}

// Store sube y borra las fotos de los productos.
type Store interface {
	Upload(ctx context.Context, filename string, file io.Reader) (Asset, error)
	Delete(ctx context.Context, publicID string) error
}
