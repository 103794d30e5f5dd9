package port

import (
	"context"
	"io"
)

// MediaStore uploads an image to external storage and returns its public URL.
// Provider behavior beyond this single capability is out of scope.
type MediaStore interface {
	Upload(ctx context.Context, filename string, contents io.Reader, folder string) (string, error)
}
