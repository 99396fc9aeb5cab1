package domain

import "io"

// PendingImage is an uploaded image that passed validation but has not been
// stored yet.
type PendingImage struct {
	Filename  string
	SizeBytes int64
	MimeType  string
	Data      io.Reader
}
