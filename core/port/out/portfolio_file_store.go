package out

import (
	"mime/multipart"
)

// Blob categories map to subdirectories of the upload root.
const (
	CategoryUserImage    = "userImage"
	CategoryProjectImage = "projectImage"
)

// FileStore is the blob-store collaborator. Save accepts an uploaded file and
// returns its stable stored name; Remove deletes a previously stored blob.
// Remove of a name that no longer exists is not an error.
type FileStore interface {
	Save(category string, file *multipart.FileHeader) (string, error)
	Remove(category, name string) error
}
