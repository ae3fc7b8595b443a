package document

import "errors"

var (
	ErrEmptyFile          = errors.New("file is empty")
	ErrFileTooLarge       = errors.New("file exceeds maximum size")
	ErrInvalidContentType = errors.New("file type not allowed")
	ErrNoProfessional     = errors.New("professional profile not found")
	ErrNotOwner           = errors.New("path does not belong to caller")
	ErrDocumentNotFound   = errors.New("document not found")
)
