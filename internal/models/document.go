package models

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeDOC  = "application/msword"
)

// UploadedDocument is the in-memory copy of an uploaded file. It lives only
// for the duration of one request.
type UploadedDocument struct {
	Filename  string
	MediaType string
	Size      int64
	Data      []byte
}
