package dto

// FileUpload carries the bytes and metadata of an image accompanying a
// product request. A nil *FileUpload means "no file" and short-circuits the
// media protocol entirely.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the payload size in bytes.
func (f *FileUpload) Size() int64 { return int64(len(f.Data)) }

// UploadResult is returned by a successful storage write.
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}
