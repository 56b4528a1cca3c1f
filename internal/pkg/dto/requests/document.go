package requests

type AnalyzeDocument struct {
	ImageBase64  string `json:"image" validate:"required,base64"`
	MimeType     string `json:"mimeType" validate:"required"`
	DocumentType string `json:"documentType"`
}

type UploadDocument struct {
	DocumentType string `validate:"required"`
	RequestID    string
	FileName     string `validate:"required"`
	MimeType     string `validate:"required"`
	Size         int64  `validate:"gt=0"`
}
