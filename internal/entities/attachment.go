package entities

// Attachment is the optional image/PDF payload of a service request. The
// lifecycle never looks inside Data.
type Attachment struct {
	FileName string `json:"file_name" db:"attachment_name"`
	MimeType string `json:"mime_type" db:"attachment_mime"`
	Data     []byte `json:"-" db:"attachment"`
}
