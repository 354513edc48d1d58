package config

import "service-desk/pkg/constants"

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
}

var UploadContexts = map[string]UploadConfig{
	constants.UploadContextRequestAttachment.String(): {
		AllowedMimeTypes: []string{
			"image/jpeg", "image/png", "image/gif", "image/webp", "application/pdf",
		},
		MaxSizeMB: 20,
	},
}
