package domain

// MaxImageSize is the largest accepted review image (5 MB).
const MaxImageSize int64 = 5 * 1024 * 1024

// AllowedImageTypes lists the accepted review image content types.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// IsAllowedImageType reports whether contentType may be uploaded.
func IsAllowedImageType(contentType string) bool {
	return AllowedImageTypes[contentType]
}
