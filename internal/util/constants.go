package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Upload MIME prefixes.
const (
	MimeAudio       = "audio/"
	MimeImage       = "image/"
	MimeMPEG        = "audio/mpeg"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedAudioExtensions = []string{".mp3", ".m4a", ".wav", ".ogg", ".aac"}
	AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}
)
