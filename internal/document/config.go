package document

// Config contains document upload settings.
type Config struct {
	MaxUploadBytes int64 `env:"DOCUMENTS_MAX_UPLOAD_BYTES" envDefault:"10485760"`
}
