package ports

// Hasher defines the interface for computing hashes.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ContentHash returns the hex SHA-256 digest of a module's source text.
	ContentHash(source string) string

	// Fingerprint returns a fast non-cryptographic digest of data.
	Fingerprint(data []byte) string

	// FileFingerprint returns the Fingerprint of the file at path.
	// A missing file yields an empty fingerprint and no error.
	FileFingerprint(path string) (string, error)
}
