package repository

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithIndent writes the snapshot pretty-printed, trading bytes for a
// diffable file.
func WithIndent(indent bool) Option {
	return func(s *FileStore) {
		s.indent = indent
	}
}
