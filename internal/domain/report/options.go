// Package report renders the printable period summary.
package report

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithTitle sets the document title line.
func WithTitle(title string) Option {
	return func(b *Builder) {
		if title != "" {
			b.title = title
		}
	}
}

// WithNotesLimit sets how many characters of notes are printed per entry.
func WithNotesLimit(limit int) Option {
	return func(b *Builder) {
		if limit > 0 {
			b.notesLimit = limit
		}
	}
}

// WithPageSize sets the page format, e.g. "A4" or "Letter".
func WithPageSize(size string) Option {
	return func(b *Builder) {
		if size != "" {
			b.pageSize = size
		}
	}
}

// WithCompression toggles content stream compression.
func WithCompression(enabled bool) Option {
	return func(b *Builder) {
		b.compress = enabled
	}
}

// WithAuthor sets the document author metadata.
func WithAuthor(author string) Option {
	return func(b *Builder) {
		b.author = author
	}
}
