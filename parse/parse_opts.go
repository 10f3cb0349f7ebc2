package parse

type parseOpts struct {
	filename string
}

type ParseOption func(*parseOpts)

// WithFilename names the source in error messages.
func WithFilename(name string) ParseOption {
	return func(o *parseOpts) { o.filename = name }
}

func (o *parseOpts) at(s string) string {
	if o.filename == "" {
		return s
	}
	return o.filename + ": " + s
}
