package verror

// InfoKey gives typed access to one entry of the info map.
//
//	var UserID = verror.DefineInfoKey[string]("user_id")
//
//	err := ErrNotFound.WithOptions(UserID.With("u123")).New("user not found")
//	id, ok := UserID.From(err)
type InfoKey[T any] struct {
	name string
}

// DefineInfoKey creates an InfoKey for the info entry named name.
func DefineInfoKey[T any](name string) InfoKey[T] {
	return InfoKey[T]{name: name}
}

// Name returns the info entry name.
func (k InfoKey[T]) Name() string {
	return k.name
}

// With returns an option that sets the entry to value.
func (k InfoKey[T]) With(value T) Option {
	return &info{info: map[string]any{k.name: value}}
}

// WithRedacted returns an option that sets the entry to a redacted value.
// From still returns the wrapped value.
func (k InfoKey[T]) WithRedacted(value T) Option {
	return &info{info: map[string]any{k.name: Redact(value)}}
}

// From returns the entry from the merged info of err.
// It reports false if err is nil or the entry is missing or of another type.
func (k InfoKey[T]) From(err error) (T, bool) {
	var zero T
	if err == nil {
		return zero, false
	}
	switch v := Info(err)[k.name].(type) {
	case T:
		return v, true
	case Redacted[T]:
		return v.Value(), true
	default:
		return zero, false
	}
}

// OrDefault returns the entry from the merged info of err, or def.
func (k InfoKey[T]) OrDefault(err error, def T) T {
	if v, ok := k.From(err); ok {
		return v
	}
	return def
}
