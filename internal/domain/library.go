package domain

// Library is a compatibility library reported by the backend. Size is a
// human-readable string and is never parsed.
type Library struct {
	Name    string
	Size    string
	Patched bool
}
