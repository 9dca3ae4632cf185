package types

// Record is the durable descriptor of one distinct piece of content — the
// first file ever observed with a given fingerprint. Later files carrying
// the same fingerprint are classified against it but never replace it.
type Record struct {
	// Fingerprint is the hex-encoded content hash. It is the identity key
	// and immutable once assigned.
	Fingerprint string

	// Size and ModTime are captured at first observation. ModTime is
	// stored as Unix seconds to keep the list format portable.
	Size    int64
	ModTime int64

	// OriginalPath and OriginalName are provenance fields reserved for
	// forward extension. Current logic always leaves them empty.
	OriginalPath string
	OriginalName string

	// Path is the directory of the observed file relative to the scanned
	// root ("" for files directly inside the root). Name is the base name.
	Path string
	Name string

	// Stored is true for records loaded from a persisted list. Only
	// records with Stored=false are ever appended back to the list.
	Stored bool

	// Seen is set when a stored record is matched during the current
	// scan. Stored records with Seen=false feed the missing accounting.
	Seen bool
}

// Location joins Path and Name for display. Records at the traversal
// root render as the bare name.
func (r *Record) Location() string {
	if r.Path == "" {
		return r.Name
	}
	return r.Path + "/" + r.Name
}
