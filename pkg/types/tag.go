package types

// Tag is a per-file classification or action marker emitted in verbose
// output. The string form is the exact bracketed token users see.
type Tag string

const (
	TagInList        Tag = "[In-List]"
	TagNewDuplicate  Tag = "[New-Duplicate]"
	TagNew           Tag = "[New]"
	TagNameDuplicate Tag = "[Name-Duplicate]"
	TagDelete        Tag = "[Delete]"
	TagCopy          Tag = "[Copy]"
	TagMove          Tag = "[Move]"
)

// IsDuplicate reports whether the tag marks content already known to the
// index, either from the persisted list or from earlier in this scan.
func (t Tag) IsDuplicate() bool {
	return t == TagInList || t == TagNewDuplicate
}
