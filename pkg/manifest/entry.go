package manifest

// FileEntry is one name in a directory. Hard entries are real files;
// soft entries carry a link, relative to the owning directory, to
// another entry.
type FileEntry struct {
	Name string `json:"name"`
	Link string `json:"link,omitempty"`
}

// Hard returns a hard entry for name.
func Hard(name string) FileEntry {
	return FileEntry{Name: name}
}

// Soft returns a soft entry for name pointing at link.
func Soft(name, link string) FileEntry {
	return FileEntry{Name: name, Link: link}
}

func (e FileEntry) IsSoft() bool {
	return e.Link != ""
}

func (e FileEntry) String() string {
	if e.IsSoft() {
		return e.Name + " -> " + e.Link
	}
	return e.Name
}
