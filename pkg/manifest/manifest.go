// Package manifest reads and writes the per-directory .softsync file
// that records soft entries.
//
// The file is a JSON object whose "softlinks" key holds an array of
// {"name", "link"} records sorted by name. Other keys are carried through
// untouched. A bare top-level array is accepted as the legacy layout and
// rewritten as an object on save.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path"
	"sort"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/logging"
	"github.com/arthur-debert/softsync/pkg/storage"
)

// FileName is the manifest name inside each managed directory.
const FileName = ".softsync"

const softlinksKey = "softlinks"

// Document is a loaded manifest.
type Document struct {
	Softlinks []FileEntry
	extra     map[string]json.RawMessage
	legacy    bool
}

// Path returns the manifest location for dir.
func Path(dir string) string {
	return path.Join(dir, FileName)
}

// Legacy reports whether the document was read from the bare array form.
func (d *Document) Legacy() bool {
	return d.legacy
}

// Load reads the manifest in dir. A missing manifest yields an empty
// document. A manifest location occupied by anything but a regular file
// is a conflict.
func Load(ctx context.Context, scheme storage.Scheme, dir string) (*Document, error) {
	logger := logging.GetLogger("softsync.manifest")
	p := Path(dir)

	exists, err := scheme.Exists(ctx, p)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &Document{}, nil
	}
	isFile, err := scheme.IsFile(ctx, p)
	if err != nil {
		return nil, err
	}
	if !isFile {
		return nil, errors.Newf(errors.ErrManifestConflict, "manifest file location conflict: %s", p)
	}

	r, err := scheme.Open(ctx, p)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStorage, "failed to read %s", p)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse %s", p)
	}
	logger.Debug().Str("path", p).Int("softlinks", len(doc.Softlinks)).Bool("legacy", doc.legacy).Msg("Loaded manifest")
	return doc, nil
}

// Parse decodes manifest bytes.
func Parse(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	doc := &Document{}
	if len(data) == 0 {
		return doc, nil
	}

	if data[0] == '[' {
		entries, err := decodeEntries(data)
		if err != nil {
			return nil, err
		}
		doc.Softlinks = entries
		doc.legacy = true
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc.extra); err != nil {
		return nil, err
	}
	if raw, ok := doc.extra[softlinksKey]; ok {
		entries, err := decodeEntries(raw)
		if err != nil {
			return nil, err
		}
		doc.Softlinks = entries
		delete(doc.extra, softlinksKey)
	}
	return doc, nil
}

func decodeEntries(data []byte) ([]FileEntry, error) {
	var entries []FileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Name == "" || e.Link == "" {
			return nil, errors.Newf(errors.ErrManifestParse, "invalid softlink record: %q", e.String())
		}
	}
	return entries, nil
}

// Marshal encodes the document with softlinks sorted by name. Only soft
// entries are written.
func (d *Document) Marshal() ([]byte, error) {
	soft := make([]FileEntry, 0, len(d.Softlinks))
	for _, e := range d.Softlinks {
		if e.IsSoft() {
			soft = append(soft, e)
		}
	}
	sort.Slice(soft, func(i, j int) bool { return soft[i].Name < soft[j].Name })

	out := make(map[string]json.RawMessage, len(d.extra)+1)
	for k, v := range d.extra {
		out[k] = v
	}
	raw, err := json.Marshal(soft)
	if err != nil {
		return nil, err
	}
	out[softlinksKey] = raw

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save writes the document into dir, creating dir first.
func (d *Document) Save(ctx context.Context, scheme storage.Scheme, dir string) error {
	data, err := d.Marshal()
	if err != nil {
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to encode manifest")
	}
	if err := scheme.MkdirAll(ctx, dir); err != nil {
		return err
	}

	p := Path(dir)
	w, err := scheme.Create(ctx, p)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to write %s", p)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to write %s", p)
	}

	d.legacy = false
	logger := logging.GetLogger("softsync.manifest")
	logger.Debug().Str("path", p).Int("softlinks", len(d.Softlinks)).Msg("Saved manifest")
	return nil
}
