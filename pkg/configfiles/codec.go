package configfiles

import "encoding/json"

// File is the capability interface every document kind implements.
// Implementations embed [Base] for the shared envelope (schema reference and
// descriptive metadata) and add their kind-specific payload.
type File interface {
	// ValidateSchema reports whether a declared schema matches what this
	// document kind expects. Type and version must match exactly.
	ValidateSchema(SchemaInfo) error

	// Envelope returns the shared document envelope.
	Envelope() *Base
}

// Base is the shared envelope embedded by every document kind.
type Base struct {
	Schema   *SchemaInfo `json:"$schema,omitempty"`
	FileInfo *FileInfo   `json:"file_info,omitempty"`

	// FileName is the base name of the file this document was loaded from.
	// Empty for default-constructed documents.
	FileName string `json:"-"`
}

// Envelope implements [File]. Embedding Base provides it.
func (b *Base) Envelope() *Base { return b }

// Name returns the document's title if it has one, falling back to the name
// of the file it was loaded from.
func (b *Base) Name() string {
	if b.FileInfo != nil && b.FileInfo.Title != "" {
		return b.FileInfo.Title
	}
	return b.FileName
}

// UpdateURL returns the document's remote refresh URL, or "" if it has none.
func (b *Base) UpdateURL() string {
	if b.FileInfo == nil {
		return ""
	}
	return b.FileInfo.UpdateURL
}

// Codec parses and serializes documents. The core never touches bytes except
// through a Codec, so the on-disk representation can be swapped out.
type Codec interface {
	Parse(data []byte, into File) error
	Serialize(f File) ([]byte, error)
}

// JSONCodec is the default Codec, producing tab-indented JSON.
type JSONCodec struct{}

// Parse implements [Codec].
func (JSONCodec) Parse(data []byte, into File) error {
	return json.Unmarshal(data, into)
}

// Serialize implements [Codec].
func (JSONCodec) Serialize(f File) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "\t")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
