package configfiles

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// DefaultSchemaBranch is the repository branch schema URLs point at when a
// document does not name one.
const DefaultSchemaBranch = "master"

// schemaURLPattern matches the canonical schema reference URL carried in a
// document's "$schema" field.
var schemaURLPattern = regexp.MustCompile(
	`^https://raw\.githubusercontent\.com/PazerOP/tf2_bot_detector/([^/]+)/schemas/v(\d+)/(.+)\.schema\.json$`,
)

// SchemaInfo identifies the shape and version of a document. It is carried on
// the wire as a canonical URL in the "$schema" field.
type SchemaInfo struct {
	Type    string
	Version uint
	Branch  string
}

// NewSchemaInfo returns a SchemaInfo for the given type and version on the
// default branch.
func NewSchemaInfo(docType string, version uint) SchemaInfo {
	return SchemaInfo{Type: docType, Version: version, Branch: DefaultSchemaBranch}
}

// ParseSchemaInfo parses a canonical schema reference URL.
func ParseSchemaInfo(url string) (SchemaInfo, error) {
	m := schemaURLPattern.FindStringSubmatch(url)
	if m == nil {
		return SchemaInfo{}, fmt.Errorf("unknown schema URL %q", url)
	}

	var version uint
	if _, err := fmt.Sscanf(m[2], "%d", &version); err != nil {
		return SchemaInfo{}, fmt.Errorf("invalid schema version in %q: %w", url, err)
	}

	return SchemaInfo{Branch: m[1], Version: version, Type: m[3]}, nil
}

// URL returns the canonical schema reference URL for this SchemaInfo.
func (s SchemaInfo) URL() string {
	branch := s.Branch
	if branch == "" {
		branch = DefaultSchemaBranch
	}
	return fmt.Sprintf(
		"https://raw.githubusercontent.com/PazerOP/tf2_bot_detector/%s/schemas/v%d/%s.schema.json",
		branch, s.Version, s.Type)
}

// MarshalJSON encodes the SchemaInfo as its canonical URL.
func (s SchemaInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.URL())
}

// UnmarshalJSON decodes a SchemaInfo from its canonical URL.
func (s *SchemaInfo) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err != nil {
		return err
	}

	parsed, err := ParseSchemaInfo(url)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

// FileInfo holds the descriptive metadata a document may carry. It has no
// effect on loading beyond UpdateURL, which enables remote refresh.
type FileInfo struct {
	Authors     []string `json:"authors,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	UpdateURL   string   `json:"update_url,omitempty"`
}
