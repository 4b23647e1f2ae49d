package rules

import (
	"encoding/json"
	"fmt"

	"github.com/kamild1996/tf2-bot-detector/pkg/configfiles"
)

const (
	// SchemaType is the document type rule files must declare.
	SchemaType = "rules"

	// SchemaVersion is the rule file schema version. Documents must match it
	// exactly; there is no forward or backward compatibility shimming.
	SchemaVersion uint = 3
)

// File is one physical rule document: the shared envelope plus the rule
// list payload.
type File struct {
	configfiles.Base
	Rules []Rule `json:"rules"`
}

// NewFile returns an empty rule document.
func NewFile() *File { return &File{} }

// ValidateSchema implements [configfiles.File]: rule files require type
// "rules" at exactly SchemaVersion.
func (f *File) ValidateSchema(s configfiles.SchemaInfo) error {
	if s.Type != SchemaType || s.Version != SchemaVersion {
		return &configfiles.SchemaMismatchError{
			WantType:    SchemaType,
			WantVersion: SchemaVersion,
			Got:         s,
		}
	}
	return nil
}

// MarshalJSON stamps the canonical rules schema onto the envelope if the
// document does not already declare the current one.
func (f *File) MarshalJSON() ([]byte, error) {
	type wire File
	w := wire(*f)

	if w.Schema == nil || w.Schema.Type != SchemaType || w.Schema.Version != SchemaVersion {
		schema := configfiles.NewSchemaInfo(SchemaType, SchemaVersion)
		w.Schema = &schema
	}
	if w.Rules == nil {
		w.Rules = []Rule{}
	}

	return json.Marshal(&w)
}

// UnmarshalJSON enforces the required rules array.
func (f *File) UnmarshalJSON(data []byte) error {
	type wire File
	var w struct {
		wire
		Rules *[]Rule `json:"rules"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Rules == nil {
		return fmt.Errorf("rule file: missing required key %q", "rules")
	}

	*f = File(w.wire)
	f.Rules = *w.Rules
	return nil
}
