package dump

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/treedump/pkg/errors"
)

// WriteJSON writes doc as indented JSON. Property values are the same
// markup text WriteMarkup emits.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeOutput, err, "encode json")
	}
	return nil
}

// ReadJSON decodes a document written by WriteJSON.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return &doc, nil
}
