package manifest

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// document is the on-disk shape shared by both record kinds.
type document struct {
	Name    string   `json:"name,omitempty"`
	Code    *uint64  `json:"code,omitempty"`
	Raw     string   `json:"raw"`
	Imports []string `json:"imports,omitempty"`
}

// EncodeRaw applies the transport encoding used for the raw field.
func EncodeRaw(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// DecodeRaw reverses EncodeRaw.
func DecodeRaw(encoded string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("raw field is not valid base64: %w", err)
	}
	if !utf8.Valid(b) {
		return "", errors.New("raw field does not decode to UTF-8 text")
	}
	return string(b), nil
}

// EncodeInterface serializes an InterfaceRecord.
func EncodeInterface(rec *InterfaceRecord) ([]byte, error) {
	return json.Marshal(document{Raw: EncodeRaw(rec.Raw)})
}

// DecodeInterface parses a document produced by EncodeInterface.
func DecodeInterface(data []byte) (*InterfaceRecord, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid interface document: %w", err)
	}
	raw, err := DecodeRaw(doc.Raw)
	if err != nil {
		return nil, err
	}
	return &InterfaceRecord{Raw: raw}, nil
}

// EncodeCommand serializes a CommandRecord.
func EncodeCommand(rec *CommandRecord) ([]byte, error) {
	code := rec.Code
	return json.Marshal(document{
		Name:    rec.Name,
		Code:    &code,
		Raw:     EncodeRaw(rec.Raw),
		Imports: rec.Imports,
	})
}

// DecodeCommand parses a document produced by EncodeCommand.
func DecodeCommand(data []byte) (*CommandRecord, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid command document: %w", err)
	}
	if doc.Name == "" {
		return nil, errors.New("command document has no name")
	}
	if doc.Code == nil {
		return nil, fmt.Errorf("command document %q has no code", doc.Name)
	}
	raw, err := DecodeRaw(doc.Raw)
	if err != nil {
		return nil, fmt.Errorf("command document %q: %w", doc.Name, err)
	}
	return &CommandRecord{
		Name:    doc.Name,
		Code:    *doc.Code,
		Raw:     raw,
		Imports: doc.Imports,
	}, nil
}
