package enc

import (
	"errors"
	"fmt"
)

// ErrUnknownCodeSchema is returned when a contract code matches neither the
// full nor the abbreviated key schema, or mixes both.
var ErrUnknownCodeSchema = errors.New("unknown contract code schema")

// Code is a contract code normalized from either key schema.
type Code struct {
	CID        string `json:"cid"`
	Name       string `json:"name"`
	Writer     string `json:"writer"`
	Type       string `json:"type"`
	Version    string `json:"version"`
	Parameters any    `json:"parameters"`
	Nonce      string `json:"nonce"`
}

type codeSchema struct {
	writer, nonce, name, typ, version, parameters string
}

var (
	fullSchema  = codeSchema{"writer", "nonce", "name", "type", "version", "parameters"}
	shortSchema = codeSchema{"w", "s", "n", "t", "v", "p"}
)

func (s codeSchema) matches(o Object) bool {
	for _, k := range []string{s.writer, s.nonce, s.name, s.typ, s.version, s.parameters} {
		if Has(o, k) {
			return true
		}
	}
	return false
}

// ParseCode decodes a JSON contract code and normalizes it with ParseCodeObject.
func ParseCode(raw []byte) (*Code, error) {
	v, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode code: %w", err)
	}
	o, ok := v.(Object)
	if !ok {
		return nil, fmt.Errorf("%w: not an object", ErrUnknownCodeSchema)
	}
	return ParseCodeObject(o)
}

// ParseCodeObject accepts a code written with full keys (writer, nonce, name,
// type, version, parameters) or abbreviated keys (w, s, n, t, v, p).
func ParseCodeObject(o Object) (*Code, error) {
	full, short := fullSchema.matches(o), shortSchema.matches(o)
	var s codeSchema
	switch {
	case full && short:
		return nil, fmt.Errorf("%w: full and abbreviated keys mixed", ErrUnknownCodeSchema)
	case full:
		s = fullSchema
	case short:
		s = shortSchema
	default:
		return nil, ErrUnknownCodeSchema
	}

	c := &Code{
		Writer:  field(o, s.writer, ""),
		Nonce:   field(o, s.nonce, ""),
		Name:    field(o, s.name, ""),
		Type:    field(o, s.typ, ""),
		Version: field(o, s.version, "0"),
	}
	if p, ok := Get(o, s.parameters); ok && p != nil {
		c.Parameters = p
	} else {
		c.Parameters = Object{}
	}
	c.CID = SpaceID(c.Writer, c.Nonce)
	return c, nil
}

func field(o Object, key, def string) string {
	v, ok := Get(o, key)
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return String(v)
}
