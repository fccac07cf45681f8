package graphql

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"gqlizer/internal/domain"
)

// Errors returned when a tool name cannot be resolved against the schema.
var (
	// ErrUnknownOperationKind means the tool name's prefix is not a known
	// operation token, or the schema has no root type for it.
	ErrUnknownOperationKind = errors.New("unknown operation kind")
	// ErrUnknownField means the tool name's remainder is not a field on
	// the resolved root type.
	ErrUnknownField = errors.New("unknown field")
)

// Compiler builds GraphQL operation strings from tool calls. It only
// reads the (immutable) schema, so a single Compiler is safe for
// concurrent use.
type Compiler struct {
	schema    *ast.Schema
	selection SelectionConfig
}

// NewCompiler creates a Compiler bound to one schema.
func NewCompiler(schema *ast.Schema, selection SelectionConfig) *Compiler {
	return &Compiler{schema: schema, selection: selection}
}

// Compile turns a tool call into a complete operation string:
//
//	mutation { createPost(input: {text: "hello"}) { id status } }
//
// The tool name is split on its first underscore to recover the operation
// kind and field name. Argument values are rendered as inline GraphQL
// literals in the order they appear in the call's raw JSON; no value
// validation happens here, so malformed values produce a syntactically
// plausible but semantically invalid operation for the upstream API to
// reject.
func (c *Compiler) Compile(call domain.ToolCall) (string, error) {
	prefix, fieldName, found := strings.Cut(call.Name, toolNameSeparator)
	if !found {
		return "", fmt.Errorf("tool name %q has no operation prefix: %w", call.Name, ErrUnknownOperationKind)
	}

	var root *ast.Definition
	var token string
	switch prefix {
	case queryToolPrefix:
		root, token = c.schema.Query, "query"
	case mutationToolPrefix:
		root, token = c.schema.Mutation, "mutation"
	default:
		return "", fmt.Errorf("tool name prefix %q: %w", prefix, ErrUnknownOperationKind)
	}
	if root == nil {
		return "", fmt.Errorf("schema has no %s root type: %w", token, ErrUnknownOperationKind)
	}

	field := root.Fields.ForName(fieldName)
	if field == nil {
		return "", fmt.Errorf("field %q not found on %s root: %w", fieldName, token, ErrUnknownField)
	}

	args, err := encodeArguments(call.Arguments)
	if err != nil {
		return "", fmt.Errorf("encoding arguments for %s: %w", call.Name, err)
	}

	var b strings.Builder
	b.WriteString(token)
	b.WriteString(" { ")
	b.WriteString(fieldName)
	if args != "" {
		b.WriteByte('(')
		b.WriteString(args)
		b.WriteByte(')')
	}
	if sel := buildSelection(c.schema, field.Type, 0, c.selection); sel != "" {
		b.WriteByte(' ')
		b.WriteString(sel)
	}
	b.WriteString(" }")
	return b.String(), nil
}

// encodeArguments renders a raw JSON object of argument values as inline
// GraphQL argument literals ("key: value, ..."), preserving the key order
// of the document. An empty or null document yields "".
func encodeArguments(raw json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", err
	}
	if tok == nil {
		return "", nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", fmt.Errorf("arguments must be a JSON object, got %v", tok)
	}

	var b strings.Builder
	first := true
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", err
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(keyTok.(string))
		b.WriteString(": ")
		if err := encodeValue(dec, &b); err != nil {
			return "", err
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return "", err
	}
	return b.String(), nil
}

// encodeValue writes the next JSON value from dec as a GraphQL literal.
// Object keys are emitted bare (GraphQL object literals do not quote
// keys); strings are re-encoded as JSON strings, whose escape sequences
// are exactly the set GraphQL's string grammar accepts; numbers,
// booleans and null pass through unchanged.
func encodeValue(dec *json.Decoder, b *strings.Builder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			b.WriteByte('{')
			first := true
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return err
				}
				if !first {
					b.WriteString(", ")
				}
				first = false
				b.WriteString(keyTok.(string))
				b.WriteString(": ")
				if err := encodeValue(dec, b); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
			b.WriteByte('}')
		case '[':
			b.WriteByte('[')
			first := true
			for dec.More() {
				if !first {
					b.WriteString(", ")
				}
				first = false
				if err := encodeValue(dec, b); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
			b.WriteByte(']')
		}
	case string:
		// strconv.Quote would emit Go-only escapes (\a, \xHH) here, which
		// GraphQL strings do not allow.
		quoted, err := json.Marshal(t)
		if err != nil {
			return err
		}
		b.Write(quoted)
	case json.Number:
		b.WriteString(t.String())
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case nil:
		b.WriteString("null")
	}
	return nil
}
