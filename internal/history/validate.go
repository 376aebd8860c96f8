package history

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas
var schemaFiles embed.FS

const entrySchemaURL = "https://holdem-engine.local/schemas/entry.json"

// ErrInvalidEntry is returned for payloads that are not a well formed hand
var ErrInvalidEntry = errors.New("invalid hand history entry")

var entrySchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	data, err := schemaFiles.ReadFile("schemas/entry.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read entry schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(entrySchemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add entry schema: %w", err)
	}
	schema, err := compiler.Compile(entrySchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile entry schema: %w", err)
	}
	return schema, nil
})

// Validate checks a JSON payload against the entry schema: between 2 and 9
// players, well formed card and action codes, a non-negative pot. Player
// names must be unique and the button and blinds must be seated.
func Validate(payload []byte) error {
	_, err := DecodeEntry(payload)
	return err
}

// DecodeEntry validates payload and decodes it
func DecodeEntry(payload []byte) (Entry, error) {
	schema, err := entrySchema()
	if err != nil {
		return Entry{}, err
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	if err := schema.Validate(doc); err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}

	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	if err := checkSeating(entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func checkSeating(entry Entry) error {
	seated := make(map[string]bool, len(entry.Players))
	ids := make(map[string]bool, len(entry.Players))
	for _, p := range entry.Players {
		if seated[p.Name] {
			return fmt.Errorf("%w: player name %q is used twice", ErrInvalidEntry, p.Name)
		}
		if ids[p.ID] {
			return fmt.Errorf("%w: player id %q is used twice", ErrInvalidEntry, p.ID)
		}
		seated[p.Name], ids[p.ID] = true, true
	}
	for role, name := range map[string]string{
		"dealer":      entry.Dealer,
		"small blind": entry.SmallBlind,
		"big blind":   entry.BigBlind,
	} {
		if !seated[name] {
			return fmt.Errorf("%w: %s %q is not seated", ErrInvalidEntry, role, name)
		}
	}
	return nil
}
