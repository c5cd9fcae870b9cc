package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// roleTemplate mirrors the offline builder's role JSON shape.
type roleTemplate struct {
	Title      string   `json:"title"`
	Required   []string `json:"required_skills"`
	NiceToHave []string `json:"nice_to_have_skills"`
}

// LoadFiles reads the catalog and role JSON files and builds a
// Catalog. Both files are required; a missing or malformed file is a
// startup-fatal error for the caller.
func LoadFiles(catalogPath, rolesPath string) (*Catalog, error) {
	catalogData, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	rolesData, err := os.ReadFile(rolesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRoles, err)
	}
	return Parse(catalogData, rolesData)
}

// Parse builds a Catalog from raw JSON documents. Object key order is
// preserved: role ranking ties and alias precedence depend on it.
func Parse(catalogJSON, rolesJSON []byte) (*Catalog, error) {
	skills, err := parseSkills(catalogJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	roles, err := parseRoles(rolesJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRoles, err)
	}
	return New(skills, roles)
}

// parseSkills decodes {"canonical": ["alias", ...], ...} keeping key
// order, which encoding/json maps would discard.
func parseSkills(data []byte) ([]Skill, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var skills []Skill
	err := walkObject(dec, func(key string) error {
		var aliases []string
		if err := dec.Decode(&aliases); err != nil {
			return fmt.Errorf("aliases of %q: %w", key, err)
		}
		skills = append(skills, Skill{Name: key, Aliases: aliases})
		return nil
	})
	return skills, err
}

// parseRoles decodes {"ROLE_ID": {template}, ...} keeping key order.
func parseRoles(data []byte) ([]Role, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var roles []Role
	err := walkObject(dec, func(key string) error {
		var tpl roleTemplate
		if err := dec.Decode(&tpl); err != nil {
			return fmt.Errorf("role %q: %w", key, err)
		}
		roles = append(roles, Role{
			ID:         key,
			Title:      tpl.Title,
			Required:   tpl.Required,
			NiceToHave: tpl.NiceToHave,
		})
		return nil
	})
	return roles, err
}

// walkObject streams a top-level JSON object, invoking visit for each
// key with the decoder positioned at the value.
func walkObject(dec *json.Decoder, visit func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}
		if err := visit(key); err != nil {
			return err
		}
	}
	_, err = dec.Token() // consume closing brace
	return err
}
