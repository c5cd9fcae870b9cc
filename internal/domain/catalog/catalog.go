// Package catalog holds the read-only skill taxonomy and role
// templates produced by the offline builder.
//
// A Catalog is constructed once at startup and shared by every
// request without locking; nothing mutates it after load.
package catalog

import (
	"fmt"
	"strings"
)

// Skill is one canonical skill and its surface-form aliases.
type Skill struct {
	Name    string
	Aliases []string
}

// Role is one role template. Required and NiceToHave reference
// canonical skill names and keep the builder's ordering.
type Role struct {
	ID         string
	Title      string
	Required   []string
	NiceToHave []string
}

// Catalog is the immutable skill and role dataset. Iteration orders
// match the source files so downstream tie-breaking is deterministic.
type Catalog struct {
	skills   []Skill
	byName   map[string]int
	roles    []Role
	byRoleID map[string]int

	// alias -> canonical owner, first writer wins
	aliasOwner map[string]string
	collisions []string
}

// New builds a Catalog from ordered skill and role slices. Aliases are
// lowercased; an alias claimed by two canonical skills keeps its first
// owner and is reported via AliasCollisions.
func New(skills []Skill, roles []Role) (*Catalog, error) {
	c := &Catalog{
		skills:     make([]Skill, 0, len(skills)),
		byName:     make(map[string]int, len(skills)),
		roles:      make([]Role, 0, len(roles)),
		byRoleID:   make(map[string]int, len(roles)),
		aliasOwner: make(map[string]string),
	}

	for _, s := range skills {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if name == "" {
			return nil, fmt.Errorf("%w: empty canonical skill name", ErrInvalidCatalog)
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("%w: duplicate canonical skill %q", ErrInvalidCatalog, name)
		}

		aliases := make([]string, 0, len(s.Aliases)+1)
		seen := make(map[string]struct{}, len(s.Aliases)+1)
		for _, a := range append([]string{name}, s.Aliases...) {
			a = strings.ToLower(strings.TrimSpace(a))
			if a == "" {
				continue
			}
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			if owner, claimed := c.aliasOwner[a]; claimed && owner != name {
				c.collisions = append(c.collisions, fmt.Sprintf("alias %q claimed by %q, kept by %q", a, name, owner))
				continue
			}
			c.aliasOwner[a] = name
			aliases = append(aliases, a)
		}

		c.byName[name] = len(c.skills)
		c.skills = append(c.skills, Skill{Name: name, Aliases: aliases})
	}

	for _, r := range roles {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: empty role id", ErrInvalidRoles)
		}
		if _, dup := c.byRoleID[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate role id %q", ErrInvalidRoles, r.ID)
		}
		c.byRoleID[r.ID] = len(c.roles)
		c.roles = append(c.roles, r)
	}

	return c, nil
}

// Skills returns canonical skills in catalog order.
func (c *Catalog) Skills() []Skill { return c.skills }

// Labels returns canonical skill names in catalog order.
func (c *Catalog) Labels() []string {
	labels := make([]string, len(c.skills))
	for i, s := range c.skills {
		labels[i] = s.Name
	}
	return labels
}

// Roles returns role templates in catalog order.
func (c *Catalog) Roles() []Role { return c.roles }

// Role looks up a role template by id.
func (c *Catalog) Role(id string) (Role, bool) {
	i, ok := c.byRoleID[id]
	if !ok {
		return Role{}, false
	}
	return c.roles[i], true
}

// HasLabel reports whether name is a canonical skill.
func (c *Catalog) HasLabel(name string) bool {
	_, ok := c.byName[strings.ToLower(name)]
	return ok
}

// Canonical resolves a surface form to its canonical skill name. The
// second return is false when the term is unknown.
func (c *Catalog) Canonical(term string) (string, bool) {
	owner, ok := c.aliasOwner[strings.ToLower(strings.TrimSpace(term))]
	return owner, ok
}

// AliasCollisions reports aliases claimed by more than one canonical
// skill during construction. A non-empty result points at a bug in
// the offline builder.
func (c *Catalog) AliasCollisions() []string { return c.collisions }
