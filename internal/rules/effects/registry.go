// Package effects holds the effect template registry. Templates are loaded
// once from content and stamped into per-character ActiveEffect instances.
package effects

import (
	"fmt"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
)

// Registry is a read-only lookup of effect templates keyed by id.
type Registry struct {
	templates map[string]entities.EffectTemplate
}

// Config holds the registry dependencies.
type Config struct {
	Templates []entities.EffectTemplate
}

// Validate ensures every template is well formed before the registry accepts it.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	seen := make(map[string]bool, len(c.Templates))
	for i, tpl := range c.Templates {
		if tpl.ID == "" {
			vb.RequiredField(fmt.Sprintf("templates[%d].id", i))
			continue
		}
		if seen[tpl.ID] {
			vb.Fieldf("templates", "duplicate effect id %q", tpl.ID)
		}
		seen[tpl.ID] = true
		switch tpl.Kind {
		case entities.EffectClass, entities.EffectPassive, entities.EffectEquipment, entities.EffectStatus:
		default:
			vb.Fieldf("templates", "effect %q has unknown kind %q", tpl.ID, tpl.Kind)
		}
		if tpl.Stat != "" {
			switch tpl.Op {
			case entities.OpAdd, entities.OpMultiply:
			default:
				vb.Fieldf("templates", "effect %q has unknown op %q", tpl.ID, tpl.Op)
			}
		}
		if tpl.Kind == entities.EffectStatus && tpl.Duration <= 0 {
			vb.Fieldf("templates", "status effect %q needs a positive duration", tpl.ID)
		}
	}
	return vb.Build()
}

// NewRegistry builds a registry from validated templates.
func NewRegistry(cfg *Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	templates := make(map[string]entities.EffectTemplate, len(cfg.Templates))
	for _, tpl := range cfg.Templates {
		templates[tpl.ID] = tpl
	}
	return &Registry{templates: templates}, nil
}

// Get returns the template for the given id.
func (r *Registry) Get(id string) (entities.EffectTemplate, error) {
	tpl, ok := r.templates[id]
	if !ok {
		return entities.EffectTemplate{}, errors.NotFoundf("effect template %q not found", id)
	}
	return tpl, nil
}

// Has reports whether a template with the given id exists.
func (r *Registry) Has(id string) bool {
	_, ok := r.templates[id]
	return ok
}

// Instantiate stamps a template into an active effect owned by one character.
// The source records where the effect came from (a class id, skill id, item
// id, or combat ability) so it can be stripped when that source goes away.
func (r *Registry) Instantiate(id, source string) (entities.ActiveEffect, error) {
	tpl, err := r.Get(id)
	if err != nil {
		return entities.ActiveEffect{}, err
	}
	return entities.ActiveEffect{
		TemplateID: tpl.ID,
		Kind:       tpl.Kind,
		Stat:       tpl.Stat,
		Op:         tpl.Op,
		Magnitude:  tpl.Magnitude,
		Permanent:  tpl.Kind != entities.EffectStatus,
		Remaining:  tpl.Duration,
		Source:     source,
	}, nil
}
