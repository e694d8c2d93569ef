// Package registry implements the provider:model addressing layer:
// ProviderRegistry stores one ProviderRecord per backend with O(1)
// lookup by id or alias and a linear scan by model prefix;
// ProviderRegistryHandle turns a
// literal "provider:model" identifier into a typed capability handle,
// building (and caching) the underlying siumai.Client lazily.
package registry

import (
	"fmt"
	"strings"

	"github.com/taipm/siumai"
)

// ProviderRecord describes one registered backend: enough metadata for
// the registry to route a "provider:model" identifier to a client
// without constructing one up front.
type ProviderRecord struct {
	ID             string
	Name           string
	BaseURL        string
	Capabilities   map[siumai.Capability]bool
	Aliases        []string
	ModelPrefixes  []string
	DefaultModel   string
}

// ProviderFactory builds a siumai.Client for record given a resolved
// model id. Builders register one factory per ProviderRecord.
type ProviderFactory func(record ProviderRecord, model string) (siumai.Client, error)

// ProviderRegistry is the id/alias/prefix index over registered
// backends plus their factories. Lookups are O(1) except
// ByModelPrefix, which is a linear scan over the (small, static) set of
// registered prefixes.
type ProviderRegistry struct {
	byID      map[string]ProviderRecord
	byAlias   map[string]string // alias -> canonical id
	factories map[string]ProviderFactory
	prefixes  []prefixEntry
}

type prefixEntry struct {
	prefix string
	id     string
}

// NewProviderRegistry builds an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		byID:      map[string]ProviderRecord{},
		byAlias:   map[string]string{},
		factories: map[string]ProviderFactory{},
	}
}

// Register adds record with its factory, indexing its aliases and
// model prefixes. A later call with the same ID overwrites the record.
func (r *ProviderRegistry) Register(record ProviderRecord, factory ProviderFactory) {
	r.byID[record.ID] = record
	r.factories[record.ID] = factory
	for _, alias := range record.Aliases {
		r.byAlias[alias] = record.ID
	}
	for _, prefix := range record.ModelPrefixes {
		r.prefixes = append(r.prefixes, prefixEntry{prefix: prefix, id: record.ID})
	}
}

// ByID returns the record registered under id, or ok=false.
func (r *ProviderRegistry) ByID(id string) (ProviderRecord, bool) {
	rec, ok := r.byID[id]
	return rec, ok
}

// Resolve finds a record by canonical id first, then by alias.
func (r *ProviderRegistry) Resolve(idOrAlias string) (ProviderRecord, bool) {
	if rec, ok := r.byID[idOrAlias]; ok {
		return rec, true
	}
	if canonical, ok := r.byAlias[idOrAlias]; ok {
		return r.byID[canonical], true
	}
	return ProviderRecord{}, false
}

// ByModelPrefix returns the first registered record any of whose
// configured prefixes is a prefix of model, preferring longer prefixes
// so e.g. "gpt-4o-mini" doesn't match a shorter "gpt-4" prefix meant for
// a different record ahead of the more specific one.
func (r *ProviderRegistry) ByModelPrefix(model string) (ProviderRecord, bool) {
	best := prefixEntry{}
	for _, e := range r.prefixes {
		if strings.HasPrefix(model, e.prefix) && len(e.prefix) > len(best.prefix) {
			best = e
		}
	}
	if best.id == "" {
		return ProviderRecord{}, false
	}
	return r.byID[best.id], true
}

// Build constructs a client for the record registered under id via its
// factory. Callers normally go through ProviderRegistryHandle instead,
// which adds caching.
func (r *ProviderRegistry) Build(id, model string) (siumai.Client, error) {
	rec, ok := r.Resolve(id)
	if !ok {
		return nil, &siumai.Error{Kind: siumai.KindConfiguration, Message: fmt.Sprintf("unknown provider %q", id), Err: siumai.ErrUnknownModel}
	}
	factory, ok := r.factories[id]
	if !ok {
		factory = r.factories[rec.ID]
	}
	if factory == nil {
		return nil, &siumai.Error{Kind: siumai.KindConfiguration, Provider: rec.ID, Message: "no factory registered"}
	}
	if model == "" {
		model = rec.DefaultModel
	}
	return factory(rec, model)
}
