package resolution

import (
	"fmt"
	"strings"

	"github.com/temirov/latent-size/internal/apperrors"
)

const (
	errorFormatEmptyName     = "%w: model entry %d has no name"
	errorFormatDuplicateName = "%w: model %q is defined twice"
	errorFormatNoEntries     = "%w: model %q has no resolutions"
	errorFormatBadEntry      = "%w: model %q entry %d: %v"
)

// ModelEntry declares the resolutions of one model in selector form.
type ModelEntry struct {
	Name string `mapstructure:"name"`
	// Resolutions are ordered selectors such as "1024x1024 (1:1 Square)".
	Resolutions []string `mapstructure:"resolutions"`
	// ArbitraryDimensions marks models that accept any size and are never aligned to 64.
	ArbitraryDimensions bool `mapstructure:"arbitrary_dimensions"`
}

// Table is an immutable, ordered mapping from model name to resolution descriptors.
// It is safe for concurrent use because it is never written after construction.
type Table struct {
	modelNames          []string
	descriptorsByModel  map[string][]Descriptor
	arbitraryDimensions map[string]struct{}
}

// NewTable validates the entries and builds a table preserving their order.
func NewTable(entries ...ModelEntry) (*Table, error) {
	table := &Table{
		modelNames:          make([]string, 0, len(entries)),
		descriptorsByModel:  make(map[string][]Descriptor, len(entries)),
		arbitraryDimensions: make(map[string]struct{}),
	}
	for entryIndex, entry := range entries {
		modelName := strings.TrimSpace(entry.Name)
		if modelName == "" {
			return nil, fmt.Errorf(errorFormatEmptyName, apperrors.ErrInvalidTable, entryIndex)
		}
		if _, duplicate := table.descriptorsByModel[modelName]; duplicate {
			return nil, fmt.Errorf(errorFormatDuplicateName, apperrors.ErrInvalidTable, modelName)
		}
		if len(entry.Resolutions) == 0 {
			return nil, fmt.Errorf(errorFormatNoEntries, apperrors.ErrInvalidTable, modelName)
		}
		descriptors := make([]Descriptor, 0, len(entry.Resolutions))
		for selectorIndex, selector := range entry.Resolutions {
			descriptor, parseError := ParseDescriptor(selector)
			if parseError != nil {
				return nil, fmt.Errorf(errorFormatBadEntry, apperrors.ErrInvalidTable, modelName, selectorIndex, parseError)
			}
			descriptors = append(descriptors, descriptor)
		}
		table.modelNames = append(table.modelNames, modelName)
		table.descriptorsByModel[modelName] = descriptors
		if entry.ArbitraryDimensions {
			table.arbitraryDimensions[modelName] = struct{}{}
		}
	}
	return table, nil
}

// MustNewTable is NewTable for tables known at compile time. It panics on invalid entries.
func MustNewTable(entries ...ModelEntry) *Table {
	table, tableError := NewTable(entries...)
	if tableError != nil {
		panic(tableError)
	}
	return table
}

// Models returns the model names in declaration order.
func (table *Table) Models() []string {
	return append([]string(nil), table.modelNames...)
}

// Descriptors returns a copy of the model's descriptors and whether the model is known.
func (table *Table) Descriptors(modelName string) ([]Descriptor, bool) {
	descriptors, found := table.descriptorsByModel[modelName]
	if !found || len(descriptors) == 0 {
		return nil, false
	}
	return append([]Descriptor(nil), descriptors...), true
}

// Selectors returns the model's descriptors in selector form.
func (table *Table) Selectors(modelName string) ([]string, bool) {
	descriptors, found := table.descriptorsByModel[modelName]
	if !found || len(descriptors) == 0 {
		return nil, false
	}
	selectors := make([]string, len(descriptors))
	for index, descriptor := range descriptors {
		selectors[index] = descriptor.String()
	}
	return selectors, true
}

// AcceptsArbitraryDimensions reports whether the model is exempt from 64-pixel alignment.
func (table *Table) AcceptsArbitraryDimensions(modelName string) bool {
	_, exempt := table.arbitraryDimensions[modelName]
	return exempt
}

// descriptors returns the stored slice without copying; callers must not modify it.
func (table *Table) descriptors(modelName string) ([]Descriptor, bool) {
	descriptors, found := table.descriptorsByModel[modelName]
	return descriptors, found && len(descriptors) > 0
}
