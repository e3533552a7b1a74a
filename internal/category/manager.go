// Package category manages the catalog category lifecycle.
package category

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/saborlab/sabor/internal/apperr"
	"github.com/saborlab/sabor/internal/gateway"
	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/store"
)

// Labels carries the mandatory bilingual labels for a new category.
type Labels struct {
	HE string `json:"he"`
	ES string `json:"es"`
}

// Validate rejects blank labels (after trimming).
func (l Labels) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.HE, validation.Required),
		validation.Field(&l.ES, validation.Required),
	)
}

// Manager implements add/update/delete with the delete cascade.
type Manager struct {
	store *store.Store
}

// NewManager creates a category manager.
func NewManager(s *store.Store) *Manager {
	return &Manager{store: s}
}

// Add creates a category with a fresh id and returns it, so callers (the
// quick-add-during-edit path) can select it immediately. Creation is rejected
// when either label is blank after trimming; no category is produced.
func (m *Manager) Add(labels Labels) (*models.Category, error) {
	labels.HE = strings.TrimSpace(labels.HE)
	labels.ES = strings.TrimSpace(labels.ES)
	if err := labels.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	cat := &models.Category{
		ID: models.NewID(),
		HE: labels.HE,
		ES: labels.ES,
	}
	m.store.AddCategory(cat)
	return cat, nil
}

// Update replaces the category with matching id in place. Unlike Add there is
// no label validation here; blank labels pass through. The asymmetry is
// long-standing observed behavior and is pinned by tests.
func (m *Manager) Update(cat *models.Category) error {
	return m.store.UpdateCategory(cat)
}

// Delete removes the category after user confirmation and clears the
// reference on every recipe that pointed at it; the recipes themselves
// survive. A declined confirmation is a successful no-op.
func (m *Manager) Delete(id string, confirm gateway.Confirmer) error {
	if !confirm.Confirm("Delete category? Recipes will become uncategorized.") {
		return nil
	}
	return m.store.RemoveCategory(id)
}
