package seed

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/estately/internal/canonid"
	"github.com/dmitrijs2005/estately/internal/common"
	"github.com/dmitrijs2005/estately/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPublished_ReturnsAllDemoListings(t *testing.T) {
	s := NewSource()
	props := s.ListPublished()
	require.Len(t, props, 12)

	for _, p := range props {
		assert.True(t, p.Published)
		assert.True(t, canonid.IsCanonical(p.ID), "seed id %q must be canonical", p.ID)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Images)
	}
}

func TestGet_MatchesUnderNormalization(t *testing.T) {
	s := NewSource()

	// A raw legacy key resolves to the same record as its canonical form.
	byRaw, err := s.Get("1")
	require.NoError(t, err)

	byCanonical, err := s.Get(canonid.Normalize("1"))
	require.NoError(t, err)
	assert.Equal(t, byRaw.ID, byCanonical.ID)
}

func TestGet_NotFound(t *testing.T) {
	s := NewSource()
	_, err := s.Get("999")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestSource_IsReadOnly(t *testing.T) {
	s := NewSource()

	err := s.Insert(models.Property{Title: "x"})
	assert.True(t, errors.Is(err, common.ErrorReadOnly))

	err = s.Delete("1")
	assert.True(t, errors.Is(err, common.ErrorReadOnly))

	// Rejected writes leave the collection untouched.
	assert.Len(t, s.ListPublished(), 12)
}

func TestListPublished_ReturnsCopies(t *testing.T) {
	s := NewSource()
	first := s.ListPublished()
	first[0].Title = "mutated"

	again := s.ListPublished()
	assert.NotEqual(t, "mutated", again[0].Title)
}
