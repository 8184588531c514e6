package domain_test

import (
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestEnumerationPolicy_Normalize(t *testing.T) {
	p := domain.EnumerationPolicy{}.Normalize()
	assert.Equal(t, domain.DefaultEnumerationPolicy(), p)

	custom := domain.EnumerationPolicy{Ceiling: 50, AdmitPerRound: 3, MaxRounds: 9}.Normalize()
	assert.Equal(t, uint64(50), custom.Ceiling)
	assert.Equal(t, 3, custom.AdmitPerRound)
	assert.Equal(t, uint64(9), custom.MaxRounds)
}

func TestListingKey_IgnoresScheduling(t *testing.T) {
	id := "0123456789abcdef0123456789abcdef"
	a := domain.ListingKey(id, domain.EnumerationPolicy{Ceiling: 100, AdmitPerRound: 1})
	b := domain.ListingKey(id, domain.EnumerationPolicy{Ceiling: 100, AdmitPerRound: 4, MaxRounds: 7})
	c := domain.ListingKey(id, domain.EnumerationPolicy{Ceiling: 200})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "0123456789abcdef-c100", a)
}

func TestListing_Covers(t *testing.T) {
	l := &domain.Listing{Strings: []string{"", "1"}}
	assert.True(t, l.Covers(2))
	assert.False(t, l.Covers(3))

	l.Exhausted = true
	assert.True(t, l.Covers(30))
}
