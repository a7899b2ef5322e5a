package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFromColumns(t *testing.T) {
	o, err := FromColumns(strPtr("e1"), nil)
	require.NoError(t, err)
	assert.True(t, o.IsExpert())
	assert.Equal(t, "e1", o.ID())

	o, err = FromColumns(nil, strPtr("o1"))
	require.NoError(t, err)
	assert.True(t, o.IsOrganization())

	_, err = FromColumns(strPtr("e1"), strPtr("o1"))
	assert.ErrorIs(t, err, ErrAmbiguousOwner)

	_, err = FromColumns(nil, nil)
	assert.ErrorIs(t, err, ErrNoOwner)

	_, err = FromColumns(strPtr(""), nil)
	assert.ErrorIs(t, err, ErrNoOwner)
}

func TestColumnsRoundTrip(t *testing.T) {
	for _, o := range []Owner{Expert("e1"), Organization("o1")} {
		e, org := o.Columns()
		back, err := FromColumns(e, org)
		require.NoError(t, err)
		assert.Equal(t, o, back)
	}
}

func TestFromRole(t *testing.T) {
	o, err := FromRole("expert", "e1")
	require.NoError(t, err)
	assert.Equal(t, Expert("e1"), o)

	o, err = FromRole("organization", "o1")
	require.NoError(t, err)
	assert.Equal(t, "organization_id", o.ColumnName())

	_, err = FromRole("user", "u1")
	assert.ErrorIs(t, err, ErrNotProvider)
}

func TestMatchesAndLockKey(t *testing.T) {
	e := Expert("abc")
	assert.True(t, e.Matches("abc"))
	assert.False(t, e.Matches(""))
	assert.False(t, Owner{}.Matches(""))
	assert.Equal(t, "expert:abc", e.LockKey())
	assert.NotEqual(t, Organization("abc").LockKey(), e.LockKey())
	assert.True(t, Owner{}.IsZero())
}
