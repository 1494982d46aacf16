package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Sanitize(t *testing.T) {
	u := User{FirstName: "  Ada ", LastName: "\tLovelace", Email: " ada@example.com ", State: " Ohio"}
	u.Sanitize()
	assert.Equal(t, User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", State: "Ohio"}, u)
}

func TestCollection_FindAndClone(t *testing.T) {
	c := Collection{Users: SampleUsers(), Version: 3}

	u, ok := c.Find("5ymtrc")
	require.True(t, ok)
	assert.Equal(t, "Henry", u.FirstName)
	assert.Equal(t, -1, c.IndexOf("missing"))

	cl := c.Clone()
	cl.Users[0].FirstName = "changed"
	assert.NotEqual(t, "changed", c.Users[0].FirstName)
	assert.Equal(t, c.Version, cl.Version)
}

func TestSampleUsers_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, u := range SampleUsers() {
		require.False(t, seen[u.ID], "duplicate id %s", u.ID)
		seen[u.ID] = true
	}
}
