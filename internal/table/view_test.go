package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baharkarakas/users-admin/internal/models"
)

func TestView_ReplaceSwapsCollection(t *testing.T) {
	v := New("admin")
	assert.Empty(t, v.Users)

	v.Replace(models.Collection{Users: models.SampleUsers(), Version: 2})
	assert.Len(t, v.Users, len(models.SampleUsers()))
	assert.Equal(t, int64(2), v.Version)

	v.Replace(models.Collection{Users: []models.User{}, Version: 3})
	assert.Empty(t, v.Users)
}

func TestView_EditAndErrors(t *testing.T) {
	v := New("admin")
	v.Replace(models.Collection{Users: models.SampleUsers()})

	assert.False(t, v.StartEdit("missing"))
	assert.True(t, v.StartEdit("5ymtrc"))
	assert.Equal(t, "Henry", v.Field("firstName"))

	v.Fail(models.User{ID: "5ymtrc"}, map[string]string{"firstName": "first name is required", "email": "email is required"})
	assert.Equal(t, "email is required", v.Errors["email"])

	v.Cancel()
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.EditingID)
}

func TestView_CreateAndDeleteAreExclusive(t *testing.T) {
	v := New("admin")
	v.Replace(models.Collection{Users: models.SampleUsers()})

	v.StartCreate()
	assert.True(t, v.Creating)
	assert.True(t, v.AskDelete("9s41rp"))
	assert.False(t, v.Creating)
	assert.Equal(t, "9s41rp", v.DeletingID)
	assert.Equal(t, "Kelvin", v.Field("firstName"))
}
