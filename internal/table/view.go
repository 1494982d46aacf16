// Package table is the view-model behind the users table page: the collection
// being shown plus the form and progress state around it.
package table

import "github.com/baharkarakas/users-admin/internal/models"

type Column struct {
	Key      string
	Header   string
	Required bool
	Editable bool
	Type     string // input type, "select" renders the states list
}

var Columns = []Column{
	{Key: "id", Header: "Id"},
	{Key: "firstName", Header: "First Name", Required: true, Editable: true, Type: "text"},
	{Key: "lastName", Header: "Last Name", Required: true, Editable: true, Type: "text"},
	{Key: "email", Header: "Email", Required: true, Editable: true, Type: "email"},
	{Key: "state", Header: "State", Editable: true, Type: "select"},
}

type View struct {
	Users   []models.User
	Version int64

	Creating  bool
	EditingID string
	// DeletingID is the row waiting on the delete confirmation prompt.
	DeletingID string
	// Draft holds the values of the open create/edit row.
	Draft  models.User
	Errors map[string]string
	// Banner is an operation-level error shown above the table.
	Banner string

	Username string
	States   []string
	Columns  []Column
}

func New(username string) *View {
	return &View{
		Errors:   map[string]string{},
		Username: username,
		States:   models.States,
		Columns:  Columns,
	}
}

// Replace swaps in c wholesale.
func (v *View) Replace(c models.Collection) {
	v.Users = c.Users
	v.Version = c.Version
}

func (v *View) StartCreate() {
	v.Cancel()
	v.Creating = true
}

// StartEdit opens the edit row for id; it reports false when id is not in the table.
func (v *View) StartEdit(id string) bool {
	v.Cancel()
	for _, u := range v.Users {
		if u.ID == id {
			v.EditingID = id
			v.Draft = u
			return true
		}
	}
	return false
}

func (v *View) AskDelete(id string) bool {
	v.Cancel()
	for _, u := range v.Users {
		if u.ID == id {
			v.DeletingID = id
			v.Draft = u
			return true
		}
	}
	return false
}

// Fail keeps the open form with draft and shows errs beside its fields.
func (v *View) Fail(draft models.User, errs map[string]string) {
	v.Draft = draft
	v.Errors = errs
}

// Cancel closes any open row and drops validation errors.
func (v *View) Cancel() {
	v.Creating = false
	v.EditingID = ""
	v.DeletingID = ""
	v.Draft = models.User{}
	v.Errors = map[string]string{}
}

// Field returns the draft value for a column key.
func (v *View) Field(key string) string {
	return Value(v.Draft, key)
}

func Value(u models.User, key string) string {
	switch key {
	case "id":
		return u.ID
	case "firstName":
		return u.FirstName
	case "lastName":
		return u.LastName
	case "email":
		return u.Email
	case "state":
		return u.State
	}
	return ""
}
