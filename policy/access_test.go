package policy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yamdb-api/models"
)

var (
	anonymous = Caller{}
	user      = Caller{UserID: 1, Username: "alice", Role: models.RoleUser}
	other     = Caller{UserID: 2, Username: "bob", Role: models.RoleUser}
	moderator = Caller{UserID: 3, Username: "mod", Role: models.RoleModerator}
	admin     = Caller{UserID: 4, Username: "root", Role: models.RoleAdmin}
	superuser = Caller{UserID: 5, Username: "su", Role: models.RoleUser, IsSuperuser: true}
)

func TestDecide_Catalog(t *testing.T) {
	tests := []struct {
		name   string
		caller Caller
		method string
		want   Decision
	}{
		{"anonymous read", anonymous, http.MethodGet, Allow},
		{"user read", user, http.MethodGet, Allow},
		{"anonymous create", anonymous, http.MethodPost, DenyUnauthenticated},
		{"user create", user, http.MethodPost, DenyForbidden},
		{"moderator create", moderator, http.MethodPost, DenyForbidden},
		{"admin create", admin, http.MethodPost, Allow},
		{"superuser patch", superuser, http.MethodPatch, Allow},
		{"user delete", user, http.MethodDelete, DenyForbidden},
		{"admin delete", admin, http.MethodDelete, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.caller, tt.method, Catalog, nil))
		})
	}
}

func TestDecide_UserDirectory(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete} {
		assert.Equal(t, DenyUnauthenticated, Decide(anonymous, method, UserDirectory, nil), method)
		assert.Equal(t, DenyForbidden, Decide(user, method, UserDirectory, nil), method)
		assert.Equal(t, DenyForbidden, Decide(moderator, method, UserDirectory, nil), method)
		assert.Equal(t, Allow, Decide(admin, method, UserDirectory, nil), method)
		assert.Equal(t, Allow, Decide(superuser, method, UserDirectory, nil), method)
	}
}

func TestDecide_Profile(t *testing.T) {
	assert.Equal(t, DenyUnauthenticated, Decide(anonymous, http.MethodGet, Profile, nil))
	assert.Equal(t, Allow, Decide(user, http.MethodGet, Profile, nil))
	assert.Equal(t, Allow, Decide(user, http.MethodPatch, Profile, nil))
	assert.Equal(t, DenyMethodNotAllowed, Decide(user, http.MethodDelete, Profile, nil))
	assert.Equal(t, DenyMethodNotAllowed, Decide(admin, http.MethodPost, Profile, nil))
}

func TestDecide_Content(t *testing.T) {
	own := &Resource{AuthorID: user.UserID}

	tests := []struct {
		name     string
		caller   Caller
		method   string
		resource *Resource
		want     Decision
	}{
		{"anonymous list", anonymous, http.MethodGet, nil, Allow},
		{"anonymous retrieve", anonymous, http.MethodGet, own, Allow},
		{"anonymous create", anonymous, http.MethodPost, nil, DenyUnauthenticated},
		{"user create", user, http.MethodPost, nil, Allow},
		{"anonymous patch", anonymous, http.MethodPatch, own, DenyUnauthenticated},
		{"coarse patch passes for any user", other, http.MethodPatch, nil, Allow},
		{"author patch", user, http.MethodPatch, own, Allow},
		{"author delete", user, http.MethodDelete, own, Allow},
		{"unrelated user patch", other, http.MethodPatch, own, DenyForbidden},
		{"unrelated user delete", other, http.MethodDelete, own, DenyForbidden},
		{"moderator delete", moderator, http.MethodDelete, own, Allow},
		{"admin patch", admin, http.MethodPatch, own, Allow},
		{"superuser delete", superuser, http.MethodDelete, own, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.caller, tt.method, Content, tt.resource))
		})
	}
}

func TestDecide_PutIsNeverAllowed(t *testing.T) {
	callers := []Caller{anonymous, user, moderator, admin, superuser}
	classes := []ResourceClass{Catalog, UserDirectory, Profile, Content}

	for _, class := range classes {
		for _, caller := range callers {
			got := Decide(caller, http.MethodPut, class, &Resource{AuthorID: caller.UserID})
			assert.Equal(t, DenyMethodNotAllowed, got, "%s as %q", class, caller.Username)
		}
	}
}

func TestDecide_UnknownClass(t *testing.T) {
	assert.Equal(t, DenyForbidden, Decide(admin, http.MethodGet, ResourceClass(99), nil))
}

func TestCaller(t *testing.T) {
	assert.False(t, anonymous.Authenticated())
	assert.False(t, anonymous.IsAdmin())
	assert.True(t, superuser.IsAdmin())
	assert.True(t, moderator.IsModerator())
	assert.False(t, admin.IsModerator())

	u := &models.User{ID: 9, Username: "zed", Role: models.RoleModerator}
	c := CallerFromUser(u)
	assert.Equal(t, uint(9), c.UserID)
	assert.True(t, c.IsModerator())
}
