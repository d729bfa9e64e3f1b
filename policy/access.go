// Package policy decides whether a caller may perform a method on a class of resource.
//
// Every rule lives in one table indexed by resource class; Decide is a pure
// function of its arguments and never touches storage.
package policy

import (
	"net/http"

	"github.com/yamdb-api/models"
)

// ResourceClass groups resources that share the same access rules
type ResourceClass int

const (
	// Catalog covers categories, genres and titles
	Catalog ResourceClass = iota
	// UserDirectory covers the administrative user endpoints
	UserDirectory
	// Profile is the caller's own user record
	Profile
	// Content covers reviews and comments
	Content
)

func (c ResourceClass) String() string {
	switch c {
	case Catalog:
		return "catalog"
	case UserDirectory:
		return "user-directory"
	case Profile:
		return "profile"
	case Content:
		return "content"
	}
	return "unknown"
}

// Requirement is what a caller must satisfy for one kind of operation
type Requirement int

const (
	Anyone Requirement = iota
	Authenticated
	AdminOnly
	AuthorOrStaff // the resource's author, a moderator, an admin or a superuser
	NotAllowed
)

type rule struct {
	Read   Requirement
	Create Requirement
	Update Requirement
	Delete Requirement
}

var rules = map[ResourceClass]rule{
	Catalog:       {Read: Anyone, Create: AdminOnly, Update: AdminOnly, Delete: AdminOnly},
	UserDirectory: {Read: AdminOnly, Create: AdminOnly, Update: AdminOnly, Delete: AdminOnly},
	Profile:       {Read: Authenticated, Create: NotAllowed, Update: Authenticated, Delete: NotAllowed},
	Content:       {Read: Anyone, Create: Authenticated, Update: AuthorOrStaff, Delete: AuthorOrStaff},
}

// Decision is the outcome of Decide
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
	DenyMethodNotAllowed
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny-unauthenticated"
	case DenyForbidden:
		return "deny-forbidden"
	case DenyMethodNotAllowed:
		return "deny-method-not-allowed"
	}
	return "unknown"
}

// Allowed reports whether d lets the request through
func (d Decision) Allowed() bool {
	return d == Allow
}

// Caller is the identity a request runs as. The zero value is anonymous.
type Caller struct {
	UserID      uint
	Username    string
	Role        models.Role
	IsSuperuser bool
}

// CallerFromUser builds the caller identity of an authenticated user
func CallerFromUser(user *models.User) Caller {
	return Caller{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
	}
}

// Authenticated is false for the anonymous caller
func (c Caller) Authenticated() bool {
	return c.UserID != 0
}

// IsAdmin is true for admins and superusers
func (c Caller) IsAdmin() bool {
	return c.Authenticated() && (c.Role == models.RoleAdmin || c.IsSuperuser)
}

// IsModerator reports the moderator role
func (c Caller) IsModerator() bool {
	return c.Authenticated() && c.Role == models.RoleModerator
}

// Resource carries the object-level facts a decision may need
type Resource struct {
	AuthorID uint
}

// IsSafeMethod reports read-only HTTP methods
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Decide evaluates the rule for class and method.
//
// With a nil resource only the coarse check runs: AuthorOrStaff then admits any
// authenticated caller, and the caller must decide again once the object is loaded.
// PUT is never allowed, whatever the class or caller.
func Decide(caller Caller, method string, class ResourceClass, resource *Resource) Decision {
	r, ok := rules[class]
	if !ok {
		return DenyForbidden
	}

	var req Requirement
	switch {
	case IsSafeMethod(method):
		req = r.Read
	case method == http.MethodPost:
		req = r.Create
	case method == http.MethodPatch:
		req = r.Update
	case method == http.MethodDelete:
		req = r.Delete
	default:
		return DenyMethodNotAllowed
	}

	return evaluate(req, caller, resource)
}

func evaluate(req Requirement, caller Caller, resource *Resource) Decision {
	switch req {
	case Anyone:
		return Allow
	case NotAllowed:
		return DenyMethodNotAllowed
	}

	if !caller.Authenticated() {
		return DenyUnauthenticated
	}

	switch req {
	case Authenticated:
		return Allow
	case AdminOnly:
		if caller.IsAdmin() {
			return Allow
		}
		return DenyForbidden
	case AuthorOrStaff:
		if resource == nil || caller.UserID == resource.AuthorID || caller.IsModerator() || caller.IsAdmin() {
			return Allow
		}
		return DenyForbidden
	}
	return DenyForbidden
}
