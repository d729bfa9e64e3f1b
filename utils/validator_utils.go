package utils

import (
	"regexp"
	"time"
)

// ReservedUsername is the path segment of the profile endpoint and can never be a username
const ReservedUsername = "me"

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// IsValidUsername checks the username alphabet [A-Za-z0-9_.@+-] and the reserved value
func IsValidUsername(username string) bool {
	if username == ReservedUsername {
		return false
	}
	return usernamePattern.MatchString(username)
}

// IsValidSlug checks a category or genre slug
func IsValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// IsValidYear rejects release years in the future
func IsValidYear(year int) bool {
	return year <= time.Now().Year()
}
