// Package routepath builds the public paths the handlers redirect to.
package routepath

import (
	"fmt"
	"net/url"
)

const (
	Index   = "/"
	Create  = "/create/"
	Follow  = "/follow/"
	Login   = "/auth/login/"
	Session = "/auth/session/"
	Logout  = "/auth/logout/"
)

// Static names the fixed paths for templates
var Static = map[string]string{
	"index":   Index,
	"create":  Create,
	"follow":  Follow,
	"login":   Login,
	"session": Session,
	"logout":  Logout,
}

func Group(slug string) string {
	return fmt.Sprintf("/group/%v/", url.PathEscape(slug))
}

func Profile(username string) string {
	return fmt.Sprintf("/profile/%v/", url.PathEscape(username))
}

func ProfileFollow(username string) string {
	return Profile(username) + "follow/"
}

func ProfileUnfollow(username string) string {
	return Profile(username) + "unfollow/"
}

func PostDetail(id int64) string {
	return fmt.Sprintf("/posts/%v/", id)
}

func PostEdit(id int64) string {
	return PostDetail(id) + "edit/"
}

func PostComment(id int64) string {
	return PostDetail(id) + "comment/"
}

// LoginNext is the login page returning to next afterwards
func LoginNext(next string) string {
	return Login + "?" + url.Values{"next": {next}}.Encode()
}
