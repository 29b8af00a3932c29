// Package policy decides who may perform which action on a post.
//
// Every protected action resolves to one of three outcomes. Handlers map the
// outcome to a response: Allow runs the action, DenyRedirectLogin sends the
// visitor to the login page with a next parameter, DenyRedirectResource sends
// them back to the post they tried to change.
package policy

import (
	"fmt"
	"net/url"
	"strings"
)

type Action int

const (
	ViewPosts Action = iota
	CreatePost
	EditPost
	AddComment
	ViewFollowFeed
	ToggleFollow
)

var actionNames = map[Action]string{
	ViewPosts:      "view_posts",
	CreatePost:     "create_post",
	EditPost:       "edit_post",
	AddComment:     "add_comment",
	ViewFollowFeed: "view_follow_feed",
	ToggleFollow:   "toggle_follow",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("action(%d)", int(a))
}

type Outcome int

const (
	Allow Outcome = iota
	DenyRedirectLogin
	DenyRedirectResource
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case DenyRedirectLogin:
		return "deny_redirect_login"
	case DenyRedirectResource:
		return "deny_redirect_resource"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Actor is whoever issues the request. A guest has ID 0.
type Actor struct {
	ID            uint
	Authenticated bool
}

// Guest is the anonymous actor.
var Guest = Actor{}

// IsOwner reports whether actorID owns a resource owned by ownerID.
// Guests own nothing.
func IsOwner(actorID, ownerID uint) bool {
	return actorID != 0 && actorID == ownerID
}

// RequiresAuth reports whether guests are turned away from action.
func RequiresAuth(action Action) bool {
	return action != ViewPosts
}

// Decide applies the access table. isAuthor only matters for EditPost.
func Decide(action Action, authenticated, isAuthor bool) Outcome {
	if !RequiresAuth(action) {
		return Allow
	}
	if !authenticated {
		return DenyRedirectLogin
	}
	if action == EditPost && !isAuthor {
		return DenyRedirectResource
	}
	return Allow
}

// DecideFor evaluates action for actor against a resource owned by ownerID.
// Pass ownerID 0 for actions without an owned resource.
func DecideFor(action Action, actor Actor, ownerID uint) Outcome {
	return Decide(action, actor.Authenticated, IsOwner(actor.ID, ownerID))
}

// LoginRedirect builds loginURL?next=<next>. Slashes in next stay readable.
func LoginRedirect(loginURL, next string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
	return loginURL + "?next=" + escaped
}

// PostPath is the canonical detail path of a post.
func PostPath(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

// Target returns where a denied request goes, or "" for Allow.
func Target(o Outcome, loginURL, requested string, postID uint) string {
	switch o {
	case DenyRedirectLogin:
		return LoginRedirect(loginURL, requested)
	case DenyRedirectResource:
		return PostPath(postID)
	}
	return ""
}
