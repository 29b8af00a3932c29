// Package forms validates submitted HTML forms.
package forms

import (
	"fmt"
	"mime/multipart"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"yatube/internal/models"
)

const (
	msgRequired = "This field is required."
	msgChoice   = "Select a valid choice. That choice is not one of the available choices."
)

// Errors maps a field name to its messages. The key "__all__" holds form wide errors.
type Errors map[string][]string

const NonField = "__all__"

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// First returns the first message for field, or "".
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Merge copies messages from other, typically a store validation error.
func (e Errors) Merge(other map[string][]string) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

// Result is the outcome of validating a form into a value of type T.
type Result[T any] struct {
	Value  T
	Errors Errors
}

func (r Result[T]) Ok() bool {
	return len(r.Errors) == 0
}

// GroupLookup reports whether a group id exists.
type GroupLookup interface {
	GroupExists(id uint) (bool, error)
}

// PostForm is the create and edit form of a post.
type PostForm struct {
	Text    string
	GroupID string
	Image   *multipart.FileHeader
}

// PostInput is a validated PostForm.
type PostInput struct {
	Text    string
	GroupID *uint
	Image   *multipart.FileHeader
}

// Validate checks text, the optional group and the optional image. maxImage
// is the upload cap in bytes, 0 disables the check.
func (f PostForm) Validate(groups GroupLookup, maxImage int64) (Result[PostInput], error) {
	res := Result[PostInput]{Errors: Errors{}}

	text := strings.TrimSpace(f.Text)
	if text == "" {
		res.Errors.Add("text", msgRequired)
	}
	res.Value.Text = f.Text

	if raw := strings.TrimSpace(f.GroupID); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			res.Errors.Add("group", msgChoice)
		} else {
			ok, err := groups.GroupExists(uint(id))
			if err != nil {
				return res, err
			}
			if !ok {
				res.Errors.Add("group", msgChoice)
			} else {
				gid := uint(id)
				res.Value.GroupID = &gid
			}
		}
	}

	if f.Image != nil {
		if msg := checkImage(f.Image, maxImage); msg != "" {
			res.Errors.Add("image", msg)
		} else {
			res.Value.Image = f.Image
		}
	}

	return res, nil
}

func checkImage(h *multipart.FileHeader, maxSize int64) string {
	if !strings.HasPrefix(h.Header.Get("Content-Type"), "image/") {
		return "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	}
	if maxSize > 0 && h.Size > maxSize {
		return fmt.Sprintf("Image must be at most %d MB.", maxSize/(1<<20))
	}
	return ""
}

// CommentForm is the comment box under a post.
type CommentForm struct {
	Text string
}

func (f CommentForm) Validate() Result[string] {
	res := Result[string]{Errors: Errors{}}
	text := strings.TrimSpace(f.Text)
	switch {
	case text == "":
		res.Errors.Add("text", msgRequired)
	case utf8.RuneCountInString(text) > models.CommentMaxLength:
		res.Errors.Add("text", fmt.Sprintf("Ensure this value has at most %d characters.", models.CommentMaxLength))
	}
	res.Value = text
	return res
}

const passwordMinLength = 8

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// SignupForm creates an account.
type SignupForm struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password1 string
	Password2 string
}

// SignupInput is a validated SignupForm. Password is still in clear text.
type SignupInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (f SignupForm) Validate() Result[SignupInput] {
	res := Result[SignupInput]{Errors: Errors{}}

	username := strings.TrimSpace(f.Username)
	switch {
	case username == "":
		res.Errors.Add("username", msgRequired)
	case utf8.RuneCountInString(username) > 150:
		res.Errors.Add("username", "Ensure this value has at most 150 characters.")
	case !usernamePattern.MatchString(username):
		res.Errors.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}

	email := strings.TrimSpace(f.Email)
	if email != "" && !strings.Contains(email, "@") {
		res.Errors.Add("email", "Enter a valid email address.")
	}

	switch {
	case f.Password1 == "":
		res.Errors.Add("password1", msgRequired)
	case utf8.RuneCountInString(f.Password1) < passwordMinLength:
		res.Errors.Add("password1", fmt.Sprintf("This password is too short. It must contain at least %d characters.", passwordMinLength))
	}
	if f.Password2 == "" {
		res.Errors.Add("password2", msgRequired)
	} else if f.Password1 != f.Password2 {
		res.Errors.Add("password2", "The two password fields didn’t match.")
	}

	res.Value = SignupInput{
		Username:  username,
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     email,
		Password:  f.Password1,
	}
	return res
}

// LoginForm authenticates an existing account.
type LoginForm struct {
	Username string
	Password string
}

func (f LoginForm) Validate() Result[LoginForm] {
	res := Result[LoginForm]{Errors: Errors{}}
	f.Username = strings.TrimSpace(f.Username)
	if f.Username == "" {
		res.Errors.Add("username", msgRequired)
	}
	if f.Password == "" {
		res.Errors.Add("password", msgRequired)
	}
	res.Value = f
	return res
}
