package forms

import (
	"errors"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGroups map[uint]bool

func (f fakeGroups) GroupExists(id uint) (bool, error) {
	if id == 13 {
		return false, errors.New("db down")
	}
	return f[id], nil
}

func fileHeader(contentType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{Filename: "small.gif", Header: h, Size: size}
}

func TestPostForm_Validate(t *testing.T) {
	groups := fakeGroups{1: true}

	tests := []struct {
		name    string
		form    PostForm
		errKeys []string
	}{
		{"valid without group", PostForm{Text: "Тестовый пост"}, nil},
		{"valid with group", PostForm{Text: "Тестовый пост", GroupID: "1"}, nil},
		{"empty text", PostForm{Text: "  "}, []string{"text"}},
		{"unknown group", PostForm{Text: "x", GroupID: "2"}, []string{"group"}},
		{"garbage group", PostForm{Text: "x", GroupID: "abc"}, []string{"group"}},
		{"not an image", PostForm{Text: "x", Image: fileHeader("text/plain", 10)}, []string{"image"}},
		{"image too large", PostForm{Text: "x", Image: fileHeader("image/gif", 2 << 20)}, []string{"image"}},
		{"valid image", PostForm{Text: "x", Image: fileHeader("image/gif", 100)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.form.Validate(groups, 1<<20)
			require.NoError(t, err)
			assert.Equal(t, len(tt.errKeys) == 0, res.Ok())
			for _, k := range tt.errKeys {
				assert.True(t, res.Errors.Has(k), "missing error for %s", k)
			}
		})
	}
}

func TestPostForm_GroupValue(t *testing.T) {
	res, err := PostForm{Text: "x", GroupID: "1"}.Validate(fakeGroups{1: true}, 0)
	require.NoError(t, err)
	require.NotNil(t, res.Value.GroupID)
	assert.EqualValues(t, 1, *res.Value.GroupID)

	_, err = PostForm{Text: "x", GroupID: "13"}.Validate(fakeGroups{}, 0)
	assert.Error(t, err)
}

func TestCommentForm_Validate(t *testing.T) {
	assert.True(t, CommentForm{Text: " привет "}.Validate().Ok())
	assert.Equal(t, "привет", CommentForm{Text: " привет "}.Validate().Value)
	assert.False(t, CommentForm{Text: ""}.Validate().Ok())
	assert.False(t, CommentForm{Text: strings.Repeat("я", 201)}.Validate().Ok())
}

func TestSignupForm_Validate(t *testing.T) {
	ok := SignupForm{Username: "leo", Password1: "longpassword", Password2: "longpassword"}.Validate()
	assert.True(t, ok.Ok())
	assert.Equal(t, "leo", ok.Value.Username)

	mismatch := SignupForm{Username: "leo", Password1: "longpassword", Password2: "other-password"}.Validate()
	assert.True(t, mismatch.Errors.Has("password2"))

	short := SignupForm{Username: "leo", Password1: "short", Password2: "short"}.Validate()
	assert.True(t, short.Errors.Has("password1"))

	badName := SignupForm{Username: "leo tolstoy", Password1: "longpassword", Password2: "longpassword"}.Validate()
	assert.True(t, badName.Errors.Has("username"))
}

func TestErrors_Merge(t *testing.T) {
	e := Errors{}
	e.Add("text", "a")
	e.Merge(map[string][]string{"text": {"b"}, "group": {"c"}})

	assert.Equal(t, []string{"a", "b"}, e["text"])
	assert.Equal(t, "c", e.First("group"))
	assert.Equal(t, "", e.First("image"))
}
