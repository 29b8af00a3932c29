package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPost_String(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short", "Тест", "Тест"},
		{"exact", strings.Repeat("a", 15), strings.Repeat("a", 15)},
		{"long cyrillic", "Тестовая группа для проверки", "Тестовая группа"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Post{Text: tt.text}.String())
		})
	}
}

func TestComment_String(t *testing.T) {
	assert.Equal(t, "Очень интересны", Comment{Text: "Очень интересный пост"}.String())
}

func TestGroup_String(t *testing.T) {
	assert.Equal(t, "Тестовая группа", Group{Title: "Тестовая группа", Slug: "test"}.String())
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Leo Tolstoy", User{Username: "leo", FirstName: "Leo", LastName: "Tolstoy"}.FullName())
	assert.Equal(t, "leo", User{Username: "leo"}.FullName())
}
