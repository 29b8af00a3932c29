package store

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"yatube/internal/models"

	"gorm.io/gorm/clause"
)

// CreateComment attaches c to its post. c.PostID and c.AuthorID must be set.
func (s *Store) CreateComment(c *models.Comment) error {
	c.Text = strings.TrimSpace(c.Text)

	verr := &ValidationError{}
	switch {
	case c.Text == "":
		verr.add("text", "This field is required.")
	case utf8.RuneCountInString(c.Text) > models.CommentMaxLength:
		verr.add("text", fmt.Sprintf("Ensure this value has at most %d characters.", models.CommentMaxLength))
	}
	if c.AuthorID == 0 {
		verr.add("author", "This field is required.")
	}
	if err := verr.orNil(); err != nil {
		return err
	}

	if _, err := s.GetPost(c.PostID); err != nil {
		return err
	}

	if err := s.db.Omit(clause.Associations).Create(c).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// ListComments returns the comments of a post, newest first.
func (s *Store) ListComments(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
