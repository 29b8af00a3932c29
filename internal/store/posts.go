package store

import (
	"fmt"
	"strings"

	"yatube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postOrder is the default listing order; id breaks pub_date ties.
const postOrder = "pub_date DESC, id DESC"

// PostFilter narrows a post listing. Zero fields do not filter.
type PostFilter struct {
	AuthorID   uint
	GroupID    uint
	FollowerID uint // only posts by authors this user follows
}

func (s *Store) postQuery(f PostFilter) *gorm.DB {
	q := s.db.Model(&models.Post{})
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.GroupID != 0 {
		q = q.Where("group_id = ?", f.GroupID)
	}
	if f.FollowerID != 0 {
		followed := s.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", f.FollowerID)
		q = q.Where("author_id IN (?)", followed)
	}
	return q
}

func (s *Store) CountPosts(f PostFilter) (int64, error) {
	var count int64
	if err := s.postQuery(f).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// ListPosts returns one window of the filtered listing with author and group loaded.
func (s *Store) ListPosts(f PostFilter, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := s.postQuery(f).
		Preload("Author").
		Preload("Group").
		Order(postOrder).
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *Store) GetPost(id uint) (*models.Post, error) {
	var p models.Post
	if err := s.db.Preload("Author").Preload("Group").First(&p, id).Error; err != nil {
		return nil, notFound(err, "get post")
	}
	return &p, nil
}

func (s *Store) validatePost(p *models.Post) error {
	verr := &ValidationError{}
	if strings.TrimSpace(p.Text) == "" {
		verr.add("text", "This field is required.")
	}
	if p.GroupID != nil {
		ok, err := s.GroupExists(*p.GroupID)
		if err != nil {
			return err
		}
		if !ok {
			verr.add("group", "Select a valid choice. That choice is not one of the available choices.")
		}
	}
	return verr.orNil()
}

// CreatePost inserts p. PubDate is set by the database layer and never changes afterwards.
func (s *Store) CreatePost(p *models.Post) error {
	if p.AuthorID == 0 {
		return &ValidationError{Fields: map[string][]string{"author": {"This field is required."}}}
	}
	if err := s.validatePost(p); err != nil {
		return err
	}

	if err := s.db.Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// UpdatePost persists text, group and image of p. Nothing else is written.
func (s *Store) UpdatePost(p *models.Post) error {
	if err := s.validatePost(p); err != nil {
		return err
	}

	res := s.db.Model(&models.Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"text":     p.Text,
		"group_id": p.GroupID,
		"image":    p.Image,
	})
	if res.Error != nil {
		return fmt.Errorf("update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost removes the post and its comments.
func (s *Store) DeletePost(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete post: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
