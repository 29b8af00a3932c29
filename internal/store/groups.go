package store

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"yatube/internal/models"

	"gorm.io/gorm"
)

const (
	groupTitleMaxLength = 200
	groupSlugMaxLength  = 50
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

func (s *Store) CreateGroup(g *models.Group) error {
	g.Title = strings.TrimSpace(g.Title)
	g.Slug = strings.TrimSpace(g.Slug)

	verr := &ValidationError{}
	switch {
	case g.Title == "":
		verr.add("title", "This field is required.")
	case utf8.RuneCountInString(g.Title) > groupTitleMaxLength:
		verr.add("title", fmt.Sprintf("Ensure this value has at most %d characters.", groupTitleMaxLength))
	}
	switch {
	case g.Slug == "":
		verr.add("slug", "This field is required.")
	case len(g.Slug) > groupSlugMaxLength:
		verr.add("slug", fmt.Sprintf("Ensure this value has at most %d characters.", groupSlugMaxLength))
	case !slugPattern.MatchString(g.Slug):
		verr.add("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
	default:
		var count int64
		if err := s.db.Model(&models.Group{}).Where("slug = ?", g.Slug).Count(&count).Error; err != nil {
			return fmt.Errorf("check slug: %w", err)
		}
		if count > 0 {
			verr.add("slug", "Group with this slug already exists.")
		}
	}
	if err := verr.orNil(); err != nil {
		return err
	}

	if err := s.db.Create(g).Error; err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

func (s *Store) GetGroup(slug string) (*models.Group, error) {
	var g models.Group
	if err := s.db.Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, notFound(err, "get group")
	}
	return &g, nil
}

func (s *Store) GetGroupByID(id uint) (*models.Group, error) {
	var g models.Group
	if err := s.db.First(&g, id).Error; err != nil {
		return nil, notFound(err, "get group")
	}
	return &g, nil
}

// ListGroups returns every group ordered by title.
func (s *Store) ListGroups() ([]models.Group, error) {
	var groups []models.Group
	if err := s.db.Order("title ASC, id ASC").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (s *Store) GroupExists(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Group{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check group: %w", err)
	}
	return count > 0, nil
}

// DeleteGroup removes the group and detaches its posts.
func (s *Store) DeleteGroup(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("group_id = ?", id).Update("group_id", nil).Error; err != nil {
			return fmt.Errorf("detach posts: %w", err)
		}
		res := tx.Delete(&models.Group{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete group: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
