package store

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"yatube/internal/models"

	"gorm.io/gorm"
)

const usernameMaxLength = 150

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// CreateUser validates and inserts u. u.Password must already be hashed.
func (s *Store) CreateUser(u *models.User) error {
	u.Username = strings.TrimSpace(u.Username)

	verr := &ValidationError{}
	switch {
	case u.Username == "":
		verr.add("username", "This field is required.")
	case utf8.RuneCountInString(u.Username) > usernameMaxLength:
		verr.add("username", fmt.Sprintf("Ensure this value has at most %d characters.", usernameMaxLength))
	case !usernamePattern.MatchString(u.Username):
		verr.add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	default:
		var count int64
		if err := s.db.Model(&models.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if count > 0 {
			verr.add("username", "A user with that username already exists.")
		}
	}
	if u.Password == "" {
		verr.add("password", "This field is required.")
	}
	if err := verr.orNil(); err != nil {
		return err
	}

	if err := s.db.Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(username string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err, "get user")
	}
	return &u, nil
}

func (s *Store) GetUserByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, notFound(err, "get user")
	}
	return &u, nil
}

// DeleteUser removes the user with their posts, their comments, comments on
// their posts and every follow edge touching them.
func (s *Store) DeleteUser(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		ownPosts := tx.Model(&models.Post{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("post_id IN (?)", ownPosts).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments on posts: %w", err)
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("delete posts: %w", err)
		}
		if err := tx.Where("user_id = ? OR author_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return fmt.Errorf("delete follows: %w", err)
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
