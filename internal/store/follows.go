package store

import (
	"fmt"

	"yatube/internal/models"

	"gorm.io/gorm/clause"
)

// Follow subscribes user to author. Repeating it is a no-op.
func (s *Store) Follow(userID, authorID uint) error {
	if userID == authorID {
		return ErrSelfFollow
	}
	if _, err := s.GetUserByID(authorID); err != nil {
		return err
	}

	f := models.Follow{UserID: userID, AuthorID: authorID}
	err := s.db.Omit(clause.Associations).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		FirstOrCreate(&f).Error
	if err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	return nil
}

// Unfollow removes the edge if present.
func (s *Store) Unfollow(userID, authorID uint) error {
	err := s.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	return nil
}

func (s *Store) IsFollowing(userID, authorID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return count > 0, nil
}
