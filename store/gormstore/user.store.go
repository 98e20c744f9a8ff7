package gormstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"learnhub/models"
	"learnhub/store"
)

type userStore struct {
	db *gorm.DB
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	row := userRowFrom(user)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		// The unique index decides email ownership, racing signups
		// included.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return store.ErrDuplicateEmail
		}
		return err
	}
	*user = *row.toModel()
	return nil
}

func (s *userStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	pk, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row userRow
	if err := s.db.WithContext(ctx).First(&row, pk).Error; err != nil {
		return nil, translate(err)
	}
	return row.toModel(), nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	return row.toModel(), nil
}

func (s *userStore) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).Where("google_id = ?", googleID).First(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	return row.toModel(), nil
}

func (s *userStore) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	pk, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row userRow
	if err := s.db.WithContext(ctx).First(&row, pk).Error; err != nil {
		return nil, translate(err)
	}

	if patch.GoogleID != nil {
		row.GoogleID = patch.GoogleID
	}
	if patch.FirstName != nil {
		row.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		row.LastName = *patch.LastName
	}
	if patch.Role != nil {
		row.Role = *patch.Role
	}
	if patch.Bio != nil {
		row.Bio = *patch.Bio
	}
	if patch.Avatar != nil {
		row.Avatar = *patch.Avatar
	}
	if patch.IsActive != nil {
		row.IsActive = *patch.IsActive
	}
	if patch.OAuthProfile != nil {
		row.OAuthProfile = patch.OAuthProfile
	}

	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *userStore) Delete(ctx context.Context, id string) error {
	pk, err := parseID(id)
	if err != nil {
		return err
	}

	var owned int64
	if err := s.db.WithContext(ctx).Model(&courseRow{}).
		Where("instructor_id = ?", pk).Count(&owned).Error; err != nil {
		return err
	}
	if owned > 0 {
		return store.ErrUserHasCourses
	}

	res := s.db.WithContext(ctx).Delete(&userRow{}, pk)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *userStore) List(ctx context.Context) ([]models.User, error) {
	var rows []userRow
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].toModel())
	}
	return users, nil
}

func userRowFrom(user *models.User) *userRow {
	row := &userRow{
		Email:        user.Email,
		Password:     user.Password,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		Bio:          user.Bio,
		Avatar:       user.Avatar,
		IsActive:     user.IsActive,
		OAuthProfile: user.OAuthProfile,
	}
	if user.GoogleID != "" {
		gid := user.GoogleID
		row.GoogleID = &gid
	}
	return row
}

func (r *userRow) toModel() *models.User {
	user := &models.User{
		ID:           formatID(r.ID),
		Email:        r.Email,
		Password:     r.Password,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Role:         r.Role,
		Bio:          r.Bio,
		Avatar:       r.Avatar,
		IsActive:     r.IsActive,
		OAuthProfile: r.OAuthProfile,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.GoogleID != nil {
		user.GoogleID = *r.GoogleID
	}
	return user
}
