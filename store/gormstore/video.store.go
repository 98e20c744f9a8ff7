package gormstore

import (
	"context"

	"gorm.io/gorm"

	"learnhub/models"
	"learnhub/store"
)

type videoStore struct {
	db *gorm.DB
}

func (s *videoStore) Create(ctx context.Context, video *models.Video) error {
	coursePK, err := parseID(video.CourseID)
	if err != nil {
		return err
	}
	// The caller already resolved the course, but the insert must not
	// outlive a concurrent course delete silently.
	var exists int64
	if err := s.db.WithContext(ctx).Model(&courseRow{}).
		Where("id = ?", coursePK).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return store.ErrNotFound
	}

	row := &videoRow{
		CourseID:    coursePK,
		Title:       video.Title,
		Description: video.Description,
		VideoURL:    video.VideoURL,
		Thumbnail:   video.Thumbnail,
		Duration:    video.Duration,
		Order:       video.Order,
		IsPublished: video.IsPublished,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*video = *row.toModel()
	return nil
}

func (s *videoStore) FindByID(ctx context.Context, id string) (*models.Video, error) {
	pk, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row videoRow
	if err := s.db.WithContext(ctx).First(&row, pk).Error; err != nil {
		return nil, translate(err)
	}
	return row.toModel(), nil
}

func (s *videoStore) ViewByID(ctx context.Context, id string) (*models.Video, error) {
	pk, err := parseID(id)
	if err != nil {
		return nil, err
	}

	// Single UPDATE so concurrent fetches never lose an increment.
	res := s.db.WithContext(ctx).Model(&videoRow{}).
		Where("id = ?", pk).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}

	var row videoRow
	if err := s.db.WithContext(ctx).First(&row, pk).Error; err != nil {
		return nil, translate(err)
	}
	return row.toModel(), nil
}

func (s *videoStore) ListByCourse(ctx context.Context, courseID string) ([]models.Video, error) {
	pk, err := parseID(courseID)
	if err != nil {
		// Unknown and malformed course ids both list as empty.
		return []models.Video{}, nil
	}
	var rows []videoRow
	err = s.db.WithContext(ctx).
		Where("course_id = ? AND is_published = ?", pk, true).
		Order("lesson_order asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	videos := make([]models.Video, 0, len(rows))
	for i := range rows {
		videos = append(videos, *rows[i].toModel())
	}
	return videos, nil
}

func (s *videoStore) Update(ctx context.Context, id string, patch models.VideoPatch) (*models.Video, error) {
	pk, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row videoRow
	if err := s.db.WithContext(ctx).First(&row, pk).Error; err != nil {
		return nil, translate(err)
	}

	if patch.Title != nil {
		row.Title = *patch.Title
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.VideoURL != nil {
		row.VideoURL = *patch.VideoURL
	}
	if patch.Thumbnail != nil {
		row.Thumbnail = *patch.Thumbnail
	}
	if patch.Duration != nil {
		row.Duration = *patch.Duration
	}
	if patch.Order != nil {
		row.Order = *patch.Order
	}
	if patch.IsPublished != nil {
		row.IsPublished = *patch.IsPublished
	}

	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *videoStore) Delete(ctx context.Context, id string) error {
	pk, err := parseID(id)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&videoRow{}, pk)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *videoStore) TotalViews(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&videoRow{}).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	return total, err
}

func (r *videoRow) toModel() *models.Video {
	return &models.Video{
		ID:          formatID(r.ID),
		CourseID:    formatID(r.CourseID),
		Title:       r.Title,
		Description: r.Description,
		VideoURL:    r.VideoURL,
		Thumbnail:   r.Thumbnail,
		Duration:    r.Duration,
		Order:       r.Order,
		IsPublished: r.IsPublished,
		Views:       r.Views,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
