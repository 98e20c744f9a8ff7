package gormstore

import (
	"context"

	"gorm.io/gorm"

	"learnhub/models"
	"learnhub/store"
)

type courseStore struct {
	db *gorm.DB
}

func (s *courseStore) Create(ctx context.Context, course *models.Course) error {
	instructorPK, err := parseID(course.InstructorID)
	if err != nil {
		return err
	}
	if course.Level == "" {
		course.Level = models.LevelBeginner
	}

	// The instructor reference must hold for every caller, not just the
	// HTTP path that pre-resolves it.
	var exists int64
	if err := s.db.WithContext(ctx).Model(&userRow{}).
		Where("id = ?", instructorPK).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return store.ErrNotFound
	}

	row := &courseRow{
		Title:         course.Title,
		Description:   course.Description,
		Thumbnail:     course.Thumbnail,
		Category:      course.Category,
		InstructorID:  instructorPK,
		Price:         course.Price,
		OriginalPrice: course.OriginalPrice,
		Duration:      course.Duration,
		Level:         course.Level,
		IsPublished:   course.IsPublished,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*course = *row.toModel()
	return nil
}

func (s *courseStore) FindByID(ctx context.Context, id string) (*models.Course, error) {
	pk, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row courseRow
	if err := s.db.WithContext(ctx).First(&row, pk).Error; err != nil {
		return nil, translate(err)
	}
	return row.toModel(), nil
}

func (s *courseStore) FindByIDWithVideos(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pk, _ := parseID(id)
	var rows []videoRow
	if err := s.db.WithContext(ctx).
		Where("course_id = ?", pk).
		Order("lesson_order asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	course.Videos = make([]models.Video, 0, len(rows))
	for i := range rows {
		course.Videos = append(course.Videos, *rows[i].toModel())
	}
	return course, nil
}

func (s *courseStore) ListPublished(ctx context.Context, page, limit int) (store.CoursePage, error) {
	result := store.CoursePage{Page: page, Limit: limit}

	query := s.db.WithContext(ctx).Model(&courseRow{}).Where("is_published = ?", true)
	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	var rows []courseRow
	offset := (page - 1) * limit
	if err := query.
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return result, err
	}

	result.Items = make([]models.Course, 0, len(rows))
	for i := range rows {
		result.Items = append(result.Items, *rows[i].toModel())
	}
	return result, nil
}

func (s *courseStore) ListByCategory(ctx context.Context, category string) ([]models.Course, error) {
	var rows []courseRow
	err := s.db.WithContext(ctx).
		Where("category = ? AND is_published = ?", category, true).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(rows))
	for i := range rows {
		courses = append(courses, *rows[i].toModel())
	}
	return courses, nil
}

func (s *courseStore) Update(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error) {
	pk, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row courseRow
	if err := s.db.WithContext(ctx).First(&row, pk).Error; err != nil {
		return nil, translate(err)
	}

	if patch.Title != nil {
		row.Title = *patch.Title
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.Thumbnail != nil {
		row.Thumbnail = *patch.Thumbnail
	}
	if patch.Category != nil {
		row.Category = *patch.Category
	}
	if patch.Price != nil {
		row.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		row.OriginalPrice = *patch.OriginalPrice
	}
	if patch.Duration != nil {
		row.Duration = *patch.Duration
	}
	if patch.Level != nil {
		row.Level = *patch.Level
	}
	if patch.IsPublished != nil {
		row.IsPublished = *patch.IsPublished
	}

	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *courseStore) Delete(ctx context.Context, id string) error {
	pk, err := parseID(id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row courseRow
		if err := tx.First(&row, pk).Error; err != nil {
			return translate(err)
		}
		// Owned videos go first so a failure never strands them.
		if err := tx.Where("course_id = ?", pk).Delete(&videoRow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&courseRow{}, pk).Error
	})
}

func (s *courseStore) CountPublished(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&courseRow{}).
		Where("is_published = ?", true).Count(&total).Error
	return total, err
}

func (r *courseRow) toModel() *models.Course {
	return &models.Course{
		ID:            formatID(r.ID),
		Title:         r.Title,
		Description:   r.Description,
		Thumbnail:     r.Thumbnail,
		Category:      r.Category,
		InstructorID:  formatID(r.InstructorID),
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Duration:      r.Duration,
		Level:         r.Level,
		IsPublished:   r.IsPublished,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
