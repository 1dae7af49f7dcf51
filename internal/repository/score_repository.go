package repository

import (
	"student_mgt_backend/internal/model"

	"gorm.io/gorm"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) Create(score *model.Score) error {
	return r.DB.Create(score).Error
}

func (r *ScoreRepository) Update(score *model.Score) error {
	return r.DB.Save(score).Error
}

func (r *ScoreRepository) FindByUserAndCourse(userID, courseID uint) (*model.Score, error) {
	var score model.Score
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&score).Error
	return &score, err
}

// ListByUser 学生的全部成绩，带课程信息（学分用于绩点加权）
func (r *ScoreRepository) ListByUser(userID uint) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Preload("Course").Where("user_id = ?", userID).Order("course_id").Find(&scores).Error
	return scores, err
}
