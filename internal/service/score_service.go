package service

import (
	"errors"
	"math"

	"student_mgt_backend/internal/model"
	"student_mgt_backend/internal/repository"
	"student_mgt_backend/internal/util"

	"gorm.io/gorm"
)

// ScoreService 成绩录入与绩点计算
type ScoreService struct {
	ScoreRepo *repository.ScoreRepository
	UserRepo  *repository.UserRepository
}

func NewScoreService(scoreRepo *repository.ScoreRepository, userRepo *repository.UserRepository) *ScoreService {
	return &ScoreService{
		ScoreRepo: scoreRepo,
		UserRepo:  userRepo,
	}
}

// UploadScore 录入或更新成绩。每个 (学生, 课程) 至多一条记录，
// 返回值 created 区分新建与覆盖。
func (s *ScoreService) UploadScore(courseID uint, studentID string, score int) (*model.Score, bool, error) {
	student, err := s.UserRepo.FindByStudentID(studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, false, err
	}

	enrolled, err := s.UserRepo.IsEnrolled(student.ID, courseID)
	if err != nil {
		return nil, false, err
	}
	if !enrolled {
		return nil, false, util.ErrNotEnrolled
	}

	grade := model.GradeForScore(score)

	existing, err := s.ScoreRepo.FindByUserAndCourse(student.ID, courseID)
	if err == nil {
		existing.Score = score
		existing.Grade = grade
		if err := s.ScoreRepo.Update(existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	record := &model.Score{
		UserID:   student.ID,
		CourseID: courseID,
		Score:    score,
		Grade:    grade,
	}
	if err := s.ScoreRepo.Create(record); err != nil {
		return nil, false, err
	}
	return record, true, nil
}

// StudentScores 学生全部成绩，带课程信息
func (s *ScoreService) StudentScores(studentID string) ([]model.Score, error) {
	student, err := s.UserRepo.FindByStudentID(studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.ScoreRepo.ListByUser(student.ID)
}

// ComputeCGPA 按学分加权的平均绩点，保留两位小数。
// 只统计已出成绩的课程；没有任何成绩时返回 ErrNoScoresYet。
func (s *ScoreService) ComputeCGPA(studentID string) (float64, error) {
	scores, err := s.StudentScores(studentID)
	if err != nil {
		return 0, err
	}

	var totalPoints, totalUnits int
	for _, sc := range scores {
		point := model.GradePoint(sc.Grade)
		totalPoints += sc.Course.Unit * point
		totalUnits += sc.Course.Unit
	}

	if totalUnits == 0 {
		return 0, util.ErrNoScoresYet
	}

	gpa := float64(totalPoints) / float64(totalUnits)
	return math.Round(gpa*100) / 100, nil
}
