package model

// swagger:model Score
type Score struct {
	BaseModel
	UserID   uint   `gorm:"not null;uniqueIndex:idx_user_course" json:"userId"`
	CourseID uint   `gorm:"not null;uniqueIndex:idx_user_course" json:"courseId"`
	Score    int    `gorm:"not null" json:"score"`
	Grade    string `gorm:"size:1;not null" json:"grade"`
	Course   Course `json:"course,omitempty"`
}

func (Score) TableName() string {
	return "scores"
}

// GradeForScore 按固定分段把分数换算成等级
func GradeForScore(score int) string {
	switch {
	case score >= 70:
		return "A"
	case score >= 60:
		return "B"
	case score >= 50:
		return "C"
	case score >= 45:
		return "D"
	case score >= 40:
		return "E"
	default:
		return "F"
	}
}

// GradePoint 等级对应的绩点
func GradePoint(grade string) int {
	switch grade {
	case "A":
		return 5
	case "B":
		return 4
	case "C":
		return 3
	case "D":
		return 2
	case "E":
		return 1
	default:
		return 0
	}
}
