package model

// swagger:model Course
type Course struct {
	BaseModel
	Name    string `gorm:"size:45;uniqueIndex;not null" json:"name"`
	Teacher string `gorm:"size:45;not null" json:"teacher"`
	Unit    int    `gorm:"not null" json:"unit"` // 学分
	Users   []User `gorm:"many2many:user_course" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}
