package model

type EnrollmentStatus string

const (
	Active   EnrollmentStatus = "active"
	Waitlist EnrollmentStatus = "in_waitlist"
	Expelled EnrollmentStatus = "expelled"
	AdminSt  EnrollmentStatus = "admin"
)

// Valid 报告该值是否为已知的学籍状态
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case Active, Waitlist, Expelled, AdminSt:
		return true
	}
	return false
}

// swagger:model User
type User struct {
	BaseModel
	FirstName        string           `gorm:"size:45;not null" json:"firstName"`
	LastName         string           `gorm:"size:45;not null" json:"lastName"`
	StudentID        *string          `gorm:"size:15;uniqueIndex" json:"studentId"` // 纯管理员为空
	Email            string           `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password         string           `gorm:"size:100;not null" json:"-"`
	EnrollmentStatus EnrollmentStatus `gorm:"size:20;not null;default:'in_waitlist'" json:"enrollmentStatus"`
	IsAdmin          bool             `gorm:"default:false" json:"isAdmin"`
	Courses          []Course         `gorm:"many2many:user_course" json:"courses,omitempty"`
	Scores           []Score          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// StudentNumber 返回学号，未分配时返回空串
func (u *User) StudentNumber() string {
	if u.StudentID == nil {
		return ""
	}
	return *u.StudentID
}
