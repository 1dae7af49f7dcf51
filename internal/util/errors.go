package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrCourseExists       = errors.New("course name already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("new password and confirm password do not match")
	ErrStudentExpelled    = errors.New("student has been expelled")
	ErrNotEnrolled        = errors.New("student not enrolled in this course")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrNoScoresYet        = errors.New("score not uploaded yet")
)
