package enrollment

import "time"

// Enrollment links a student to a course they have joined.
type Enrollment struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student"`
	CourseID   string    `json:"course"`
	EnrolledAt time.Time `json:"enrollmentDate"` // UTC
}
