package messaging

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	SenderStudent = "student"
	SenderTeacher = "teacher"
)

// MaxMessageLen caps a single message; threads live in one document so
// unbounded text would hit Firestore's document size limit quickly.
const MaxMessageLen = 2000

// Message is one entry in a thread's append-only sequence.
type Message struct {
	ID        string    `firestore:"id" json:"id"`
	Sender    string    `firestore:"sender" json:"sender"`
	Text      string    `firestore:"text" json:"text"`
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
}

// Thread holds the whole conversation between one teacher and one
// student. The document id is "<teacherId>_<studentId>" so first
// contact is a natural idempotent upsert.
type Thread struct {
	ID        string    `firestore:"id" json:"id"`
	TeacherID string    `firestore:"teacherId" json:"teacherId"`
	StudentID string    `firestore:"studentId" json:"studentId"`
	Messages  []Message `firestore:"messages" json:"messages"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

func ThreadID(teacherID, studentID string) string {
	return teacherID + "_" + studentID
}

// Participant reports whether the uid belongs to the thread, and as
// which sender.
func (t *Thread) Participant(uid string) (string, bool) {
	switch uid {
	case t.TeacherID:
		return SenderTeacher, true
	case t.StudentID:
		return SenderStudent, true
	}
	return "", false
}

type AppendInput struct {
	Text string `json:"text"`
}

func (in *AppendInput) Trim() {
	in.Text = strings.TrimSpace(in.Text)
}

func (in AppendInput) Validate() error {
	if in.Text == "" {
		return fmt.Errorf("%w: text is required", ErrBadRequest)
	}
	if utf8.RuneCountInString(in.Text) > MaxMessageLen {
		return fmt.Errorf("%w: text exceeds %d characters", ErrBadRequest, MaxMessageLen)
	}
	return nil
}
