package models

import (
	"bytes"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusWorking   TaskStatus = "working"
	StatusCompleted TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusWorking, StatusCompleted:
		return true
	}
	return false
}

// Task represents a task assigned to a single user
type Task struct {
	ID          string       `json:"id" gorm:"primaryKey;size:24" bson:"_id"`
	Title       string       `json:"title" gorm:"not null" bson:"title"`
	Description string       `json:"description" bson:"description,omitempty"`
	AssignedTo  string       `json:"assignedTo" gorm:"column:assigned_to;size:24;not null;index" bson:"assignedTo"`
	Assignee    *UserSummary `json:"assignee,omitempty" gorm:"-" bson:"-"`
	Deadline    time.Time    `json:"deadline" gorm:"not null;index" bson:"deadline"`
	Status      TaskStatus   `json:"status" gorm:"size:16;not null;default:'pending'" bson:"status"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// Prepare assigns an id and the default status before the record is first stored.
func (t *Task) Prepare() {
	if t.ID == "" {
		t.ID = NewID()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
}

// BeforeCreate is the gorm hook running Prepare.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	t.Prepare()
	return nil
}

// Weekdays lists the bucket order of a week view, Monday first.
var Weekdays = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// TasksByDay groups a week of tasks into Monday..Sunday buckets.
// It marshals to a JSON object whose keys keep that order.
type TasksByDay struct {
	days [7][]Task
}

func dayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Add appends t to the bucket for day.
func (w *TasksByDay) Add(day time.Weekday, t Task) {
	i := dayIndex(day)
	w.days[i] = append(w.days[i], t)
}

// Day returns the tasks filed under day.
func (w TasksByDay) Day(day time.Weekday) []Task {
	return w.days[dayIndex(day)]
}

// Len returns the number of tasks across all days.
func (w TasksByDay) Len() int {
	n := 0
	for _, d := range w.days {
		n += len(d)
	}
	return n
}

func (w TasksByDay) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range Weekdays {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(day.String())
		buf.Write(key)
		buf.WriteByte(':')

		tasks := w.days[i]
		if tasks == nil {
			tasks = []Task{}
		}
		val, err := json.Marshal(tasks)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (w *TasksByDay) UnmarshalJSON(data []byte) error {
	var raw map[string][]Task
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*w = TasksByDay{}
	for i, day := range Weekdays {
		w.days[i] = raw[day.String()]
	}
	return nil
}
