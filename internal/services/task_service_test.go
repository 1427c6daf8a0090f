package services

import (
	"context"
	"testing"
	"time"

	"team-task-api/internal/models"
	"team-task-api/internal/policy"
	"team-task-api/internal/repository"
	"team-task-api/internal/testutil"

	"github.com/stretchr/testify/suite"
)

// wednesday is the fixed "now" of the suite: Wednesday 2024-03-13 noon UTC.
var wednesday = time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)

type TaskServiceSuite struct {
	suite.Suite

	store  repository.Store
	auth   *AuthService
	tasks  *TaskService
	admin  policy.Caller
	member policy.Caller
	other  policy.Caller
}

func TestTaskServiceSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceSuite))
}

func (s *TaskServiceSuite) SetupTest() {
	s.store = testutil.NewStore(s.T())
	s.auth = NewAuthService(s.store.Users(), newTestIssuer())
	s.tasks = NewTaskService(s.store.Tasks(), s.store.Users(),
		WithClock(func() time.Time { return wednesday }),
		WithLocation(time.UTC),
	)

	s.admin = registerAdmin(s.T(), s.auth)
	s.member = createMember(s.T(), s.auth, s.admin, "u")
	s.other = createMember(s.T(), s.auth, s.admin, "v")
}

func (s *TaskServiceSuite) createTask(title string, assignee policy.Caller, deadline time.Time) *models.Task {
	task, err := s.tasks.CreateTask(context.Background(), s.admin, CreateTaskInput{
		Title:       title,
		Description: title + " description",
		AssignedTo:  assignee.ID,
		Deadline:    deadline,
	})
	s.Require().NoError(err)
	return task
}

func (s *TaskServiceSuite) countTasks() int {
	all, err := s.store.Tasks().List(context.Background(), repository.TaskFilter{})
	s.Require().NoError(err)
	return len(all)
}

func (s *TaskServiceSuite) TestCreateTask_RoundTrip() {
	created := s.createTask("Write report", s.member, wednesday)

	s.Equal(models.StatusPending, created.Status)
	s.Require().NotNil(created.Assignee)
	s.Equal("u", created.Assignee.Name)

	got, err := s.tasks.GetTask(context.Background(), s.member, created.ID)
	s.Require().NoError(err)
	s.Equal("Write report", got.Title)
	s.Equal("Write report description", got.Description)
	s.Equal(s.member.ID, got.AssignedTo)
	s.True(wednesday.Equal(got.Deadline))
	s.Equal(models.StatusPending, got.Status)
}

func (s *TaskServiceSuite) TestCreateTask_NonexistentAssignee() {
	_, err := s.tasks.CreateTask(context.Background(), s.admin, CreateTaskInput{
		Title:      "Ghost",
		AssignedTo: models.NewID(),
		Deadline:   wednesday,
	})
	s.ErrorIs(err, ErrAssigneeNotFound)
	s.Zero(s.countTasks())
}

func (s *TaskServiceSuite) TestCreateTask_MalformedAssignee() {
	_, err := s.tasks.CreateTask(context.Background(), s.admin, CreateTaskInput{
		Title:      "Ghost",
		AssignedTo: "not-an-id",
		Deadline:   wednesday,
	})
	s.ErrorIs(err, ErrInvalidAssigneeID)
	s.Zero(s.countTasks())
}

func (s *TaskServiceSuite) TestCreateTask_Validation() {
	ctx := context.Background()

	_, err := s.tasks.CreateTask(ctx, s.admin, CreateTaskInput{AssignedTo: s.member.ID, Deadline: wednesday})
	s.ErrorIs(err, ErrTitleRequired)

	_, err = s.tasks.CreateTask(ctx, s.admin, CreateTaskInput{Title: "No deadline", AssignedTo: s.member.ID})
	s.ErrorIs(err, ErrDeadlineRequired)

	_, err = s.tasks.CreateTask(ctx, s.member, CreateTaskInput{Title: "Mine", AssignedTo: s.member.ID, Deadline: wednesday})
	s.ErrorIs(err, ErrForbidden)

	s.Zero(s.countTasks())
}

func (s *TaskServiceSuite) TestGetTask_Visibility() {
	ctx := context.Background()
	task := s.createTask("Private", s.member, wednesday)

	_, err := s.tasks.GetTask(ctx, s.admin, task.ID)
	s.NoError(err)

	_, err = s.tasks.GetTask(ctx, s.member, task.ID)
	s.NoError(err)

	_, err = s.tasks.GetTask(ctx, s.other, task.ID)
	s.ErrorIs(err, ErrTaskAccessDenied)

	_, err = s.tasks.GetTask(ctx, s.other, models.NewID())
	s.ErrorIs(err, ErrTaskNotFound)

	_, err = s.tasks.GetTask(ctx, s.admin, "bogus")
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *TaskServiceSuite) TestTasksThisWeek_WednesdayScenario() {
	ctx := context.Background()
	task := s.createTask("T1", s.member, wednesday.Add(3*time.Hour))

	week, err := s.tasks.TasksThisWeek(ctx, s.member)
	s.Require().NoError(err)
	s.Equal(1, week.Len())
	s.Require().Len(week.Day(time.Wednesday), 1)
	s.Equal(task.ID, week.Day(time.Wednesday)[0].ID)
	s.Require().NotNil(week.Day(time.Wednesday)[0].Assignee)

	week, err = s.tasks.TasksThisWeek(ctx, s.other)
	s.Require().NoError(err)
	s.Zero(week.Len())

	week, err = s.tasks.TasksThisWeek(ctx, s.admin)
	s.Require().NoError(err)
	s.Equal(1, week.Len())
}

func (s *TaskServiceSuite) TestTasksThisWeek_WindowBoundaries() {
	ctx := context.Background()
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	sundayEnd := time.Date(2024, 3, 17, 23, 59, 59, 999_000_000, time.UTC)

	first := s.createTask("first instant", s.member, monday)
	last := s.createTask("last instant", s.member, sundayEnd)
	s.createTask("previous sunday", s.member, monday.Add(-time.Millisecond))
	s.createTask("next monday", s.member, sundayEnd.Add(time.Millisecond))

	week, err := s.tasks.TasksThisWeek(ctx, s.admin)
	s.Require().NoError(err)
	s.Equal(2, week.Len())

	s.Require().Len(week.Day(time.Monday), 1)
	s.Equal(first.ID, week.Day(time.Monday)[0].ID)
	s.Require().Len(week.Day(time.Sunday), 1)
	s.Equal(last.ID, week.Day(time.Sunday)[0].ID)
}

func (s *TaskServiceSuite) TestTasksThisWeek_BucketsAreDisjoint() {
	ctx := context.Background()
	monday := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	for day := range 7 {
		s.createTask("task", s.member, monday.AddDate(0, 0, day))
	}
	s.createTask("extra", s.other, monday.AddDate(0, 0, 2))

	week, err := s.tasks.TasksThisWeek(ctx, s.admin)
	s.Require().NoError(err)
	s.Equal(8, week.Len())

	seen := map[string]bool{}
	for _, day := range models.Weekdays {
		for _, task := range week.Day(day) {
			s.False(seen[task.ID], "task %s in more than one bucket", task.ID)
			seen[task.ID] = true
			s.Equal(day, task.Deadline.Weekday())
		}
	}
	s.Len(week.Day(time.Wednesday), 2)
}

func (s *TaskServiceSuite) TestTasksThisWeek_DeletedAssignee() {
	ctx := context.Background()
	task := s.createTask("Orphan", s.other, wednesday)

	users := NewUserService(s.store.Users())
	s.Require().NoError(users.DeleteUser(ctx, s.admin, s.other.ID))

	week, err := s.tasks.TasksThisWeek(ctx, s.admin)
	s.Require().NoError(err)
	s.Require().Len(week.Day(time.Wednesday), 1)
	s.Equal(task.ID, week.Day(time.Wednesday)[0].ID)
	s.Nil(week.Day(time.Wednesday)[0].Assignee)
}

func (s *TaskServiceSuite) TestUpdateTask_FalsyFieldsKeepValues() {
	ctx := context.Background()
	task := s.createTask("Original", s.member, wednesday)

	updated, err := s.tasks.UpdateTask(ctx, s.admin, task.ID, UpdateTaskInput{})
	s.Require().NoError(err)
	s.Equal("Original", updated.Title)
	s.Equal("Original description", updated.Description)

	newDeadline := wednesday.Add(24 * time.Hour)
	updated, err = s.tasks.UpdateTask(ctx, s.admin, task.ID, UpdateTaskInput{
		Title:      "Renamed",
		AssignedTo: s.other.ID,
		Deadline:   newDeadline,
		Status:     models.StatusWorking,
	})
	s.Require().NoError(err)
	s.Require().NotNil(updated.Assignee)
	s.Equal("v", updated.Assignee.Name)

	got, err := s.tasks.GetTask(ctx, s.admin, task.ID)
	s.Require().NoError(err)
	s.Equal("Renamed", got.Title)
	s.Equal("Original description", got.Description)
	s.Equal(s.other.ID, got.AssignedTo)
	s.True(newDeadline.Equal(got.Deadline))
	s.Equal(models.StatusWorking, got.Status)
}

func (s *TaskServiceSuite) TestUpdateTask_Errors() {
	ctx := context.Background()
	task := s.createTask("Original", s.member, wednesday)

	_, err := s.tasks.UpdateTask(ctx, s.member, task.ID, UpdateTaskInput{Title: "Mine now"})
	s.ErrorIs(err, ErrForbidden)

	_, err = s.tasks.UpdateTask(ctx, s.admin, models.NewID(), UpdateTaskInput{Title: "x"})
	s.ErrorIs(err, ErrTaskNotFound)

	_, err = s.tasks.UpdateTask(ctx, s.admin, task.ID, UpdateTaskInput{Status: "archived"})
	s.ErrorIs(err, ErrInvalidStatus)

	_, err = s.tasks.UpdateTask(ctx, s.admin, task.ID, UpdateTaskInput{AssignedTo: models.NewID()})
	s.ErrorIs(err, ErrAssigneeNotFound)

	got, err := s.tasks.GetTask(ctx, s.admin, task.ID)
	s.Require().NoError(err)
	s.Equal("Original", got.Title)
	s.Equal(s.member.ID, got.AssignedTo)
}

func (s *TaskServiceSuite) TestUpdateTaskStatus() {
	ctx := context.Background()
	task := s.createTask("Status", s.member, wednesday)

	updated, err := s.tasks.UpdateTaskStatus(ctx, s.member, task.ID, models.StatusCompleted)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, updated.Status)

	// Any status may follow any other.
	updated, err = s.tasks.UpdateTaskStatus(ctx, s.member, task.ID, models.StatusPending)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, updated.Status)

	_, err = s.tasks.UpdateTaskStatus(ctx, s.admin, task.ID, models.StatusWorking)
	s.ErrorIs(err, ErrNotTaskAssignee)

	_, err = s.tasks.UpdateTaskStatus(ctx, s.other, task.ID, models.StatusWorking)
	s.ErrorIs(err, ErrNotTaskAssignee)

	_, err = s.tasks.UpdateTaskStatus(ctx, s.member, task.ID, "done")
	s.ErrorIs(err, ErrInvalidStatus)

	_, err = s.tasks.UpdateTaskStatus(ctx, s.member, models.NewID(), models.StatusWorking)
	s.ErrorIs(err, ErrTaskNotFound)

	got, err := s.tasks.GetTask(ctx, s.member, task.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, got.Status)
}

func (s *TaskServiceSuite) TestDeleteTask() {
	ctx := context.Background()
	task := s.createTask("Doomed", s.member, wednesday)

	s.ErrorIs(s.tasks.DeleteTask(ctx, s.member, task.ID), ErrForbidden)
	s.Require().NoError(s.tasks.DeleteTask(ctx, s.admin, task.ID))
	s.ErrorIs(s.tasks.DeleteTask(ctx, s.admin, task.ID), ErrTaskNotFound)

	_, err := s.tasks.GetTask(ctx, s.admin, task.ID)
	s.ErrorIs(err, ErrTaskNotFound)
}
