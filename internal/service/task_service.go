package service

import (
	"context"
	"fmt"
	"time"

	"digiwave-backend/internal/model"
	"digiwave-backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateTaskRequest struct {
	ProjectID  string `json:"project_id" binding:"required"`
	AssigneeID string `json:"assignee_id"`
	Title      string `json:"title" binding:"required"`
	Detail     string `json:"detail"`
	Priority   string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate    string `json:"due_date"` // YYYY-MM-DD
}

type UpdateTaskRequest struct {
	AssigneeID *string `json:"assignee_id"`
	Title      *string `json:"title"`
	Detail     *string `json:"detail"`
	Status     *string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority   *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate    *string `json:"due_date"`
}

type TaskFilter struct {
	ProjectID  string
	AssigneeID string
	Status     string
	Search     string
	Page       int
	Limit      int
}

type TaskResponse struct {
	ID           string  `json:"id"`
	ProjectID    string  `json:"project_id"`
	ProjectName  string  `json:"project_name,omitempty"`
	AssigneeID   *string `json:"assignee_id"`
	AssigneeName string  `json:"assignee_name,omitempty"`
	Title        string  `json:"title"`
	Detail       string  `json:"detail"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	DueDate      *string `json:"due_date"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// --- Interface ---

type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]TaskResponse, int64, error)
	GetTask(ctx context.Context, id string) (TaskResponse, error)
	UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (TaskResponse, error)
	DeleteTask(ctx context.Context, id string) error
}

type taskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	notifier    Notifier
}

func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, notifier Notifier) TaskService {
	return &taskService{taskRepo: taskRepo, projectRepo: projectRepo, notifier: notifier}
}

// --- Implementation ---

func (s *taskService) CreateTask(ctx context.Context, req CreateTaskRequest) (TaskResponse, error) {
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return TaskResponse{}, fmt.Errorf("invalid project_id: %w", err)
	}
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return TaskResponse{}, fmt.Errorf("referenced project not found: %w", err)
	}

	priority := req.Priority
	if priority == "" {
		priority = model.TaskMedium
	}

	task := &model.Task{
		ProjectID: projectID,
		Title:     req.Title,
		Detail:    req.Detail,
		Status:    model.TaskTodo,
		Priority:  priority,
	}

	if req.AssigneeID != "" {
		assigneeID, parseErr := uuid.Parse(req.AssigneeID)
		if parseErr != nil {
			return TaskResponse{}, fmt.Errorf("invalid assignee_id: %w", parseErr)
		}
		task.AssigneeID = &assigneeID
	}
	if task.DueDate, err = parseOptionalDate(req.DueDate, "due_date"); err != nil {
		return TaskResponse{}, err
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to create task: %w", err)
	}

	if s.notifier != nil {
		s.notifier.Publish("task.created", "task", task.ID.String(), task.Title)
	}

	reloaded, err := s.taskRepo.FindByID(ctx, task.ID)
	if err != nil {
		return TaskResponse{}, fmt.Errorf("failed to reload task: %w", err)
	}
	return toTaskResponse(*reloaded), nil
}

func (s *taskService) ListTasks(ctx context.Context, filter TaskFilter) ([]TaskResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	repoFilter := repository.TaskListFilter{
		Status: filter.Status,
		Search: filter.Search,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}
	if filter.ProjectID != "" {
		parsed, err := uuid.Parse(filter.ProjectID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid project_id: %w", err)
		}
		repoFilter.ProjectID = &parsed
	}
	if filter.AssigneeID != "" {
		parsed, err := uuid.Parse(filter.AssigneeID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid assignee_id: %w", err)
		}
		repoFilter.AssigneeID = &parsed
	}

	tasks, total, err := s.taskRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	result := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, toTaskResponse(task))
	}
	return result, total, nil
}

func (s *taskService) GetTask(ctx context.Context, id string) (TaskResponse, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return TaskResponse{}, fmt.Errorf("invalid task id: %w", err)
	}
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return TaskResponse{}, fmt.Errorf("task not found: %w", err)
	}
	return toTaskResponse(*task), nil
}

func (s *taskService) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (TaskResponse, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return TaskResponse{}, fmt.Errorf("invalid task id: %w", err)
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return TaskResponse{}, fmt.Errorf("task not found: %w", err)
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Detail != nil {
		task.Detail = *req.Detail
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == "" {
			task.AssigneeID = nil
		} else {
			assigneeID, parseErr := uuid.Parse(*req.AssigneeID)
			if parseErr != nil {
				return TaskResponse{}, fmt.Errorf("invalid assignee_id: %w", parseErr)
			}
			task.AssigneeID = &assigneeID
		}
	}
	if req.DueDate != nil {
		if task.DueDate, err = parseOptionalDate(*req.DueDate, "due_date"); err != nil {
			return TaskResponse{}, err
		}
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to update task: %w", err)
	}

	if s.notifier != nil {
		s.notifier.Publish("task.updated", "task", task.ID.String(), task.Title)
	}
	return toTaskResponse(*task), nil
}

func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid task id: %w", err)
	}
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		return fmt.Errorf("task not found: %w", err)
	}
	return s.taskRepo.Delete(ctx, taskID)
}

// --- Mapping ---

func toTaskResponse(t model.Task) TaskResponse {
	resp := TaskResponse{
		ID:        t.ID.String(),
		ProjectID: t.ProjectID.String(),
		Title:     t.Title,
		Detail:    t.Detail,
		Status:    t.Status,
		Priority:  t.Priority,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
	if t.Project != nil {
		resp.ProjectName = t.Project.Name
	}
	if t.AssigneeID != nil {
		s := t.AssigneeID.String()
		resp.AssigneeID = &s
	}
	if t.Assignee != nil {
		resp.AssigneeName = t.Assignee.Username
	}
	if t.DueDate != nil {
		s := t.DueDate.Format("2006-01-02")
		resp.DueDate = &s
	}
	return resp
}
