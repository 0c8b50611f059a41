package service

import (
	"context"
	"fmt"
	"time"

	"digiwave-backend/internal/model"
	"digiwave-backend/internal/pricing"
	"digiwave-backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateProjectRequest struct {
	Name          string   `json:"name" binding:"required"`
	ClientName    string   `json:"client_name" binding:"required"`
	ClientEmail   string   `json:"client_email" binding:"omitempty,email"`
	ClientPhone   string   `json:"client_phone"`
	Description   string   `json:"description"`
	Status        string   `json:"status" binding:"omitempty,oneof=UPCOMING IN_PROGRESS ON_HOLD COMPLETED CANCELLED"`
	AppModeID     string   `json:"app_mode_id"`
	TechnologyIDs []string `json:"technology_ids"`
	ProjectValue  string   `json:"project_value"`
	StartDate     string   `json:"start_date"` // YYYY-MM-DD
	EndDate       string   `json:"end_date"`
}

type UpdateProjectRequest struct {
	Name          *string   `json:"name"`
	ClientName    *string   `json:"client_name"`
	ClientEmail   *string   `json:"client_email" binding:"omitempty,email"`
	ClientPhone   *string   `json:"client_phone"`
	Description   *string   `json:"description"`
	Status        *string   `json:"status" binding:"omitempty,oneof=UPCOMING IN_PROGRESS ON_HOLD COMPLETED CANCELLED"`
	AppModeID     *string   `json:"app_mode_id"`
	TechnologyIDs *[]string `json:"technology_ids"`
	ProjectValue  *string   `json:"project_value"`
	StartDate     *string   `json:"start_date"`
	EndDate       *string   `json:"end_date"`
}

type ProjectFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

type ProjectResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ClientName   string   `json:"client_name"`
	ClientEmail  string   `json:"client_email"`
	ClientPhone  string   `json:"client_phone"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	AppMode      string   `json:"app_mode,omitempty"`
	Technologies []string `json:"technologies"`
	ProjectValue string   `json:"project_value"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// --- Interface ---

type ProjectService interface {
	CreateProject(ctx context.Context, req CreateProjectRequest, userID string) (ProjectResponse, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]ProjectResponse, int64, error)
	GetProject(ctx context.Context, id string) (ProjectResponse, error)
	UpdateProject(ctx context.Context, id string, req UpdateProjectRequest, userID string) (ProjectResponse, error)
	DeleteProject(ctx context.Context, id string, userID string) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	lookupRepo  repository.LookupRepository
	txManager   repository.TransactionManager
	audit       AuditService
	notifier    Notifier
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	lookupRepo repository.LookupRepository,
	txManager repository.TransactionManager,
	audit AuditService,
	notifier Notifier,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		lookupRepo:  lookupRepo,
		txManager:   txManager,
		audit:       audit,
		notifier:    notifier,
	}
}

// --- Implementation ---

func (s *projectService) CreateProject(ctx context.Context, req CreateProjectRequest, userID string) (ProjectResponse, error) {
	creatorID, err := parseOptionalUUID(userID)
	if err != nil {
		return ProjectResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	status := req.Status
	if status == "" {
		status = model.ProjectUpcoming
	}

	project := &model.Project{
		Name:         req.Name,
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		ClientPhone:  req.ClientPhone,
		Description:  req.Description,
		Status:       status,
		ProjectValue: pricing.ParseAmount(req.ProjectValue),
		CreatedBy:    creatorID,
	}

	if req.AppModeID != "" {
		parsed, parseErr := uuid.Parse(req.AppModeID)
		if parseErr != nil {
			return ProjectResponse{}, fmt.Errorf("invalid app_mode_id: %w", parseErr)
		}
		project.AppModeID = &parsed
	}
	if project.StartDate, err = parseOptionalDate(req.StartDate, "start_date"); err != nil {
		return ProjectResponse{}, err
	}
	if project.EndDate, err = parseOptionalDate(req.EndDate, "end_date"); err != nil {
		return ProjectResponse{}, err
	}

	technologies, err := s.resolveTechnologies(ctx, req.TechnologyIDs)
	if err != nil {
		return ProjectResponse{}, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.projectRepo.Create(txCtx, project); createErr != nil {
			return fmt.Errorf("failed to create project: %w", createErr)
		}
		if len(technologies) > 0 {
			if techErr := s.projectRepo.ReplaceTechnologies(txCtx, project, technologies); techErr != nil {
				return fmt.Errorf("failed to attach technologies: %w", techErr)
			}
		}
		return nil
	})
	if err != nil {
		return ProjectResponse{}, err
	}

	s.audit.Record(ctx, creatorID, model.ActionCreateProject, project.ID.String(), project.Name, map[string]interface{}{
		"client_name": project.ClientName,
		"status":      project.Status,
	})
	if s.notifier != nil {
		s.notifier.Publish("project.created", "project", project.ID.String(), project.Name)
	}

	reloaded, err := s.projectRepo.FindByID(ctx, project.ID)
	if err != nil {
		return ProjectResponse{}, fmt.Errorf("failed to reload project: %w", err)
	}
	return toProjectResponse(*reloaded), nil
}

func (s *projectService) ListProjects(ctx context.Context, filter ProjectFilter) ([]ProjectResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	projects, total, err := s.projectRepo.List(ctx, repository.ProjectListFilter{
		Status: filter.Status,
		Search: filter.Search,
		Page:   filter.Page,
		Limit:  filter.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch projects: %w", err)
	}

	result := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		result = append(result, toProjectResponse(p))
	}
	return result, total, nil
}

func (s *projectService) GetProject(ctx context.Context, id string) (ProjectResponse, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return ProjectResponse{}, fmt.Errorf("invalid project id: %w", err)
	}
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return ProjectResponse{}, fmt.Errorf("project not found: %w", err)
	}
	return toProjectResponse(*project), nil
}

func (s *projectService) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest, userID string) (ProjectResponse, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return ProjectResponse{}, fmt.Errorf("invalid project id: %w", err)
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return ProjectResponse{}, fmt.Errorf("project not found: %w", err)
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.ClientName != nil {
		project.ClientName = *req.ClientName
	}
	if req.ClientEmail != nil {
		project.ClientEmail = *req.ClientEmail
	}
	if req.ClientPhone != nil {
		project.ClientPhone = *req.ClientPhone
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.ProjectValue != nil {
		project.ProjectValue = pricing.ParseAmount(*req.ProjectValue)
	}
	if req.AppModeID != nil {
		if *req.AppModeID == "" {
			project.AppModeID = nil
		} else {
			parsed, parseErr := uuid.Parse(*req.AppModeID)
			if parseErr != nil {
				return ProjectResponse{}, fmt.Errorf("invalid app_mode_id: %w", parseErr)
			}
			project.AppModeID = &parsed
		}
	}
	if req.StartDate != nil {
		if project.StartDate, err = parseOptionalDate(*req.StartDate, "start_date"); err != nil {
			return ProjectResponse{}, err
		}
	}
	if req.EndDate != nil {
		if project.EndDate, err = parseOptionalDate(*req.EndDate, "end_date"); err != nil {
			return ProjectResponse{}, err
		}
	}

	var technologies []model.Technology
	if req.TechnologyIDs != nil {
		technologies, err = s.resolveTechnologies(ctx, *req.TechnologyIDs)
		if err != nil {
			return ProjectResponse{}, err
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.projectRepo.Update(txCtx, project); updateErr != nil {
			return fmt.Errorf("failed to update project: %w", updateErr)
		}
		if req.TechnologyIDs != nil {
			if techErr := s.projectRepo.ReplaceTechnologies(txCtx, project, technologies); techErr != nil {
				return fmt.Errorf("failed to replace technologies: %w", techErr)
			}
		}
		return nil
	})
	if err != nil {
		return ProjectResponse{}, err
	}

	actorID, _ := parseOptionalUUID(userID)
	s.audit.Record(ctx, actorID, model.ActionUpdateProject, project.ID.String(), project.Name, map[string]interface{}{
		"status": project.Status,
	})
	if s.notifier != nil {
		s.notifier.Publish("project.updated", "project", project.ID.String(), project.Name)
	}

	reloaded, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return ProjectResponse{}, fmt.Errorf("failed to reload project: %w", err)
	}
	return toProjectResponse(*reloaded), nil
}

func (s *projectService) DeleteProject(ctx context.Context, id string, userID string) error {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid project id: %w", err)
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("project not found: %w", err)
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	actorID, _ := parseOptionalUUID(userID)
	s.audit.Record(ctx, actorID, model.ActionDeleteProject, project.ID.String(), project.Name, nil)
	if s.notifier != nil {
		s.notifier.Publish("project.deleted", "project", project.ID.String(), project.Name)
	}
	return nil
}

// --- Helpers ---

func (s *projectService) resolveTechnologies(ctx context.Context, ids []string) ([]model.Technology, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	all, err := s.lookupRepo.ListTechnologies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch technologies: %w", err)
	}
	byID := make(map[uuid.UUID]model.Technology, len(all))
	for _, t := range all {
		byID[t.ID] = t
	}

	resolved := make([]model.Technology, 0, len(ids))
	for _, raw := range ids {
		parsed, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid technology id %q: %w", raw, parseErr)
		}
		tech, ok := byID[parsed]
		if !ok {
			return nil, fmt.Errorf("technology %s not found", raw)
		}
		resolved = append(resolved, tech)
	}
	return resolved, nil
}

func parseOptionalDate(s, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	return &parsed, nil
}

// --- Mapping ---

func toProjectResponse(p model.Project) ProjectResponse {
	technologies := make([]string, 0, len(p.Technologies))
	for _, t := range p.Technologies {
		technologies = append(technologies, t.Name)
	}

	resp := ProjectResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		ClientName:   p.ClientName,
		ClientEmail:  p.ClientEmail,
		ClientPhone:  p.ClientPhone,
		Description:  p.Description,
		Status:       p.Status,
		Technologies: technologies,
		ProjectValue: p.ProjectValue.StringFixed(2),
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
	if p.AppMode != nil {
		resp.AppMode = p.AppMode.Name
	}
	if p.StartDate != nil {
		s := p.StartDate.Format("2006-01-02")
		resp.StartDate = &s
	}
	if p.EndDate != nil {
		s := p.EndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	return resp
}
