package http

import (
	"portfolio_server/core/domain"
	"portfolio_server/core/port/out"
	"portfolio_server/core/service/project"
	"portfolio_server/infra/middleware"
	"portfolio_server/pkg/apperr"
	"portfolio_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles the project API surface.
type ProjectHandler struct {
	projects *project.Service
	files    out.FileStore
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projects *project.Service, files out.FileStore) *ProjectHandler {
	return &ProjectHandler{projects: projects, files: files}
}

// Register wires the project routes. guard is the session guard applied to
// the protected subset.
func (h *ProjectHandler) Register(api fiber.Router, guard fiber.Handler) {
	projects := api.Group("/project")

	projects.Get("/all", h.ListAll)

	projects.Get("/", guard, h.ListMine)
	projects.Post("/", guard, h.Create)
	projects.Get("/detail", guard, h.GetDetail)
	projects.Patch("/detail", guard, h.UpdateDetail)
	projects.Delete("/detail", guard, h.DeleteDetail)
}

// ListAll returns every project with its owner populated.
// GET /project/all
func (h *ProjectHandler) ListAll(c *fiber.Ctx) error {
	list, err := h.projects.ListAll(c.Context())
	if err != nil {
		return err
	}
	return response.OK(c, list, "Projects fetched successfully")
}

// ListMine returns the caller's projects.
// GET /project
func (h *ProjectHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return apperr.Unauthorized("")
	}

	list, err := h.projects.ListMine(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, list, "User Projects Fetched successfully")
}

// Create records a new project from a multipart form.
// POST /project
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return apperr.Unauthorized("")
	}

	fileHeader, err := c.FormFile("coverImage")
	if err != nil {
		return apperr.ValidationFailed("Cover image is missing")
	}

	startOn, err := formDate(c, "startOn")
	if err != nil {
		return err
	}
	completedOn, err := formOptionalDate(c, "completedOn")
	if err != nil {
		return err
	}
	description, err := formBlocks(c, "description")
	if err != nil {
		return err
	}

	storedName, err := h.files.Save(out.CategoryProjectImage, fileHeader)
	if err != nil {
		return apperr.Internal("failed to store uploaded file").WithError(err)
	}

	created, err := h.projects.Create(c.Context(), userID, project.CreateInput{
		Title:       c.FormValue("title"),
		CoverImage:  storedName,
		Status:      domain.ProjectStatus(c.FormValue("status")),
		Domain:      c.FormValue("domain"),
		ShortDesc:   c.FormValue("shortDesc"),
		StartOn:     startOn,
		CompletedOn: completedOn,
		Description: description,
	})
	if err != nil {
		_ = h.files.Remove(out.CategoryProjectImage, storedName)
		return err
	}
	return response.Created(c, created, "Project Detail Added Successfully")
}

// GetDetail returns a single project by id with its owner populated.
// GET /project/detail?projectId=
func (h *ProjectHandler) GetDetail(c *fiber.Ctx) error {
	detail, err := h.projects.GetByID(c.Context(), c.Query("projectId"))
	if err != nil {
		return err
	}
	return response.OK(c, detail, "Project Detail Fetched Successfully")
}

// UpdateDetail replaces the editable fields of a project from a multipart
// form. The stale cover blob is removed after the record points at the new
// one.
// PATCH /project/detail
func (h *ProjectHandler) UpdateDetail(c *fiber.Ctx) error {
	projectID := c.FormValue("Id")
	if projectID == "" {
		return apperr.ValidationFailed("Id is missing")
	}

	startOn, err := formDate(c, "startOn")
	if err != nil {
		return err
	}
	completedOn, err := formOptionalDate(c, "completedOn")
	if err != nil {
		return err
	}
	description, err := formBlocks(c, "description")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("coverImage")
	if err != nil {
		return apperr.ValidationFailed("Project file is missing")
	}
	storedName, err := h.files.Save(out.CategoryProjectImage, fileHeader)
	if err != nil {
		return apperr.Internal("failed to store uploaded file").WithError(err)
	}

	updated, err := h.projects.Update(c.Context(), project.UpdateInput{
		ID:          projectID,
		Title:       c.FormValue("title"),
		CoverImage:  storedName,
		Status:      domain.ProjectStatus(c.FormValue("status")),
		Domain:      c.FormValue("domain"),
		ShortDesc:   c.FormValue("shortDesc"),
		StartOn:     startOn,
		CompletedOn: completedOn,
		Description: description,
	})
	if err != nil {
		_ = h.files.Remove(out.CategoryProjectImage, storedName)
		return err
	}
	return response.OK(c, updated, "Project details updated successfully")
}

// DeleteDetail removes a project record by id.
// DELETE /project/detail?Id=
func (h *ProjectHandler) DeleteDetail(c *fiber.Ctx) error {
	deleted, err := h.projects.Delete(c.Context(), c.Query("Id"))
	if err != nil {
		return err
	}
	return response.OK(c, fiber.Map{"deletedCount": deleted}, "Project Detail Deleted Successfully")
}
