package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/organiz-api/internal/constants"
	"github.com/yukikurage/organiz-api/internal/dto"
)

func TestProjectHandler_CreateAndGet(t *testing.T) {
	env := setupHandlerTestEnv(t)
	john := env.register(t, "John", "john@x.com")

	w := env.do(t, http.MethodPost, "/projects", john.ID, map[string]any{
		"name":       "P1",
		"categories": []uint64{},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[dto.IDResponse](t, w).ID

	w = env.do(t, http.MethodGet, idPath("/projects", id), john.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	project := decode[dto.ProjectDTO](t, w)
	assert.Equal(t, "P1", project.Name)
	require.NotNil(t, project.Owner)
	assert.Equal(t, "John", project.Owner.Firstname)
	require.NotNil(t, project.Status)
	assert.Equal(t, constants.StatusNew, project.Status.Name)
	assert.Empty(t, project.Categories)
}

func TestProjectHandler_CreateRejectsUnknownCategory(t *testing.T) {
	env := setupHandlerTestEnv(t)
	john := env.register(t, "John", "john@x.com")

	w := env.do(t, http.MethodPost, "/projects", john.ID, map[string]any{
		"name":       "P1",
		"categories": []uint64{42},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_DuplicateName(t *testing.T) {
	env := setupHandlerTestEnv(t)
	john := env.register(t, "John", "john@x.com")
	env.createProject(t, "P1", john)

	w := env.do(t, http.MethodPost, "/projects", john.ID, map[string]any{"name": "P1"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProjectHandler_Sharing(t *testing.T) {
	env := setupHandlerTestEnv(t)
	john := env.register(t, "John", "john@x.com")
	jane := env.register(t, "Jane", "jane@x.com")
	project := env.createProject(t, "P1", john)
	path := idPath("/projects", project.ID)

	w := env.do(t, http.MethodGet, path, jane.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPatch, path+"?email=jane@x.com", john.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, project.ID, decode[dto.IDResponse](t, w).ID)

	w = env.do(t, http.MethodGet, path, jane.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[dto.ProjectDTO](t, w).Collaborators, 1)

	w = env.do(t, http.MethodGet, "/projects", jane.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.ProjectDTO](t, w), 1)

	// Collaborators may read and edit but not delete.
	w = env.do(t, http.MethodDelete, path, jane.ID, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodDelete, path, john.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, project.ID, decode[uint64](t, w))

	w = env.do(t, http.MethodGet, path, john.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_AddCollaboratorErrors(t *testing.T) {
	env := setupHandlerTestEnv(t)
	john := env.register(t, "John", "john@x.com")
	project := env.createProject(t, "P1", john)
	path := idPath("/projects", project.ID)

	w := env.do(t, http.MethodPatch, path, john.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPatch, path+"?email=nobody@x.com", john.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPatch, idPath("/projects", 999)+"?email=john@x.com", john.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_Update(t *testing.T) {
	env := setupHandlerTestEnv(t)
	john := env.register(t, "John", "john@x.com")
	project := env.createProject(t, "P1", john)
	path := idPath("/projects", project.ID)

	w := env.do(t, http.MethodPost, "/categories", john.ID, map[string]string{"name": "backend"})
	require.Equal(t, http.StatusCreated, w.Code)
	categoryID := decode[dto.IDResponse](t, w).ID

	w = env.do(t, http.MethodPost, "/statuses", john.ID, map[string]string{"name": "Done"})
	require.Equal(t, http.StatusCreated, w.Code)
	doneID := decode[dto.IDResponse](t, w).ID

	w = env.do(t, http.MethodPut, path, john.ID, map[string]any{
		"name":       "P1 renamed",
		"categories": []uint64{categoryID},
		"status":     doneID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[dto.ProjectDTO](t, w)
	assert.Equal(t, "P1 renamed", updated.Name)
	assert.Equal(t, "Done", updated.Status.Name)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "backend", updated.Categories[0].Name)

	w = env.do(t, http.MethodGet, "/projects?statusName=Done", john.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.ProjectDTO](t, w), 1)

	w = env.do(t, http.MethodGet, "/projects?statusName="+constants.StatusNew, john.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]dto.ProjectDTO](t, w))

	w = env.do(t, http.MethodPut, path, john.ID, map[string]any{"status": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPut, path, john.ID, map[string]any{"categories": []uint64{}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dto.ProjectDTO](t, w).Categories)
}

func TestProjectHandler_InvalidID(t *testing.T) {
	env := setupHandlerTestEnv(t)
	john := env.register(t, "John", "john@x.com")

	w := env.do(t, http.MethodGet, "/projects/0", john.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/projects/p1", john.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
