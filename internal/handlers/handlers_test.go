package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/organiz-api/internal/constants"
	"github.com/yukikurage/organiz-api/internal/logging"
	"github.com/yukikurage/organiz-api/internal/middleware"
	"github.com/yukikurage/organiz-api/internal/models"
	"github.com/yukikurage/organiz-api/internal/repository"
	"github.com/yukikurage/organiz-api/internal/revocation"
	"github.com/yukikurage/organiz-api/internal/services"
	"github.com/yukikurage/organiz-api/internal/testutil"
	"github.com/yukikurage/organiz-api/internal/utils"
	"github.com/yukikurage/organiz-api/internal/validation"
	"gorm.io/gorm"
)

const (
	testPassword   = "Strong-Password1!"
	testUserHeader = "X-Test-User"
)

type handlerTestEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	auth     *services.AuthService
	projects *services.ProjectService
	statuses *services.StatusService
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Setup())

	db := testutil.NewDB(t)
	log := logging.Discard()

	auth := services.NewAuthService(
		repository.NewUserRepository(db),
		utils.NewTokenManager("test-secret", time.Hour),
		revocation.NewMemoryStore(),
		log,
	)
	categories := services.NewCategoryService(repository.NewCategoryRepository(db), log)
	statuses := services.NewStatusService(repository.NewStatusRepository(db), log)
	projects := services.NewProjectService(repository.NewProjectRepository(db), auth, categories, statuses, log)
	tasks := services.NewTaskService(repository.NewTaskRepository(db), auth, projects, statuses, log)

	authHandler := NewAuthHandler(auth, log)
	categoryHandler := NewCategoryHandler(categories, log)
	statusHandler := NewStatusHandler(statuses, log)
	projectHandler := NewProjectHandler(projects, log)
	taskHandler := NewTaskHandler(tasks, log)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.POST("/users/register", authHandler.Register)
	r.POST("/users/login", authHandler.Login)

	// Tests pick the caller with a header instead of a token.
	authed := r.Group("", func(c *gin.Context) {
		if id, err := strconv.ParseUint(c.GetHeader(testUserHeader), 10, 64); err == nil {
			c.Set(constants.ContextKeyUserID, id)
		}
		c.Next()
	})
	withID := middleware.RequireIDParam()

	authed.GET("/users/me", authHandler.GetCurrentUser)
	authed.POST("/categories", categoryHandler.CreateCategory)
	authed.GET("/categories", categoryHandler.ListCategories)
	authed.GET("/categories/:id", withID, categoryHandler.GetCategory)
	authed.PUT("/categories/:id", withID, categoryHandler.UpdateCategory)
	authed.DELETE("/categories/:id", withID, categoryHandler.DeleteCategory)
	authed.POST("/statuses", statusHandler.CreateStatus)
	authed.GET("/statuses", statusHandler.ListStatuses)
	authed.GET("/statuses/:id", withID, statusHandler.GetStatus)
	authed.PUT("/statuses/:id", withID, statusHandler.UpdateStatus)
	authed.DELETE("/statuses/:id", withID, statusHandler.DeleteStatus)
	authed.POST("/projects", projectHandler.CreateProject)
	authed.GET("/projects", projectHandler.ListProjects)
	authed.GET("/projects/:id", withID, projectHandler.GetProject)
	authed.PUT("/projects/:id", withID, projectHandler.UpdateProject)
	authed.PATCH("/projects/:id", withID, projectHandler.AddCollaborator)
	authed.DELETE("/projects/:id", withID, projectHandler.DeleteProject)
	authed.POST("/tasks", taskHandler.CreateTask)
	authed.GET("/tasks", taskHandler.ListTasks)
	authed.GET("/tasks/:id", withID, taskHandler.GetTask)
	authed.PUT("/tasks/:id", withID, taskHandler.UpdateTask)
	authed.DELETE("/tasks/:id", withID, taskHandler.DeleteTask)

	return handlerTestEnv{
		db:       db,
		router:   r,
		auth:     auth,
		projects: projects,
		statuses: statuses,
	}
}

// do sends a JSON request as userID (0 for anonymous).
func (env handlerTestEnv) do(t *testing.T, method, url string, userID uint64, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set(testUserHeader, strconv.FormatUint(userID, 10))
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env handlerTestEnv) register(t *testing.T, firstname, email string) *models.User {
	t.Helper()
	user, err := env.auth.Register(context.Background(), services.RegisterInput{
		Firstname: firstname,
		Lastname:  "Doe",
		Email:     email,
		Password:  testPassword,
	})
	require.NoError(t, err)
	return user
}

func (env handlerTestEnv) createProject(t *testing.T, name string, owner *models.User) *models.Project {
	t.Helper()
	project, err := env.projects.Create(context.Background(), services.CreateProjectInput{
		Name:    name,
		OwnerID: owner.ID,
	})
	require.NoError(t, err)
	return project
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func idPath(prefix string, id uint64) string {
	return prefix + "/" + strconv.FormatUint(id, 10)
}
