package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/dto"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
	appErrors "github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/errors"
)

type subjectServiceStub struct {
	filter  models.SubjectFilter
	created dto.CreateSubjectRequest
	deleted string
}

func (s *subjectServiceStub) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, *models.Pagination, error) {
	s.filter = filter
	return []models.Subject{{ID: "math", Name: "Math"}}, &models.Pagination{Page: 1, PageSize: 50, TotalCount: 1}, nil
}

func (s *subjectServiceStub) Get(ctx context.Context, userID, id string) (*models.Subject, error) {
	if id != "math" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return &models.Subject{ID: id, UserID: userID, Name: "Math"}, nil
}

func (s *subjectServiceStub) Create(ctx context.Context, userID string, req dto.CreateSubjectRequest) (*models.Subject, error) {
	s.created = req
	return &models.Subject{ID: "new", UserID: userID, Name: req.Name}, nil
}

func (s *subjectServiceStub) Update(ctx context.Context, userID, id string, req dto.UpdateSubjectRequest) (*models.Subject, error) {
	return &models.Subject{ID: id, UserID: userID, Name: *req.Name}, nil
}

func (s *subjectServiceStub) Delete(ctx context.Context, userID, id string) error {
	s.deleted = id
	return nil
}

func TestSubjectHandlerList(t *testing.T) {
	stub := &subjectServiceStub{}
	h := NewSubjectHandler(stub)

	c, w := newGinContext(http.MethodGet, "/subjects?includeInactive=true&search=+ma+&sortBy=name", nil)
	asStudent(c)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", stub.filter.UserID)
	assert.True(t, stub.filter.IncludeInactive)
	assert.Equal(t, "ma", stub.filter.Search)
	assert.Equal(t, "name", stub.filter.SortBy)
}

func TestSubjectHandlerGet(t *testing.T) {
	h := NewSubjectHandler(&subjectServiceStub{})

	c, w := newGinContext(http.MethodGet, "/subjects/math", nil)
	c.Params = gin.Params{{Key: "id", Value: "math"}}
	asStudent(c)
	h.Get(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newGinContext(http.MethodGet, "/subjects/art", nil)
	c.Params = gin.Params{{Key: "id", Value: "art"}}
	asStudent(c)
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubjectHandlerCreateUpdateDelete(t *testing.T) {
	stub := &subjectServiceStub{}
	h := NewSubjectHandler(stub)

	c, w := newGinContext(http.MethodPost, "/subjects", mustJSON(t, dto.CreateSubjectRequest{Name: "Physics", WeeklyHours: 3, Difficulty: "hard", Color: "#112233"}))
	asStudent(c)
	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Physics", stub.created.Name)

	name := "Physics II"
	c, w = newGinContext(http.MethodPut, "/subjects/new", mustJSON(t, dto.UpdateSubjectRequest{Name: &name}))
	c.Params = gin.Params{{Key: "id", Value: "new"}}
	asStudent(c)
	h.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), "Physics II")

	c, w = newGinContext(http.MethodDelete, "/subjects/new", nil)
	c.Params = gin.Params{{Key: "id", Value: "new"}}
	asStudent(c)
	h.Delete(c)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "new", stub.deleted)
}

func TestSubjectHandlerRequiresUser(t *testing.T) {
	h := NewSubjectHandler(&subjectServiceStub{})
	c, w := newGinContext(http.MethodGet, "/subjects", nil)
	h.List(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
