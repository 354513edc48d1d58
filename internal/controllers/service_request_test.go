package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"service-desk/internal/dto"
	"service-desk/internal/entities"
	"service-desk/internal/workflow"
	"service-desk/pkg/constants"
	apperrors "service-desk/pkg/errors"
	"service-desk/pkg/utils"
	"service-desk/pkg/validation"
)

type stubRequestService struct {
	created     dto.CreateServiceRequestDTO
	createdAtt  *entities.Attachment
	filter      dto.RequestListFilterDTO
	target      constants.RequestStatus
	fields      entities.TransitionFields
	list        []entities.ServiceRequest
	req         *entities.ServiceRequest
	transitionE error
}

func (s *stubRequestService) CreateRequest(_ context.Context, _ entities.Actor, p dto.CreateServiceRequestDTO, att *entities.Attachment) (string, error) {
	s.created, s.createdAtt = p, att
	return "b7f6c3de-1111-4a5e-9c1c-7f00a1d2e3f4", nil
}

func (s *stubRequestService) TransitionRequest(_ context.Context, actor entities.Actor, _ string, target constants.RequestStatus, f entities.TransitionFields) (*entities.ServiceRequest, error) {
	s.target, s.fields = target, f
	if s.transitionE != nil {
		return nil, s.transitionE
	}
	if _, err := workflow.PlanTransition(*s.req, target, f, actor); err != nil {
		return nil, err
	}
	out := *s.req
	out.Status = target
	return &out, nil
}

func (s *stubRequestService) GetRequests(_ context.Context, _ entities.Actor, f dto.RequestListFilterDTO) ([]entities.ServiceRequest, error) {
	s.filter = f
	return s.list, nil
}

func (s *stubRequestService) FindRequest(context.Context, entities.Actor, string) (*entities.ServiceRequest, error) {
	if s.req == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.req, nil
}

func (s *stubRequestService) GetAttachment(context.Context, entities.Actor, string) (*entities.Attachment, error) {
	return &entities.Attachment{FileName: "scan.pdf", MimeType: "application/pdf", Data: []byte("%PDF-1.4")}, nil
}

func (s *stubRequestService) DeleteRequest(_ context.Context, actor entities.Actor, _ string) error {
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return nil
}

type stubRefresh struct{ rev int64 }

func (s stubRefresh) Revision(context.Context) (int64, error) { return s.rev, nil }

var (
	testAdmin = entities.Actor{ID: 1, Name: "Dana Admin", Role: constants.RoleAdmin}
	testTech  = entities.Actor{ID: 7, Name: "Luis Tech", Role: constants.RoleTechnician}
)

func newTestServer(svc *stubRequestService, actor entities.Actor) *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	ctrl := NewServiceRequestController(svc, stubRefresh{rev: 42}, zap.NewNop())

	g := e.Group("/api", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.SetRequest(c.Request().WithContext(utils.ContextWithActor(c.Request().Context(), actor)))
			return next(c)
		}
	})
	g.GET("/requests", ctrl.GetRequests)
	g.POST("/requests", ctrl.CreateRequest)
	g.GET("/requests/revision", ctrl.Revision)
	g.GET("/requests/:id", ctrl.FindRequest)
	g.GET("/requests/:id/attachment", ctrl.GetAttachment)
	g.POST("/requests/:id/transition", ctrl.TransitionRequest)
	g.DELETE("/requests/:id", ctrl.DeleteRequest)
	return e
}

func serve(e *echo.Echo, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var env struct {
		Status bool            `json:"status"`
		Body   json.RawMessage `json:"body"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Body, v))
}

func TestCreateRequest_JSON(t *testing.T) {
	svc := &stubRequestService{}
	e := newTestServer(svc, testTech)

	rec := serve(e, http.MethodPost, "/api/requests", []byte(`{"title":"Pump repair","client":"ACME","quantity":2,"type":"quote"}`), echo.MIMEApplicationJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out dto.CreatedResponseDTO
	decodeBody(t, rec, &out)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Pump repair", svc.created.Title)
	assert.Equal(t, 2, svc.created.Quantity)
	assert.Nil(t, svc.createdAtt)
}

func TestCreateRequest_RejectsBadInput(t *testing.T) {
	e := newTestServer(&stubRequestService{}, testTech)

	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"title":"x","priority":"high"}`},
		{"missing title", `{"client":"ACME"}`},
		{"negative quantity", `{"title":"x","quantity":-1}`},
		{"not json", `title=x`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, http.MethodPost, "/api/requests", []byte(tt.body), echo.MIMEApplicationJSON)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestCreateRequest_MultipartWithAttachment(t *testing.T) {
	svc := &stubRequestService{}
	e := newTestServer(svc, testTech)

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("data", `{"title":"Gate inspection","type":"inspection"}`))
	part, err := writer.CreateFormFile("file", "report.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4\n1 0 obj\n"))
	require.NoError(t, writer.Close())

	rec := serve(e, http.MethodPost, "/api/requests", body.Bytes(), writer.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, svc.createdAtt)
	assert.Equal(t, "report.pdf", svc.createdAtt.FileName)
	assert.Equal(t, "application/pdf", svc.createdAtt.MimeType)
	assert.Equal(t, "Gate inspection", svc.created.Title)
}

func TestCreateRequest_MultipartRejectsDisallowedFile(t *testing.T) {
	e := newTestServer(&stubRequestService{}, testTech)

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("data", `{"title":"x"}`))
	part, err := writer.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("plain text notes"))
	require.NoError(t, writer.Close())

	rec := serve(e, http.MethodPost, "/api/requests", body.Bytes(), writer.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitionRequest(t *testing.T) {
	pending := &entities.ServiceRequest{ID: "r1", Title: "Pump", Type: "quote", Status: constants.StatusPending, RequestedBy: testTech.Name}

	t.Run("admin quotes", func(t *testing.T) {
		svc := &stubRequestService{req: pending}
		e := newTestServer(svc, testAdmin)

		rec := serve(e, http.MethodPost, "/api/requests/r1/transition", []byte(`{"status":"QUOTED","admin_response":"Replace seal","price":120}`), echo.MIMEApplicationJSON)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, constants.StatusQuoted, svc.target)
		assert.Equal(t, "Replace seal", svc.fields.AdminResponse.String)
		assert.Equal(t, 120.0, svc.fields.Price.Float64)

		var out dto.ServiceRequestResponseDTO
		decodeBody(t, rec, &out)
		assert.Equal(t, "quoted", out.Status)
		assert.ElementsMatch(t, []string{"approved", "rejected"}, out.AvailableTransitions)
	})

	t.Run("unknown status is an invalid transition", func(t *testing.T) {
		e := newTestServer(&stubRequestService{req: pending}, testAdmin)
		rec := serve(e, http.MethodPost, "/api/requests/r1/transition", []byte(`{"status":"archived"}`), echo.MIMEApplicationJSON)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("technician cannot quote", func(t *testing.T) {
		e := newTestServer(&stubRequestService{req: pending}, testTech)
		rec := serve(e, http.MethodPost, "/api/requests/r1/transition", []byte(`{"status":"quoted","admin_response":"x"}`), echo.MIMEApplicationJSON)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("quote without response is incomplete", func(t *testing.T) {
		e := newTestServer(&stubRequestService{req: pending}, testAdmin)
		rec := serve(e, http.MethodPost, "/api/requests/r1/transition", []byte(`{"status":"quoted"}`), echo.MIMEApplicationJSON)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative price fails validation", func(t *testing.T) {
		e := newTestServer(&stubRequestService{req: pending}, testAdmin)
		rec := serve(e, http.MethodPost, "/api/requests/r1/transition", []byte(`{"status":"quoted","admin_response":"x","price":-5}`), echo.MIMEApplicationJSON)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing request", func(t *testing.T) {
		e := newTestServer(&stubRequestService{transitionE: apperrors.ErrNotFound}, testAdmin)
		rec := serve(e, http.MethodPost, "/api/requests/nope/transition", []byte(`{"status":"quoted","admin_response":"x"}`), echo.MIMEApplicationJSON)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetRequests_PassesFilter(t *testing.T) {
	svc := &stubRequestService{list: []entities.ServiceRequest{
		{ID: "a", Title: "A", Status: constants.StatusApproved, Type: "general-service"},
	}}
	e := newTestServer(svc, testTech)

	rec := serve(e, http.MethodGet, "/api/requests?scope=pool&status=approved,in-progress&search=pump", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, constants.ScopePool, svc.filter.Scope)
	assert.Equal(t, "approved,in-progress", svc.filter.Status)
	assert.Equal(t, "pump", svc.filter.Search)

	var out dto.ServiceRequestListResponseDTO
	decodeBody(t, rec, &out)
	require.Len(t, out.List, 1)
	assert.Equal(t, 1, out.TotalCount)
	assert.Equal(t, []string{"in-progress"}, out.List[0].AvailableTransitions)

	rec = serve(e, http.MethodGet, "/api/requests?scope=everything", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttachmentRevisionAndDelete(t *testing.T) {
	e := newTestServer(&stubRequestService{}, testTech)

	rec := serve(e, http.MethodGet, "/api/requests/r1/attachment", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "scan.pdf")

	rec = serve(e, http.MethodGet, "/api/requests/revision", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rev dto.RevisionResponseDTO
	decodeBody(t, rec, &rev)
	assert.Equal(t, int64(42), rev.Revision)

	rec = serve(e, http.MethodDelete, "/api/requests/r1", nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(newTestServer(&stubRequestService{}, testAdmin), http.MethodDelete, "/api/requests/r1", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodGet, "/api/requests/r1", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
