package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	createFn        func(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllOwnFn     func(ctx context.Context, actorID string) ([]leave.LeaveResponse, error)
	getByIDFn       func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error)
	updateFn        func(ctx context.Context, actorID, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error)
	deleteFn        func(ctx context.Context, actorID, id string) error
	listSubmittedFn func(ctx context.Context) ([]leave.LeaveResponse, error)
	approveFn       func(ctx context.Context, actorID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error)
	rejectFn        func(ctx context.Context, actorID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, actorID, req)
}
func (f *fakeLeaveService) GetAllOwn(ctx context.Context, actorID string) ([]leave.LeaveResponse, error) {
	return f.getAllOwnFn(ctx, actorID)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, actorID, id)
}
func (f *fakeLeaveService) Update(ctx context.Context, actorID, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	return f.updateFn(ctx, actorID, id, req)
}
func (f *fakeLeaveService) Delete(ctx context.Context, actorID, id string) error {
	return f.deleteFn(ctx, actorID, id)
}
func (f *fakeLeaveService) ListSubmitted(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.listSubmittedFn(ctx)
}
func (f *fakeLeaveService) Approve(ctx context.Context, actorID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, actorID, id, req)
}
func (f *fakeLeaveService) Reject(ctx context.Context, actorID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, actorID, id, req)
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success uses user_id_validated fallback", func(t *testing.T) {
		actorID := uuid.New().String()
		categoryID := uuid.New().String()

		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, categoryID, req.CategoryID)
				return leave.LeaveResponse{
					ID:              uuid.New().String(),
					CategoryID:      req.CategoryID,
					Status:          leave.StatusSubmitted,
					RequestUserID:   aid,
					TotalLeaveHours: 9,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"category":"` + categoryID + `","effective_start_datetime":"2025-03-03T09:00:00Z","effective_end_datetime":"2025-03-03T18:00:00Z","reason":"family matters"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id_validated", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, categoryID, got.CategoryID)
		assert.Equal(t, leave.StatusSubmitted, got.Status)
		assert.Equal(t, actorID, got.RequestUserID)
		assert.Equal(t, 9, got.TotalLeaveHours)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, errors.New("create failed")
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"category":"` + uuid.New().String() + `","effective_start_datetime":"2025-03-03T09:00:00Z","effective_end_datetime":"2025-03-03T18:00:00Z"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id_validated", uuid.New().String())

		h.Create(c)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	})
}

func TestLeaveHandler_GetById(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/"+uuid.New().String(), nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("user_id_validated", uuid.New().String())

		h.GetById(c)
		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("other user's request maps to 403", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrNotRequestOwner
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/"+uuid.New().String(), nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("user_id_validated", uuid.New().String())

		h.GetById(c)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLeaveHandler_GetAllOwn(t *testing.T) {
	actorID := uuid.New().String()

	svc := &fakeLeaveService{
		getAllOwnFn: func(ctx context.Context, aid string) ([]leave.LeaveResponse, error) {
			assert.Equal(t, actorID, aid)
			return []leave.LeaveResponse{
				{ID: uuid.New().String(), Status: leave.StatusSubmitted},
				{ID: uuid.New().String(), Status: leave.StatusApproved},
			}, nil
		},
	}
	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves", nil)
	c.Set("user_id_validated", actorID)

	h.GetAllOwn(c)
	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	var got []leave.LeaveResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 2)
}

func TestLeaveHandler_Approve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		supervisorID := uuid.New().String()
		requestID := uuid.New().String()

		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, actorID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, supervisorID, actorID)
				assert.Equal(t, requestID, id)
				assert.Equal(t, "enjoy", req.Comment)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/manage/leaves/"+requestID+"/approve", strings.NewReader(`{"comment":"enjoy"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		c.Set("user_id_validated", supervisorID)

		h.Approve(c)
		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("already processed maps to conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, actorID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		requestID := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPatch, "/manage/leaves/"+requestID+"/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		c.Set("user_id_validated", uuid.New().String())

		h.Approve(c)
		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("insufficient balance maps to conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, actorID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInsufficientBalance
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		requestID := uuid.New().String()
		c.Request = httptest.NewRequest(http.MethodPatch, "/manage/leaves/"+requestID+"/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		c.Set("user_id_validated", uuid.New().String())

		h.Approve(c)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLeaveHandler_Reject(t *testing.T) {
	supervisorID := uuid.New().String()
	requestID := uuid.New().String()

	svc := &fakeLeaveService{
		rejectFn: func(ctx context.Context, actorID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, supervisorID, actorID)
			return leave.LeaveResponse{ID: id, Status: leave.StatusRejected}, nil
		},
	}
	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/manage/leaves/"+requestID+"/reject", nil)
	c.Params = gin.Params{{Key: "id", Value: requestID}}
	c.Set("user_id_validated", supervisorID)

	h.Reject(c)
	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	var got leave.LeaveResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, leave.StatusRejected, got.Status)
}
