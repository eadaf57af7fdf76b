package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rominswe/pg-progress-sub001/internal/dto"
	"github.com/rominswe/pg-progress-sub001/internal/model"
	apperrors "github.com/rominswe/pg-progress-sub001/pkg/errors"
	"github.com/rominswe/pg-progress-sub001/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AssignmentService ──

type mockAssignmentService struct {
	requestResult *dto.AssignmentResponse
	requestErr    error
	approveResult *dto.AssignmentResponse
	approveErr    error
	rejectResult  *dto.AssignmentResponse
	rejectErr     error
	deleteErr     error
}

func (m *mockAssignmentService) Request(_ context.Context, _ *dto.RequestAssignmentRequest, _ model.Actor) (*dto.AssignmentResponse, error) {
	return m.requestResult, m.requestErr
}
func (m *mockAssignmentService) Approve(_ context.Context, _ string, _ model.Actor) (*dto.AssignmentResponse, error) {
	return m.approveResult, m.approveErr
}
func (m *mockAssignmentService) Reject(_ context.Context, _ string, _ *dto.RejectAssignmentRequest, _ model.Actor) (*dto.AssignmentResponse, error) {
	return m.rejectResult, m.rejectErr
}
func (m *mockAssignmentService) Delete(_ context.Context, _ string, _ model.Actor) error {
	return m.deleteErr
}

// ── Mock ReportService ──

type mockReportService struct {
	pendingResult []dto.AssignmentResponse
	pendingErr    error
	statsResult   []dto.EntityStats
	statsErr      error
	entityResult  []dto.AssignmentResponse
	entityErr     error
}

func (m *mockReportService) ListPending(_ context.Context, _ *dto.PendingFilter) ([]dto.AssignmentResponse, error) {
	return m.pendingResult, m.pendingErr
}
func (m *mockReportService) GetStats(_ context.Context, _ *dto.StatsQuery) ([]dto.EntityStats, error) {
	return m.statsResult, m.statsErr
}
func (m *mockReportService) GetAssignmentsFor(_ context.Context, _, _ string) ([]dto.AssignmentResponse, error) {
	return m.entityResult, m.entityErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportStats(_ context.Context, _ *dto.StatsQuery) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock DirectoryService ──

type mockDirectoryService struct {
	studentResult *dto.StudentResponse
	studentErr    error
	staffResult   *dto.StaffResponse
	staffErr      error
}

func (m *mockDirectoryService) GetStudent(_ context.Context, _ string) (*dto.StudentResponse, error) {
	return m.studentResult, m.studentErr
}
func (m *mockDirectoryService) GetStaff(_ context.Context, _ string) (*dto.StaffResponse, error) {
	return m.staffResult, m.staffErr
}

// ── Mock NotificationService ──

type mockNotificationService struct {
	listResult []dto.NotificationResponse
	listTotal  int64
	listErr    error
	markErr    error
}

func (m *mockNotificationService) List(_ context.Context, _ string, _ *dto.PaginationRequest) ([]dto.NotificationResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockNotificationService) MarkRead(_ context.Context, _, _ string) error {
	return m.markErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// injectActor 模拟 JWT 中间件注入的操作者上下文
func injectActor(role, level string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("actor_id", "test-actor-id")
		c.Set("role", role)
		c.Set("level", level)
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func pendingAssignment() *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:             "ra-001",
		StudentID:      "stu-1",
		StaffID:        "sup-1",
		StaffRoleType:  "supervisor",
		AssignmentType: "main_supervisor",
		Status:         "pending",
		RequestedBy:    "staff-exec",
	}
}

// ═══════════════════════════════════════════════════════════
// AssignmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAssignmentHandler_Request_Success(t *testing.T) {
	mock := &mockAssignmentService{requestResult: pendingAssignment()}
	h := NewAssignmentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments", jsonBody(dto.RequestAssignmentRequest{
		StudentID:     "3f6c1c9a-96cb-4c2e-9a48-21f4387e6d10",
		StaffID:       "9a1dbb7e-3a65-4be5-9d9a-5cf104f7d001",
		StaffRoleType: "supervisor",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments", injectActor("grad_office", "executive"), h.Request)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAssignmentHandler_Request_BadJSON(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments", injectActor("grad_office", "executive"), h.Request)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAssignmentHandler_Request_Unauthenticated(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments", jsonBody(dto.RequestAssignmentRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments", h.Request) // 无中间件注入
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// 工作流错误 → HTTP 状态码映射
func TestAssignmentHandler_WorkflowErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
		wantReason string
	}{
		{"校验错误", apperrors.Validation("type_role_mismatch", "子类型与角色不匹配"), http.StatusBadRequest, 20001, "type_role_mismatch"},
		{"不存在", apperrors.NotFound("student_not_found", "学生不存在"), http.StatusNotFound, 20002, "student_not_found"},
		{"不符合资格", apperrors.Ineligible("student_inactive", "学生账户未激活"), http.StatusUnprocessableEntity, 20003, "student_inactive"},
		{"冲突", apperrors.Conflict(apperrors.ReasonDuplicate, "重复配对"), http.StatusConflict, 20004, "duplicate"},
		{"无权限", apperrors.Forbidden("insufficient_role", "权限不足"), http.StatusForbidden, 20005, "insufficient_role"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mock := &mockAssignmentService{requestErr: c.err}
			h := NewAssignmentHandler(mock)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/assignments", jsonBody(dto.RequestAssignmentRequest{
				StudentID:     "3f6c1c9a-96cb-4c2e-9a48-21f4387e6d10",
				StaffID:       "9a1dbb7e-3a65-4be5-9d9a-5cf104f7d001",
				StaffRoleType: "supervisor",
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/assignments", injectActor("grad_office", "executive"), h.Request)
			r.ServeHTTP(w, req)

			if w.Code != c.wantStatus {
				t.Errorf("expected %d, got %d", c.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != c.wantCode {
				t.Errorf("expected code %d, got %d", c.wantCode, resp.Code)
			}
			if resp.Reason != c.wantReason {
				t.Errorf("expected reason %s, got %s", c.wantReason, resp.Reason)
			}
		})
	}
}

func TestAssignmentHandler_Approve_Success(t *testing.T) {
	approved := pendingAssignment()
	approved.Status = "approved"
	mock := &mockAssignmentService{approveResult: approved}
	h := NewAssignmentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/assignments/ra-001/approve", nil)

	r := gin.New()
	r.PUT("/assignments/:id/approve", injectActor("grad_office", "director"), h.Approve)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAssignmentHandler_Reject_MissingRemarks(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/assignments/ra-001/reject", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/assignments/:id/reject", injectActor("grad_office", "director"), h.Reject)
	r.ServeHTTP(w, req)

	// remarks 为 required 绑定字段
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAssignmentHandler_Delete_Success(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/assignments/ra-001", nil)

	r := gin.New()
	r.DELETE("/assignments/:id", injectActor("admin", ""), h.Delete)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ReportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReportHandler_ListPending(t *testing.T) {
	mock := &mockReportService{pendingResult: []dto.AssignmentResponse{*pendingAssignment()}}
	h := NewReportHandler(mock, &mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments/pending?department=计算机学院", nil)

	r := gin.New()
	r.GET("/assignments/pending", h.ListPending)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestReportHandler_GetStats_MissingEntityType(t *testing.T) {
	h := NewReportHandler(&mockReportService{}, &mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments/stats", nil)

	r := gin.New()
	r.GET("/assignments/stats", h.GetStats)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("entity_type 缺失应 400，got %d", w.Code)
	}
}

func TestReportHandler_ExportStats(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-bytes"),
		filename: "assignment_stats_student_20260831.xlsx",
	}
	h := NewReportHandler(&mockReportService{}, mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments/stats/export?entity_type=student", nil)

	r := gin.New()
	r.GET("/assignments/stats/export", h.ExportStats)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type 不符: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("应设置 Content-Disposition 下载头")
	}
}

func TestReportHandler_GetEntityAssignments_BadType(t *testing.T) {
	h := NewReportHandler(&mockReportService{}, &mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/assignments/entity/course/3f6c1c9a-96cb-4c2e-9a48-21f4387e6d10", nil)

	r := gin.New()
	r.GET("/assignments/entity/:type/:id", h.GetEntityAssignments)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("非法 entity_type 应 400，got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// DirectoryHandler / NotificationHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDirectoryHandler_GetStudent_NotFound(t *testing.T) {
	mock := &mockDirectoryService{studentErr: apperrors.NotFound("student_not_found", "学生不存在")}
	h := NewDirectoryHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/students/stu-missing", nil)

	r := gin.New()
	r.GET("/students/:id", h.GetStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestNotificationHandler_List(t *testing.T) {
	mock := &mockNotificationService{
		listResult: []dto.NotificationResponse{{ID: "ntf-001", Title: "分配已通过"}},
		listTotal:  1,
	}
	h := NewNotificationHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/notifications?page=1&page_size=10", nil)

	r := gin.New()
	r.GET("/notifications", injectActor("supervisor", ""), h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/notifications/ntf-001/read", nil)

	r := gin.New()
	r.PUT("/notifications/:id/read", injectActor("student", ""), h.MarkRead)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
