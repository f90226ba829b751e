package student

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-api/internal/audit"
	"campus-api/internal/listing"
)

type studentServiceStub struct {
	listFn   func(schoolID string, f ListFilters, p listing.Params) (listing.Result[Student], error)
	getFn    func(schoolID, id string) (*Student, error)
	createFn func(schoolID string, in CreateStudentInput) (*Student, error)
	updateFn func(schoolID, id string, in UpdateStudentInput) (*Student, error)
	deleteFn func(schoolID, id string) error
}

func (s *studentServiceStub) List(schoolID string, f ListFilters, p listing.Params) (listing.Result[Student], error) {
	return s.listFn(schoolID, f, p)
}
func (s *studentServiceStub) Get(schoolID, id string) (*Student, error) {
	return s.getFn(schoolID, id)
}
func (s *studentServiceStub) Create(schoolID string, in CreateStudentInput) (*Student, error) {
	return s.createFn(schoolID, in)
}
func (s *studentServiceStub) Update(schoolID, id string, in UpdateStudentInput) (*Student, error) {
	return s.updateFn(schoolID, id, in)
}
func (s *studentServiceStub) Delete(schoolID, id string) error { return s.deleteFn(schoolID, id) }

type logStub struct {
	entries []audit.Entry
}

func (l *logStub) Log(entry audit.Entry, payload any) error {
	l.entries = append(l.entries, entry)
	return nil
}

func newRouter(controller *StudentController, schoolID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Set("role", "admin")
		if schoolID != "" {
			c.Set("schoolID", schoolID)
		}
	})
	r.GET("/students", controller.List)
	r.GET("/students/:id", controller.Get)
	r.POST("/students", controller.Create)
	r.PUT("/students/:id", controller.Update)
	r.DELETE("/students/:id", controller.Delete)
	return r
}

func TestStudentController_List_UsesCallerSchool(t *testing.T) {
	var captured string
	stub := &studentServiceStub{
		listFn: func(schoolID string, f ListFilters, p listing.Params) (listing.Result[Student], error) {
			captured = schoolID
			return listing.Result[Student]{Data: []Student{}, Page: 1, Pages: 1}, nil
		},
	}
	r := newRouter(&StudentController{StudentService: stub, LS: &logStub{}}, "school-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/students", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured != "school-1" {
		t.Fatalf("school scope must come from the token, got %q", captured)
	}
}

func TestStudentController_List_NoSchool_403(t *testing.T) {
	r := newRouter(&StudentController{StudentService: &studentServiceStub{}, LS: &logStub{}}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/students", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestStudentController_List_ForwardsFilters(t *testing.T) {
	var captured ListFilters
	stub := &studentServiceStub{
		listFn: func(schoolID string, f ListFilters, p listing.Params) (listing.Result[Student], error) {
			captured = f
			return listing.Result[Student]{Data: []Student{}, Page: 1, Pages: 1}, nil
		},
	}
	r := newRouter(&StudentController{StudentService: stub, LS: &logStub{}}, "school-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/students?status=active&grade_level=4&class_id=c9&search=moyo", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured.Status != "active" || captured.GradeLevel != "4" || captured.ClassID != "c9" || captured.Search != "moyo" {
		t.Fatalf("filters not forwarded: %+v", captured)
	}
}

func TestStudentController_Get_404(t *testing.T) {
	stub := &studentServiceStub{
		getFn: func(schoolID, id string) (*Student, error) { return nil, gorm.ErrRecordNotFound },
	}
	r := newRouter(&StudentController{StudentService: stub, LS: &logStub{}}, "school-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/students/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStudentController_Create_201_AuditsEnrolment(t *testing.T) {
	stub := &studentServiceStub{
		createFn: func(schoolID string, in CreateStudentInput) (*Student, error) {
			return &Student{ID: "new-id", SchoolID: schoolID, AdmissionNo: in.AdmissionNo}, nil
		},
	}
	logs := &logStub{}
	r := newRouter(&StudentController{StudentService: stub, LS: logs}, "school-1")

	body := bytes.NewReader([]byte(`{"firstname": "Tari", "lastname": "Moyo", "admission_no": "ADM-001"}`))
	req := httptest.NewRequest("POST", "/students", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	if len(logs.entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(logs.entries))
	}
	entry := logs.entries[0]
	if entry.Service != "student" || entry.Action != "CREATE" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
	if entry.SchoolID == nil || *entry.SchoolID != "school-1" {
		t.Fatalf("audit entry must carry the school, got %+v", entry)
	}
}

func TestStudentController_Create_MissingRequired_400(t *testing.T) {
	r := newRouter(&StudentController{StudentService: &studentServiceStub{}, LS: &logStub{}}, "school-1")

	body := bytes.NewReader([]byte(`{"firstname": "Tari"}`))
	req := httptest.NewRequest("POST", "/students", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestStudentController_Update_PassesOnlySetFields(t *testing.T) {
	var captured UpdateStudentInput
	stub := &studentServiceStub{
		updateFn: func(schoolID, id string, in UpdateStudentInput) (*Student, error) {
			captured = in
			return &Student{ID: id}, nil
		},
	}
	r := newRouter(&StudentController{StudentService: stub, LS: &logStub{}}, "school-1")

	body := bytes.NewReader([]byte(`{"grade_level": "5"}`))
	req := httptest.NewRequest("PUT", "/students/s1", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if captured.GradeLevel == nil || *captured.GradeLevel != "5" {
		t.Fatalf("expected grade set, got %#v", captured.GradeLevel)
	}
	if captured.FirstName != nil || captured.Status != nil || captured.ClassID != nil {
		t.Fatalf("fields not in the body must stay nil: %#v", captured)
	}
}

func TestStudentController_Update_InvalidStatus_400(t *testing.T) {
	r := newRouter(&StudentController{StudentService: &studentServiceStub{}, LS: &logStub{}}, "school-1")

	body := bytes.NewReader([]byte(`{"status": "expelled"}`))
	req := httptest.NewRequest("PUT", "/students/s1", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", w.Code)
	}
}

func TestStudentController_Delete_204_Audits(t *testing.T) {
	stub := &studentServiceStub{
		deleteFn: func(schoolID, id string) error { return nil },
	}
	logs := &logStub{}
	r := newRouter(&StudentController{StudentService: stub, LS: logs}, "school-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/students/s1", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if len(logs.entries) != 1 || logs.entries[0].Action != "DELETE" {
		t.Fatalf("expected delete audit entry, got %+v", logs.entries)
	}
}

func TestStudentController_Delete_404(t *testing.T) {
	stub := &studentServiceStub{
		deleteFn: func(schoolID, id string) error { return gorm.ErrRecordNotFound },
	}
	logs := &logStub{}
	r := newRouter(&StudentController{StudentService: stub, LS: logs}, "school-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/students/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if len(logs.entries) != 0 {
		t.Fatalf("failed delete must not be audited, got %+v", logs.entries)
	}
}
