package attendance

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"campus-api/internal/listing"
)

type attendanceServiceStub struct {
	listFn   func(schoolID string, f ListFilters, p listing.Params) (listing.Result[Record], error)
	getFn    func(schoolID, id string) (*Record, error)
	markFn   func(schoolID string, in MarkRegisterInput) ([]Record, error)
	updateFn func(schoolID, id string, in UpdateRecordInput) (*Record, error)
	deleteFn func(schoolID, id string) error
	sumFn    func(schoolID string, f ListFilters) (*Summary, error)
	exportFn func(schoolID string, f ListFilters) (string, string, []byte, error)
}

func (s *attendanceServiceStub) List(schoolID string, f ListFilters, p listing.Params) (listing.Result[Record], error) {
	return s.listFn(schoolID, f, p)
}
func (s *attendanceServiceStub) Get(schoolID, id string) (*Record, error) {
	return s.getFn(schoolID, id)
}
func (s *attendanceServiceStub) MarkRegister(schoolID string, in MarkRegisterInput) ([]Record, error) {
	return s.markFn(schoolID, in)
}
func (s *attendanceServiceStub) Update(schoolID, id string, in UpdateRecordInput) (*Record, error) {
	return s.updateFn(schoolID, id, in)
}
func (s *attendanceServiceStub) Delete(schoolID, id string) error { return s.deleteFn(schoolID, id) }
func (s *attendanceServiceStub) Summarize(schoolID string, f ListFilters) (*Summary, error) {
	return s.sumFn(schoolID, f)
}
func (s *attendanceServiceStub) Export(schoolID string, f ListFilters) (string, string, []byte, error) {
	return s.exportFn(schoolID, f)
}

func newRouter(controller *AttendanceController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Set("role", "teacher")
		c.Set("schoolID", "school-1")
	})
	r.GET("/attendance", controller.List)
	r.GET("/attendance/summary", controller.Summary)
	r.GET("/attendance/export", controller.Export)
	r.POST("/attendance/register", controller.MarkRegister)
	return r
}

func TestAttendanceController_List_ForwardsDateRange(t *testing.T) {
	var captured ListFilters
	stub := &attendanceServiceStub{
		listFn: func(schoolID string, f ListFilters, p listing.Params) (listing.Result[Record], error) {
			captured = f
			return listing.Result[Record]{Data: []Record{}, Page: 1, Pages: 1}, nil
		},
	}
	r := newRouter(&AttendanceController{AttendanceService: stub})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/attendance?class_id=c1&start_date=2026-03-01&end_date=2026-03-31", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured.ClassID != "c1" || captured.StartDate != "2026-03-01" || captured.EndDate != "2026-03-31" {
		t.Fatalf("filters not forwarded: %+v", captured)
	}
}

func TestAttendanceController_MarkRegister_201(t *testing.T) {
	var captured MarkRegisterInput
	stub := &attendanceServiceStub{
		markFn: func(schoolID string, in MarkRegisterInput) ([]Record, error) {
			captured = in
			return []Record{{ID: "r1"}}, nil
		},
	}
	r := newRouter(&AttendanceController{AttendanceService: stub})

	body := bytes.NewReader([]byte(`{
		"class_id": "c1",
		"date": "2026-03-02",
		"entries": [{"student_id": "s1", "status": "present"}]
	}`))
	req := httptest.NewRequest("POST", "/attendance/register", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	if captured.ClassID != "c1" || len(captured.Entries) != 1 {
		t.Fatalf("input not forwarded: %+v", captured)
	}
}

func TestAttendanceController_MarkRegister_BadStatus_400(t *testing.T) {
	r := newRouter(&AttendanceController{AttendanceService: &attendanceServiceStub{}})

	body := bytes.NewReader([]byte(`{
		"class_id": "c1",
		"date": "2026-03-02",
		"entries": [{"student_id": "s1", "status": "vanished"}]
	}`))
	req := httptest.NewRequest("POST", "/attendance/register", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", w.Code)
	}
}

func TestAttendanceController_MarkRegister_EmptyEntries_400(t *testing.T) {
	r := newRouter(&AttendanceController{AttendanceService: &attendanceServiceStub{}})

	body := bytes.NewReader([]byte(`{"class_id": "c1", "date": "2026-03-02", "entries": []}`))
	req := httptest.NewRequest("POST", "/attendance/register", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty register, got %d", w.Code)
	}
}

func TestAttendanceController_Summary_OK(t *testing.T) {
	stub := &attendanceServiceStub{
		sumFn: func(schoolID string, f ListFilters) (*Summary, error) {
			return &Summary{Present: 20, Absent: 3, Total: 23}, nil
		},
	}
	r := newRouter(&AttendanceController{AttendanceService: stub})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/attendance/summary?class_id=c1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"present":20`)) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestAttendanceController_Export_SetsDisposition(t *testing.T) {
	stub := &attendanceServiceStub{
		exportFn: func(schoolID string, f ListFilters) (string, string, []byte, error) {
			return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "attendance.xlsx", []byte("fake"), nil
		},
	}
	r := newRouter(&AttendanceController{AttendanceService: stub})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/attendance/export", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Disposition") != `attachment; filename="attendance.xlsx"` {
		t.Fatalf("unexpected disposition %q", w.Header().Get("Content-Disposition"))
	}
}
