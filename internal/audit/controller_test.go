package audit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"campus-api/internal/listing"
)

type serviceStub struct {
	listFn func(input FilterInput, p listing.Params) (listing.Result[Entry], Aggregates, error)
}

func (s *serviceStub) List(input FilterInput, p listing.Params) (listing.Result[Entry], Aggregates, error) {
	return s.listFn(input, p)
}

func listRequest(controller *Controller, path string, schoolID string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/audit-logs", func(c *gin.Context) {
		if schoolID != "" {
			c.Set("schoolID", schoolID)
		}
		controller.List(c)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestController_List_401_WithoutSchoolScope(t *testing.T) {
	controller := &Controller{Service: &serviceStub{}}

	w := listRequest(controller, "/audit-logs", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestController_List_ForwardsFiltersAndScope(t *testing.T) {
	var captured FilterInput
	var capturedParams listing.Params

	stub := &serviceStub{
		listFn: func(input FilterInput, p listing.Params) (listing.Result[Entry], Aggregates, error) {
			captured = input
			capturedParams = p
			return listing.Result[Entry]{Data: []Entry{}, Page: p.Page, Pages: 1}, Aggregates{}, nil
		},
	}
	controller := &Controller{Service: stub}

	w := listRequest(controller, "/audit-logs?level=WARN&service=auth&page=3&limit=10", "s1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	if captured.SchoolID == nil || *captured.SchoolID != "s1" {
		t.Fatalf("expected school scope forwarded, got %#v", captured.SchoolID)
	}
	if captured.Level == nil || *captured.Level != "WARN" {
		t.Fatalf("expected level filter, got %#v", captured.Level)
	}
	if captured.Service == nil || *captured.Service != "auth" {
		t.Fatalf("expected service filter, got %#v", captured.Service)
	}
	if captured.Action != nil || captured.Search != nil {
		t.Fatalf("unset filters must stay nil: %#v", captured)
	}
	if capturedParams.Page != 3 || capturedParams.Limit != 10 {
		t.Fatalf("unexpected params: %+v", capturedParams)
	}
}

func TestController_List_500_OnServiceError(t *testing.T) {
	stub := &serviceStub{
		listFn: func(FilterInput, listing.Params) (listing.Result[Entry], Aggregates, error) {
			return listing.Result[Entry]{}, Aggregates{}, errors.New("db fail")
		},
	}
	controller := &Controller{Service: stub}

	w := listRequest(controller, "/audit-logs", "s1")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestController_List_EnvelopeShape(t *testing.T) {
	stub := &serviceStub{
		listFn: func(FilterInput, listing.Params) (listing.Result[Entry], Aggregates, error) {
			return listing.Result[Entry]{
				Data:  []Entry{{Level: "INFO", Service: "auth", Action: "LOGIN", Message: "ok"}},
				Total: 50,
				Page:  1,
				Pages: 5,
			}, Aggregates{ByService: []AggItem{{Label: "auth", Count: 50}}}, nil
		},
	}
	controller := &Controller{Service: stub}

	w := listRequest(controller, "/audit-logs", "s1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, w.Body.String())
	}
	if resp["total"].(float64) != 50 || resp["pages"].(float64) != 5 {
		t.Fatalf("unexpected envelope: %#v", resp)
	}
	if _, ok := resp["aggregates"]; !ok {
		t.Fatalf("expected aggregates key")
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("unexpected data: %#v", resp["data"])
	}
}
