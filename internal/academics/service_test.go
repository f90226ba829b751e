package academics

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"campus-api/internal/listing"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Subject{}, &Room{}, &Class{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	return db
}

func TestSubjectService_Create_DuplicateCode(t *testing.T) {
	db := newTestDB(t)
	svc := &SubjectService{DB: db}

	if _, err := svc.Create("school-1", CreateSubjectInput{Name: "Maths", Code: "MAT"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create("school-1", CreateSubjectInput{Name: "Other", Code: "MAT"}); err == nil ||
		!strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected duplicate-code error, got %v", err)
	}
	if _, err := svc.Create("school-2", CreateSubjectInput{Name: "Maths", Code: "MAT"}); err != nil {
		t.Fatalf("subject codes are per school, got %v", err)
	}
}

func TestSubjectService_List_FiltersAndSearch(t *testing.T) {
	db := newTestDB(t)
	svc := &SubjectService{DB: db}

	mustCreateSubject(t, svc, "school-1", "Mathematics", "MAT", "4")
	mustCreateSubject(t, svc, "school-1", "English", "ENG", "4")
	mustCreateSubject(t, svc, "school-1", "Physics", "PHY", "6")

	res, err := svc.List("school-1", SubjectFilters{GradeLevel: "4"}, listing.Params{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("expected 2 grade-4 subjects, got %d", res.Total)
	}

	res, err = svc.List("school-1", SubjectFilters{Search: "PHY"}, listing.Params{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 1 || res.Data[0].Name != "Physics" {
		t.Fatalf("search should match code: %+v", res)
	}
}

func mustCreateSubject(t *testing.T, svc *SubjectService, schoolID, name, code, grade string) Subject {
	t.Helper()
	sub, err := svc.Create(schoolID, CreateSubjectInput{Name: name, Code: code, GradeLevel: grade})
	if err != nil {
		t.Fatalf("create subject %s: %v", code, err)
	}
	return *sub
}

func TestRoomService_List_Filters(t *testing.T) {
	db := newTestDB(t)
	svc := &RoomService{DB: db}

	if _, err := svc.Create("school-1", CreateRoomInput{Name: "Lab 1", Code: "L1", Building: "Science Block", RoomType: "lab"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create("school-1", CreateRoomInput{Name: "Room 10", Code: "R10", Building: "Main", RoomType: "classroom"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	res, err := svc.List("school-1", RoomFilters{RoomType: "lab"}, listing.Params{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 1 || res.Data[0].Code != "L1" {
		t.Fatalf("unexpected room_type filter result: %+v", res)
	}

	res, err = svc.List("school-1", RoomFilters{Building: "Main"}, listing.Params{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 1 || res.Data[0].Code != "R10" {
		t.Fatalf("unexpected building filter result: %+v", res)
	}
}

func TestClassService_Create_KeepsSchedule(t *testing.T) {
	db := newTestDB(t)
	svc := &ClassService{DB: db}

	cl, err := svc.Create("school-1", CreateClassInput{
		Name:         "4 Blue",
		GradeLevel:   "4",
		AcademicYear: "2026",
		Capacity:     40,
		ScheduleDays: []string{"monday", "wednesday", "friday"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(cl.ScheduleDays) != 3 || cl.ScheduleDays[1] != "wednesday" {
		t.Fatalf("schedule days lost: %+v", cl.ScheduleDays)
	}

	got, err := svc.Get("school-1", cl.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.ScheduleDays) != 3 {
		t.Fatalf("schedule days not persisted: %+v", got.ScheduleDays)
	}
}

func TestClassService_List_Filters(t *testing.T) {
	db := newTestDB(t)
	svc := &ClassService{DB: db}

	teacherID := "teacher-1"
	if _, err := svc.Create("school-1", CreateClassInput{Name: "4 Blue", GradeLevel: "4", AcademicYear: "2026", TeacherID: &teacherID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create("school-1", CreateClassInput{Name: "5 Red", GradeLevel: "5", AcademicYear: "2025"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	res, err := svc.List("school-1", ClassFilters{AcademicYear: "2026"}, listing.Params{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 1 || res.Data[0].Name != "4 Blue" {
		t.Fatalf("unexpected academic_year filter result: %+v", res)
	}

	res, err = svc.List("school-1", ClassFilters{TeacherID: teacherID}, listing.Params{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 1 || res.Data[0].TeacherID == nil || *res.Data[0].TeacherID != teacherID {
		t.Fatalf("unexpected teacher filter result: %+v", res)
	}
}

func TestClassService_Update_ReplacesSchedule(t *testing.T) {
	db := newTestDB(t)
	svc := &ClassService{DB: db}

	cl, err := svc.Create("school-1", CreateClassInput{
		Name:         "4 Blue",
		AcademicYear: "2026",
		ScheduleDays: []string{"monday"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	days := []string{"tuesday", "thursday"}
	if _, err := svc.Update("school-1", cl.ID, UpdateClassInput{ScheduleDays: &days}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.Get("school-1", cl.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.ScheduleDays) != 2 || got.ScheduleDays[0] != "tuesday" {
		t.Fatalf("schedule not replaced: %+v", got.ScheduleDays)
	}
	if got.Name != "4 Blue" {
		t.Fatalf("unset fields must be untouched: %+v", got)
	}
}

func TestAcademics_CrossSchool_NotFound(t *testing.T) {
	db := newTestDB(t)

	subjects := &SubjectService{DB: db}
	sub := mustCreateSubject(t, subjects, "school-1", "Maths", "MAT", "4")
	if _, err := subjects.Get("school-2", sub.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("cross-tenant subject read must look like not found, got %v", err)
	}

	classes := &ClassService{DB: db}
	cl, err := classes.Create("school-1", CreateClassInput{Name: "4 Blue", AcademicYear: "2026"})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}
	if err := classes.Delete("school-2", cl.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("cross-tenant class delete must look like not found, got %v", err)
	}
}
