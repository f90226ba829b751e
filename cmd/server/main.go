package main

import (
	"log"
	"os"

	"campus-api/config"
	"campus-api/internal/academics"
	"campus-api/internal/assessment"
	"campus-api/internal/attendance"
	"campus-api/internal/audit"
	"campus-api/internal/auth"
	"campus-api/internal/bursary"
	"campus-api/internal/guardian"
	"campus-api/internal/middlewares"
	"campus-api/internal/school"
	"campus-api/internal/staff"
	"campus-api/internal/student"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()

	dsn := "host=" + cfg.DBHost +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" port=" + cfg.DBPort +
		" sslmode=disable"

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&auth.User{},
		&auth.OTP{},
		&audit.Entry{},
		&school.School{},
		&student.Student{},
		&staff.Teacher{},
		&guardian.Guardian{},
		&guardian.GuardianStudent{},
		&academics.Subject{},
		&academics.Room{},
		&academics.Class{},
		&attendance.Record{},
		&assessment.Assessment{},
		&bursary.Bursary{},
	); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Token revocation is optional: without Redis, logout simply relies on
	// token expiry.
	var revoker *auth.RevocationStore
	var revoked middlewares.TokenRevocationChecker
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		revoker = auth.NewRevocationStore(client)
		revoked = revoker
	}

	logService := &audit.Service{DB: db}
	audit.RegisterRoutes(r, logService, cfg.JWTSecret, revoked)

	authService := &auth.AuthService{DB: db, CFG: &cfg}
	auth.RegisterRoutes(r, &auth.AuthController{
		AuthService: authService,
		LS:          logService,
		Secret:      cfg.JWTSecret,
		Revoker:     revoker,
	})

	schoolService := &school.SchoolService{DB: db}
	school.RegisterRoutes(r, schoolService, cfg.JWTSecret, revoked)

	studentService := &student.StudentService{DB: db}
	student.RegisterRoutes(r, studentService, logService, cfg.JWTSecret, revoked)

	staffService := &staff.StaffService{DB: db}
	staff.RegisterRoutes(r, staffService, cfg.JWTSecret, revoked)

	guardianService := &guardian.GuardianService{DB: db}
	guardian.RegisterRoutes(r, guardianService, cfg.JWTSecret, revoked)

	subjectService := &academics.SubjectService{DB: db}
	roomService := &academics.RoomService{DB: db}
	classService := &academics.ClassService{DB: db}
	academics.RegisterRoutes(r, subjectService, roomService, classService, cfg.JWTSecret, revoked)

	attendanceService := &attendance.AttendanceService{DB: db}
	attendance.RegisterRoutes(r, attendanceService, cfg.JWTSecret, revoked)

	assessmentService := &assessment.AssessmentService{DB: db}
	assessment.RegisterRoutes(r, assessmentService, cfg.JWTSecret, revoked)

	bursaryService := &bursary.BursaryService{DB: db, Bucket: cfg.GCSBucket}
	bursary.RegisterRoutes(r, bursaryService, cfg.JWTSecret, revoked)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on 0.0.0.0:%s ...", port)
	log.Fatal(r.Run("0.0.0.0:" + port))
}
