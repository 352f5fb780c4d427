package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"autogenics-server/config"
	"autogenics-server/database"
	"autogenics-server/middleware"
	"autogenics-server/models"
	"autogenics-server/services"
	"autogenics-server/utils"
	ws "autogenics-server/websocket"
)

// stubStorage implements services.Storage for handler tests and records
// whether the backend was touched.
type stubStorage struct {
	ensureCalls int
	uploadCalls int
	failUpload  bool
}

func (s *stubStorage) EnsureBucket(ctx context.Context, bucket string) error {
	s.ensureCalls++
	return nil
}

func (s *stubStorage) Upload(ctx context.Context, bucket, fileName string, file io.Reader) (string, error) {
	s.uploadCalls++
	if s.failUpload {
		return "", fmt.Errorf("upload rejected")
	}
	return "https://cdn.example.com/" + bucket + "/" + fileName + ".jpg", nil
}

// setupTestServer wires the full route surface against an in-memory
// database, mirroring main.go's registration order.
func setupTestServer(t *testing.T) (*gin.Engine, *stubStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()
	RegisterValidators()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// A single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	hub := ws.NewHub()
	go hub.Run()

	storage := &stubStorage{}
	notifier := services.NewNotifier()
	chatStore := services.NewChatStore()
	chatService := services.NewChatService()

	router := gin.New()
	v1 := router.Group("/api/v1")

	RegisterPublicRoutes(v1)

	authGroup := v1.Group("/auth")
	RegisterAuthRoutes(authGroup)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware())
	RegisterBookingRoutes(protected, hub)
	RegisterFeedbackRoutes(protected, hub)
	RegisterProfileRoutes(protected)
	RegisterChatRoutes(protected, chatStore, chatService)

	adminGroup := v1.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminAuthMiddleware())
	RegisterAdminBookingRoutes(adminGroup, hub, storage, notifier)
	RegisterAdminFeedbackRoutes(adminGroup, hub)
	RegisterAdminRoutes(adminGroup, storage)

	return router, storage
}

// createTestUser inserts a user and returns it with a valid access token.
func createTestUser(t *testing.T, email string, admin, superadmin bool) (models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		FullName:     "Test User",
		Email:        email,
		PasswordHash: hash,
		Phone:        "555-0100",
		IsAdmin:      admin,
		IsSuperAdmin: superadmin,
		IsActive:     true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, token
}

// doJSON performs a JSON request against the router.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doMultipart performs a multipart upload with one photo field.
func doMultipart(t *testing.T, router *gin.Engine, path, token, fileName, contentType string, payload []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		writer.WriteField(key, value)
	}
	if fileName != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename=%q`, fileName))
		if contentType != "" {
			header.Set("Content-Type", contentType)
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		part.Write(payload)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a response body into a map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func bookingPayload(date, slot string) map[string]string {
	return map[string]string{
		"date":       date,
		"time_slot":  slot,
		"service_id": "basic",
		"car_make":   "Toyota",
		"car_model":  "Camry",
		"phone":      "555-0100",
	}
}
