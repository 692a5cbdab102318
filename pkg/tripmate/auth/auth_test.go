package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tripmate/tripmate/pkg/tripmate/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	authGroup := r.Group("/auth")
	handler.RegisterRoutes(authGroup)
	return r
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	hash, _ := HashPassword("password123")
	user := models.User{
		Name:         "Test",
		Surname:      "User",
		Email:        email,
		PasswordHash: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func getAuthHeader(user models.User) string {
	token, _ := GenerateToken(user.ID, user.Email)
	return "Bearer " + token
}

func postJSON(router *gin.Engine, method, path string, body interface{}, authHeader string) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestPasswordHashing(t *testing.T) {
	password := "testpassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == password {
		t.Error("Hash should not equal plain password")
	}

	if !CheckPassword(password, hash) {
		t.Error("CheckPassword should return true for correct password")
	}

	if CheckPassword("wrongpassword", hash) {
		t.Error("CheckPassword should return false for incorrect password")
	}
}

func TestJWTToken(t *testing.T) {
	token, err := GenerateToken(1, "test@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.UserID != 1 {
		t.Errorf("Expected user ID 1, got %d", claims.UserID)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("Expected email test@example.com, got %s", claims.Email)
	}

	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("ValidateToken should reject a malformed token")
	}
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	resp := postJSON(router, "POST", "/auth/register", RegisterRequest{
		Name:            "maria",
		Surname:         "GARCIA",
		Email:           "maria@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}, "")

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var response AuthResponse
	json.Unmarshal(resp.Body.Bytes(), &response)

	if response.Token == "" {
		t.Error("Expected a token in the response")
	}
	if response.User.Name != "Maria" {
		t.Errorf("Expected capitalized name 'Maria', got %s", response.User.Name)
	}
	if response.User.Surname != "Garcia" {
		t.Errorf("Expected capitalized surname 'Garcia', got %s", response.User.Surname)
	}

	var user models.User
	if err := db.Where("email = ?", "maria@example.com").First(&user).Error; err != nil {
		t.Fatalf("Expected user to be persisted: %v", err)
	}
	if user.PasswordHash == "password123" {
		t.Error("Password must not be stored in plaintext")
	}
}

func TestRegisterValidationAccumulates(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	resp := postJSON(router, "POST", "/auth/register", RegisterRequest{
		Name:            "ab",
		Surname:         "x",
		Email:           "not-an-email",
		Password:        "short",
		ConfirmPassword: "different",
	}, "")

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.Code)
	}

	var response struct {
		Errors []string `json:"errors"`
	}
	json.Unmarshal(resp.Body.Bytes(), &response)

	if len(response.Errors) != 5 {
		t.Errorf("Expected all 5 violations reported together, got %d: %v", len(response.Errors), response.Errors)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Error("No user should be created when validation fails")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(t, db, "taken@example.com")

	resp := postJSON(router, "POST", "/auth/register", RegisterRequest{
		Name:            "maria",
		Surname:         "garcia",
		Email:           "taken@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}, "")

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.Code)
	}

	var response struct {
		Errors []string `json:"errors"`
	}
	json.Unmarshal(resp.Body.Bytes(), &response)

	if len(response.Errors) != 1 || response.Errors[0] != "Email is already registered" {
		t.Errorf("Expected duplicate email error, got %v", response.Errors)
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(t, db, "test@example.com")

	resp := postJSON(router, "POST", "/auth/login", LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	}, "")

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response AuthResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.Token == "" {
		t.Error("Expected a token in the response")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	resp := postJSON(router, "POST", "/auth/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	}, "")

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", resp.Code)
	}

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response["error"] != "Email not registered" {
		t.Errorf("Expected unknown-email message, got %q", response["error"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(t, db, "test@example.com")

	resp := postJSON(router, "POST", "/auth/login", LoginRequest{
		Email:    "test@example.com",
		Password: "wrongpassword",
	}, "")

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", resp.Code)
	}

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response["error"] != "Incorrect password" {
		t.Errorf("Expected wrong-password message, got %q", response["error"])
	}
}

func TestMe(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")

	req, _ := http.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response UserResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.Email != "test@example.com" {
		t.Errorf("Expected email test@example.com, got %s", response.Email)
	}
}

func TestMeRequiresAuth(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/auth/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")

	// Keeping the same email must not trip the uniqueness check
	resp := postJSON(router, "PUT", "/auth/me", UpdateProfileRequest{
		Name:    "renamed",
		Surname: "person",
		Email:   "test@example.com",
	}, getAuthHeader(user))

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response UserResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.Name != "Renamed" {
		t.Errorf("Expected capitalized name 'Renamed', got %s", response.Name)
	}
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	createTestUser(t, db, "other@example.com")

	resp := postJSON(router, "PUT", "/auth/me", UpdateProfileRequest{
		Name:    "test",
		Surname: "user",
		Email:   "other@example.com",
	}, getAuthHeader(user))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", resp.Code)
	}

	var check models.User
	db.First(&check, user.ID)
	if check.Email != "test@example.com" {
		t.Error("Email should not change when validation fails")
	}
}

func TestUpdateProfileDoesNotTouchPassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	originalHash := user.PasswordHash

	resp := postJSON(router, "PUT", "/auth/me", UpdateProfileRequest{
		Name:    "renamed",
		Surname: "person",
		Email:   "new@example.com",
	}, getAuthHeader(user))

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var check models.User
	db.First(&check, user.ID)
	if check.PasswordHash != originalHash {
		t.Error("Profile update must not modify the password hash")
	}
}
