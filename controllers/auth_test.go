package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/khadamaty/khadamaty-api/db"
	"github.com/khadamaty/khadamaty-api/models"
)

func setupSettingsApp(t *testing.T) *fiber.App {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.DB = gdb

	app := fiber.New()
	app.Patch("/auth/me", func(c *fiber.Ctx) error {
		c.Locals("userEmail", "u@x.com")
		return c.Next()
	}, UpdateMyAccount)
	return app
}

func seedSettingsUser(t *testing.T, password string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Name:        "Old Name",
		Email:       "u@x.com",
		Password:    string(hashed),
		Governorate: "حلوان",
		Role:        models.RoleConsumer,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func patchSettings(t *testing.T, app *fiber.App, payload map[string]interface{}) (int, []byte) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodPatch, "/auth/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, data
}

func TestUpdateMyAccount_EditsOwnSettings(t *testing.T) {
	app := setupSettingsApp(t)
	seedSettingsUser(t, "old-secret")

	status, body := patchSettings(t, app, map[string]interface{}{
		"name":        "New Name",
		"governorate": "مدينة نصر",
		"phone":       "01000000000",
		"password":    "new-secret",
	})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var stored models.User
	if err := db.DB.Where("email = ?", "u@x.com").First(&stored).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Name != "New Name" || stored.Governorate != "مدينة نصر" || stored.Phone != "01000000000" {
		t.Fatalf("settings not applied: %+v", stored)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("new-secret")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}

	var echoed models.User
	if err := json.Unmarshal(body, &echoed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if echoed.Password != "" {
		t.Fatalf("response must not carry the password hash")
	}
}

func TestUpdateMyAccount_KeepsOmittedFields(t *testing.T) {
	app := setupSettingsApp(t)
	seedSettingsUser(t, "old-secret")

	status, body := patchSettings(t, app, map[string]interface{}{"phone": "01111111111"})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var stored models.User
	if err := db.DB.Where("email = ?", "u@x.com").First(&stored).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Name != "Old Name" || stored.Governorate != "حلوان" {
		t.Fatalf("omitted fields must stay untouched: %+v", stored)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("old-secret")); err != nil {
		t.Fatalf("password must stay untouched: %v", err)
	}
}

func TestUpdateMyAccount_RejectsUnknownGovernorate(t *testing.T) {
	app := setupSettingsApp(t)
	seedSettingsUser(t, "old-secret")

	status, body := patchSettings(t, app, map[string]interface{}{"governorate": "nowhere"})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", status, body)
	}

	var stored models.User
	if err := db.DB.Where("email = ?", "u@x.com").First(&stored).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Governorate != "حلوان" {
		t.Fatalf("rejected update must leave the user unchanged: %+v", stored)
	}
}
