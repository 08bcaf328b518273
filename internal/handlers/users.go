package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nepal-egov/polling-backend/internal/models"
	"github.com/nepal-egov/polling-backend/internal/service"
)

type UserHandler struct {
	db    *gorm.DB
	users *service.UserService
}

func NewUserHandler(db *gorm.DB, users *service.UserService) *UserHandler {
	return &UserHandler{db: db, users: users}
}

// UploadDir is where profile photos land; served statically under /uploads.
func UploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	return dir
}

// UpdateProfile lets a citizen edit their own profile fields
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor := currentActor(c)
	if !actor.Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		FullName          string `json:"full_name"`
		Phone             string `json:"phone"`
		District          string `json:"district"`
		Municipality      string `json:"municipality"`
		WardNumber        int    `json:"ward_number"`
		CitizenshipNumber string `json:"citizenship_number"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, actor.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Update fields
	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.District != "" {
		user.District = input.District
	}
	if input.Municipality != "" {
		user.Municipality = input.Municipality
	}
	if input.WardNumber != 0 {
		user.WardNumber = input.WardNumber
	}
	if input.CitizenshipNumber != "" {
		user.CitizenshipNumber = input.CitizenshipNumber
	}

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UploadPhoto stores a new profile image and replaces the previous one
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	actor := currentActor(c)
	if !actor.Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo must be a JPG or PNG"})
		return
	}

	var user models.User
	if err := h.db.First(&user, actor.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	dir := UploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
		return
	}

	filename := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
		return
	}

	oldImage := user.ProfileImage
	user.ProfileImage = "/uploads/" + filename
	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	removeStoredPhoto(oldImage)

	c.JSON(http.StatusOK, gin.H{"profile_image": user.ProfileImage})
}

// DeletePhoto removes the caller's profile image
func (h *UserHandler) DeletePhoto(c *gin.Context) {
	actor := currentActor(c)
	if !actor.Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	if err := h.db.First(&user, actor.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	oldImage := user.ProfileImage
	user.ProfileImage = ""
	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	removeStoredPhoto(oldImage)

	c.JSON(http.StatusOK, gin.H{"message": "Profile photo removed"})
}

// removeStoredPhoto deletes an uploaded file best-effort; a failed removal
// is logged and otherwise ignored.
func removeStoredPhoto(imageURL string) {
	if imageURL == "" {
		return
	}
	name := strings.TrimPrefix(imageURL, "/uploads/")
	if name == "" || name == imageURL {
		return
	}
	if err := os.Remove(filepath.Join(UploadDir(), filepath.Base(name))); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove old profile photo %s: %v", name, err)
	}
}

// --- Admin back office ---

// ListUsers returns all accounts (admin only)
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUser applies a partial edit to an account (admin only)
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		FullName          *string `json:"full_name"`
		Phone             *string `json:"phone"`
		District          *string `json:"district"`
		Municipality      *string `json:"municipality"`
		WardNumber        *int    `json:"ward_number"`
		CitizenshipNumber *string `json:"citizenship_number"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Update(currentActor(c), id, service.UserUpdate{
		FullName:          input.FullName,
		Phone:             input.Phone,
		District:          input.District,
		Municipality:      input.Municipality,
		WardNumber:        input.WardNumber,
		CitizenshipNumber: input.CitizenshipNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// SetUserRole toggles an account between user and admin (admin only)
func (h *UserHandler) SetUserRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Role models.Role `json:"role" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.SetRole(currentActor(c), id, input.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account and its votes (admin only)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(currentActor(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
