package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abhin-Krishna-MP/CakeFarm/helper"
	middleware "github.com/Abhin-Krishna-MP/CakeFarm/middlewares"
	"github.com/Abhin-Krishna-MP/CakeFarm/models"
	"github.com/Abhin-Krishna-MP/CakeFarm/store"
)

type UserController struct {
	users *store.UserStore
}

func NewUserController(users *store.UserStore) *UserController {
	return &UserController{users: users}
}

// publicUser strips sensitive fields before a user object leaves the API.
func publicUser(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"userId":         user.UserId,
		"username":       user.Username,
		"email":          user.Email,
		"avatar":         user.Avatar,
		"role":           user.Role,
		"registerNumber": user.RegisterNumber,
		"department":     user.Department,
		"semester":       user.Semester,
		"division":       user.Division,
	}
}

func (c *UserController) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if validationErr := validate.Struct(user); validationErr != nil {
		writeJSON(w, http.StatusBadRequest, validationErr.Error(), nil)
		return
	}

	existing, err := c.users.FindUserByEmail(ctx, user.Email)
	if err != nil {
		writeError(w, err, "Error checking existing user")
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusConflict, "A user with this email already exists", nil)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, "Error processing password", nil)
		return
	}
	user.Password = string(hashedPassword)
	user.Role = "user" // role is never client-assignable

	if err := c.users.Create(ctx, &user); err != nil {
		writeError(w, err, "User creation failed")
		return
	}

	accessToken, refreshToken, err := helper.GenerateAllTokens(&user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, "Error generating tokens", nil)
		return
	}

	writeJSON(w, http.StatusCreated, "User created successfully", map[string]interface{}{
		"user":         publicUser(&user),
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var credentials struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if validationErr := validate.Struct(credentials); validationErr != nil {
		writeJSON(w, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	user, err := c.users.FindUserByEmail(ctx, credentials.Email)
	if err != nil {
		writeError(w, err, "Error retrieving user")
		return
	}
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(credentials.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	accessToken, refreshToken, err := helper.GenerateAllTokens(user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, "Error generating tokens", nil)
		return
	}

	writeJSON(w, http.StatusOK, "Login successful", map[string]interface{}{
		"user":         publicUser(user),
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// GetProfile returns the calling user's profile.
func (c *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	userId, _, _, _ := middleware.GetUserFromContext(r)

	user, err := c.users.FindUserById(ctx, userId)
	if err != nil {
		writeError(w, err, "Error retrieving user")
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, "User not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, "User fetched successfully", map[string]interface{}{
		"user": publicUser(user),
	})
}

// UpdateProfile completes or edits the campus profile fields shown on the
// admin order listing.
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	userId, _, _, _ := middleware.GetUserFromContext(r)

	var requestBody struct {
		Username       *string `json:"username"`
		Avatar         *string `json:"avatar"`
		RegisterNumber *string `json:"registerNumber"`
		Department     *string `json:"department"`
		Semester       *string `json:"semester"`
		Division       *string `json:"division"`
	}

	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		writeJSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	updateObj := bson.M{}
	if requestBody.Username != nil {
		updateObj["username"] = *requestBody.Username
	}
	if requestBody.Avatar != nil {
		updateObj["avatar"] = *requestBody.Avatar
	}
	if requestBody.RegisterNumber != nil {
		updateObj["registerNumber"] = *requestBody.RegisterNumber
	}
	if requestBody.Department != nil {
		updateObj["department"] = *requestBody.Department
	}
	if requestBody.Semester != nil {
		updateObj["semester"] = *requestBody.Semester
	}
	if requestBody.Division != nil {
		updateObj["division"] = *requestBody.Division
	}

	if len(updateObj) == 0 {
		writeJSON(w, http.StatusBadRequest, "No fields to update", nil)
		return
	}

	matched, err := c.users.UpdateProfile(ctx, userId, updateObj)
	if err != nil {
		writeError(w, err, "Profile update failed")
		return
	}
	if !matched {
		writeJSON(w, http.StatusNotFound, "User not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, "Profile updated successfully", nil)
}
