package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/auth"
	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/models"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// authResponse is the credential payload returned on register, login and
// profile update.
type authResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

func newAuthResponse(user *models.User, token string) authResponse {
	return authResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	}
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide name, email and password"})
		return
	}

	user, token, err := s.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newAuthResponse(user, token))
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide email and password"})
		return
	}

	user, token, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(user, token))
}

func (s *Server) getProfile(c *gin.Context) {
	user := currentUser(c)

	profile, err := s.auth.Profile(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":     profile.ID,
		"name":    profile.Name,
		"email":   profile.Email,
		"role":    profile.Role,
		"avatar":  profile.Avatar,
		"phone":   profile.Phone,
		"address": profile.Address,
	})
}

func (s *Server) updateProfile(c *gin.Context) {
	user := currentUser(c)

	var update auth.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	updated, token, err := s.auth.UpdateProfile(c.Request.Context(), user.ID, update)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(updated, token))
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.auth.Users(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
