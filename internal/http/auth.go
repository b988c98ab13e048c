package http

import (
	"github.com/gin-gonic/gin"

	"creator-finance/internal/models"
)

// Auth Response Wrapper
type AuthResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// POST /api/register
func (s *Server) register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := bindJSON(c, s.schemas.register, &input); err != nil {
		respondError(c, err)
		return
	}

	user, err := s.users.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user.Public(),
	})
}

// POST /api/login
func (s *Server) login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := bindJSON(c, s.schemas.login, &input); err != nil {
		respondError(c, err)
		return
	}

	user, err := s.users.Verify(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Public(),
	})
}
