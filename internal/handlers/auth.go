package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"juntos-mais-api/internal/apperrors"
	"juntos-mais-api/internal/logger"
	"juntos-mais-api/internal/models"
	"juntos-mais-api/internal/store"
	"juntos-mais-api/internal/validation"
)

// bcrypt only looks at the first 72 bytes; longer passwords are truncated,
// matching the documented behaviour of the platform.
const maxPasswordBytes = 72

type AuthHandler struct {
	Store *store.Store
	Log   *logger.Logger
}

func NewAuthHandler(st *store.Store, log *logger.Logger) *AuthHandler {
	return &AuthHandler{Store: st, Log: log}
}

func hashPassword(password string) (string, error) {
	raw := []byte(password)
	if len(raw) > maxPasswordBytes {
		raw = raw[:maxPasswordBytes]
	}
	hash, err := bcrypt.GenerateFromPassword(raw, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	raw := []byte(password)
	if len(raw) > maxPasswordBytes {
		raw = raw[:maxPasswordBytes]
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), raw) == nil
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	CPF      string `json:"cpf" binding:"required"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.Log, bindError(err))
		return
	}

	cpf, fieldErr := validation.CPF("cpf", req.CPF)
	if fieldErr != nil {
		writeError(c, h.Log, apperrors.Validation(*fieldErr))
		return
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		h.Log.Error("password hashing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	user := &models.User{
		Username:     req.Username,
		CPF:          cpf,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	if err := h.Store.CreateUser(c.Request.Context(), user); err != nil {
		writeError(c, h.Log, err)
		return
	}

	h.Log.Info("user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"message":  "Cadastro realizado com sucesso",
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Login verifies credentials and returns the flat profile. No token is
// issued; session handling is out of scope.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.Log, bindError(err))
		return
	}

	user, err := h.Store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			writeError(c, h.Log, apperrors.Unauthorized("Email ou senha inválidos"))
			return
		}
		writeError(c, h.Log, err)
		return
	}
	if !checkPassword(req.Password, user.PasswordHash) {
		writeError(c, h.Log, apperrors.Unauthorized("Email ou senha inválidos"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado com sucesso",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"cpf":      user.CPF,
		},
	})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := pathID(c, "user_id")
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	user, err := h.Store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"cpf":      user.CPF,
	})
}
