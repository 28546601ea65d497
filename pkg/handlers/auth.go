package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"geotodo/pkg/user"

	jwt "github.com/dgrijalva/jwt-go"
)

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthHandler struct {
	Service user.ServiceInterface
	Logger  *slog.Logger
}

func NewAuthHandler(service user.ServiceInterface, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	u, err := h.Service.Login(req.Email, req.Password)
	if err != nil {
		// "user not found" and "invalid credentials" are deliberately not
		// distinguishable from outside.
		h.Logger.Error("login", "error", "unauthorized", "email", req.Email)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	generateToken(u, w, h.Logger, "login")
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	u, err := h.Service.Register(req.Email, req.Password)
	if err != nil {
		if err.Error() == "email already registered" {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		h.Logger.Error("register", "error", err.Error())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	generateToken(u, w, h.Logger, "register")
}

func generateToken(u *user.User, w http.ResponseWriter, logger *slog.Logger, action string) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"iat":   time.Now().UTC().Unix(),
		"exp":   time.Now().Add(time.Hour * 1).UTC().Unix(),
	})
	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		logger.Error("token signing", "error", err)
		writeError(w, http.StatusInternalServerError, "token signing failed")
		return
	}

	if ok := writeData(w, logger, map[string]string{"token": tokenString}, nil); ok {
		logger.Info(action, "user", u.ID)
	}
}
