package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/vocadrill/internal/database"
	"github.com/example/vocadrill/pkg/models"
)

type contextKey string

const userIDKey contextKey = "userId"

const tokenLifetime = 24 * time.Hour

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		respondError(w, "Email and password required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user := &models.User{Email: creds.Email, PasswordHash: string(hash)}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			respondError(w, "User already exists", http.StatusConflict)
			return
		}
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]any{"id": user.ID, "email": user.Email}, http.StatusCreated)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := s.users.GetByEmail(creds.Email)
	if errors.Is(err, database.ErrUserNotFound) {
		respondError(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		respondJSON(w, map[string]any{"auth": false, "token": nil}, http.StatusUnauthorized)
		return
	}

	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(tokenLifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		respondError(w, "Failed to sign token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]any{"auth": true, "token": token}, http.StatusOK)
}

// authenticate resolves the bearer token into the owner identity and puts
// it on the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == "" || raw == header {
			respondError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			respondError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respondError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		// JSON numbers decode as float64
		id, ok := claims["id"].(float64)
		if !ok {
			respondError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, int64(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ownerID extracts the authenticated user from the request context
func ownerID(r *http.Request) int64 {
	id, ok := r.Context().Value(userIDKey).(int64)
	if !ok {
		return 0
	}
	return id
}
