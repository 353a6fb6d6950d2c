package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/saxansaxo/backend/internal/validation"
	"github.com/saxansaxo/backend/pkg/models"
	"github.com/saxansaxo/backend/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type AuthHandler struct {
	userRepo   repository.UserRepo
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, jwtSecret: jwtSecret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

type tokenClaims struct {
	UserID  int64
	IsStaff bool
}

func signToken(secret string, u *models.User, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  u.ID,
		"is_staff": u.IsStaff,
		"typ":      typ,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func parseToken(tokenString, secret, wantTyp string) (*tokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}
	if typ, _ := claims["typ"].(string); typ != wantTyp {
		return nil, fmt.Errorf("unexpected token type")
	}
	uid, ok := claims["user_id"].(float64)
	if !ok || uid <= 0 {
		return nil, fmt.Errorf("missing user_id claim")
	}
	isStaff, _ := claims["is_staff"].(bool)

	return &tokenClaims{UserID: int64(uid), IsStaff: isStaff}, nil
}

func (h *AuthHandler) issuePair(u *models.User) (access, refresh string, err error) {
	access, err = signToken(h.jwtSecret, u, tokenTypeAccess, h.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = signToken(h.jwtSecret, u, tokenTypeRefresh, h.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register validates a new-account payload, atomically creates the user and
// its paired profile, and issues a credential pair for immediate use.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	errs := validation.Errors{}
	errs.Required("username", req.Username)
	errs.MaxLen("username", req.Username, 150)
	if errs.Required("email", req.Email) {
		errs.Email("email", req.Email)
	}
	if errs.Required("password", req.Password) {
		errs.Password("password", req.Password)
	}
	errs.Required("password2", req.Password2)
	if req.Password != "" && req.Password2 != "" && req.Password != req.Password2 {
		errs.Add("password", "Password fields didn't match.")
	}

	if req.Username != "" {
		if existing, err := h.userRepo.GetUserByUsername(ctx, req.Username); err != nil {
			writeError(w, "Error checking username", http.StatusInternalServerError)
			return
		} else if existing != nil {
			errs.Add("username", "A user with that username already exists.")
		}
	}
	if req.Email != "" {
		if existing, err := h.userRepo.GetUserByEmail(ctx, req.Email); err != nil {
			writeError(w, "Error checking email", http.StatusInternalServerError)
			return
		} else if existing != nil {
			errs.Add("email", "A user with that email already exists.")
		}
	}

	if !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}

	// user and profile are created in one transaction; a uniqueness race
	// lost here leaves no partial state
	id, err := h.userRepo.CreateUserWithProfile(ctx, &user)
	if err != nil {
		writeJSON(w, map[string]string{
			"error":   err.Error(),
			"message": "Failed to create user. Please try again.",
		}, http.StatusBadRequest)
		return
	}

	created, err := h.userRepo.GetUserByID(ctx, id)
	if err != nil || created == nil {
		writeError(w, "Error loading created user", http.StatusInternalServerError)
		return
	}

	access, refresh, err := h.issuePair(created)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"user":    created,
		"access":  access,
		"refresh": refresh,
		"message": "User created successfully",
	}, http.StatusCreated)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, "Missing fields", http.StatusBadRequest)
		return
	}

	user, err := h.userRepo.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		writeError(w, "Error loading user", http.StatusInternalServerError)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, "No active account found with the given credentials", http.StatusUnauthorized)
		return
	}

	access, refresh, err := h.issuePair(user)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"access": access, "refresh": refresh}, http.StatusOK)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := readJSON(r, &req); err != nil || req.Refresh == "" {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	claims, err := parseToken(req.Refresh, h.jwtSecret, tokenTypeRefresh)
	if err != nil {
		writeError(w, "Token is invalid or expired", http.StatusUnauthorized)
		return
	}

	// re-read the account so a deleted user or changed role does not
	// survive a refresh
	user, err := h.userRepo.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, "Error loading user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "Token is invalid or expired", http.StatusUnauthorized)
		return
	}

	access, refresh, err := h.issuePair(user)
	if err != nil {
		writeError(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"access": access, "refresh": refresh}, http.StatusOK)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !id.IsAuthenticated() {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	user, err := h.userRepo.GetUserByID(r.Context(), id.UserID)
	if err != nil {
		writeError(w, "Error loading user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	writeJSON(w, user, http.StatusOK)
}
