package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/pkg/jwt"
	"go-clinic-scheduling/pkg/response"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	RoleIDKey    contextKey = "role_id"
)

// AuthMiddleware verifies bearer tokens issued by the identity service and
// checks the account is still active before letting a request through.
type AuthMiddleware struct {
	jwtService *jwt.JWTService
	db         *gorm.DB
	userRepo   repository.UserRepository
}

func NewAuthMiddleware(jwtService *jwt.JWTService, db *gorm.DB, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		db:         db,
		userRepo:   userRepo,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		// A valid token for a deactivated account is still rejected.
		user, err := m.userRepo.FindByID(m.db.WithContext(r.Context()), claims.UserID)
		if err != nil {
			response.InternalServerError(w, "Failed to validate account")
			return
		}
		if user == nil || user.IsActive == nil || !*user.IsActive {
			response.Unauthorized(w, "Account is inactive")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, RoleIDKey, claims.RoleID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmailFromContext extracts user email from context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetRoleIDFromContext extracts role ID from context
func GetRoleIDFromContext(ctx context.Context) (int, bool) {
	roleID, ok := ctx.Value(RoleIDKey).(int)
	return roleID, ok
}
