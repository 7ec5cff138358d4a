package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	ClaimEmployeeID = "employee_id"
	ClaimRole       = "role"
	ClaimType       = "type"
	ClaimCSRF       = "csrf"

	TokenTypeAccess = "access"
)

type Service interface {
	// GenerateAccessToken mints a session token with a fresh CSRF secret.
	GenerateAccessToken(employeeID int64, role user.Role) (token string, csrf string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (*JWTService, error) {
	expDuration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	if expDuration <= 0 {
		return nil, errors.New("access token expiration must be positive")
	}
	return &JWTService{
		accessTokenExpirationTime: expDuration,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(employeeID int64, role user.Role) (token string, csrf string, expiresAt int64, err error) {
	if employeeID <= 0 {
		return "", "", 0, errors.New("employee id must be positive")
	}
	if !role.IsValid() {
		return "", "", 0, fmt.Errorf("invalid role %q", role)
	}

	csrf = uuid.NewString()
	expiresAt = j.now().Add(j.accessTokenExpirationTime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimEmployeeID: employeeID,
		ClaimRole:       string(role),
		ClaimType:       TokenTypeAccess,
		ClaimCSRF:       csrf,
		"exp":           expiresAt,
	})
	if err != nil {
		return "", "", 0, err
	}
	return tokenString, csrf, expiresAt, nil
}

// AuthContextFromClaims builds the caller identity carried by a verified
// access token. JSON numbers decode as float64; string ids are accepted too.
func AuthContextFromClaims(claims map[string]interface{}) (auth.AuthContext, error) {
	if t, _ := claims[ClaimType].(string); t != TokenTypeAccess {
		return auth.AuthContext{}, auth.ErrInvalidToken
	}

	var employeeID int64
	switch v := claims[ClaimEmployeeID].(type) {
	case float64:
		employeeID = int64(v)
	case int64:
		employeeID = v
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return auth.AuthContext{}, auth.ErrInvalidToken
		}
		employeeID = id
	default:
		return auth.AuthContext{}, auth.ErrInvalidToken
	}
	if employeeID <= 0 {
		return auth.AuthContext{}, auth.ErrInvalidToken
	}

	roleStr, _ := claims[ClaimRole].(string)
	role := user.Role(roleStr)
	if !role.IsValid() {
		return auth.AuthContext{}, auth.ErrInvalidToken
	}

	csrf, _ := claims[ClaimCSRF].(string)
	if csrf == "" {
		return auth.AuthContext{}, auth.ErrInvalidToken
	}

	return auth.AuthContext{UserID: employeeID, Role: role, CSRFToken: csrf}, nil
}
