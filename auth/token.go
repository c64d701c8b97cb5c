package auth

import (
	"os"
	"strconv"
	"time"

	"github.com/btwitsvirendra/Airavat--Back-end/models"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 7 * 24 * time.Hour

// IssueToken signs a bearer token for the user. Identifiers travel as decimal
// strings to match the rest of the API surface.
func IssueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": strconv.FormatUint(user.ID, 10),
		"role":    user.Role,
		"email":   user.Email,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
