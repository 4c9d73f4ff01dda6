package security

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/tokengraph/tokengraph/pkg/internal/models"
)

type Claims struct {
	jwt.RegisteredClaims

	Name        string `json:"name"`
	IsSuperuser bool   `json:"adm,omitempty"`
}

func secret() []byte {
	return []byte(viper.GetString("security.jwt_secret"))
}

// IssueToken signs a bearer token for the given account. Mostly used by the
// operator tooling and tests; production deployments hand out tokens from
// the identity provider sharing the same secret.
func IssueToken(account models.Account, valid time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(account.ID)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(valid)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Name:        account.Name,
		IsSuperuser: account.IsSuperuser,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

func parseToken(raw string) (models.Account, error) {
	var claims Claims
	if _, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret(), nil
	}); err != nil {
		return models.Account{}, err
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return models.Account{}, err
	}

	return models.Account{
		ID:          uint(id),
		Name:        claims.Name,
		IsSuperuser: claims.IsSuperuser,
	}, nil
}

// ContextMiddleware resolves the bearer token into the acting account and
// stores it in locals. Requests without a token pass through anonymous.
func ContextMiddleware(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		if user, err := parseToken(token); err == nil {
			c.Locals("user", user)
		}
	}

	return c.Next()
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "you need to be authenticated first")
	}

	return nil
}

func EnsureSuperuser(c *fiber.Ctx) error {
	if err := EnsureAuthenticated(c); err != nil {
		return err
	}
	if user := c.Locals("user").(models.Account); !user.IsSuperuser {
		return fiber.NewError(fiber.StatusForbidden, "you need elevated privilege to do this")
	}

	return nil
}
