package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/career-service/internal/models"
	"github.com/SAP-F-2025/career-service/internal/utils"
)

const tokenUserKey = "token_user_id"

// rejectFunc writes an identity failure in the response shape of the route.
type rejectFunc func(c *gin.Context, status int, message, details string)

func rejectWithError(c *gin.Context, status int, message, details string) {
	resp := ErrorResponse{Error: message}
	if details != "" {
		resp.Details = details
	}
	c.AbortWithStatusJSON(status, resp)
}

// rejectWithChatResponse keeps /chatbot on its {response} shape.
func rejectWithChatResponse(c *gin.Context, status int, message, _ string) {
	if status == http.StatusUnauthorized {
		message = "User identification missing."
	}
	c.AbortWithStatusJSON(status, models.ChatbotResponse{Response: message})
}

// AuthMiddleware reads bearer tokens issued at register/login. Requests
// without a token fall back to the user_id they carry unless tokens are required.
type AuthMiddleware struct {
	tokens       *utils.TokenIssuer
	requireToken bool
}

func NewAuthMiddleware(tokens *utils.TokenIssuer, requireToken bool) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, requireToken: requireToken}
}

func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return am.authenticate(rejectWithError)
}

// AuthenticateChat is Authenticate for the chatbot route.
func (am *AuthMiddleware) AuthenticateChat() gin.HandlerFunc {
	return am.authenticate(rejectWithChatResponse)
}

func (am *AuthMiddleware) authenticate(reject rejectFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if am.requireToken {
				reject(c, http.StatusUnauthorized, "Unauthorized", "")
				return
			}
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || am.tokens == nil {
			reject(c, http.StatusUnauthorized, "Unauthorized", "invalid authorization header format")
			return
		}

		userID, err := am.tokens.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			reject(c, http.StatusUnauthorized, "Unauthorized", err.Error())
			return
		}

		c.Set(tokenUserKey, userID)
		c.Next()
	}
}

// resolveUserID picks the caller. A token's user wins over the claimed id; a
// conflicting claim is answered with 403. Zero means no identity.
func resolveUserID(c *gin.Context, claimed uint) (uint, bool) {
	return resolveUserIDWith(c, claimed, rejectWithError)
}

func resolveUserIDWith(c *gin.Context, claimed uint, reject rejectFunc) (uint, bool) {
	if value, ok := c.Get(tokenUserKey); ok {
		tokenUser := value.(uint)
		if claimed != 0 && claimed != tokenUser {
			reject(c, http.StatusForbidden, "Forbidden", "")
			return 0, false
		}
		return tokenUser, true
	}
	return claimed, true
}

// queryUserID reads ?user_id=. Missing or malformed values mean no identity.
func queryUserID(c *gin.Context) uint {
	return parseUserID(c.Query("user_id"))
}

func parseUserID(raw string) uint {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
