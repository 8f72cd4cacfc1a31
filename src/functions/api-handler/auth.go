package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/maddiesch/tago-user-manager/src/tago"
)

const (
	tokenIssuer   = "tagousers://api/v1"
	tokenAudience = "tagousers://api/v1"

	contextSubjectKey = "_sub"
)

// apiTokenForSubject issues a bearer token for a caller, usually an analysis id.
func apiTokenForSubject(subject string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: time.Now().AddDate(0, 0, 90).Unix(),
		Issuer:    tokenIssuer,
		Audience:  tokenAudience,
		Subject:   subject,
		IssuedAt:  time.Now().Unix(),
	})

	return token.SignedString([]byte(tago.Secrets().Signing))
}

// Authenticate performs authentication
func Authenticate(c *gin.Context) {
	subject, err := performAuthentication(c.GetHeader("Authorization"))
	if err != nil {
		respondWithError(c, &Error{
			Status: http.StatusUnauthorized,
			Title:  "Unauthorized",
			Detail: err.Error(),
			Code:   errCodeUnauthorized,
		})
		return
	}

	c.Set(contextSubjectKey, subject)
}

func performAuthentication(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("Invalid authorization header")
	}

	switch strings.ToLower(strings.TrimSpace(parts[0])) {
	case "bearer":
		return getSubjectAndValidateToken(strings.TrimSpace(parts[1]))
	default:
		return "", fmt.Errorf("Invalid authorization type")
	}
}

func getSubjectAndValidateToken(t string) (string, error) {
	claims := &jwt.StandardClaims{}

	token, err := jwt.ParseWithClaims(t, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tago.Secrets().Signing), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("Invalid token")
	}

	if !claims.VerifyIssuer(tokenIssuer, true) || !claims.VerifyAudience(tokenAudience, true) {
		return "", errors.New("Invalid token (claims)")
	}
	if claims.Subject == "" {
		return "", errors.New("Invalid token (subject)")
	}

	return claims.Subject, nil
}
