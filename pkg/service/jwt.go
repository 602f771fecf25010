package service

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apperrors "os-manager/pkg/errors"
)

type JwtCustomClaim struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateToken(userID, role string) (string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
}

type jwtService struct {
	secretKey      string
	accessTokenExp time.Duration
	logger         *zap.Logger
	now            func() time.Time
}

func NewJWTService(secretKey string, accessTokenExp time.Duration, logger *zap.Logger) JWTService {
	return &jwtService{
		secretKey:      secretKey,
		accessTokenExp: accessTokenExp,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *jwtService) GenerateToken(userID, role string) (string, error) {
	issuedAt := s.now()
	claims := &JwtCustomClaim{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.accessTokenExp)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(s.secretKey))
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.accessTokenExp
}

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return []byte(s.secretKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		if errors.Is(err, apperrors.ErrInvalidSigningMethod) {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		s.logger.Debug("Ошибка парсинга или проверки подписи токена", zap.Error(err))
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid || claims.UserID == "" {
		s.logger.Warn("Токен невалиден или не удалось извлечь claims")
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
