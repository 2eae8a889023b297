package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// Claims 玩家令牌内容
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// TokenIssuer 签发与校验 HS256 玩家令牌
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// Issue 为显示名签发令牌
func (t *TokenIssuer) Issue(name string) (string, error) {
	now := t.now()
	claims := &Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse 校验令牌并返回内容
func (t *TokenIssuer) Parse(s string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(s, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// sanitizeName 去除首尾空白并限制长度
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > 20 {
		name = string(r[:20])
	}
	return name
}

// HandleToken GET /token?name=alice 签发令牌
func HandleToken(w http.ResponseWriter, r *http.Request) {
	issuer := GetRoomManager().Tokens()
	if issuer == nil {
		http.Error(w, "tokens disabled", http.StatusNotFound)
		return
	}
	name := sanitizeName(r.URL.Query().Get("name"))
	if name == "" {
		http.Error(w, "missing name query", http.StatusBadRequest)
		return
	}
	tok, err := issuer.Issue(name)
	if err != nil {
		Log.Errorf("issue token: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": tok})
}
