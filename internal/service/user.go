package service

import (
	"context"
	"crypto/md5"
	"devicehub/internal/model"
	"encoding/hex"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"net/url"
	"strings"
)

type UserService struct {
	Store      UserStore
	BcryptCost int
}

func NewUserService(store UserStore) *UserService {
	return &UserService{Store: store, BcryptCost: 10}
}

func (s *UserService) Register(ctx context.Context, companyName string, email string, password string) (model.User, error) {
	_, err := s.Store.UserFindByEmail(ctx, email)
	if err == nil {
		return model.User{}, ErrUserExists
	}
	if !isNoDocuments(err) {
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		return model.User{}, errors.Wrapf(err, "error generating bcrypt from password for email: %s", email)
	}

	u, err := s.Store.UserInsert(ctx, model.User{
		CompanyName: companyName,
		Email:       email,
		Password:    hash,
		Avatar:      GravatarURL(email),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.User{}, ErrUserExists
		}
		return model.User{}, err
	}
	return u, nil
}

func (s *UserService) Authenticate(ctx context.Context, email string, password string) (model.User, error) {
	u, err := s.Store.UserFindByEmail(ctx, email)
	if err != nil {
		if isNoDocuments(err) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if err = bcrypt.CompareHashAndPassword(u.Password, []byte(password)); err != nil {
		return model.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (model.User, error) {
	uid, err := parseID("User", userID)
	if err != nil {
		return model.User{}, err
	}
	u, err := s.Store.UserFindByID(ctx, uid)
	if err != nil {
		if isNoDocuments(err) {
			return model.User{}, notFound("User", userID)
		}
		return model.User{}, err
	}
	return u, nil
}

// GravatarURL returns a 200px, PG rated avatar that falls back to the
// "mystery person" image.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	q := url.Values{}
	q.Set("s", "200")
	q.Set("r", "pg")
	q.Set("d", "mm")
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}
