package authUseCase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghaniswara/medi-quest/internal/entity"
	userRepo "github.com/ghaniswara/medi-quest/internal/repository/user"
	"github.com/ghaniswara/medi-quest/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 10

var (
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type IAuthUseCase interface {
	SignupUser(ctx context.Context, request entity.CreateUserRequest) (*entity.User, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	GetUserFromToken(ctx context.Context, token string) (*entity.User, error)
}

type authUseCase struct {
	userRepo userRepo.IUserRepo
	issuer   *jwt.Issuer
}

func New(userRepo userRepo.IUserRepo, issuer *jwt.Issuer) IAuthUseCase {
	return &authUseCase{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

// SignupUser checks for the email and inserts in two separate calls. Two concurrent
// signups for one email can both pass the check; the unique index on email makes the
// later insert fail with ErrUserExists.
func (p *authUseCase) SignupUser(ctx context.Context, authData entity.CreateUserRequest) (*entity.User, error) {
	existing, err := p.userRepo.GetUserByEmail(ctx, authData.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(authData.Password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := p.userRepo.CreateUser(ctx, &entity.User{
		Name:     authData.Name,
		Email:    authData.Email,
		Password: string(hashedPassword),
	})
	if errors.Is(err, userRepo.ErrDuplicateEmail) {
		return nil, ErrUserExists
	}
	return user, err
}

func (p *authUseCase) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := p.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return p.issuer.CreateToken(user.Email)
}

func (p *authUseCase) GetUserFromToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := p.issuer.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := p.userRepo.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, jwt.ErrInvalidToken
	}
	return user, nil
}
