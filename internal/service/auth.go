package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Gi2009/cod-back/internal/logger"
	"github.com/Gi2009/cod-back/internal/model"
)

const (
	minPasswordLength = 6
	minPhoneLength    = 11
	minCPFLength      = 11
	minUsernameLength = 3

	avatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="
)

// Client-facing registration messages.
const (
	MsgAllDataRequired  = "Todos os dados são necessários"
	MsgPasswordTooShort = "A senha precisa de 6 caracteres ou mais"
	MsgPhoneIncomplete  = "Telefone incompleto"
	MsgCPFIncomplete    = "Cpf incompleto"
	MsgUsernameTooShort = "O nome precisa de 3 caracteres ou mais"
	MsgLoginRequired    = "All fields are required"
)

type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register validates the payload, creates the user and issues a token.
// Input problems come back as *model.ValidationError; a duplicate email or
// cpf as model.ErrEmailTaken or model.ErrCPFTaken.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.Session, error) {
	if err := validateRegistration(params); err != nil {
		return model.Session{}, err
	}

	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email)

	if err := a.ensureFree(ctx, params); err != nil {
		return model.Session{}, err
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", params.Email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		Phone:        params.Phone,
		CPF:          params.CPF,
		ProfileImage: AvatarURL(params.Username),
	})
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) || errors.Is(err, model.ErrCPFTaken) {
			a.logger.Info("Auth service: lost registration race",
				"email", params.Email,
				"error", err.Error())
			return model.Session{}, err
		}
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := a.issue(user)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID)

	return session, nil
}

// Login checks the credentials. Unknown email and wrong password both yield
// model.ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Session, error) {
	if email == "" || password == "" {
		return model.Session{}, model.NewValidationError(MsgLoginRequired)
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Session{}, model.ErrInvalidCredentials
		}
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Compare(user.PasswordHash, password) {
		return model.Session{}, model.ErrInvalidCredentials
	}

	return a.issue(user)
}

// GetUserID resolves a bearer token to the id of an existing user. A token
// that does not parse yields model.ErrInvalidToken, a deleted user
// model.ErrNotFound; anything else is a store failure.
func (a *Auth) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := a.tokenManager.Parse(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse token: %w: %w", model.ErrInvalidToken, err)
	}

	if _, err := a.userStore.GetByID(ctx, userID); err != nil {
		return uuid.Nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return userID, nil
}

// AvatarURL is the generated profile image for username.
func AvatarURL(username string) string {
	return avatarBaseURL + username
}

func (a *Auth) issue(user model.User) (model.Session, error) {
	token, err := a.tokenManager.Generate(user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to generate token",
			"user_id", user.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return model.Session{Token: token, User: user}, nil
}

func (a *Auth) ensureFree(ctx context.Context, params model.RegisterParams) error {
	_, err := a.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		return model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	_, err = a.userStore.GetByCPF(ctx, params.CPF)
	if err == nil {
		return model.ErrCPFTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get user by cpf: %w", err)
	}

	return nil
}

// validateRegistration applies the checks in a fixed order; the first failure wins.
// Lengths are counted in characters, not bytes.
func validateRegistration(p model.RegisterParams) error {
	switch {
	case p.Email == "" || p.Username == "" || p.Password == "" || p.Phone == "" || p.CPF == "":
		return model.NewValidationError(MsgAllDataRequired)
	case utf8.RuneCountInString(p.Password) < minPasswordLength:
		return model.NewValidationError(MsgPasswordTooShort)
	case utf8.RuneCountInString(p.Phone) < minPhoneLength:
		return model.NewValidationError(MsgPhoneIncomplete)
	case utf8.RuneCountInString(p.CPF) < minCPFLength:
		return model.NewValidationError(MsgCPFIncomplete)
	case utf8.RuneCountInString(p.Username) < minUsernameLength:
		return model.NewValidationError(MsgUsernameTooShort)
	}
	return nil
}
