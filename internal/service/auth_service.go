package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/helper-labs/helper-portal/internal/apiclient"
	"github.com/helper-labs/helper-portal/internal/logging"
	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/session"
	"go.uber.org/zap"
)

var (
	// ErrInvalidMemberID means the id does not match the member id format.
	ErrInvalidMemberID = errors.New("invalid member id")
	// ErrInvalidPassword means the password is too short.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrNotValidated means sign-up was attempted before the duplicate check passed.
	ErrNotValidated = errors.New("member id not validated")
)

// MinPasswordLength is the shortest password sign-up accepts.
const MinPasswordLength = 4

var memberIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{3,19}$`)

const (
	msgLoginOK          = "Logged in successfully. Returning to the main page."
	msgLoginFailed      = "Login failed. Please check your member id and password."
	msgLoginUnconfirmed = "The server accepted the login but did not recognise the session. Please try again."
	msgMissingLogin     = "Please enter your member id and password."
	msgMissingMemberID  = "Please enter a member id."
	msgBadMemberID      = "The member id does not match the required format.\nFormat: starts with a letter, letters and digits only (4-20 characters)"
	msgMemberIDTaken    = "This member id is already in use."
	msgMemberIDFree     = "This member id is available."
	msgBadPassword      = "The password does not match the required format.\nFormat: at least 4 characters"
	msgNotValidated     = "Please check the member id for duplicates first."
	msgSignUpOK         = "Sign-up succeeded. Moving to the login page."
	msgSignUpFailed     = "Sign-up failed. Please try again."
)

// AuthService drives login, sign-up and logout.
type AuthService struct {
	api     *apiclient.Client
	session *session.Store
	logger  *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(api *apiclient.Client, sess *session.Store, logger *zap.Logger) *AuthService {
	return &AuthService{api: api, session: sess, logger: logging.OrNop(logger)}
}

// CheckMemberIDFormat validates id locally.
func CheckMemberIDFormat(id string) error {
	if !memberIDPattern.MatchString(id) {
		return ErrInvalidMemberID
	}
	return nil
}

// CheckPasswordFormat validates pw locally.
func CheckPasswordFormat(pw string) error {
	if len(pw) < MinPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

// Login authenticates, marks the session logged in, then confirms it with the server.
func (a *AuthService) Login(ctx context.Context, memberID, password string) (model.Session, model.Alert) {
	if memberID == "" || password == "" {
		return a.session.Snapshot(), model.Error(msgMissingLogin)
	}
	if _, err := a.api.Login(ctx, memberID, password); err != nil {
		a.logger.Warn("login failed", zap.String("member_id", memberID), zap.Error(err))
		var transportErr *apiclient.TransportError
		if errors.As(err, &transportErr) {
			return a.session.Snapshot(), model.Error(msgUnreachable)
		}
		return a.session.Snapshot(), model.Error(msgLoginFailed)
	}
	a.session.Login(memberID)
	state := a.session.CheckStatus(ctx)
	if !state.IsLoggedIn {
		a.logger.Warn("login not confirmed by server", zap.String("member_id", memberID))
		return state, model.Error(msgLoginUnconfirmed)
	}
	return state, model.Info(msgLoginOK)
}

// ValidateMemberID checks the format locally, then asks the server whether
// the id is taken.
func (a *AuthService) ValidateMemberID(ctx context.Context, memberID string) (bool, model.Alert) {
	if memberID == "" {
		return false, model.Error(msgMissingMemberID)
	}
	if err := CheckMemberIDFormat(memberID); err != nil {
		return false, model.Error(msgBadMemberID)
	}
	if _, err := a.api.ValidateMemberID(ctx, memberID); err != nil {
		var transportErr *apiclient.TransportError
		if errors.As(err, &transportErr) {
			return false, model.Error(msgUnreachable)
		}
		return false, model.Error(msgMemberIDTaken)
	}
	return true, model.Info(msgMemberIDFree)
}

// SignUp registers memberID. validated must report a passed duplicate check
// for this exact id.
func (a *AuthService) SignUp(ctx context.Context, memberID, password string, validated bool) (bool, model.Alert) {
	if err := a.checkSignUp(memberID, password, validated); err != nil {
		switch {
		case errors.Is(err, ErrNotValidated):
			return false, model.Error(msgNotValidated)
		case errors.Is(err, ErrInvalidMemberID):
			return false, model.Error(msgBadMemberID)
		default:
			return false, model.Error(msgBadPassword)
		}
	}
	if _, err := a.api.SignUp(ctx, memberID, password); err != nil {
		a.logger.Warn("sign-up failed", zap.String("member_id", memberID), zap.Error(err))
		return false, model.Error(msgSignUpFailed)
	}
	a.logger.Info("sign-up", zap.String("member_id", memberID))
	return true, model.Info(msgSignUpOK)
}

func (a *AuthService) checkSignUp(memberID, password string, validated bool) error {
	if !validated {
		return ErrNotValidated
	}
	if err := CheckMemberIDFormat(memberID); err != nil {
		return err
	}
	return CheckPasswordFormat(password)
}

// Logout ends the session; see session.Store.Logout.
func (a *AuthService) Logout(ctx context.Context) (bool, model.Alert) {
	return a.session.Logout(ctx)
}
