package auth

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/unilanding/cms-backend/internal"
	"github.com/unilanding/cms-backend/internal/accessrights"
	userDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	Create(user *userDatamodel.User) error
	GetByEmail(email string) (*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	GetByIDOrCode(idOrCode string) (*userDatamodel.User, error)
	Update(user *userDatamodel.User) error
}

// PermissionProvisioner is the slice of the grant store the lifecycle code
// needs: full-matrix provisioning at creation and bulk revocation at
// disable time.
type PermissionProvisioner interface {
	ProvisionAll(userID int64, flags accessrights.Flags) ([]accessrights.Grant, error)
	RevokeAll(idOrCode string) ([]accessrights.Grant, error)
}

type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	permissions    PermissionProvisioner
	logger         *slog.Logger
	bcryptCost     int
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, permissions PermissionProvisioner, logger *slog.Logger, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		permissions:    permissions,
		logger:         logger,
		bcryptCost:     bcryptCost,
	}
}

// Register creates an active account and provisions its full grant matrix
// with every boolean false. New users can authenticate but can do nothing
// until an administrator grants them module permissions.
func (s *Service) Register(dto RegisterDTO) (*RegisteredUser, error) {
	return s.create(dto, accessrights.DenyAll())
}

// RegisterSeed is Register with an all-true matrix, used only by the
// bootstrap process for superadmin accounts.
func (s *Service) RegisterSeed(dto RegisterDTO) (*RegisteredUser, error) {
	return s.create(dto, accessrights.AllowAll())
}

func (s *Service) create(dto RegisterDTO, flags accessrights.Flags) (*RegisteredUser, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	row := &userDatamodel.User{
		Email:        normalizeEmail(dto.Email),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(dto.FullName),
		ExternalCode: dto.ExternalCode,
		IsActive:     true,
	}

	if err := s.repo.Create(row); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateUser
		}
		s.logger.Error("failed to create user", "email", row.Email, "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	// The user row is already committed; a provisioning failure here leaves
	// an account without its grant matrix, which violates the coverage
	// guarantee. There is no compensating delete, so surface it loudly.
	if _, err := s.permissions.ProvisionAll(row.ID, flags); err != nil {
		s.logger.Error("user created but permission provisioning failed",
			"user_id", row.ID, "email", row.Email, "error", err)
		return nil, internal.NewInconsistencyError("user created but permissions were not provisioned", err)
	}

	tokens, err := s.issueTokens(row)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", row.ID, "email", row.Email)
	return &RegisteredUser{User: *fromDataModel(row), Tokens: tokens}, nil
}

// Login verifies credentials for an active account and issues tokens.
func (s *Service) Login(dto LoginDTO) (*RegisteredUser, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByEmail(normalizeEmail(dto.Email))
	if err != nil {
		s.logger.Error("failed to query user", "error", err)
		return nil, internal.NewInternalError("failed to query user", err)
	}
	if row == nil || !row.IsActive {
		return nil, internal.ErrInvalidCredentials
	}

	if err := VerifyPassword(row.PasswordHash, dto.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(row)
	if err != nil {
		return nil, err
	}

	return &RegisteredUser{User: *fromDataModel(row), Tokens: tokens}, nil
}

// CheckStatus re-issues tokens for an already authenticated caller so a
// client can refresh its session without re-sending credentials.
func (s *Service) CheckStatus(userID int64) (*RegisteredUser, error) {
	row, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to query user", err)
	}
	if row == nil || !row.IsActive {
		return nil, ErrUserNotFound
	}

	tokens, err := s.issueTokens(row)
	if err != nil {
		return nil, err
	}

	return &RegisteredUser{User: *fromDataModel(row), Tokens: tokens}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetAuthUser loads the identity the middleware stashes in the request
// context. Disabled accounts fail here, so a revoked user's token stops
// working on the next request.
func (s *Service) GetAuthUser(userID int64) (*internal.AuthUser, error) {
	row, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to query user", err)
	}
	if row == nil || !row.IsActive {
		return nil, ErrUserNotFound
	}
	return &internal.AuthUser{
		ID:       row.ID,
		Email:    row.Email,
		FullName: row.FullName,
	}, nil
}

// UpdateUser applies a partial profile update to an active account.
func (s *Service) UpdateUser(idOrCode string, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.resolve(idOrCode)
	if err != nil {
		return nil, err
	}
	if !row.IsActive {
		return nil, ErrUserNotFound
	}

	if dto.Email != "" {
		row.Email = normalizeEmail(dto.Email)
	}
	if dto.FullName != "" {
		row.FullName = strings.TrimSpace(dto.FullName)
	}
	if dto.ExternalCode != "" {
		row.ExternalCode = dto.ExternalCode
	}

	if err := s.repo.Update(row); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateUser
		}
		s.logger.Error("failed to update user", "user_id", row.ID, "error", err)
		return nil, internal.NewInternalError("failed to update user", err)
	}

	return fromDataModel(row), nil
}

// Disable soft-deletes an account: the active flag flips to false and every
// grant row is zeroed. Grant rows are kept so the module set survives a
// later re-enable.
func (s *Service) Disable(idOrCode string) (*User, error) {
	row, err := s.resolve(idOrCode)
	if err != nil {
		return nil, err
	}
	if !row.IsActive {
		return nil, ErrUserAlreadyDisabled
	}

	row.IsActive = false
	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to disable user", "user_id", row.ID, "error", err)
		return nil, internal.NewInternalError("failed to disable user", err)
	}

	// The flag flip is committed at this point. If the revoke fails the
	// account is disabled but still holds live grants; that is a
	// safety-relevant inconsistency and must not be reported as a client
	// error.
	if _, err := s.permissions.RevokeAll(strconv.FormatInt(row.ID, 10)); err != nil {
		s.logger.Error("user disabled but grant revocation failed",
			"user_id", row.ID, "error", err)
		return nil, internal.NewInconsistencyError("user disabled but permissions were not revoked", err)
	}

	s.logger.Info("user disabled", "user_id", row.ID, "email", row.Email)
	return fromDataModel(row), nil
}

// Enable reactivates a disabled account. Grants are left exactly as the
// disable left them (all false); nothing restores a prior pattern.
func (s *Service) Enable(idOrCode string) (*User, error) {
	row, err := s.resolve(idOrCode)
	if err != nil {
		return nil, err
	}
	if row.IsActive {
		return nil, ErrUserAlreadyActive
	}

	row.IsActive = true
	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to enable user", "user_id", row.ID, "error", err)
		return nil, internal.NewInternalError("failed to enable user", err)
	}

	s.logger.Info("user enabled", "user_id", row.ID, "email", row.Email)
	return fromDataModel(row), nil
}

// ActiveUser resolves a user that must exist AND be active; a disabled
// account is indistinguishable from a missing one to callers.
func (s *Service) ActiveUser(idOrCode string) (*User, error) {
	row, err := s.resolve(idOrCode)
	if err != nil {
		return nil, err
	}
	if !row.IsActive {
		return nil, ErrUserNotFound
	}
	return fromDataModel(row), nil
}

// CheckActive is the active-account gate permission updates run through.
func (s *Service) CheckActive(idOrCode string) error {
	_, err := s.ActiveUser(idOrCode)
	return err
}

func (s *Service) resolve(idOrCode string) (*userDatamodel.User, error) {
	row, err := s.repo.GetByIDOrCode(idOrCode)
	if err != nil {
		return nil, internal.NewInternalError("failed to query user", err)
	}
	if row == nil {
		return nil, ErrUserNotFound
	}
	return row, nil
}

func (s *Service) issueTokens(row *userDatamodel.User) (AuthTokens, error) {
	userID := strconv.FormatInt(row.ID, 10)

	accessToken, err := s.tokenGenerator.GenerateAccessToken(userID, row.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign token", err)
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(userID, row.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign token", err)
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "23505")
}

func fromDataModel(row *userDatamodel.User) *User {
	return &User{
		ID:           row.ID,
		Email:        row.Email,
		FullName:     row.FullName,
		ExternalCode: row.ExternalCode,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
