package services

import (
	"errors"
	"fmt"
	"strings"

	"locgm/internal/models"
	"locgm/internal/repositories"
	"locgm/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const (
	defaultCompanyName = "Minha Empresa"
	defaultVisitorName = "Visitante LocGM"
)

// AuthService handles email-only login and the profile kept in the session.
type AuthService struct {
	users     repositories.UserRepository
	companies repositories.CompanyRepository
	csrf      *CSRFGuard
	validate  *validator.Validate
	log       zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserRepository, companies repositories.CompanyRepository, csrf *CSRFGuard, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		companies: companies,
		csrf:      csrf,
		validate:  newValidator(),
		log:       log,
	}
}

// Establish logs in by email with the chosen role. Unknown emails are
// registered with defaults for the role; known emails keep their stored
// profile fields. The session carries the chosen role, and empresa logins get
// a minimal company row when none exists. When the database is unavailable the
// profile lives only in the session. The session moves to a new id and gets a
// new CSRF token.
func (s *AuthService) Establish(v session.Values, email string, role models.Role) (*models.User, error) {
	email = strings.TrimSpace(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, ErrInvalidEmail
	}

	user := defaultProfile(email, role)
	stored, err := s.users.GetByEmail(email)
	switch {
	case err == nil:
		stored.Role = user.Role
		if stored.IsEmpresa() && stored.CompanyName == "" {
			stored.CompanyName = defaultCompanyName
		}
		user = stored
	case errors.Is(err, repositories.ErrNotFound):
		if err := s.users.Create(user); err != nil {
			s.logPersistence(err, "create user", email)
		}
	default:
		s.logPersistence(err, "fetch user", email)
	}

	if user.IsEmpresa() {
		s.ensureCompany(user)
	}

	if err := session.Regenerate(v); err != nil {
		return nil, fmt.Errorf("failed to regenerate session: %w", err)
	}
	session.SetUser(v, user)
	if _, err := s.csrf.Reissue(v); err != nil {
		return nil, err
	}
	s.log.Info().Str("email", email).Str("role", string(user.Role)).Msg("session established")
	return user, nil
}

// CurrentUser returns the profile of the session, if logged in.
func (s *AuthService) CurrentUser(v session.Values) (*models.User, bool) {
	return session.CurrentUser(v)
}

// ProfileInput holds the self-editable fields of a user.
type ProfileInput struct {
	Name        string `json:"name" form:"name" validate:"required"`
	CompanyName string `json:"company_name" form:"company_name"`
	Phone       string `json:"phone" form:"phone" validate:"max=50"`
	Address     string `json:"address" form:"address" validate:"max=255"`
	PricesNote  string `json:"prices_note" form:"prices_note"`
	CSRFToken   string `json:"csrf_token" form:"csrf_token"`
}

var profileMessages = map[string]string{
	"name":    "Informe o nome.",
	"phone":   "Telefone muito longo.",
	"address": "Endereço muito longo.",
}

// UpdateProfile applies a self-edit to the given user and refreshes the session.
func (s *AuthService) UpdateProfile(v session.Values, user *models.User, in ProfileInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.PricesNote = strings.TrimSpace(in.PricesNote)

	if err := s.validate.Struct(in); err != nil {
		return nil, fieldErrors(err, profileMessages)
	}

	updated := *user
	updated.Name = in.Name
	updated.CompanyName = in.CompanyName
	updated.Phone = in.Phone
	updated.Address = in.Address
	updated.PricesNote = in.PricesNote

	if err := s.users.UpdateProfile(&updated); err != nil {
		if !errors.Is(err, repositories.ErrUnavailable) {
			s.log.Error().Err(err).Str("email", user.Email).Msg("failed to update profile")
			return nil, err
		}
		s.log.Warn().Str("email", user.Email).Msg("database unavailable, profile kept in session only")
	}

	session.SetUser(v, &updated)
	return &updated, nil
}

func (s *AuthService) ensureCompany(user *models.User) {
	exists, err := s.companies.Exists(user.Email)
	if err != nil {
		s.logPersistence(err, "check company", user.Email)
		return
	}
	if exists {
		return
	}
	name := user.CompanyName
	if name == "" {
		name = defaultCompanyName
	}
	if err := s.companies.Create(&models.Company{Email: user.Email, CompanyName: name}); err != nil {
		s.logPersistence(err, "create company", user.Email)
	}
}

func (s *AuthService) logPersistence(err error, op, email string) {
	if errors.Is(err, repositories.ErrUnavailable) {
		s.log.Warn().Str("op", op).Str("email", email).Msg("database unavailable, using session profile")
		return
	}
	s.log.Error().Err(err).Str("op", op).Str("email", email).Msg("persistence failed")
}

func defaultProfile(email string, role models.Role) *models.User {
	user := &models.User{Email: email, Role: role}
	if role == models.RoleEmpresa {
		user.Name = defaultCompanyName
		user.CompanyName = defaultCompanyName
	} else {
		user.Role = models.RoleVisitante
		user.Name = defaultVisitorName
	}
	return user
}

// fieldErrors turns validator output into per-field messages.
func fieldErrors(err error, messages map[string]string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}
	out := make(ValidationErrors, len(verrs))
	for _, e := range verrs {
		msg, ok := messages[e.Field()]
		if !ok {
			msg = fmt.Sprintf("Campo '%s' inválido", e.Field())
		}
		out[e.Field()] = msg
	}
	return out
}
