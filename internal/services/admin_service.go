package services

import (
	"errors"
	"net/http"
	"strings"

	"locgm/internal/models"
	"locgm/internal/repositories"
	"locgm/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// AdminForm carries the raw fields of an admin API request.
type AdminForm struct {
	Action      string     `json:"action" form:"action"`
	ID          FormNumber `json:"id" form:"id"`
	CompanyName string     `json:"company_name" form:"company_name"`
	Address     string     `json:"address" form:"address"`
	Phone       string     `json:"phone" form:"phone"`
	Name        string     `json:"name" form:"name"`
	Role        string     `json:"role" form:"role"`
	CSRFToken   string     `json:"csrf_token" form:"csrf_token"`
}

// AdminRequest is one call to the admin API.
type AdminRequest struct {
	Method  string
	Session session.Values
	Form    AdminForm
}

type idPayload struct {
	ID uint `validate:"gt=0"`
}

type companyPayload struct {
	ID          uint   `validate:"gt=0"`
	CompanyName string `validate:"required"`
	Address     string
	Phone       string
}

type userPayload struct {
	ID          uint   `validate:"gt=0"`
	Name        string `validate:"required"`
	Role        models.Role
	CompanyName string
}

// adminAction validates the form and, on success, returns the single
// persistence call that carries the action out.
type adminAction func(s *AdminService, f AdminForm) (func() error, error)

var adminActions = map[string]adminAction{
	"delete_company": func(s *AdminService, f AdminForm) (func() error, error) {
		p := idPayload{ID: parseID(f.ID.String())}
		if err := s.validate.Struct(p); err != nil {
			return nil, gateError(KindInvalidInput, MsgInvalidID)
		}
		return func() error { return s.companies.Delete(p.ID) }, nil
	},
	"update_company": func(s *AdminService, f AdminForm) (func() error, error) {
		p := companyPayload{
			ID:          parseID(f.ID.String()),
			CompanyName: strings.TrimSpace(f.CompanyName),
			Address:     strings.TrimSpace(f.Address),
			Phone:       strings.TrimSpace(f.Phone),
		}
		if err := s.validate.Struct(p); err != nil {
			return nil, gateError(KindInvalidInput, MsgInvalidData)
		}
		return func() error { return s.companies.Update(p.ID, p.CompanyName, p.Address, p.Phone) }, nil
	},
	"delete_user": func(s *AdminService, f AdminForm) (func() error, error) {
		p := idPayload{ID: parseID(f.ID.String())}
		if err := s.validate.Struct(p); err != nil {
			return nil, gateError(KindInvalidInput, MsgInvalidID)
		}
		return func() error { return s.users.Delete(p.ID) }, nil
	},
	"update_user": func(s *AdminService, f AdminForm) (func() error, error) {
		role, err := models.ParseRole(f.Role)
		if err != nil {
			return nil, gateError(KindInvalidInput, MsgInvalidData)
		}
		p := userPayload{
			ID:          parseID(f.ID.String()),
			Name:        strings.TrimSpace(f.Name),
			Role:        role,
			CompanyName: strings.TrimSpace(f.CompanyName),
		}
		if err := s.validate.Struct(p); err != nil {
			return nil, gateError(KindInvalidInput, MsgInvalidData)
		}
		return func() error { return s.users.Update(p.ID, p.Name, p.Role, p.CompanyName) }, nil
	},
}

// AdminService runs the admin API: every request passes the method,
// authentication, role and CSRF gates before its action is looked up.
type AdminService struct {
	companies repositories.CompanyRepository
	users     repositories.UserRepository
	gate      *Gatekeeper
	validate  *validator.Validate
	log       zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(companies repositories.CompanyRepository, users repositories.UserRepository, gate *Gatekeeper, log zerolog.Logger) *AdminService {
	return &AdminService{
		companies: companies,
		users:     users,
		gate:      gate,
		validate:  newValidator(),
		log:       log,
	}
}

// Dispatch checks the request gate by gate and stops at the first failure,
// which is returned as a *GateError. Past the gates exactly one persistence
// call is made and its outcome is reported in the Result.
func (s *AdminService) Dispatch(req AdminRequest) (Result, error) {
	if req.Method != http.MethodPost {
		return Result{}, gateError(KindMethodNotAllowed, MsgMethodNotAllowed)
	}
	user, err := s.gate.RequireEmpresa(req.Session, req.Form.CSRFToken, MsgAdminOnly)
	if err != nil {
		return Result{}, err
	}
	action, ok := adminActions[req.Form.Action]
	if !ok {
		return Result{}, gateError(KindUnknownAction, MsgUnknownAction)
	}
	persist, err := action(s, req.Form)
	if err != nil {
		return Result{}, err
	}

	if err := persist(); err != nil {
		if errors.Is(err, repositories.ErrUnavailable) {
			s.log.Warn().Str("action", req.Form.Action).Msg("database unavailable")
			return Result{Status: "error", Message: MsgUnavailable}, nil
		}
		s.log.Error().Err(err).Str("action", req.Form.Action).Str("by", user.Email).Msg("admin action failed")
		return Result{Status: "error", Message: MsgWriteFailed}, nil
	}
	s.log.Info().Str("action", req.Form.Action).Str("id", req.Form.ID.String()).Str("by", user.Email).Msg("admin action applied")
	return Result{Status: "ok"}, nil
}

// Companies lists stored companies. The second result is false when the
// listing failed, typically because the database is unavailable; the list is
// then empty.
func (s *AdminService) Companies() ([]models.Company, bool) {
	companies, err := s.companies.GetAll()
	if err != nil {
		s.logListing(err, "companies")
		return []models.Company{}, false
	}
	return companies, true
}

// Users lists stored users, with the same fallback as Companies.
func (s *AdminService) Users() ([]models.User, bool) {
	users, err := s.users.GetAll()
	if err != nil {
		s.logListing(err, "users")
		return []models.User{}, false
	}
	return users, true
}

func (s *AdminService) logListing(err error, what string) {
	if errors.Is(err, repositories.ErrUnavailable) {
		s.log.Warn().Str("list", what).Msg("database unavailable")
		return
	}
	s.log.Error().Err(err).Str("list", what).Msg("listing failed")
}
