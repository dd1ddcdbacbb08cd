package services_test

import (
	"fmt"
	"testing"

	"locgm/internal/models"
	"locgm/internal/repositories"
	"locgm/internal/services"
	"locgm/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*services.AuthService, *MockUserRepository, *MockCompanyRepository) {
	users := new(MockUserRepository)
	companies := new(MockCompanyRepository)
	return services.NewAuthService(users, companies, services.NewCSRFGuard(), zerolog.Nop()), users, companies
}

func TestAuthService_EstablishNewEmpresa(t *testing.T) {
	authService, users, companies := newAuthService()
	s := session.NewMemory()
	email := "loja@locgm.com"

	users.On("GetByEmail", email).Return(nil, fmt.Errorf("user: %w", repositories.ErrNotFound)).Once()
	users.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.Email == email && u.Role == models.RoleEmpresa && u.CompanyName == "Minha Empresa"
	})).Return(nil).Once()
	companies.On("Exists", email).Return(false, nil).Once()
	companies.On("Create", &models.Company{Email: email, CompanyName: "Minha Empresa"}).Return(nil).Once()

	user, err := authService.Establish(s, " "+email+" ", models.RoleEmpresa)
	require.NoError(t, err)
	assert.Equal(t, email, user.Email)
	assert.Equal(t, "Minha Empresa", user.Name)
	users.AssertExpectations(t)
	companies.AssertExpectations(t)

	current, ok := authService.CurrentUser(s)
	require.True(t, ok)
	assert.Equal(t, email, current.Email)
	assert.NotEmpty(t, services.NewCSRFGuard().Current(s), "login issues the csrf token")
}

func TestAuthService_EstablishIsIdempotent(t *testing.T) {
	authService, users, companies := newAuthService()
	email := "loja@locgm.com"
	stored := &models.User{ID: 3, Email: email, Role: models.RoleEmpresa, Name: "Loja", CompanyName: "Loja Central"}

	users.On("GetByEmail", email).Return(stored, nil).Twice()
	companies.On("Exists", email).Return(true, nil).Twice()

	for i := 0; i < 2; i++ {
		user, err := authService.Establish(session.NewMemory(), email, models.RoleEmpresa)
		require.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)
		assert.Equal(t, "Loja Central", user.CompanyName)
	}

	users.AssertExpectations(t)
	companies.AssertExpectations(t)
	users.AssertNotCalled(t, "Create", mock.Anything)
	companies.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_EstablishVisitor(t *testing.T) {
	authService, users, companies := newAuthService()
	email := "ana@locgm.com"

	users.On("GetByEmail", email).Return(nil, repositories.ErrNotFound).Once()
	users.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.Establish(session.NewMemory(), email, models.RoleVisitante)
	require.NoError(t, err)
	assert.Equal(t, models.RoleVisitante, user.Role)
	assert.Equal(t, "Visitante LocGM", user.Name)
	assert.Empty(t, user.CompanyName)

	users.AssertExpectations(t)
	companies.AssertNotCalled(t, "Exists", mock.Anything)
	companies.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_EstablishWithoutDatabase(t *testing.T) {
	authService, users, companies := newAuthService()
	s := session.NewMemory()
	email := "loja@locgm.com"

	users.On("GetByEmail", email).Return(nil, repositories.ErrUnavailable).Once()
	companies.On("Exists", email).Return(false, repositories.ErrUnavailable).Once()

	user, err := authService.Establish(s, email, models.RoleEmpresa)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmpresa, user.Role)

	current, ok := session.CurrentUser(s)
	require.True(t, ok)
	assert.Equal(t, email, current.Email)
	users.AssertNotCalled(t, "Create", mock.Anything)
	companies.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_EstablishRejectsInvalidEmail(t *testing.T) {
	authService, users, _ := newAuthService()
	s := session.NewMemory()

	for _, email := range []string{"", "   ", "not-an-email"} {
		_, err := authService.Establish(s, email, models.RoleVisitante)
		assert.ErrorIs(t, err, services.ErrInvalidEmail, email)
	}
	_, ok := session.CurrentUser(s)
	assert.False(t, ok)
	users.AssertNotCalled(t, "GetByEmail", mock.Anything)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService, users, _ := newAuthService()
	s := session.NewMemory()
	user := &models.User{ID: 1, Email: "loja@locgm.com", Role: models.RoleEmpresa, Name: "Minha Empresa"}
	session.SetUser(s, user)

	users.On("UpdateProfile", mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "loja@locgm.com" && u.Phone == "69 3541-0000"
	})).Return(nil).Once()

	updated, err := authService.UpdateProfile(s, user, services.ProfileInput{
		Name:       " Loja Central ",
		Phone:      "69 3541-0000",
		PricesNote: "Café R$ 5",
	})
	require.NoError(t, err)
	assert.Equal(t, "Loja Central", updated.Name)
	assert.Equal(t, models.RoleEmpresa, updated.Role, "role is not self-editable")
	users.AssertExpectations(t)

	current, _ := session.CurrentUser(s)
	assert.Equal(t, "Café R$ 5", current.PricesNote)

	_, err = authService.UpdateProfile(s, user, services.ProfileInput{Name: "  "})
	var verrs services.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Informe o nome.", verrs["name"])
}

func TestAuthService_UpdateProfileWithoutDatabase(t *testing.T) {
	authService, users, _ := newAuthService()
	s := session.NewMemory()
	user := &models.User{Email: "ana@locgm.com", Role: models.RoleVisitante, Name: "Visitante LocGM"}

	users.On("UpdateProfile", mock.AnythingOfType("*models.User")).Return(repositories.ErrUnavailable).Once()

	updated, err := authService.UpdateProfile(s, user, services.ProfileInput{Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)

	current, ok := session.CurrentUser(s)
	require.True(t, ok)
	assert.Equal(t, "Ana", current.Name)
}

func TestAuthService_EstablishUsesChosenRole(t *testing.T) {
	authService, users, companies := newAuthService()
	email := "ana@locgm.com"
	stored := &models.User{ID: 5, Email: email, Role: models.RoleVisitante, Name: "Visitante LocGM", Phone: "69 9999-0000"}

	users.On("GetByEmail", email).Return(stored, nil).Once()
	companies.On("Exists", email).Return(false, nil).Once()
	companies.On("Create", &models.Company{Email: email, CompanyName: "Minha Empresa"}).Return(nil).Once()

	s := session.NewMemory()
	user, err := authService.Establish(s, email, models.RoleEmpresa)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmpresa, user.Role)
	assert.Equal(t, "Minha Empresa", user.CompanyName)
	assert.Equal(t, "69 9999-0000", user.Phone, "stored fields are kept")

	current, ok := session.CurrentUser(s)
	require.True(t, ok)
	assert.True(t, current.IsEmpresa())
	users.AssertExpectations(t)
	companies.AssertExpectations(t)
	users.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_EstablishRotatesSession(t *testing.T) {
	authService, users, _ := newAuthService()
	guard := services.NewCSRFGuard()
	email := "ana@locgm.com"
	users.On("GetByEmail", email).Return(&models.User{ID: 5, Email: email, Role: models.RoleVisitante}, nil)

	s := session.NewMemory()
	before, err := guard.Issue(s)
	require.NoError(t, err)
	id := s.ID()

	_, err = authService.Establish(s, email, models.RoleVisitante)
	require.NoError(t, err)
	assert.NotEqual(t, id, s.ID())
	assert.NotEqual(t, before, guard.Current(s))
	assert.False(t, guard.Validate(s, before))
	assert.Len(t, guard.Current(s), 64)
}
