package user

import (
	"testing"

	"bcal/models"
	"bcal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go.mongodb.org/mongo-driver/bson"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(orgID, email string) (*models.User, error) {
	args := m.Called(orgID, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetAllByOrg(orgID string) ([]models.User, error) {
	args := m.Called(orgID)
	us, _ := args.Get(0).([]models.User)
	return us, args.Error(1)
}

func (m *mockUserRepo) GetManyByIDs(ids []string) ([]models.User, error) {
	args := m.Called(ids)
	us, _ := args.Get(0).([]models.User)
	return us, args.Error(1)
}

func (m *mockUserRepo) CountByOrg(orgID string) (int64, error) {
	args := m.Called(orgID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *mockUserRepo) Create(u *models.User) error {
	return m.Called(u).Error(0)
}

func (m *mockUserRepo) Update(u *models.User) error {
	return m.Called(u).Error(0)
}

func (m *mockUserRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	args := m.Called(id, projection)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func testService(t *testing.T, repo *mockUserRepo) (*DefaultUserService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &DefaultUserService{
		Repo:      repo,
		Auth:      &LocalAuthProvider{},
		AuthCache: cache,
	}, mr
}

func TestSignUpIssuesTokenAndCachesHash(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", "org-1", "new@acme.test").Return(nil, nil)
	repo.On("Create", mock.Anything).Return(nil)
	repo.On("Update", mock.MatchedBy(func(u *models.User) bool {
		return u.TokenHash != ""
	})).Return(nil)

	svc, mr := testService(t, repo)
	session, err := svc.SignUp(SignUpRequest{
		OrganizationID: "org-1",
		Email:          "new@acme.test",
		Username:       "new",
		FullName:       "New User",
		Password:       "super-secret",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Empty(t, session.User.PasswordHash)
	assert.True(t, mr.Exists(utils.AuthCachePrefix+utils.HashToken(session.Token)))
	repo.AssertExpectations(t)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", "org-1", "taken@acme.test").
		Return(&models.User{ID: "existing"}, nil)

	svc, _ := testService(t, repo)
	_, err := svc.SignUp(SignUpRequest{OrganizationID: "org-1", Email: "taken@acme.test", Password: "super-secret"})
	assert.Error(t, err)
}

func TestSignInWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := new(mockUserRepo)
	repo.On("GetByEmail", "org-1", "pat@acme.test").
		Return(&models.User{ID: "u-1", Email: "pat@acme.test", PasswordHash: string(hash), IsActive: true}, nil)

	svc, _ := testService(t, repo)
	_, err = svc.SignIn(SignInRequest{OrganizationID: "org-1", Email: "pat@acme.test", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInInactiveUser(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", "org-1", "gone@acme.test").
		Return(&models.User{ID: "u-1", IsActive: false}, nil)

	svc, _ := testService(t, repo)
	_, err := svc.SignIn(SignInRequest{OrganizationID: "org-1", Email: "gone@acme.test", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOutRevokesSession(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	account := &models.User{ID: "u-1", Email: "pat@acme.test", PasswordHash: string(hash), IsActive: true}
	repo := new(mockUserRepo)
	repo.On("GetByEmail", "org-1", "pat@acme.test").Return(account, nil)
	repo.On("GetByID", "u-1").Return(account, nil)
	repo.On("Update", account).Return(nil)

	svc, mr := testService(t, repo)
	session, err := svc.SignIn(SignInRequest{OrganizationID: "org-1", Email: "pat@acme.test", Password: "right-password"})
	require.NoError(t, err)
	require.Equal(t, utils.HashToken(session.Token), account.TokenHash)

	key := utils.AuthCachePrefix + utils.HashToken(session.Token)
	require.True(t, mr.Exists(key))
	require.NoError(t, svc.SignOut(session.Token))

	// Both revocation paths: the cache entry is gone and the stored hash is
	// cleared, so the middleware's database fallback rejects the token too.
	assert.False(t, mr.Exists(key))
	assert.Empty(t, account.TokenHash)
}
