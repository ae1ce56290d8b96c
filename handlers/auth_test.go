package handlers

import (
	"net/http"
	"testing"

	"studio-akira-api/config"
	"studio-akira-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterCustomerSignsInImmediately(t *testing.T) {
	r := setupTest(t)

	body := registerUser(t, r, "Asha", "asha@example.com", "9876543210", models.RoleCustomer)

	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "/customer/home.html", body["redirect"])
	assert.Nil(t, body["pending"])

	var user models.User
	require.NoError(t, config.DB.Where("email = ?", "asha@example.com").First(&user).Error)
	assert.Equal(t, models.AccountActive, user.Status)
	assert.NotEmpty(t, user.UID)
}

func TestRegisterManufacturerStartsPending(t *testing.T) {
	r := setupTest(t)

	body := registerUser(t, r, "Mill Co", "mill@example.com", "9876543211", models.RoleManufacturer)

	assert.Equal(t, true, body["pending"])
	assert.Nil(t, body["token"])
	assert.Nil(t, body["redirect"])

	var user models.User
	require.NoError(t, config.DB.Where("email = ?", "mill@example.com").First(&user).Error)
	assert.Equal(t, models.AccountPending, user.Status)

	var reqRow models.ApprovalRequest
	require.NoError(t, config.DB.Where("user_uid = ?", user.UID).First(&reqRow).Error)
	assert.Equal(t, models.ApprovalPending, reqRow.Status)
	assert.Equal(t, models.RoleManufacturer, reqRow.RequestedRole)
}

func TestRegisterRejectsInvalidPhone(t *testing.T) {
	r := setupTest(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Bad Phone",
		"email":    "bad@example.com",
		"password": "secret123",
		"phone":    "12345",
		"role":     models.RoleCustomer,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "valid 10-digit")
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	r := setupTest(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Wannabe",
		"email":    "wannabe@example.com",
		"password": "secret123",
		"phone":    "9876543212",
		"role":     models.RoleAdmin,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid role")
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	r := setupTest(t)
	registerUser(t, r, "First", "dup@example.com", "9876543213", models.RoleCustomer)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Second",
		"email":    "DUP@Example.com",
		"password": "secret123",
		"phone":    "9876543214",
		"role":     models.RoleCustomer,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginRoleMismatchRefused(t *testing.T) {
	r := setupTest(t)
	registerUser(t, r, "Asha", "asha@example.com", "9876543210", models.RoleCustomer)

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "asha@example.com",
		"password": "secret123",
		"role":     models.RoleDelivery,
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not registered as a")
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	r := setupTest(t)
	registerUser(t, r, "Asha", "asha@example.com", "9876543210", models.RoleCustomer)

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "asha@example.com",
		"password": "wrongpass",
		"role":     models.RoleCustomer,
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// seedUser inserts a user directly, bypassing the register handler.
func seedUser(t *testing.T, email string, role models.UserRole, status models.AccountStatus) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		UID:          uuid.NewString(),
		Name:         "Seeded",
		Email:        email,
		PasswordHash: string(hash),
		Phone:        "9876500000",
		Role:         role,
		Status:       status,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

func TestReservedAdminEmailRefusesNonAdminAccount(t *testing.T) {
	r := setupTest(t)
	seedUser(t, "admin@gmail.com", models.RoleCustomer, models.AccountActive)

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "admin@gmail.com",
		"password": "secret123",
		"role":     models.RoleCustomer,
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "reserved for Admin")
}

func TestReservedAdminEmailIgnoresClaimedRole(t *testing.T) {
	r := setupTest(t)
	seedUser(t, "admin@gmail.com", models.RoleAdmin, models.AccountActive)

	// Claimed role is customer; the reserved address still lands in the
	// admin portal because only the stored role counts for it.
	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "admin@gmail.com",
		"password": "secret123",
		"role":     models.RoleCustomer,
	})

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "/admin/dashboard.html", body["redirect"])
}

func TestPendingManufacturerLoginSoftBlocked(t *testing.T) {
	r := setupTest(t)
	seedUser(t, "mill@example.com", models.RoleManufacturer, models.AccountPending)

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "mill@example.com",
		"password": "secret123",
		"role":     models.RoleManufacturer,
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["pending"])
}

func TestApprovedManufacturerCanLogIn(t *testing.T) {
	r := setupTest(t)
	registerUser(t, r, "Mill Co", "mill@example.com", "9876543211", models.RoleManufacturer)

	admin := seedUser(t, "admin@gmail.com", models.RoleAdmin, models.AccountActive)
	adminToken := loginAs(t, r, admin.Email, models.RoleAdmin)

	var reqRow models.ApprovalRequest
	require.NoError(t, config.DB.Where("user_email = ?", "mill@example.com").First(&reqRow).Error)

	w := doJSON(r, http.MethodPut, "/api/admin/approvals/"+itoa(reqRow.ID)+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token := loginAs(t, r, "mill@example.com", models.RoleManufacturer)
	assert.NotEmpty(t, token)

	require.NoError(t, config.DB.Where("id = ?", reqRow.ID).First(&reqRow).Error)
	assert.Equal(t, models.ApprovalApproved, reqRow.Status)
}

func TestCheckSessionRedirectsActiveUser(t *testing.T) {
	r := setupTest(t)
	registerUser(t, r, "Asha", "asha@example.com", "9876543210", models.RoleCustomer)
	token := loginAs(t, r, "asha@example.com", models.RoleCustomer)

	w := doJSON(r, http.MethodGet, "/api/auth/session", token, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "/customer/home.html", body["redirect"])
}

func TestProfileRequiresToken(t *testing.T) {
	r := setupTest(t)

	w := doJSON(r, http.MethodGet, "/api/profile", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPortalPathUnknownRoleFallsBack(t *testing.T) {
	assert.Equal(t, "/index.html", PortalPath(models.UserRole("ghost")))
	assert.Equal(t, "/delivery/dashboard.html", PortalPath(models.RoleDelivery))
}
