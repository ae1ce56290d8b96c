package handlers

import (
	"net/http"

	"studio-akira-api/config"
	"studio-akira-api/middleware"
	"studio-akira-api/models"
	"studio-akira-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// portalPaths is the role-keyed redirect table.
var portalPaths = map[models.UserRole]string{
	models.RoleCustomer:     "/customer/home.html",
	models.RoleAdmin:        "/admin/dashboard.html",
	models.RoleManufacturer: "/manufacturer/dashboard.html",
	models.RoleDelivery:     "/delivery/dashboard.html",
}

// PortalPath returns the landing path for a role; unknown roles fall back
// to the index page.
func PortalPath(role models.UserRole) string {
	if path, ok := portalPaths[role]; ok {
		return path
	}
	return "/index.html"
}

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Phone    string          `json:"phone" binding:"required"`
	Role     models.UserRole `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required"`
	Role     models.UserRole `json:"role" binding:"required"`
}

// Register creates a new account. Manufacturer and delivery accounts start
// pending with an approval request on file and get no token until an admin
// approves them; customers are active and signed in immediately.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	validRoles := map[models.UserRole]bool{
		models.RoleCustomer:     true,
		models.RoleManufacturer: true,
		models.RoleDelivery:     true,
	}
	if !validRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: customer, manufacturer, or delivery"})
		return
	}

	if !utils.IsValidPhone(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid 10-digit mobile number"})
		return
	}

	email := utils.NormalizeEmail(req.Email)

	var existing models.User
	if result := config.DB.Where("email = ?", email).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	status := models.AccountActive
	if req.Role == models.RoleManufacturer || req.Role == models.RoleDelivery {
		status = models.AccountPending
	}

	user := models.User{
		UID:          uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         req.Role,
		Status:       status,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if status == models.AccountPending {
		request := models.ApprovalRequest{
			UserUID:       user.UID,
			UserEmail:     user.Email,
			UserName:      user.Name,
			RequestedRole: user.Role,
			Status:        models.ApprovalPending,
		}
		if err := config.DB.Create(&request).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create approval request"})
			return
		}
		// No token: the account waits for admin approval before the gate
		// lets it through.
		c.JSON(http.StatusCreated, gin.H{
			"message": "Account created! Your request is pending admin approval. You will be notified once approved.",
			"pending": true,
			"user": gin.H{
				"uid":    user.UID,
				"name":   user.Name,
				"email":  user.Email,
				"role":   user.Role,
				"status": user.Status,
			},
		})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Account created successfully!",
		"token":    token,
		"redirect": PortalPath(user.Role),
		"user": gin.H{
			"uid":   user.UID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Login authenticates credentials against the claimed role and enforces the
// gate: the reserved admin address must be stored as admin (the claimed
// role is ignored for it), everyone else's stored role must equal the
// claimed role, and pending manufacturer/delivery accounts are soft-blocked.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := utils.NormalizeEmail(req.Email)

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if email == utils.NormalizeEmail(config.Cfg.Auth.AdminEmail) {
		if user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. This email is reserved for Admin only."})
			return
		}
		issueSession(c, &user)
		return
	}

	if user.Role != req.Role {
		c.JSON(http.StatusForbidden, gin.H{"error": "This account is not registered as a " + string(req.Role)})
		return
	}

	if (user.Role == models.RoleManufacturer || user.Role == models.RoleDelivery) &&
		user.Status != models.AccountActive {
		// Soft block, not an auth failure: the account exists but is
		// waiting on admin approval.
		c.JSON(http.StatusForbidden, gin.H{
			"pending": true,
			"message": "Your account is pending admin approval. Please wait for approval before logging in.",
		})
		return
	}

	issueSession(c, &user)
}

func issueSession(c *gin.Context, user *models.User) {
	token, err := middleware.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"token":    token,
		"redirect": PortalPath(user.Role),
		"user": gin.H{
			"uid":   user.UID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// CheckSession is the passive landing-page check: an existing session for
// an active account yields an immediate portal redirect; anything else
// yields none. Convenience only, not a security boundary.
func CheckSession(c *gin.Context) {
	uid := middleware.GetUserUID(c)
	var user models.User
	if err := config.DB.Where("uid = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"redirect": nil})
		return
	}
	if user.Status != models.AccountActive {
		c.JSON(http.StatusOK, gin.H{"redirect": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect": PortalPath(user.Role)})
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	uid := middleware.GetUserUID(c)
	var user models.User
	if err := config.DB.Where("uid = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
