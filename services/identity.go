package services

import (
	"errors"
	"strings"

	"residency-server/models"
	"residency-server/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// NewUser is the profile accepted by registration and admin user creation.
type NewUser struct {
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
	Phone     string
}

func badCredentials() error {
	return utils.ErrAuthentication("Bad username or password")
}

// Authenticate never reveals whether the email or the password was wrong.
func Authenticate(db *gorm.DB, email, password string) (models.User, error) {
	var user models.User
	found, err := findUserByEmail(db, &user, email)
	if err != nil {
		return user, err
	}
	if !found {
		return models.User{}, badCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, badCredentials()
	}
	return user, nil
}

// Register is open to anyone and creates Resident or Staff accounts only.
func Register(db *gorm.DB, in NewUser) (models.User, error) {
	if in.Role == "" {
		in.Role = models.RoleResident
	}
	if err := requireFields(in); err != nil {
		return models.User{}, err
	}
	if !slices.Contains(models.Roles, in.Role) {
		return models.User{}, invalidRole()
	}
	if in.Role == models.RoleAdmin {
		return models.User{}, utils.ErrForbidden("Admin accounts can only be created by a Super Admin")
	}
	if err := ensureEmailFree(db, in.Email); err != nil {
		return models.User{}, err
	}
	return insertUser(db, in)
}

// CreateUser is the admin path. Creating another Admin additionally needs the
// super-admin claim, and the new admin is never a super-admin.
func CreateUser(db *gorm.DB, actor utils.Actor, in NewUser) (models.User, error) {
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return models.User{}, err
	}
	if err := requireFields(in); err != nil {
		return models.User{}, err
	}
	if in.Role == "" {
		return models.User{}, utils.ErrValidation("Missing required field: role")
	}
	if err := ensureEmailFree(db, in.Email); err != nil {
		return models.User{}, err
	}
	if !slices.Contains(models.Roles, in.Role) {
		return models.User{}, invalidRole()
	}
	if in.Role == models.RoleAdmin {
		if err := utils.Authorize(actor, utils.SuperAdminOnly); err != nil {
			return models.User{}, err
		}
	}

	user, err := insertUser(db, in)
	if err != nil {
		return models.User{}, err
	}

	RecordAudit(db, actor, ActionCreateUser, &user.ID, map[string]string{
		"email": user.Email,
		"role":  user.Role,
	})
	return user, nil
}

// ListUsers hides Admin rows from admins without the super-admin claim.
func ListUsers(db *gorm.DB, actor utils.Actor) ([]models.User, error) {
	if err := utils.Authorize(actor, utils.AdminOnly); err != nil {
		return nil, err
	}

	query := db.Order("created_at ASC")
	if !actor.IsSuperAdmin {
		query = query.Where("role <> ?", models.RoleAdmin)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func GetUser(db *gorm.DB, id uuid.UUID) (models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, utils.ErrNotFound("User not found")
		}
		return user, err
	}
	return user, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func requireFields(in NewUser) error {
	required := []struct{ name, value string }{
		{"email", in.Email},
		{"password", in.Password},
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return utils.ErrValidationf("Missing required field: %s", f.name)
		}
	}
	if !strings.Contains(in.Email, "@") {
		return utils.ErrValidation("Invalid email address")
	}
	if len(in.Password) < minPasswordLength {
		return utils.ErrValidationf("Password must be at least %d characters", minPasswordLength)
	}
	return nil
}

func invalidRole() error {
	return utils.ErrValidationf("Invalid role. Must be one of: %s", strings.Join(models.Roles, ", "))
}

func ensureEmailFree(db *gorm.DB, email string) error {
	var existing models.User
	found, err := findUserByEmail(db, &existing, email)
	if err != nil {
		return err
	}
	if found {
		return utils.ErrConflict("User with this email already exists")
	}
	return nil
}

func findUserByEmail(db *gorm.DB, user *models.User, email string) (bool, error) {
	query := db.Where("email = ?", normalizeEmail(email)).Limit(1).Find(user)
	if query.Error != nil {
		return false, query.Error
	}
	return query.RowsAffected > 0, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func insertUser(db *gorm.DB, in NewUser) (models.User, error) {
	hashed, err := HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        normalizeEmail(in.Email),
		Password:     hashed,
		Role:         in.Role,
		IsSuperAdmin: false,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        utils.NormalizePhoneNumber(in.Phone),
	}
	if err := db.Create(&user).Error; err != nil {
		return models.User{}, conflictOr(err, "User with this email already exists")
	}
	return user, nil
}

// conflictOr maps a unique-index violation onto a ConflictError.
func conflictOr(err error, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrConflict(message)
	}
	return err
}
