package controller

import (
	"errors"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schoolsync_backend/internals/configs"
	"schoolsync_backend/internals/constants"
	authDTO "schoolsync_backend/internals/features/users/auth/dto"
	authService "schoolsync_backend/internals/features/users/auth/service"
	staffModel "schoolsync_backend/internals/features/users/staff/model"
	studentModel "schoolsync_backend/internals/features/users/students/model"
	helper "schoolsync_backend/internals/helpers"
)

type AuthController struct{ DB *gorm.DB }

func NewAuthController(db *gorm.DB) *AuthController { return &AuthController{DB: db} }

var validateAuth = validator.New()

// invalidCredentials is shared by every login failure mode so the response
// never reveals whether the identifier or the password was wrong.
const invalidCredentials = "Invalid credentials"

// ===================== REGISTER =====================
// POST /api/auth/register (public, students only)
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	idNumber := strings.TrimSpace(req.IDNumber)

	var count int64
	if err := h.DB.Model(&studentModel.StudentModel{}).
		Where("student_email = ? OR student_id_number = ?", email, idNumber).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing students")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email or ID number already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	student := studentModel.StudentModel{
		StudentName:       strings.TrimSpace(req.Name),
		StudentEmail:      email,
		StudentIDNumber:   idNumber,
		StudentPassword:   string(hashed),
		StudentGradeLevel: strings.TrimSpace(req.GradeLevel),
		StudentSection:    strings.TrimSpace(req.Section),
		StudentContact:    strings.TrimSpace(req.Contact),
		StudentAddress:    strings.TrimSpace(req.Address),
	}
	if err := h.DB.Create(&student).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email or ID number already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create student")
	}

	return helper.JsonCreated(c, "Registration successful", authDTO.AuthUser{
		ID:       student.StudentID,
		Name:     student.StudentName,
		Email:    student.StudentEmail,
		IDNumber: student.StudentIDNumber,
		Role:     constants.RoleStudent,
	})
}

// ===================== LOGIN =====================
// POST /api/auth/login (public)
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	user, hash, err := h.lookup(req.UserType, req.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, invalidCredentials)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, invalidCredentials)
	}

	return h.issueSession(c, user)
}

// ===================== GOOGLE LOGIN =====================
// POST /api/auth/login-google (public)
// Verifies a Google ID token and signs in the matching account by email.
// No account is auto-created.
func (h *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req authDTO.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID token")
	}

	user, _, err := h.lookup(req.UserType, claimSet.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "No account for this Google email")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}

	return h.issueSession(c, user)
}

// ===================== ME =====================
// GET /api/auth/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	if role == constants.RoleStudent {
		var student studentModel.StudentModel
		if err := h.DB.First(&student, "student_id = ?", userID).Error; err != nil {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonOK(c, "", fiber.Map{"role": role, "user": student})
	}

	var staff staffModel.StaffModel
	if err := h.DB.First(&staff, "staff_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Staff not found")
	}
	return helper.JsonOK(c, "", fiber.Map{"role": role, "user": staff})
}

/* ===================== internals ===================== */

// lookup resolves identifier (email or id number) within the chosen
// population. Returns the identity payload and the stored password hash.
func (h *AuthController) lookup(userType, identifier string) (authDTO.AuthUser, string, error) {
	identifier = strings.TrimSpace(identifier)
	emailForm := strings.ToLower(identifier)

	if userType == "student" {
		var student studentModel.StudentModel
		err := h.DB.
			Where("student_email = ? OR student_id_number = ?", emailForm, identifier).
			First(&student).Error
		if err != nil {
			return authDTO.AuthUser{}, "", err
		}
		return authDTO.AuthUser{
			ID:       student.StudentID,
			Name:     student.StudentName,
			Email:    student.StudentEmail,
			IDNumber: student.StudentIDNumber,
			Role:     constants.RoleStudent,
		}, student.StudentPassword, nil
	}

	var staff staffModel.StaffModel
	err := h.DB.
		Where("staff_email = ? OR staff_id_number = ?", emailForm, identifier).
		First(&staff).Error
	if err != nil {
		return authDTO.AuthUser{}, "", err
	}
	// staff role is whichever of teacher/admin is stored on the record
	return authDTO.AuthUser{
		ID:       staff.StaffID,
		Name:     staff.StaffName,
		Email:    staff.StaffEmail,
		IDNumber: staff.StaffIDNumber,
		Role:     staff.StaffRole,
	}, staff.StaffPassword, nil
}

func (h *AuthController) issueSession(c *fiber.Ctx, user authDTO.AuthUser) error {
	token, exp, err := authService.IssueAccessToken(user.ID, user.Role, user.Name)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Login successful", authDTO.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: exp,
		User:      user,
	})
}
