package services

import (
	"context"
	"errors"
	"log"

	"syndiceasy/internal/adapters/persistence/models"
	"syndiceasy/internal/adapters/persistence/repositories"
	"syndiceasy/internal/core/domain"
	"syndiceasy/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrOldPasswordWrong      = errors.New("old password is incorrect")
	ErrCannotDeleteSelf      = errors.New("cannot delete your own account")
	ErrCannotChangeOwnRole   = errors.New("cannot change your own role")
	ErrWeakPassword          = errors.New("password does not meet minimum length")
)

// UserService handles user management business logic
type UserService struct {
	userRepo         repositories.UserRepository
	buildingRepo     repositories.BuildingRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	buildingRepo repositories.BuildingRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		buildingRepo:     buildingRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// ListUsersInput represents list users input
type ListUsersInput struct {
	Page  int
	Limit int
	Role  string
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users      []*models.UserResponse `json:"users"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// CreateUserInput represents create user input (admin only)
type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Gender   string `json:"gender"`
}

// UpdateUserByAdminInput represents update user input (for admin)
type UpdateUserByAdminInput struct {
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Gender   *string `json:"gender"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ListUsers lists users with pagination, optionally filtered by role
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	// Set defaults
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	var (
		users []*models.User
		total int64
		err   error
	)

	if input.Role != "" {
		if !domain.Role(input.Role).Valid() {
			return nil, domain.ErrInvalidRole
		}
		users, err = s.userRepo.ListByRole(ctx, input.Role)
		total = int64(len(users))
	} else {
		offset := (input.Page - 1) * input.Limit
		users, total, err = s.userRepo.List(ctx, offset, input.Limit)
	}
	if err != nil {
		return nil, err
	}

	// Convert to response format and attach residence info
	userResponses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = user.ToResponse()

		if user.Role == string(domain.RoleResident) {
			apartment, err := s.buildingRepo.GetApartmentByResident(ctx, user.ID)
			if err == nil && apartment != nil {
				userResponses[i].Apartment = apartment.Number
				if apartment.Building != nil {
					userResponses[i].Building = apartment.Building.Name
				}
			}
		}
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListUsersOutput{
		Users:      userResponses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// CreateUser creates a new user (admin only)
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.UserResponse, error) {
	// 1. Validate role and password
	if !domain.Role(input.Role).Valid() {
		return nil, domain.ErrInvalidRole
	}
	if !password.Acceptable(input.Password) {
		return nil, ErrWeakPassword
	}

	// 2. Check uniqueness
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameAlreadyExists
	}
	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	// 3. Hash password and create
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
		Role:     input.Role,
		Gender:   input.Gender,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User created: %s (%s)", user.Username, user.Role)
	return user.ToResponse(), nil
}

// UpdateUserByAdmin updates a user's account (admin only)
func (s *UserService) UpdateUserByAdmin(ctx context.Context, adminID, userID uint, input *UpdateUserByAdminInput) (*models.UserResponse, error) {
	// 1. Load target user
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 2. Apply changes
	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}
	if input.Role != nil && *input.Role != user.Role {
		if adminID == userID {
			return nil, ErrCannotChangeOwnRole
		}
		if !domain.Role(*input.Role).Valid() {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}

	// 3. Save
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// 4. Deactivation kills every open session
	if input.IsActive != nil && !*input.IsActive {
		if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
			log.Printf("⚠️ Failed to revoke sessions of deactivated user %d: %v", userID, err)
		}
	}

	return user.ToResponse(), nil
}

// DeleteUser soft-deletes a user (admin only)
func (s *UserService) DeleteUser(ctx context.Context, adminID, userID uint) error {
	if adminID == userID {
		return ErrCannotDeleteSelf
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		log.Printf("⚠️ Failed to revoke sessions of deleted user %d: %v", userID, err)
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	log.Printf("🗑️ User %d deleted by admin %d", userID, adminID)
	return nil
}

// ChangePassword changes the caller's own password
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	// 1. Load user
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// 2. Verify old password
	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}
	if !password.Acceptable(input.NewPassword) {
		return ErrWeakPassword
	}

	// 3. Hash and save
	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// 4. Revoke all other sessions
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		log.Printf("⚠️ Failed to revoke sessions after password change for user %d: %v", userID, err)
	}

	log.Printf("🔑 Password changed for user %d", userID)
	return nil
}
