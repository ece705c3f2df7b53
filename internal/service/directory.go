package service

import (
	"errors"
	"fmt"

	"campusdir/internal/models"
	"campusdir/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("action not permitted")
)

// HODGroup pairs a HOD with the students of its department.
type HODGroup struct {
	HOD      models.User   `json:"hod"`
	Students []models.User `json:"students"`
}

// Dashboard is the role-dependent view returned to an authenticated user:
// Admins get every HOD with that department's students, HODs get their own
// department's students, everyone else only their own record.
type Dashboard struct {
	User     *models.User  `json:"user"`
	Students []models.User `json:"students,omitempty"`
	HODs     []HODGroup    `json:"hods,omitempty"`
}

type DirectoryService interface {
	GetProfile(userID string) (*models.User, error)
	GetDashboard(userID string) (*Dashboard, error)
	DeleteUser(actorID, targetID string) error
	HODExists(department models.Department) (bool, error)
}

type directoryService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewDirectoryService(users repository.UserRepository, logger *zap.Logger) DirectoryService {
	return &directoryService{users: users, logger: logger}
}

func (s *directoryService) GetProfile(userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

func (s *directoryService) GetDashboard(userID string) (*Dashboard, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{User: user}

	switch user.Role {
	case models.RoleHOD:
		students, err := s.users.GetStudentsByDepartment(user.Department)
		if err != nil {
			s.logger.Error("Failed to list department students", zap.Error(err))
			return nil, fmt.Errorf("failed to list students: %w", err)
		}
		dashboard.Students = students
	case models.RoleAdmin:
		hods, err := s.users.GetUsersByRole(models.RoleHOD)
		if err != nil {
			s.logger.Error("Failed to list HODs", zap.Error(err))
			return nil, fmt.Errorf("failed to list HODs: %w", err)
		}
		// One query per HOD; fine at this scale.
		groups := make([]HODGroup, 0, len(hods))
		for _, hod := range hods {
			students, err := s.users.GetStudentsByDepartment(hod.Department)
			if err != nil {
				s.logger.Error("Failed to list department students", zap.Error(err))
				return nil, fmt.Errorf("failed to list students: %w", err)
			}
			groups = append(groups, HODGroup{HOD: hod, Students: students})
		}
		dashboard.HODs = groups
	}

	return dashboard, nil
}

// DeleteUser removes the target permanently. Tokens already issued to the
// target stay valid until their natural expiry.
func (s *directoryService) DeleteUser(actorID, targetID string) error {
	actor, err := s.GetProfile(actorID)
	if err != nil {
		return err
	}
	target, err := s.GetProfile(targetID)
	if err != nil {
		return err
	}

	if !IsAllowed(SubjectOf(actor), models.ActionDelete, SubjectOf(target)) {
		return ErrForbidden
	}

	if err := s.users.DeleteUser(targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("Failed to delete user", zap.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User deleted",
		zap.String("actor", actorID),
		zap.String("target", targetID),
		zap.String("target_role", string(target.Role)))
	return nil
}

func (s *directoryService) HODExists(department models.Department) (bool, error) {
	exists, err := s.users.HODExists(department)
	if err != nil {
		s.logger.Error("Failed to check HOD existence", zap.Error(err))
		return false, fmt.Errorf("failed to check HOD existence: %w", err)
	}
	return exists, nil
}
