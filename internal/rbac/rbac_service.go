package rbac

import (
	"context"
	"sync"

	"go-leave/internal/domain"
	"go-leave/internal/identity"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

// Permission yang dimiliki role supervisor
var supervisorPermissions = [][2]string{
	{"leave", "approve"},
	{"leave", "read_all"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy() error
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	identityRepo identity.Repository
	enforcer     *casbin.Enforcer
	logger       *zap.Logger
	mu           sync.Mutex
}

func NewService(identityRepo identity.Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		identityRepo: identityRepo,
		enforcer:     enforcer,
		logger:       l,
	}
}

func (s *service) LoadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadPolicyUnlocked()
}

func (s *service) loadPolicyUnlocked() error {
	ctx := context.Background()

	s.enforcer.ClearPolicy()

	// Grouping policy: user -> role
	assignments, err := s.identityRepo.UserRoleAssignments(ctx)
	if err != nil {
		return err
	}
	s.logger.Debug("rbac load policy", zap.Int("user_role_assignments", len(assignments)))

	for _, a := range assignments {
		if _, err := s.enforcer.AddGroupingPolicy(a.UserID, a.RoleID); err != nil {
			return err
		}
	}

	// Permission policy: role supervisor mendapat hak kelola leave
	roles, err := s.identityRepo.FindRoles(ctx)
	if err != nil {
		return err
	}

	for _, role := range roles {
		if !role.IsSupervisor {
			continue
		}
		for _, perm := range supervisorPermissions {
			if _, err := s.enforcer.AddPolicy(role.ID.String(), perm[0], perm[1]); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Reload agar perubahan role assignment langsung berlaku
	if err := s.loadPolicyUnlocked(); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.UserID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("user_id", req.UserID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("user_id", req.UserID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}
