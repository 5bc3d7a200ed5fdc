package provenance

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/domain/account"
	"provenance/internal/domain/certificate"
	"provenance/internal/ports"
)

func (s *Service) CreateAccount(ctx context.Context, input CreateAccountInput) (AccountView, error) {
	if err := s.checkCall(ctx); err != nil {
		return AccountView{}, err
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		return AccountView{}, ErrEmailRequired
	}
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return AccountView{}, ErrDisplayNameRequired
	}

	attrs := []byte("{}")
	if strings.TrimSpace(input.Role) != "" {
		role, err := account.ParseRole(input.Role)
		if err != nil {
			return AccountView{}, ErrInvalidRole.WithCause(err)
		}
		if attrs, err = account.WithRole(attrs, role); err != nil {
			return AccountView{}, err
		}
	}

	now := s.now()
	var created ports.Account
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		acct, err := s.accounts.CreateAccount(txCtx, ports.Account{
			ID:          s.newID(),
			Email:       email,
			DisplayName: displayName,
			Attributes:  attrs,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			if errors.Is(err, ports.ErrEmailTaken) {
				return ErrEmailTaken
			}
			return err
		}
		created = acct
		return nil
	}); err != nil {
		return AccountView{}, err
	}

	profile, err := account.ParseAttributes(created.Attributes)
	if err != nil {
		return AccountView{}, err
	}
	logging.Info(s.logContext(ctx, slog.String("account_id", created.ID)), "account created", slog.String("role", profile.Role.String()))
	return viewAccount(created, profile), nil
}

func (s *Service) GetAccount(ctx context.Context, accountID string) (AccountView, error) {
	if err := s.checkCall(ctx); err != nil {
		return AccountView{}, err
	}

	resolved, err := s.loadActor(ctx, strings.TrimSpace(accountID))
	if err != nil {
		return AccountView{}, err
	}
	if !resolved.Found {
		return AccountView{}, ErrUnknownAccount
	}
	return viewAccount(resolved.Account, resolved.Profile), nil
}

// SetRole stores role in the account attributes. Only the account itself may do this.
func (s *Service) SetRole(ctx context.Context, actorID string, accountID string, rawRole string) (AccountView, error) {
	if err := s.checkCall(ctx); err != nil {
		return AccountView{}, err
	}

	actorID = strings.TrimSpace(actorID)
	accountID = strings.TrimSpace(accountID)
	if actorID == "" {
		return AccountView{}, certificate.ErrNotSignedIn
	}
	if actorID != accountID {
		return AccountView{}, ErrRoleOwnerOnly
	}
	role, err := account.ParseRole(rawRole)
	if err != nil {
		return AccountView{}, ErrInvalidRole.WithCause(err)
	}

	var updated AccountView
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		resolved, err := s.loadActor(txCtx, actorID)
		if err != nil {
			return err
		}
		if !resolved.Found {
			return certificate.ErrAccountNotFound
		}

		attrs, err := account.WithRole(resolved.Account.Attributes, role)
		if err != nil {
			return err
		}
		now := s.now()
		if err := s.accounts.UpdateAttributes(txCtx, actorID, attrs, now); err != nil {
			return err
		}

		resolved.Account.Attributes = attrs
		resolved.Account.UpdatedAt = now
		resolved.Profile.Role = role
		updated = viewAccount(resolved.Account, resolved.Profile)
		return nil
	}); err != nil {
		return AccountView{}, err
	}

	logging.Info(s.logContext(ctx, slog.String("account_id", actorID)), "account role set", slog.String("role", role.String()))
	return updated, nil
}

// requireActor resolves a caller that must be signed in and exist.
func (s *Service) requireActor(ctx context.Context, actorID string) (actor, error) {
	if actorID == "" {
		return actor{}, certificate.ErrNotSignedIn
	}
	resolved, err := s.loadActor(ctx, actorID)
	if err != nil {
		return actor{}, err
	}
	if !resolved.Found {
		return actor{}, certificate.ErrAccountNotFound
	}
	return resolved, nil
}
