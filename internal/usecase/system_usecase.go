package usecase

import (
	"context"

	domainRepo "github.com/amnatp/taiyim/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type SystemUsecase interface {
	// Reset empties both storage mediums and reinitializes the session
	// state. The clear is awaited to completion before anything restarts,
	// so a rebuilt session can never race a pending clear.
	Reset(ctx context.Context) error
}

type systemUsecase struct {
	repo     domainRepo.KeyValueRepository
	profiles ProfileUsecase
	intakes  IntakeUsecase
	catalog  CatalogUsecase
	log      *logrus.Logger
}

func NewSystemUsecase(repo domainRepo.KeyValueRepository, profiles ProfileUsecase, intakes IntakeUsecase, catalog CatalogUsecase, log *logrus.Logger) SystemUsecase {
	return &systemUsecase{repo: repo, profiles: profiles, intakes: intakes, catalog: catalog, log: log}
}

func (u *systemUsecase) Reset(ctx context.Context) error {
	if err := u.repo.ClearAll(ctx); err != nil {
		return err
	}
	u.profiles.ResetSession()
	u.intakes.ResetSession()
	// Local edits are gone from the store; the merged view falls back to
	// the plain server list.
	u.catalog.Reload(ctx)
	u.log.Info("All stored data cleared")
	return nil
}
