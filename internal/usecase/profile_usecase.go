package usecase

import (
	"sync"
	"time"

	"github.com/amnatp/taiyim/internal/domain/entity"
	domainRepo "github.com/amnatp/taiyim/internal/domain/repository"
	"github.com/amnatp/taiyim/internal/repository"
	"github.com/amnatp/taiyim/internal/service"

	"github.com/sirupsen/logrus"
)

type ProfileUsecase interface {
	// Current returns the in-session profile, loading the persisted one (or
	// the first-run default) on first access.
	Current() entity.Profile
	// Save normalizes, derives targets and eGFR, and persists the profile
	// wholesale, returning the stored form.
	Save(p entity.Profile) entity.Profile
	// ResetSession drops the in-memory profile back to the first-run
	// default, after a full store reset.
	ResetSession()
}

type profileUsecase struct {
	repo domainRepo.KeyValueRepository
	log  *logrus.Logger
	now  func() time.Time

	mu      sync.Mutex
	current *entity.Profile
}

func NewProfileUsecase(repo domainRepo.KeyValueRepository, log *logrus.Logger) ProfileUsecase {
	return &profileUsecase{repo: repo, log: log, now: time.Now}
}

func (u *profileUsecase) Current() entity.Profile {
	u.mu.Lock()
	defer u.mu.Unlock()
	return *u.loadLocked()
}

func (u *profileUsecase) loadLocked() *entity.Profile {
	if u.current != nil {
		return u.current
	}
	p := entity.DefaultProfile()
	u.repo.LoadJSON(repository.KeyProfile, &p)
	p.CKDStage = entity.NormalizeStage(p.CKDStage)
	u.current = &p
	return u.current
}

func (u *profileUsecase) Save(p entity.Profile) entity.Profile {
	u.mu.Lock()
	defer u.mu.Unlock()

	p.CKDStage = entity.NormalizeStage(p.CKDStage)
	// A birth date wins over any manually entered age.
	if derived := service.AgeFromDOB(p.DOB, u.now()); derived != nil {
		p.Age = derived
	}
	targets := service.ComputeTargets(p.Age, p.WeightKg, p.CKDStage)
	p.Targets = &targets
	p.EGFR = service.EstimateEGFR(p.Age, p.HeightCm, p.SerumCreatinine, p.Sex)

	u.current = &p
	u.repo.SaveJSON(repository.KeyProfile, p)
	u.log.Infof("Profile saved (stage %s)", p.CKDStage)
	return p
}

func (u *profileUsecase) ResetSession() {
	u.mu.Lock()
	defer u.mu.Unlock()
	p := entity.DefaultProfile()
	u.current = &p
}
