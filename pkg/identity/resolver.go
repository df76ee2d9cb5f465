package identity

import (
	"context"
	"fmt"
	"time"

	"cme-be/internal/entity"
	"cme-be/internal/pkg/logger"
	"cme-be/internal/repository/contract"

	"github.com/google/uuid"
)

const logModule = "IDENTITY"

// MdbRequest describes the person to find or create. Forename and Surname
// are required, every other field is optional.
type MdbRequest struct {
	MdbNumber   string
	Forename    string
	Surname     string
	Memberships []entity.Membership
	Birthday    *time.Time
	Birthplace  string
	Title       string
	JobTitle    string
	CreatedBy   string
	Debug       map[string]interface{}
}

// Resolver maps person references to canonical persons. Calls for the same
// name are serialised through the Locker so that concurrent sessions never
// create a person twice.
type Resolver struct {
	repo   contract.MdbRepository
	locker Locker
	logger logger.ILogger
}

func NewResolver(repo contract.MdbRepository, locker Locker, logger logger.ILogger) *Resolver {
	if locker == nil {
		locker = NewKeyedMutex()
	}
	return &Resolver{
		repo:   repo,
		locker: locker,
		logger: logger,
	}
}

// FindOrCreate returns the stored person for the request, creating it when
// neither the external id nor the exact name is known yet.
func (r *Resolver) FindOrCreate(ctx context.Context, req MdbRequest) (*entity.Mdb, error) {
	unlock, err := r.locker.Lock(ctx, lockKey(req.Forename, req.Surname))
	if err != nil {
		return nil, fmt.Errorf("lock %s %s: %w", req.Forename, req.Surname, err)
	}
	defer unlock()

	if req.MdbNumber != "" {
		found, err := r.repo.FindByMdbNumber(ctx, req.MdbNumber)
		if err != nil {
			return nil, fmt.Errorf("find mdb by number %s: %w", req.MdbNumber, err)
		}
		if found != nil {
			return found, nil
		}
	}

	matches, err := r.repo.FindAllByName(ctx, req.Forename, req.Surname)
	if err != nil {
		return nil, fmt.Errorf("find mdb by name %s %s: %w", req.Forename, req.Surname, err)
	}

	if len(matches) > 0 {
		found := pickMostRecent(matches)
		if len(matches) > 1 {
			r.logger.Warn(logModule, "Ambiguous person name, using most recently modified", map[string]interface{}{
				"forename": req.Forename,
				"surname":  req.Surname,
				"matches":  len(matches),
				"chosen":   found.Id.String(),
			})
		}
		if enrich(found, req) {
			if err := r.repo.Update(ctx, found); err != nil {
				return nil, fmt.Errorf("update mdb %s: %w", found.Id, err)
			}
		}
		return found, nil
	}

	mdb := &entity.Mdb{
		Id:          uuid.New(),
		MdbNumber:   req.MdbNumber,
		Forename:    req.Forename,
		Surname:     req.Surname,
		Memberships: req.Memberships,
		Birthday:    req.Birthday,
		Birthplace:  req.Birthplace,
		Title:       req.Title,
		JobTitle:    req.JobTitle,
		CreatedBy:   req.CreatedBy,
		Debug:       req.Debug,
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.repo.Create(ctx, mdb); err != nil {
		return nil, fmt.Errorf("create mdb %s %s: %w", req.Forename, req.Surname, err)
	}

	r.logger.Debug(logModule, "Created person", map[string]interface{}{
		"id":         mdb.Id.String(),
		"forename":   mdb.Forename,
		"surname":    mdb.Surname,
		"mdb_number": mdb.MdbNumber,
	})
	return mdb, nil
}

// pickMostRecent expects matches ordered by the repository and re-checks the
// order so that any backend yields the same choice.
func pickMostRecent(matches []*entity.Mdb) *entity.Mdb {
	best := matches[0]
	for _, m := range matches[1:] {
		a, b := m.LastModified(), best.LastModified()
		if a.After(b) || (a.Equal(b) && m.CreatedAt.Before(best.CreatedAt)) {
			best = m
		}
	}
	return best
}

// enrich fills fields the stored record lacks. It never overwrites.
func enrich(found *entity.Mdb, req MdbRequest) bool {
	changed := false
	if found.MdbNumber == "" && req.MdbNumber != "" {
		found.MdbNumber = req.MdbNumber
		changed = true
	}
	if len(found.Memberships) == 0 && len(req.Memberships) > 0 {
		found.Memberships = req.Memberships
		changed = true
	}
	if found.Birthday == nil && req.Birthday != nil {
		found.Birthday = req.Birthday
		changed = true
	}
	if found.Birthplace == "" && req.Birthplace != "" {
		found.Birthplace = req.Birthplace
		changed = true
	}
	if found.Title == "" && req.Title != "" {
		found.Title = req.Title
		changed = true
	}
	if found.JobTitle == "" && req.JobTitle != "" {
		found.JobTitle = req.JobTitle
		changed = true
	}
	return changed
}

func lockKey(forename, surname string) string {
	return "mdb:" + forename + "\x00" + surname
}
