package services

import (
	"context"
	"sync"
	"time"

	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/repositories"
)

// Фейки хранилищ для сервисных тестов. Семантика повторяет SQL-слой:
// уникальные индексы возвращают те же sentinel-ошибки, что и Postgres-маппинг.

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[int]*models.Category
}

func newFakeCategoryRepo(categories ...*models.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: make(map[int]*models.Category)}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(ctx context.Context, exec repositories.SQLExecutor, c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = len(r.categories) + 1
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id int) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, repositories.ErrCategoryNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Category
	for _, c := range r.categories {
		if c.TournamentID == tournamentID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeParticipantRepo struct {
	mu           sync.Mutex
	participants []*models.Participant
	next         int
}

func newFakeParticipantRepo(participants ...*models.Participant) *fakeParticipantRepo {
	r := &fakeParticipantRepo{}
	for _, p := range participants {
		r.participants = append(r.participants, p)
		if p.ID > r.next {
			r.next = p.ID
		}
	}
	return r
}

func (r *fakeParticipantRepo) Create(ctx context.Context, p *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.participants {
		if existing.CategoryID == p.CategoryID && existing.UserID == p.UserID {
			return repositories.ErrParticipantConflict
		}
	}
	r.next++
	p.ID = r.next
	p.CreatedAt = time.Now()
	r.participants = append(r.participants, p)
	return nil
}

func (r *fakeParticipantRepo) FindByID(ctx context.Context, id int) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repositories.ErrParticipantNotFound
}

func (r *fakeParticipantRepo) FindByCategoryAndUser(ctx context.Context, categoryID, userID int) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.CategoryID == categoryID && p.UserID == userID {
			return p, nil
		}
	}
	return nil, repositories.ErrParticipantNotFound
}

func (r *fakeParticipantRepo) ListByCategory(ctx context.Context, categoryID int, includeUsers bool) ([]*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Participant
	for _, p := range r.participants {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) ListByUser(ctx context.Context, userID int) ([]*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Participant
	for _, p := range r.participants {
		if p.UserID == userID || (p.PartnerID != nil && *p.PartnerID == userID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.participants {
		if p.ID == id {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			return nil
		}
	}
	return repositories.ErrParticipantNotFound
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches []*models.Match
	next    int
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{}
	for _, m := range matches {
		r.matches = append(r.matches, m)
		if m.ID > r.next {
			r.next = m.ID
		}
	}
	return r
}

func pairEqual(a, b *models.Match) bool {
	if a.Participant1ID == b.Participant1ID && a.Participant2ID == b.Participant2ID {
		return true
	}
	return a.Participant1ID == b.Participant2ID && a.Participant2ID == b.Participant1ID
}

func (r *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.matches {
		if existing.CategoryID == match.CategoryID && existing.Round == match.Round && pairEqual(existing, match) {
			return repositories.ErrMatchPairConflict
		}
	}
	r.next++
	match.ID = r.next
	match.CreatedAt = time.Now()
	r.matches = append(r.matches, match)
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) ListByCategory(ctx context.Context, categoryID int, round *models.MatchRound, status *models.MatchStatus) ([]*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Match
	for _, m := range r.matches {
		if m.CategoryID != categoryID {
			continue
		}
		if round != nil && m.Round != *round {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateScore(ctx context.Context, id int, sets [3]models.SetScore, status models.MatchStatus, winnerID *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.ID == id {
			m.Set1, m.Set2, m.Set3 = sets[0], sets[1], sets[2]
			m.Status = status
			m.WinnerID = winnerID
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.matches {
		if m.ID == id {
			r.matches = append(r.matches[:i], r.matches[i+1:]...)
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

type fakeNoticeRepo struct {
	mu      sync.Mutex
	notices []*models.Notice
	next    int
}

func (r *fakeNoticeRepo) Create(ctx context.Context, n *models.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.notices {
		existing.IsActive = false
	}
	r.next++
	n.ID = r.next
	n.IsActive = true
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	r.notices = append(r.notices, n)
	return nil
}

func (r *fakeNoticeRepo) List(ctx context.Context) ([]*models.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Notice, 0, len(r.notices))
	for i := len(r.notices) - 1; i >= 0; i-- {
		out = append(out, r.notices[i])
	}
	return out, nil
}

func (r *fakeNoticeRepo) GetActive(ctx context.Context) (*models.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.notices) - 1; i >= 0; i-- {
		if r.notices[i].IsActive {
			return r.notices[i], nil
		}
	}
	return nil, repositories.ErrNoticeNotFound
}

func (r *fakeNoticeRepo) SetActive(ctx context.Context, id int, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var target *models.Notice
	for _, n := range r.notices {
		if n.ID == id {
			target = n
			break
		}
	}
	if target == nil {
		return repositories.ErrNoticeNotFound
	}
	if active {
		for _, n := range r.notices {
			n.IsActive = false
		}
	}
	target.IsActive = active
	target.UpdatedAt = time.Now()
	return nil
}

func (r *fakeNoticeRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notices {
		if n.ID == id {
			r.notices = append(r.notices[:i], r.notices[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNoticeNotFound
}
