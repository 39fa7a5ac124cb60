package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/clovermuaythai/booking-service/internal/models"
)

const (
	timetableFile = "timetable.json"
	bookingsFile  = "bookings.json"

	saveAttempts = 3
)

// FileStore keeps both collections as JSON files on disk. It is the
// development backend: a single process owns the files, so a per-slot mutex
// held across check-and-commit is enough to keep bookings serialized.
// ScheduleRepository and ReservationStore expose it through the storage ports.
type FileStore struct {
	dir string

	mu sync.Mutex // guards file access

	slotMu sync.Mutex
	slots  map[string]*sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &FileStore{dir: dir, slots: make(map[string]*sync.Mutex)}, nil
}

func (s *FileStore) ScheduleRepository() ScheduleRepository {
	return &fileScheduleRepository{fs: s}
}

func (s *FileStore) ReservationStore() ReservationStore {
	return &fileReservationStore{fs: s}
}

// --- ScheduleRepository ---

type fileScheduleRepository struct {
	fs *FileStore
}

func (r *fileScheduleRepository) List(ctx context.Context) ([]models.ClassTemplate, error) {
	r.fs.mu.Lock()
	defer r.fs.mu.Unlock()
	return r.fs.loadTemplates()
}

func (r *fileScheduleRepository) FindByID(ctx context.Context, id string) (*models.ClassTemplate, error) {
	r.fs.mu.Lock()
	defer r.fs.mu.Unlock()
	return r.fs.findTemplate(id)
}

func (r *fileScheduleRepository) Add(ctx context.Context, tpl *models.ClassTemplate) error {
	r.fs.mu.Lock()
	defer r.fs.mu.Unlock()

	templates, err := r.fs.loadTemplates()
	if err != nil {
		return err
	}
	for _, existing := range templates {
		if existing.ID == tpl.ID {
			return ErrConflict
		}
	}
	return r.fs.saveTemplates(append(templates, *tpl))
}

func (r *fileScheduleRepository) Remove(ctx context.Context, id string) error {
	r.fs.mu.Lock()
	defer r.fs.mu.Unlock()

	templates, err := r.fs.loadTemplates()
	if err != nil {
		return err
	}
	kept := templates[:0]
	for _, tpl := range templates {
		if tpl.ID != id {
			kept = append(kept, tpl)
		}
	}
	if len(kept) == len(templates) {
		return ErrNotFound
	}
	return r.fs.saveTemplates(kept)
}

// --- ReservationStore ---

type fileReservationStore struct {
	fs *FileStore
}

func (s *fileReservationStore) ListAll(ctx context.Context) ([]models.Reservation, error) {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	return s.fs.loadReservations()
}

func (s *fileReservationStore) ListForSlot(ctx context.Context, templateID string, date time.Time) ([]models.Reservation, error) {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()

	all, err := s.fs.loadReservations()
	if err != nil {
		return nil, err
	}
	var out []models.Reservation
	for _, r := range all {
		if r.TemplateID == templateID && models.SameDay(r.OccurrenceDate, date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fileReservationStore) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()

	all, err := s.fs.loadReservations()
	if err != nil {
		return nil, err
	}
	var out []models.Reservation
	for _, r := range all {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fileReservationStore) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()

	all, err := s.fs.loadReservations()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *fileReservationStore) Append(ctx context.Context, res *models.Reservation) error {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()

	all, err := s.fs.loadReservations()
	if err != nil {
		return err
	}
	for _, existing := range all {
		if existing.UserID == res.UserID &&
			existing.TemplateID == res.TemplateID &&
			models.SameDay(existing.OccurrenceDate, res.OccurrenceDate) {
			return ErrDuplicate
		}
	}
	return s.fs.saveReservations(append(all, *res))
}

func (s *fileReservationStore) Delete(ctx context.Context, id, userID string) (*models.Reservation, error) {
	return s.deleteWhere(func(r models.Reservation) bool {
		return r.ID == id && r.UserID == userID
	})
}

func (s *fileReservationStore) DeleteByID(ctx context.Context, id string) (*models.Reservation, error) {
	return s.deleteWhere(func(r models.Reservation) bool {
		return r.ID == id
	})
}

func (s *fileReservationStore) deleteWhere(match func(models.Reservation) bool) (*models.Reservation, error) {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()

	all, err := s.fs.loadReservations()
	if err != nil {
		return nil, err
	}
	for i, r := range all {
		if match(r) {
			removed := r
			if err := s.fs.saveReservations(append(all[:i], all[i+1:]...)); err != nil {
				return nil, err
			}
			return &removed, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fileReservationStore) DeleteByTemplate(ctx context.Context, templateID string) (int64, error) {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()

	all, err := s.fs.loadReservations()
	if err != nil {
		return 0, err
	}
	kept := all[:0]
	var removed int64
	for _, r := range all {
		if r.TemplateID == templateID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := s.fs.saveReservations(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// LockSlot holds a mutex dedicated to (templateID, date) across fn, so the
// re-read/check/append sequence for one class occurrence never interleaves.
func (s *fileReservationStore) LockSlot(ctx context.Context, templateID string, date time.Time, fn func(ctx context.Context) error) error {
	s.fs.mu.Lock()
	_, err := s.fs.findTemplate(templateID)
	s.fs.mu.Unlock()
	if err != nil {
		return err
	}

	mu := s.fs.slotLock(templateID + "|" + models.DateOnly(date).Format("2006-01-02"))
	mu.Lock()
	defer mu.Unlock()
	return fn(ctx)
}

func (s *FileStore) slotLock(key string) *sync.Mutex {
	s.slotMu.Lock()
	defer s.slotMu.Unlock()
	mu, ok := s.slots[key]
	if !ok {
		mu = &sync.Mutex{}
		s.slots[key] = mu
	}
	return mu
}

// --- persistence ---

func (s *FileStore) findTemplate(id string) (*models.ClassTemplate, error) {
	templates, err := s.loadTemplates()
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) loadTemplates() ([]models.ClassTemplate, error) {
	var templates []models.ClassTemplate
	if err := s.loadFile(timetableFile, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *FileStore) saveTemplates(templates []models.ClassTemplate) error {
	return s.saveFile(timetableFile, templates)
}

func (s *FileStore) loadReservations() ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.loadFile(bookingsFile, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (s *FileStore) saveReservations(reservations []models.Reservation) error {
	return s.saveFile(bookingsFile, reservations)
}

func (s *FileStore) loadFile(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// saveFile writes through a temp file and renames it into place, retrying
// transient failures a bounded number of times before surfacing them.
func (s *FileStore) saveFile(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		if lastErr = os.WriteFile(tmp, data, 0o644); lastErr != nil {
			continue
		}
		if lastErr = os.Rename(tmp, path); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}
