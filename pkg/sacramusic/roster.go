package sacramusic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/himanishpuri/SacraMusic/pkg/utils"
)

// defaultInstrument is assigned to musicians saved without any instrument.
const defaultInstrument = "Voz"

// ---- musicians ----

// ListMusicians returns the ministry's roster, optionally only those who
// play instrument.
func (s *sacraService) ListMusicians(ctx context.Context, ministryID, instrument string) ([]models.Musician, error) {
	if ministryID == "" {
		return nil, ErrForbidden
	}
	musicians, err := s.storage.ListMusicians(ctx, ministryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list musicians: %w", err)
	}
	if instrument == "" {
		return musicians, nil
	}

	filtered := musicians[:0]
	for _, m := range musicians {
		if contains(m.Instruments, instrument) {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

func (s *sacraService) SaveMusician(ctx context.Context, ministryID string, musician *models.Musician) (*models.Musician, error) {
	if ministryID == "" {
		return nil, ErrForbidden
	}
	if musician == nil || strings.TrimSpace(musician.Name) == "" {
		return nil, fmt.Errorf("%w: musician name is required", ErrInvalidRecord)
	}

	owner := func(m *models.Musician) string { return m.MinistryID }
	if err := claim(ctx, ministryID, musician.ID, s.storage.GetMusician, owner); err != nil {
		return nil, err
	}
	if musician.ID == "" {
		musician.ID = utils.GenerateUUID()
	}
	musician.MinistryID = ministryID
	musician.Name = strings.TrimSpace(musician.Name)
	if len(musician.Instruments) == 0 {
		musician.Instruments = []string{defaultInstrument}
	}

	if err := s.storage.PutMusician(ctx, musician); err != nil {
		return nil, fmt.Errorf("failed to save musician: %w", err)
	}
	s.log.Infof("Saved musician %s (%s)", musician.ID, musician.Name)
	return musician, nil
}

func (s *sacraService) DeleteMusician(ctx context.Context, ministryID, id string) error {
	m, err := s.storage.GetMusician(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get musician: %w", err)
	}
	if err := checkTenant(ministryID, m.MinistryID); err != nil {
		return err
	}
	if err := s.storage.DeleteMusician(ctx, id); err != nil {
		return fmt.Errorf("failed to delete musician: %w", err)
	}
	s.log.Infof("Deleted musician %s", id)
	return nil
}

// Instruments lists every instrument played in the ministry, deduplicated
// and sorted.
func (s *sacraService) Instruments(ctx context.Context, ministryID string) ([]string, error) {
	musicians, err := s.ListMusicians(ctx, ministryID, "")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	instruments := []string{}
	for _, m := range musicians {
		for _, inst := range m.Instruments {
			if !seen[inst] {
				seen[inst] = true
				instruments = append(instruments, inst)
			}
		}
	}
	sort.Strings(instruments)
	return instruments, nil
}

// ---- schedules ----

// ListSchedules returns the ministry's schedule, earliest first. A non-empty
// musicianID keeps only entries that musician is assigned to.
func (s *sacraService) ListSchedules(ctx context.Context, ministryID, musicianID string) ([]models.ScheduleEntry, error) {
	if ministryID == "" {
		return nil, ErrForbidden
	}
	entries, err := s.storage.ListSchedules(ctx, ministryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Time < entries[j].Time
	})

	if musicianID == "" {
		return entries, nil
	}
	filtered := entries[:0]
	for _, e := range entries {
		if e.HasMusician(musicianID) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (s *sacraService) GetSchedule(ctx context.Context, ministryID, id string) (*models.ScheduleEntry, error) {
	entry, err := s.storage.GetSchedule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	if err := checkTenant(ministryID, entry.MinistryID); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *sacraService) SaveSchedule(ctx context.Context, ministryID string, entry *models.ScheduleEntry) (*models.ScheduleEntry, error) {
	if ministryID == "" {
		return nil, ErrForbidden
	}
	if entry == nil || strings.TrimSpace(entry.Date) == "" {
		return nil, fmt.Errorf("%w: schedule date is required", ErrInvalidRecord)
	}
	if !entry.LiturgicalColor.Valid() {
		return nil, fmt.Errorf("%w: unknown liturgical color %q", ErrInvalidRecord, entry.LiturgicalColor)
	}

	owner := func(e *models.ScheduleEntry) string { return e.MinistryID }
	if err := claim(ctx, ministryID, entry.ID, s.storage.GetSchedule, owner); err != nil {
		return nil, err
	}
	if entry.SetlistID != "" {
		if _, err := s.GetSetlist(ctx, ministryID, entry.SetlistID); err != nil {
			return nil, err
		}
	}
	if entry.ID == "" {
		entry.ID = utils.GenerateUUID()
	}
	entry.MinistryID = ministryID

	if err := s.storage.PutSchedule(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}
	s.log.Infof("Saved schedule %s on %s", entry.ID, entry.Date)
	return entry, nil
}

func (s *sacraService) DeleteSchedule(ctx context.Context, ministryID, id string) error {
	if _, err := s.GetSchedule(ctx, ministryID, id); err != nil {
		return err
	}
	if err := s.storage.DeleteSchedule(ctx, id); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	s.log.Infof("Deleted schedule %s", id)
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
