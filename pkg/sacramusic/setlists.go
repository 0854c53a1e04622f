package sacramusic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/himanishpuri/SacraMusic/pkg/models"
	"github.com/himanishpuri/SacraMusic/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// resolveConcurrency bounds the parallel song loads of ResolveSetlist.
const resolveConcurrency = 8

func (s *sacraService) ListSetlists(ctx context.Context, ministryID string) ([]models.Setlist, error) {
	if ministryID == "" {
		return nil, ErrForbidden
	}
	setlists, err := s.storage.ListSetlists(ctx, ministryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list setlists: %w", err)
	}
	return setlists, nil
}

func (s *sacraService) GetSetlist(ctx context.Context, ministryID, id string) (*models.Setlist, error) {
	setlist, err := s.storage.GetSetlist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get setlist: %w", err)
	}
	if err := checkTenant(ministryID, setlist.MinistryID); err != nil {
		return nil, err
	}
	return setlist, nil
}

func (s *sacraService) SaveSetlist(ctx context.Context, ministryID string, setlist *models.Setlist) (*models.Setlist, error) {
	if ministryID == "" {
		return nil, ErrForbidden
	}
	if setlist == nil || strings.TrimSpace(setlist.Name) == "" {
		return nil, fmt.Errorf("%w: setlist name is required", ErrInvalidRecord)
	}
	switch setlist.Category {
	case "", models.CategoryMissa, models.CategoryAdoracao, models.CategoryApresentacao:
	default:
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidRecord, setlist.Category)
	}

	owner := func(sl *models.Setlist) string { return sl.MinistryID }
	if err := claim(ctx, ministryID, setlist.ID, s.storage.GetSetlist, owner); err != nil {
		return nil, err
	}
	if setlist.ID == "" {
		setlist.ID = utils.GenerateUUID()
	}
	setlist.MinistryID = ministryID
	setlist.Name = strings.TrimSpace(setlist.Name)
	if setlist.Items == nil {
		setlist.Items = make(map[models.MassMoment]string)
	}
	for m := range setlist.Items {
		if !knownMoment(m) {
			return nil, fmt.Errorf("%w: unknown mass moment %q", ErrInvalidRecord, m)
		}
	}
	for i := range setlist.CustomItems {
		if setlist.CustomItems[i].UUID == "" {
			setlist.CustomItems[i].UUID = utils.GenerateUUID()
		}
	}

	if err := s.storage.PutSetlist(ctx, setlist); err != nil {
		return nil, fmt.Errorf("failed to save setlist: %w", err)
	}
	s.log.Infof("Saved setlist %s (%s) for ministry %s", setlist.ID, setlist.Name, ministryID)
	return setlist, nil
}

// claim checks that an existing record with id, if any, belongs to the
// caller's ministry. New records (empty or unknown id) are always claimable.
func claim[T any](ctx context.Context, ministryID, id string, get func(context.Context, string) (*T, error), owner func(*T) string) error {
	if id == "" {
		return nil
	}
	existing, err := get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load record %s: %w", id, err)
	}
	return checkTenant(ministryID, owner(existing))
}

func (s *sacraService) DeleteSetlist(ctx context.Context, ministryID, id string) error {
	if _, err := s.GetSetlist(ctx, ministryID, id); err != nil {
		return err
	}
	if err := s.storage.DeleteSetlist(ctx, id); err != nil {
		return fmt.Errorf("failed to delete setlist: %w", err)
	}
	s.log.Infof("Deleted setlist %s", id)
	return nil
}

// ResolveSetlist loads a setlist and every song it references. Songs are
// fetched concurrently; songs deleted from the library are skipped.
func (s *sacraService) ResolveSetlist(ctx context.Context, ministryID, id string) (*ResolvedSetlist, error) {
	setlist, err := s.GetSetlist(ctx, ministryID, id)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	songs := make(map[string]*models.Song)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for _, songID := range setlist.SongIDs() {
		songID := songID
		g.Go(func() error {
			song, err := s.storage.GetSong(gctx, songID)
			if errors.Is(err, ErrNotFound) {
				s.log.Debugf("Setlist %s references missing song %s", id, songID)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to load song %s: %w", songID, err)
			}
			mu.Lock()
			songs[songID] = song
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ResolvedSetlist{Setlist: setlist, Songs: songs}, nil
}

// AddCustomItem appends a song slot to a non-Mass setlist.
func (s *sacraService) AddCustomItem(ctx context.Context, ministryID, setlistID, songID string) (*models.Setlist, error) {
	setlist, err := s.GetSetlist(ctx, ministryID, setlistID)
	if err != nil {
		return nil, err
	}
	if setlist.Category.IsMass() {
		return nil, fmt.Errorf("%w: mass setlists are organized by moment", ErrInvalidRecord)
	}
	if _, err := s.GetSong(ctx, songID); err != nil {
		return nil, err
	}

	setlist.CustomItems = append(setlist.CustomItems, models.CustomSetlistItem{
		UUID:   utils.GenerateUUID(),
		SongID: songID,
	})
	if err := s.storage.PutSetlist(ctx, setlist); err != nil {
		return nil, fmt.Errorf("failed to save setlist: %w", err)
	}
	return setlist, nil
}

// RemoveCustomItem drops the slot with the given uuid.
func (s *sacraService) RemoveCustomItem(ctx context.Context, ministryID, setlistID, itemUUID string) (*models.Setlist, error) {
	setlist, err := s.GetSetlist(ctx, ministryID, setlistID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.CustomSetlistItem, 0, len(setlist.CustomItems))
	for _, item := range setlist.CustomItems {
		if item.UUID != itemUUID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(setlist.CustomItems) {
		return nil, fmt.Errorf("%w: setlist item %s", ErrNotFound, itemUUID)
	}
	setlist.CustomItems = kept

	if err := s.storage.PutSetlist(ctx, setlist); err != nil {
		return nil, fmt.Errorf("failed to save setlist: %w", err)
	}
	return setlist, nil
}
