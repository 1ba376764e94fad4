package app

import (
	"context"
	"slices"
	"strings"

	"github.com/stride-tracker/stride/internal/domain"
)

// CreateChecklist creates checklist and records the matching activity entry.
func (s *Service) CreateChecklist(ctx context.Context, ownerID, name, description string) (domain.Checklist, error) {
	checklist, err := domain.NewChecklist(s.idGen(), ownerID, name, description, s.clock())
	if err != nil {
		return domain.Checklist{}, err
	}
	event, err := s.activity(checklist.OwnerID, domain.ActivityChecklistCreated, "Created checklist: "+checklist.Name, checklist.ID, EntityChecklist)
	if err != nil {
		return domain.Checklist{}, err
	}
	if err := s.repo.CreateChecklist(ctx, checklist, event); err != nil {
		return domain.Checklist{}, err
	}
	return checklist, nil
}

// UpdateChecklist renames checklist.
func (s *Service) UpdateChecklist(ctx context.Context, checklistID, name, description string) (domain.Checklist, error) {
	checklist, err := s.repo.GetChecklist(ctx, checklistID)
	if err != nil {
		return domain.Checklist{}, err
	}
	if err := checklist.Rename(name, description, s.clock()); err != nil {
		return domain.Checklist{}, err
	}
	if err := s.repo.UpdateChecklist(ctx, checklist); err != nil {
		return domain.Checklist{}, err
	}
	return checklist, nil
}

// GetChecklist gets checklist.
func (s *Service) GetChecklist(ctx context.Context, checklistID string) (domain.Checklist, error) {
	return s.repo.GetChecklist(ctx, checklistID)
}

// ListChecklists lists checklists.
func (s *Service) ListChecklists(ctx context.Context, ownerID string) ([]domain.Checklist, error) {
	checklists, err := s.repo.ListChecklists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(checklists, func(a, b domain.Checklist) int {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
		return strings.Compare(a.ID, b.ID)
	})
	return checklists, nil
}

// DeleteChecklist deletes checklist. Storage cascades the item rows in
// the same transaction.
func (s *Service) DeleteChecklist(ctx context.Context, checklistID string) error {
	return s.repo.DeleteChecklist(ctx, checklistID)
}

// AddChecklistItem appends an item at the end of the checklist order.
func (s *Service) AddChecklistItem(ctx context.Context, checklistID, text string, priority domain.Priority) (domain.ChecklistItem, error) {
	if _, err := s.repo.GetChecklist(ctx, checklistID); err != nil {
		return domain.ChecklistItem{}, err
	}
	items, err := s.repo.ListChecklistItems(ctx, checklistID)
	if err != nil {
		return domain.ChecklistItem{}, err
	}
	order := 0
	for _, item := range items {
		if item.Order >= order {
			order = item.Order + 1
		}
	}
	item, err := domain.NewChecklistItem(domain.ChecklistItemInput{
		ID:          s.idGen(),
		ChecklistID: checklistID,
		Text:        text,
		Priority:    priority,
		Order:       order,
	}, s.clock())
	if err != nil {
		return domain.ChecklistItem{}, err
	}
	if err := s.repo.CreateChecklistItem(ctx, item); err != nil {
		return domain.ChecklistItem{}, err
	}
	return item, nil
}

// UpdateChecklistItem updates item text and priority.
func (s *Service) UpdateChecklistItem(ctx context.Context, itemID, text string, priority domain.Priority) (domain.ChecklistItem, error) {
	item, err := s.repo.GetChecklistItem(ctx, itemID)
	if err != nil {
		return domain.ChecklistItem{}, err
	}
	if err := item.UpdateDetails(text, priority, s.clock()); err != nil {
		return domain.ChecklistItem{}, err
	}
	if err := s.repo.UpdateChecklistItem(ctx, item); err != nil {
		return domain.ChecklistItem{}, err
	}
	return item, nil
}

// ToggleChecklistItem flips an item's completion flag.
func (s *Service) ToggleChecklistItem(ctx context.Context, itemID string) (domain.ChecklistItem, error) {
	item, err := s.repo.GetChecklistItem(ctx, itemID)
	if err != nil {
		return domain.ChecklistItem{}, err
	}
	item.ToggleCompletion(s.clock())
	if err := s.repo.UpdateChecklistItem(ctx, item); err != nil {
		return domain.ChecklistItem{}, err
	}
	return item, nil
}

// DeleteChecklistItem deletes checklist item.
func (s *Service) DeleteChecklistItem(ctx context.Context, itemID string) error {
	return s.repo.DeleteChecklistItem(ctx, itemID)
}

// ListChecklistItems lists a checklist's items in display order.
func (s *Service) ListChecklistItems(ctx context.Context, checklistID string) ([]domain.ChecklistItem, error) {
	items, err := s.repo.ListChecklistItems(ctx, checklistID)
	if err != nil {
		return nil, err
	}
	domain.SortChecklistItems(items)
	return items, nil
}

// ReorderChecklistItems applies a client-specified ordering. Items named
// in orderedIDs receive positions 0..n-1 in the given sequence; items not
// named keep their relative order after them. An empty list is a no-op,
// and an id outside the checklist rejects the whole request. Applying the
// resulting order twice yields the same state.
func (s *Service) ReorderChecklistItems(ctx context.Context, checklistID string, orderedIDs []string) ([]domain.ChecklistItem, error) {
	if len(orderedIDs) == 0 {
		return s.ListChecklistItems(ctx, checklistID)
	}
	if _, err := s.repo.GetChecklist(ctx, checklistID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListChecklistItems(ctx, checklistID)
	if err != nil {
		return nil, err
	}
	domain.SortChecklistItems(items)

	byID := make(map[string]int, len(items))
	for idx, item := range items {
		byID[item.ID] = idx
	}

	named := make([]domain.ChecklistItem, 0, len(orderedIDs))
	seen := make(map[string]struct{}, len(orderedIDs))
	for _, raw := range orderedIDs {
		id := strings.TrimSpace(raw)
		idx, ok := byID[id]
		if !ok {
			return nil, domain.ErrInvalidID
		}
		if _, dup := seen[id]; dup {
			return nil, domain.ErrInvalidID
		}
		seen[id] = struct{}{}
		named = append(named, items[idx])
	}

	reordered := make([]domain.ChecklistItem, 0, len(items))
	reordered = append(reordered, named...)
	for _, item := range items {
		if _, ok := seen[item.ID]; !ok {
			reordered = append(reordered, item)
		}
	}

	now := s.clock()
	changed := make([]domain.ChecklistItem, 0, len(reordered))
	for idx := range reordered {
		if reordered[idx].Order == idx {
			continue
		}
		if err := reordered[idx].SetOrder(idx, now); err != nil {
			return nil, err
		}
		changed = append(changed, reordered[idx])
	}
	if len(changed) > 0 {
		if err := s.repo.UpdateChecklistItemOrders(ctx, changed); err != nil {
			return nil, err
		}
	}
	return reordered, nil
}
