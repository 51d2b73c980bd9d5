package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jask/foodboard/internal/food"
	"github.com/jask/foodboard/internal/logging"
)

// ErrNotListed is returned when an operation names a food the list does not hold.
var ErrNotListed = errors.New("food not in list")

// Remote is the foods collection on the backend.
type Remote interface {
	List(ctx context.Context) ([]food.Food, error)
	Create(ctx context.Context, d food.Draft) (food.Food, error)
	Update(ctx context.Context, id int64, f food.Food) (food.Food, error)
	Remove(ctx context.Context, id int64) error
}

// Dashboard keeps a State in step with a Remote.
//
// The Request methods only talk to the remote and are safe to call from any
// goroutine. The Apply methods and the synchronous operations built from both
// mutate State and belong to the goroutine that owns the dashboard.
type Dashboard struct {
	remote Remote
	log    logging.Logger
	state  *State
}

func NewDashboard(remote Remote, log logging.Logger) *Dashboard {
	if log == nil {
		log = logging.Discard()
	}
	return &Dashboard{remote: remote, log: log, state: NewState()}
}

// State exposes the list and dialog state for rendering and dialog toggles.
func (d *Dashboard) State() *State { return d.state }

// RequestList fetches the full list.
func (d *Dashboard) RequestList(ctx context.Context) ([]food.Food, error) {
	list, err := d.remote.List(ctx)
	if err != nil {
		d.log.Error(ctx, "list foods failed", "err", err)
		return nil, fmt.Errorf("load foods: %w", err)
	}
	return list, nil
}

// RequestCreate stores draft as an available food.
func (d *Dashboard) RequestCreate(ctx context.Context, draft food.Draft) (food.Food, error) {
	draft.Available = true
	created, err := d.remote.Create(ctx, draft)
	if err != nil {
		d.log.Error(ctx, "create food failed", "name", draft.Name, "err", err)
		return food.Food{}, fmt.Errorf("create food: %w", err)
	}
	return created, nil
}

// RequestUpdate sends target with p applied on top and returns the server's copy.
func (d *Dashboard) RequestUpdate(ctx context.Context, target food.Food, p food.Patch) (food.Food, error) {
	merged := food.Merge(target, p)
	updated, err := d.remote.Update(ctx, target.ID, merged)
	if err != nil {
		d.log.Error(ctx, "update food failed", "id", target.ID, "err", err)
		return food.Food{}, fmt.Errorf("update food %d: %w", target.ID, err)
	}
	return updated, nil
}

// RequestRemove deletes id on the backend.
func (d *Dashboard) RequestRemove(ctx context.Context, id int64) error {
	if err := d.remote.Remove(ctx, id); err != nil {
		d.log.Error(ctx, "delete food failed", "id", id, "err", err)
		return fmt.Errorf("delete food %d: %w", id, err)
	}
	return nil
}

// RequestAvailability stores f with its availability set to available.
func (d *Dashboard) RequestAvailability(ctx context.Context, f food.Food, available bool) (food.Food, error) {
	return d.RequestUpdate(ctx, f, food.Patch{Available: &available})
}

// ApplyLoaded makes list the whole List State.
func (d *Dashboard) ApplyLoaded(list []food.Food) { d.state.Replace(list) }

// ApplyCreated appends f. The add dialog closes if it is still the opening
// identified by session.
func (d *Dashboard) ApplyCreated(session uint64, f food.Food) {
	d.state.Append(f)
	if d.state.AddOpen() && d.state.AddSession() == session {
		d.state.CloseAdd()
	}
}

// ApplyUpdated swaps in the server's copy of an edited food. The edit dialog
// closes if it still targets targetID.
func (d *Dashboard) ApplyUpdated(targetID int64, f food.Food) {
	d.state.ReplaceByID(f)
	if cur, ok := d.state.EditTarget(); ok && cur.ID == targetID {
		d.state.CloseEdit()
	}
}

// ApplyAvailability swaps in f without touching the dialogs.
func (d *Dashboard) ApplyAvailability(f food.Food) { d.state.ReplaceByID(f) }

// ApplyDeleted drops id from the list.
func (d *Dashboard) ApplyDeleted(id int64) { d.state.RemoveByID(id) }

// Load replaces the list with the backend's.
func (d *Dashboard) Load(ctx context.Context) error {
	list, err := d.RequestList(ctx)
	if err != nil {
		return err
	}
	d.ApplyLoaded(list)
	d.log.Debug(ctx, "foods loaded", "count", len(list))
	return nil
}

// Add creates draft and appends the stored record.
func (d *Dashboard) Add(ctx context.Context, draft food.Draft) (food.Food, error) {
	session := d.state.AddSession()
	created, err := d.RequestCreate(ctx, draft)
	if err != nil {
		return food.Food{}, err
	}
	d.ApplyCreated(session, created)
	return created, nil
}

// Update applies p to the edit target and stores it. Without an edit target
// it does nothing and returns nil.
func (d *Dashboard) Update(ctx context.Context, p food.Patch) error {
	target, ok := d.state.EditTarget()
	if !ok {
		return nil
	}
	updated, err := d.RequestUpdate(ctx, target, p)
	if err != nil {
		return err
	}
	d.ApplyUpdated(target.ID, updated)
	return nil
}

// Delete removes id remotely, then locally.
func (d *Dashboard) Delete(ctx context.Context, id int64) error {
	if err := d.RequestRemove(ctx, id); err != nil {
		return err
	}
	d.ApplyDeleted(id)
	return nil
}

// SetAvailable flips the availability of a listed food.
func (d *Dashboard) SetAvailable(ctx context.Context, id int64, available bool) error {
	f, ok := d.state.Find(id)
	if !ok {
		return fmt.Errorf("set availability of %d: %w", id, ErrNotListed)
	}
	updated, err := d.RequestAvailability(ctx, f, available)
	if err != nil {
		return err
	}
	d.ApplyAvailability(updated)
	return nil
}
