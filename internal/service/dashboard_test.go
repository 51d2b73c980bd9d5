package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/foodboard/internal/food"
	"github.com/jask/foodboard/internal/logging"
)

var errBoom = errors.New("boom")

// fakeRemote records calls and replays canned answers.
type fakeRemote struct {
	list    []food.Food
	nextID  int64
	err     error
	calls   []string
	created []food.Draft
	updated []food.Food
	// rename, when set, is applied by the "server" to every update.
	rename string
}

func (r *fakeRemote) List(ctx context.Context) ([]food.Food, error) {
	r.calls = append(r.calls, "list")
	if r.err != nil {
		return nil, r.err
	}
	return r.list, nil
}

func (r *fakeRemote) Create(ctx context.Context, d food.Draft) (food.Food, error) {
	r.calls = append(r.calls, "create")
	r.created = append(r.created, d)
	if r.err != nil {
		return food.Food{}, r.err
	}
	r.nextID++
	return d.WithID(r.nextID), nil
}

func (r *fakeRemote) Update(ctx context.Context, id int64, f food.Food) (food.Food, error) {
	r.calls = append(r.calls, "update")
	r.updated = append(r.updated, f)
	if r.err != nil {
		return food.Food{}, r.err
	}
	if r.rename != "" {
		f.Name = r.rename
	}
	f.ID = id
	return f, nil
}

func (r *fakeRemote) Remove(ctx context.Context, id int64) error {
	r.calls = append(r.calls, "remove")
	return r.err
}

func newTestDashboard(t *testing.T, remote *fakeRemote) (*Dashboard, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	return NewDashboard(remote, log), &buf
}

func seeded() []food.Food {
	return []food.Food{
		{ID: 1, Name: "Soup", Description: "hot", Price: 12, Available: true, Image: "soup.png"},
		{ID: 2, Name: "Pie", Description: "x", Price: 10, Available: true, Image: "y"},
	}
}

func TestLoadReplacesList(t *testing.T) {
	t.Parallel()

	soup := food.Food{ID: 1, Name: "Soup", Available: true}
	d, _ := newTestDashboard(t, &fakeRemote{list: []food.Food{soup}})
	require.Equal(t, 0, d.State().Len())

	require.NoError(t, d.Load(context.Background()))
	require.Equal(t, []food.Food{soup}, d.State().Foods())

	// a second load replaces rather than appends
	require.NoError(t, d.Load(context.Background()))
	require.Equal(t, 1, d.State().Len())
}

func TestLoadFailureKeepsStateAndLogs(t *testing.T) {
	t.Parallel()

	remote := &fakeRemote{err: errBoom}
	d, logs := newTestDashboard(t, remote)
	d.ApplyLoaded(seeded())

	err := d.Load(context.Background())
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, seeded(), d.State().Foods())
	require.Contains(t, logs.String(), "list foods failed")
}

func TestAddAppendsServerRecord(t *testing.T) {
	t.Parallel()

	remote := &fakeRemote{nextID: 1}
	d, _ := newTestDashboard(t, remote)
	d.ApplyLoaded(seeded()[:1])
	d.State().OpenAdd()

	created, err := d.Add(context.Background(), food.Draft{Name: "Pie", Description: "x", Price: 10, Available: false, Image: "y"})
	require.NoError(t, err)
	require.Equal(t, int64(2), created.ID)

	foods := d.State().Foods()
	require.Len(t, foods, 2)
	require.Equal(t, created, foods[1])
	require.True(t, foods[1].Available)
	require.False(t, d.State().AddOpen())

	// availability forced on the wire regardless of what the form said
	require.Len(t, remote.created, 1)
	require.True(t, remote.created[0].Available)
}

func TestAddDoesNotDeduplicate(t *testing.T) {
	t.Parallel()

	remote := &fakeRemote{}
	d, _ := newTestDashboard(t, remote)
	_, err := d.Add(context.Background(), food.Draft{Name: "Pie"})
	require.NoError(t, err)
	_, err = d.Add(context.Background(), food.Draft{Name: "Pie"})
	require.NoError(t, err)
	require.Equal(t, 2, d.State().Len())
}

func TestAddFailureKeepsStateAndDialog(t *testing.T) {
	t.Parallel()

	d, logs := newTestDashboard(t, &fakeRemote{err: errBoom})
	d.ApplyLoaded(seeded())
	d.State().OpenAdd()

	_, err := d.Add(context.Background(), food.Draft{Name: "Pie"})
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, seeded(), d.State().Foods())
	require.True(t, d.State().AddOpen())
	require.Contains(t, logs.String(), "create food failed")
}

func TestApplyCreatedLeavesReopenedAddOpen(t *testing.T) {
	t.Parallel()

	d, _ := newTestDashboard(t, &fakeRemote{})
	st := d.State()
	st.OpenAdd()
	first := st.AddSession()
	st.CloseAdd()
	st.OpenAdd()
	require.NotEqual(t, first, st.AddSession())

	d.ApplyCreated(first, food.Food{ID: 7, Name: "Tart"})
	require.True(t, st.AddOpen())
	require.Equal(t, 1, st.Len())

	d.ApplyCreated(st.AddSession(), food.Food{ID: 8, Name: "Cake"})
	require.False(t, st.AddOpen())
	require.Equal(t, 2, st.Len())
}

func TestUpdateReplacesMatchingElement(t *testing.T) {
	t.Parallel()

	remote := &fakeRemote{rename: "Server Soup"}
	d, _ := newTestDashboard(t, remote)
	d.ApplyLoaded(seeded())
	before := d.State().Foods()
	d.State().OpenEdit(before[0])

	price := 15.0
	require.NoError(t, d.Update(context.Background(), food.Patch{Price: &price}))

	after := d.State().Foods()
	require.Len(t, after, len(before))
	require.Equal(t, food.Food{ID: 1, Name: "Server Soup", Description: "hot", Price: 15, Available: true, Image: "soup.png"}, after[0])
	require.Equal(t, before[1], after[1])
	require.False(t, d.State().EditOpen())

	// the merged record went over the wire: target fields plus the edit
	require.Equal(t, []food.Food{{ID: 1, Name: "Soup", Description: "hot", Price: 15, Available: true, Image: "soup.png"}}, remote.updated)
}

func TestUpdateWithoutTargetIsNoop(t *testing.T) {
	t.Parallel()

	remote := &fakeRemote{}
	d, _ := newTestDashboard(t, remote)
	d.ApplyLoaded(seeded())
	d.State().OpenAdd()

	name := "ignored"
	require.NoError(t, d.Update(context.Background(), food.Patch{Name: &name}))
	require.Empty(t, remote.calls)
	require.Equal(t, seeded(), d.State().Foods())
	require.True(t, d.State().AddOpen())
	require.False(t, d.State().EditOpen())
}

func TestUpdateFailureKeepsTarget(t *testing.T) {
	t.Parallel()

	d, logs := newTestDashboard(t, &fakeRemote{err: errBoom})
	d.ApplyLoaded(seeded())
	d.State().OpenEdit(seeded()[1])

	name := "Tart"
	err := d.Update(context.Background(), food.Patch{Name: &name})
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, seeded(), d.State().Foods())

	target, ok := d.State().EditTarget()
	require.True(t, ok)
	require.Equal(t, int64(2), target.ID)
	require.Contains(t, logs.String(), "update food failed")
	require.Contains(t, logs.String(), "id=2")
}

func TestApplyUpdatedLeavesNewerTargetOpen(t *testing.T) {
	t.Parallel()

	d, _ := newTestDashboard(t, &fakeRemote{})
	d.ApplyLoaded(seeded())
	d.State().OpenEdit(seeded()[1])

	d.ApplyUpdated(1, food.Food{ID: 1, Name: "Soup v2"})
	require.True(t, d.State().EditOpen())
	got, _ := d.State().Find(1)
	require.Equal(t, "Soup v2", got.Name)
}

func TestDeleteRemovesID(t *testing.T) {
	t.Parallel()

	d, _ := newTestDashboard(t, &fakeRemote{})
	d.ApplyLoaded(seeded())

	require.NoError(t, d.Delete(context.Background(), 1))
	require.Equal(t, seeded()[1:], d.State().Foods())
	_, found := d.State().Find(1)
	require.False(t, found)
}

func TestDeleteFailureKeepsState(t *testing.T) {
	t.Parallel()

	d, logs := newTestDashboard(t, &fakeRemote{err: errBoom})
	d.ApplyLoaded(seeded())

	require.ErrorIs(t, d.Delete(context.Background(), 1), errBoom)
	require.Equal(t, seeded(), d.State().Foods())
	require.Contains(t, logs.String(), "delete food failed")
}

func TestSetAvailable(t *testing.T) {
	t.Parallel()

	remote := &fakeRemote{}
	d, _ := newTestDashboard(t, remote)
	d.ApplyLoaded(seeded())
	d.State().OpenEdit(seeded()[0])

	require.NoError(t, d.SetAvailable(context.Background(), 2, false))
	got, _ := d.State().Find(2)
	require.False(t, got.Available)
	require.Equal(t, "Pie", got.Name)
	// the edit dialog is unrelated to the toggle
	require.True(t, d.State().EditOpen())

	err := d.SetAvailable(context.Background(), 99, true)
	require.ErrorIs(t, err, ErrNotListed)
	require.Equal(t, []string{"update"}, remote.calls)
}

func TestRequestMethodsDoNotTouchState(t *testing.T) {
	t.Parallel()

	d, _ := newTestDashboard(t, &fakeRemote{list: seeded()})
	ctx := context.Background()

	list, err := d.RequestList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	_, err = d.RequestCreate(ctx, food.Draft{Name: "x"})
	require.NoError(t, err)
	_, err = d.RequestUpdate(ctx, seeded()[0], food.Patch{})
	require.NoError(t, err)
	require.NoError(t, d.RequestRemove(ctx, 1))

	require.Equal(t, 0, d.State().Len())
}
