package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Yns1000/haybank/internal/errors"
)

func TestRun(t *testing.T) {
	t.Run("stops at the first failing step", func(t *testing.T) {
		var ran []int
		step := func(n int, err error) Step {
			return func(context.Context) error {
				ran = append(ran, n)
				return err
			}
		}

		err := Run(context.Background(), step(1, nil), step(2, apperrors.ErrInvalidDate), step(3, nil))

		assert.ErrorIs(t, err, apperrors.ErrInvalidDate)
		assert.Equal(t, []int{1, 2}, ran)
	})

	t.Run("runs nothing once the context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		called := false

		err := Run(ctx, func(context.Context) error { called = true; return nil })

		assert.ErrorIs(t, err, apperrors.ErrStorage)
		assert.False(t, called)
	})
}

type fakeDirectory struct {
	owners map[Kind]map[uint][]uint
	owned  map[uint]uint // account id -> user id
	err    error
	counts int
}

func (f *fakeDirectory) Owners(_ context.Context, kind Kind, id uint) ([]uint, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	owners, ok := f.owners[kind][id]
	return owners, ok, nil
}

func (f *fakeDirectory) CountOwnedAccounts(_ context.Context, userID uint, ids []uint) (int64, error) {
	f.counts++
	var n int64
	for _, id := range ids {
		if f.owned[id] == userID {
			n++
		}
	}
	return n, nil
}

func newDirectory() *fakeDirectory {
	return &fakeDirectory{
		owners: map[Kind]map[uint][]uint{
			KindAccount:  {1: {10}, 2: {20}},
			KindTransfer: {5: {10, 20}, 6: {10, 10}},
		},
		owned: map[uint]uint{1: 10, 2: 20, 3: 10},
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(newDirectory())
	ctx := context.Background()

	tests := []struct {
		name   string
		kind   Kind
		id     uint
		access Access
		want   Ownership
	}{
		{"owned account", KindAccount, 1, Read, Owned},
		{"foreign account", KindAccount, 2, Read, NotOwned},
		{"missing account", KindAccount, 99, Read, NotFound},
		{"transfer readable through one leg", KindTransfer, 5, Read, Owned},
		{"transfer not writable with one leg", KindTransfer, 5, Write, NotOwned},
		{"transfer writable with both legs", KindTransfer, 6, Write, Owned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(ctx, 10, tt.kind, tt.id, tt.access)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_Require(t *testing.T) {
	r := NewResolver(newDirectory())
	ctx := context.Background()

	assert.NoError(t, r.Require(ctx, 10, KindAccount, 1, Write))
	assert.ErrorIs(t, r.Require(ctx, 10, KindAccount, 2, Read), apperrors.ErrForbidden)
	assert.ErrorIs(t, r.Require(ctx, 10, KindAccount, 42, Read), apperrors.ErrAccountNotFound)
	assert.ErrorIs(t, r.Require(ctx, 10, KindTransfer, 42, Read), apperrors.ErrTransferNotFound)

	failing := NewResolver(&fakeDirectory{err: apperrors.Wrap(apperrors.ErrStorage, errors.New("boom"))})
	assert.ErrorIs(t, failing.Require(ctx, 10, KindAccount, 1, Read), apperrors.ErrStorage)
}

func TestResolver_RequireAccounts(t *testing.T) {
	dir := newDirectory()
	r := NewResolver(dir)
	ctx := context.Background()

	assert.NoError(t, r.RequireAccounts(ctx, 10, 1, 3))
	assert.ErrorIs(t, r.RequireAccounts(ctx, 10, 1, 2), apperrors.ErrForbidden)
	assert.ErrorIs(t, r.RequireAccounts(ctx, 10, 1, 404), apperrors.ErrForbidden)
	assert.NoError(t, r.RequireAccounts(ctx, 10, 1, 1))
	assert.Equal(t, 4, dir.counts, "one membership query per call")
}

func TestNormalizeSign(t *testing.T) {
	tests := []struct {
		typ     string
		amount  string
		want    string
		flipped bool
	}{
		{"D", "50", "-50", true},
		{"D", "-50", "-50", false},
		{"C", "-12.5", "12.5", true},
		{"C", "12.5", "12.5", false},
	}
	for _, tt := range tests {
		t.Run(tt.typ+" "+tt.amount, func(t *testing.T) {
			got, flipped := NormalizeSign(movementType(tt.typ), decimal.RequireFromString(tt.amount))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
			assert.Equal(t, tt.flipped, flipped)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))

	for _, bad := range []string{"2023-02-29", "2024-13-01", "2024-1-5", "05/01/2024", "2024-01-05T10:00:00Z", ""} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, apperrors.ErrInvalidDate, bad)
	}

	d, err = ParseFlexibleDate("2024-03-10T23:15:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", FormatDate(d))
}
