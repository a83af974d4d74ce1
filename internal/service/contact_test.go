package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

func TestContactLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewContactService(newTestStore(t).Contacts(), language.English)

	_, err := svc.Create(ctx, ContactSaveInput{Kind: "customer", Name: "X"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Create(ctx, ContactSaveInput{Kind: "dealer"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Create(ctx, ContactSaveInput{Kind: "dealer", Name: "X", Email: "nope"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	zed, err := svc.Create(ctx, ContactSaveInput{Kind: "Dealer", Name: "zed trailers", Email: "Sales@Zed.example", State: "nd"})
	require.NoError(t, err)
	assert.Equal(t, "dealer", zed.Kind)
	assert.Equal(t, "sales@zed.example", zed.Email)
	assert.Equal(t, "ND", zed.State)

	_, err = svc.Create(ctx, ContactSaveInput{Kind: "dealer", Name: "Acme Hitch"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ContactSaveInput{Kind: "vendor", Name: "Bolt Co", Notes: "<img src=x onerror=alert(1)>net 30"})
	require.NoError(t, err)

	dealers, err := svc.List(ctx, ContactListInput{Kind: "dealer", Sort: tablesort.Toggle("name", nil)})
	require.NoError(t, err)
	require.Len(t, dealers, 2)
	assert.Equal(t, "Acme Hitch", dealers[0].Name)

	vendors, err := svc.List(ctx, ContactListInput{Kind: "vendor"})
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.NotContains(t, vendors[0].Notes, "onerror")

	updated, err := svc.Update(ctx, zed.ID, ContactSaveInput{Kind: "dealer", Name: "Zed Trailers", City: "Minot"})
	require.NoError(t, err)
	assert.Equal(t, "Minot", updated.City)

	got, err := svc.Get(ctx, zed.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zed Trailers", got.Name)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.List(ctx, ContactListInput{Kind: "alien"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
