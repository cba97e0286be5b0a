package store_test

import (
	"testing"

	"github.com/abgdnv/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WishlistStore_AddAppends(t *testing.T) {
	s := store.NewWishlistStore()

	s.Add(store.WishlistItem{ID: "w1", ProductID: productA, Name: "Linen Shirt", Price: 49.9})
	s.Add(store.WishlistItem{ID: "w2", ProductID: productB, Name: "Wool Scarf", Price: 19.9})

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "w1", items[0].ID)
	assert.Equal(t, "w2", items[1].ID)
}

func Test_WishlistStore_SetItemsReplacesWholesale(t *testing.T) {
	s := store.NewWishlistStore()
	s.Add(store.WishlistItem{ID: "w1", ProductID: productA})

	s.SetItems([]store.WishlistItem{
		{ID: "w9", ProductID: productB, Name: "Wool Scarf"},
	})

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "w9", items[0].ID)
}

func Test_WishlistStore_ItemsReturnsCopy(t *testing.T) {
	s := store.NewWishlistStore()
	s.Add(store.WishlistItem{ID: "w1", ProductID: productA})

	items := s.Items()
	items[0].ID = "mutated"

	assert.Equal(t, "w1", s.Items()[0].ID)
}

func Test_WishlistStore_SubscribeObservesChanges(t *testing.T) {
	s := store.NewWishlistStore()
	var seen [][]store.WishlistItem
	s.Subscribe(func(items []store.WishlistItem) {
		seen = append(seen, items)
	})

	s.Add(store.WishlistItem{ID: "w1", ProductID: productA})
	s.SetItems(nil)

	require.Len(t, seen, 2)
	assert.Len(t, seen[0], 1)
	assert.Empty(t, seen[1])
}
