package main

import (
	"testing"

	"locgm/internal/repositories"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedData(t *testing.T) {
	places := repositories.NewMemoryPlaceRepository()
	seedPlaces(places, zerolog.Nop())
	all, err := places.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 5)
	for _, p := range all {
		assert.True(t, p.Type.Valid(), p.Name)
		assert.NotEmpty(t, p.OwnerEmail, p.Name)
	}

	posts := repositories.NewMemoryPostRepository()
	seedPosts(posts, zerolog.Nop())
	feed, err := posts.GetAll()
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.True(t, feed[0].CreatedAt.After(feed[2].CreatedAt), "newest first")
}
