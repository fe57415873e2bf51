package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"video-recommendation-service/internal/models"
)

func TestCreateVideoAssignsID(t *testing.T) {
	svc := NewCatalogService(newMemVideoStore(), nil, nil)

	v, err := svc.CreateVideo(models.CreateVideoRequest{Title: "Mountain Trek", Tags: []string{"adventure"}})
	require.NoError(t, err)
	require.NotEmpty(t, v.ID)
	require.Equal(t, "Mountain Trek", v.Title)
}

func TestCreateVideoRequiresTitle(t *testing.T) {
	svc := NewCatalogService(newMemVideoStore(), nil, nil)

	_, err := svc.CreateVideo(models.CreateVideoRequest{Tags: []string{"adventure"}})
	require.Error(t, err)
	kind, ok := models.ErrKind(err)
	require.True(t, ok)
	require.Equal(t, models.KindValidation, kind)
}

func TestCreateVideoDuplicateIDConflicts(t *testing.T) {
	svc := NewCatalogService(newMemVideoStore(), nil, nil)

	_, err := svc.CreateVideo(models.CreateVideoRequest{ID: "v1", Title: "First"})
	require.NoError(t, err)

	_, err = svc.CreateVideo(models.CreateVideoRequest{ID: "v1", Title: "Second"})
	require.Error(t, err)
	kind, _ := models.ErrKind(err)
	require.Equal(t, models.KindConflict, kind)
}

func TestGetVideoNotFound(t *testing.T) {
	svc := NewCatalogService(newMemVideoStore(), nil, nil)

	_, err := svc.GetVideo("missing")
	require.Error(t, err)
	kind, _ := models.ErrKind(err)
	require.Equal(t, models.KindNotFound, kind)
}

func TestDeleteVideoHidesFromReads(t *testing.T) {
	svc := NewCatalogService(newMemVideoStore(), nil, nil)
	ctx := context.Background()

	v, err := svc.CreateVideo(models.CreateVideoRequest{ID: "v1", Title: "First"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVideo(ctx, v.ID))

	_, err = svc.GetVideo(v.ID)
	kind, _ := models.ErrKind(err)
	require.Equal(t, models.KindNotFound, kind)

	// deleting again is a not-found
	err = svc.DeleteVideo(ctx, v.ID)
	kind, _ = models.ErrKind(err)
	require.Equal(t, models.KindNotFound, kind)
}

func TestListVideosFiltersByTagAndMood(t *testing.T) {
	svc := NewCatalogService(newMemVideoStore(), nil, nil)

	_, err := svc.CreateVideo(models.CreateVideoRequest{ID: "a", Title: "A", Tags: []string{"sports"}, Mood: "energetic"})
	require.NoError(t, err)
	_, err = svc.CreateVideo(models.CreateVideoRequest{ID: "b", Title: "B", Tags: []string{"music"}, Mood: "calm"})
	require.NoError(t, err)

	res, err := svc.ListVideos(models.VideoListParams{Tag: "sports"})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	require.Equal(t, "a", res.Data[0].ID)

	res, err = svc.ListVideos(models.VideoListParams{Mood: "CALM"})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	require.Equal(t, "b", res.Data[0].ID)
}

func TestSeedIsIdempotent(t *testing.T) {
	svc := NewCatalogService(newMemVideoStore(), nil, nil)

	added, err := svc.Seed()
	require.NoError(t, err)
	require.Equal(t, len(sampleVideos), added)

	added, err = svc.Seed()
	require.NoError(t, err)
	require.Zero(t, added)
}

func TestCatalogMetaCollectsVocabulary(t *testing.T) {
	svc := NewCatalogService(newMemVideoStore(), nil, nil)

	_, err := svc.CreateVideo(models.CreateVideoRequest{ID: "a", Title: "A", Tags: []string{"Sports", "travel"}, Mood: "Energetic"})
	require.NoError(t, err)

	meta, err := svc.Meta()
	require.NoError(t, err)
	require.Equal(t, []string{"sports", "travel"}, meta.Tags)
	require.Equal(t, []string{"energetic"}, meta.Moods)
}

func TestSyncWithoutProviderFails(t *testing.T) {
	svc := NewCatalogService(newMemVideoStore(), nil, nil)

	_, _, err := svc.SyncFromProvider(context.Background())
	require.Error(t, err)
}
