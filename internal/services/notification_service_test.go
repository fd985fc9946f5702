package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/models"
)

func TestNotificationListRecent_MapsStoredRecords(t *testing.T) {
	repo := &fakeNotificationRepo{}
	repo.created = append(repo.created, &models.Notification{
		BaseModel: models.BaseModel{ID: "notif-1"},
		Type:      "newMovie",
		Title:     "Dune",
		Message:   "Fear is the mind-killer",
		Link:      "https://trailer.test/dune",
	})

	svc := NewNotificationService(repo)
	out, err := svc.ListRecent(context.Background(), 20)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "notif-1", out[0].ID)
	assert.Equal(t, "newMovie", out[0].Type)
	assert.Equal(t, "Dune", out[0].Title)
	assert.Equal(t, "https://trailer.test/dune", out[0].Link)
}

func TestNotificationListRecent_EmptyIsNotNil(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{})

	out, err := svc.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
