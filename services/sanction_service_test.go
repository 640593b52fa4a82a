package services

import (
	"context"
	"testing"

	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sanctionInput() SanctionInput {
	return SanctionInput{PlayerID: uuid.NewString(), SanctionTypeID: uuid.NewString(), MatchID: uuid.NewString()}
}

func TestCreateSanction_DefaultsToActive(t *testing.T) {
	svc := NewSanctionService(&fakeSanctionRepo{})

	s, err := svc.CreateSanction(context.Background(), sanctionInput())
	require.NoError(t, err)
	assert.True(t, s.Active)

	inactive := false
	in := sanctionInput()
	in.Active = &inactive
	s, err = svc.CreateSanction(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, s.Active)
}

func TestCreateSanction_Errors(t *testing.T) {
	svc := NewSanctionService(&fakeSanctionRepo{createErr: repositories.ErrReference})

	_, err := svc.CreateSanction(context.Background(), sanctionInput())
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	_, err = svc.CreateSanction(context.Background(), SanctionInput{PlayerID: uuid.NewString()})
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Len(t, FieldErrors(err), 2)
}

func TestUpdateSanction_NotFound(t *testing.T) {
	svc := NewSanctionService(&fakeSanctionRepo{})
	active := false

	_, err := svc.UpdateSanction(context.Background(), uuid.New(), UpdateSanctionInput{Active: &active})
	assert.ErrorIs(t, err, ErrSanctionNotFound)
}
