package services

import (
	"context"
	"errors"
	"time"

	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/google/uuid"
)

var ErrNotConnected = errors.New("integration is not connected")

type SpotifyStatus struct {
	Connected      bool       `json:"connected"`
	DisplayName    string     `json:"display_name"`
	ShareListening bool       `json:"share_listening"`
	ConnectedAt    *time.Time `json:"connected_at"`
}

type IntegrationService struct {
	integrations repository.IntegrationRepository
}

func NewIntegrationService(integrations repository.IntegrationRepository) *IntegrationService {
	return &IntegrationService{integrations: integrations}
}

func (s *IntegrationService) Spotify(ctx context.Context, userID uuid.UUID) (SpotifyStatus, error) {
	conn, err := s.integrations.Spotify(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return SpotifyStatus{}, nil
	}
	if err != nil {
		return SpotifyStatus{}, err
	}
	return SpotifyStatus{
		Connected:      true,
		DisplayName:    conn.DisplayName,
		ShareListening: conn.ShareListening,
		ConnectedAt:    &conn.ConnectedAt,
	}, nil
}

func (s *IntegrationService) SetShareListening(ctx context.Context, userID uuid.UUID, share bool) error {
	err := s.integrations.SetShareListening(ctx, userID, share)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotConnected
	}
	return err
}

func (s *IntegrationService) DisconnectSpotify(ctx context.Context, userID uuid.UUID) error {
	err := s.integrations.DeleteSpotify(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotConnected
	}
	return err
}
