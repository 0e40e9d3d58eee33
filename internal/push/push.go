// Package push delivers notifications to registered mobile devices through
// SNS platform endpoints.
package push

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/gidia-app/nutricoach/internal/metrics"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrUnknownPlatform       = errors.New("unknown device platform")
	ErrPlatformNotConfigured = errors.New("push is not configured for this platform")
	ErrDeviceNotFound        = errors.New("device not found")
)

// SNSAPI is the subset of the SNS client the service uses.
type SNSAPI interface {
	CreatePlatformEndpoint(ctx context.Context, in *sns.CreatePlatformEndpointInput, optFns ...func(*sns.Options)) (*sns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Pusher sends a notification to every enabled device of a user.
type Pusher interface {
	Push(ctx context.Context, userID uuid.UUID, n Notification) error
}

type Service struct {
	devices   repository.DeviceRepository
	client    SNSAPI
	platforms map[string]string
}

// NewService maps each platform to its SNS platform application ARN. An
// empty ARN leaves that platform unconfigured.
func NewService(devices repository.DeviceRepository, client SNSAPI, androidARN, iosARN string) *Service {
	return &Service{
		devices: devices,
		client:  client,
		platforms: map[string]string{
			models.PlatformAndroid: androidARN,
			models.PlatformIOS:     iosARN,
		},
	}
}

func TokenHash(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

func (s *Service) Register(ctx context.Context, userID uuid.UUID, platform, token string) (*models.UserDevice, error) {
	platform = strings.ToLower(platform)
	appARN, ok := s.platforms[platform]
	if !ok {
		return nil, ErrUnknownPlatform
	}
	if appARN == "" {
		return nil, ErrPlatformNotConfigured
	}

	out, err := s.client.CreatePlatformEndpoint(ctx, &sns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(appARN),
		Token:                  aws.String(token),
		CustomUserData:         aws.String(userID.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create platform endpoint: %w", err)
	}

	device := &models.UserDevice{
		UserID:      userID,
		Platform:    platform,
		TokenHash:   TokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
	}
	if err := s.devices.Upsert(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to save device: %w", err)
	}
	return device, nil
}

func (s *Service) Unregister(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.devices.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDeviceNotFound
		}
		return err
	}
	return nil
}

// Push publishes to each enabled device. Endpoints SNS reports as disabled
// are switched off so they are skipped next time.
func (s *Service) Push(ctx context.Context, userID uuid.UUID, n Notification) error {
	devices, err := s.devices.ListEnabled(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}
	if len(devices) == 0 {
		return nil
	}

	msg, err := payload(n)
	if err != nil {
		return err
	}

	var errs []error
	for _, d := range devices {
		_, err := s.client.Publish(ctx, &sns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(msg),
			TargetArn:        aws.String(d.EndpointARN),
		})
		if err == nil {
			metrics.PushSent.WithLabelValues(d.Platform, "ok").Inc()
			continue
		}

		var disabled *snstypes.EndpointDisabledException
		if errors.As(err, &disabled) {
			metrics.PushSent.WithLabelValues(d.Platform, "disabled").Inc()
			if err := s.devices.Disable(ctx, d.ID); err != nil {
				slog.Warn("failed to disable push endpoint", "device_id", d.ID.String(), "error", err)
			}
			continue
		}

		metrics.PushSent.WithLabelValues(d.Platform, "error").Inc()
		errs = append(errs, fmt.Errorf("device %s: %w", d.ID, err))
	}
	return errors.Join(errs...)
}

// payload builds an SNS json message. Platform entries are themselves JSON
// encoded strings.
func payload(n Notification) (string, error) {
	gcm, err := json.Marshal(map[string]any{
		"notification": map[string]string{"title": n.Title, "body": n.Body},
		"data":         n.Data,
	})
	if err != nil {
		return "", err
	}

	aps := map[string]any{
		"aps": map[string]any{
			"alert": map[string]string{"title": n.Title, "body": n.Body},
			"sound": "default",
		},
	}
	for k, v := range n.Data {
		aps[k] = v
	}
	apns, err := json.Marshal(aps)
	if err != nil {
		return "", err
	}

	msg, err := json.Marshal(map[string]string{
		"default":      n.Body,
		"GCM":          string(gcm),
		"APNS":         string(apns),
		"APNS_SANDBOX": string(apns),
	})
	if err != nil {
		return "", err
	}
	return string(msg), nil
}
