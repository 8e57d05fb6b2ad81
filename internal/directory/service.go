// Package directory wraps the visitor backend's REST endpoints into typed
// operations and normalizes its loosely shaped responses at this boundary.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"visitor-kiosk/internal/api"
)

// ErrNotFound means a lookup yielded no usable visitor record.
var ErrNotFound = errors.New("visitor not found")

// Service exposes the visitor directory and reference data operations used
// by the kiosk screens.
type Service interface {
	FindByEmail(ctx context.Context, email string) (Visitor, error)
	FindByBadge(ctx context.Context, badgeID string) (Visitor, error)
	RecordEntry(ctx context.Context, req EntryRequest) (EntryResult, error)
	RecordExit(ctx context.Context, badgeID string) error
	RecordReturn(ctx context.Context, req ReturnRequest) error

	StaffMembers(ctx context.Context) ([]StaffMember, error)
	TrainingsToday(ctx context.Context) ([]Training, error)
}

type restService struct {
	api    *api.Client
	logger *slog.Logger
}

func NewService(client *api.Client) Service {
	return &restService{
		api:    client,
		logger: slog.With("component", "directory"),
	}
}

// lookupEnvelope is the {visitor, last_visit} wrapper returned by both
// visitor lookup endpoints.
type lookupEnvelope struct {
	Visitor   *Visitor `json:"visitor"`
	LastVisit *Visit   `json:"last_visit"`
}

func (e *lookupEnvelope) merge() Visitor {
	v := *e.Visitor
	if e.LastVisit != nil {
		v.LastVisit = e.LastVisit
	}
	return v
}

func (s *restService) FindByEmail(ctx context.Context, email string) (Visitor, error) {
	var envelope lookupEnvelope
	endpoint := "/v1/visitor/search?email=" + url.QueryEscape(email)
	if err := s.api.Call(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return Visitor{}, err
	}

	// A response without a visitor field is a miss, whatever the status code
	if envelope.Visitor == nil {
		return Visitor{}, ErrNotFound
	}
	return envelope.merge(), nil
}

func (s *restService) FindByBadge(ctx context.Context, badgeID string) (Visitor, error) {
	var envelope lookupEnvelope
	endpoint := "/v1/visitor/badge?badge_id=" + url.QueryEscape(badgeID)
	if err := s.api.Call(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return Visitor{}, err
	}

	// The badge endpoint always pairs the visitor with its visit; treat a
	// partial response as a miss. Stricter than the email lookup on purpose.
	if envelope.Visitor == nil || envelope.LastVisit == nil {
		return Visitor{}, ErrNotFound
	}
	return envelope.merge(), nil
}

func (s *restService) RecordEntry(ctx context.Context, req EntryRequest) (EntryResult, error) {
	var result EntryResult
	if err := s.api.Call(ctx, http.MethodPost, "/v1/enter", req, &result); err != nil {
		return EntryResult{}, err
	}
	s.logger.Info("Entry recorded", "email", req.Email, "badge_id", result.BadgeID)
	return result, nil
}

func (s *restService) RecordExit(ctx context.Context, badgeID string) error {
	payload := map[string]string{"badge_id": badgeID}
	if err := s.api.Call(ctx, http.MethodPost, "/v1/exit", payload, nil); err != nil {
		return err
	}
	s.logger.Info("Exit recorded", "badge_id", badgeID)
	return nil
}

func (s *restService) RecordReturn(ctx context.Context, req ReturnRequest) error {
	if err := s.api.Call(ctx, http.MethodPost, "/v1/return", req, nil); err != nil {
		return err
	}
	s.logger.Info("Return recorded", "visitor_id", req.VisitorID)
	return nil
}

func (s *restService) StaffMembers(ctx context.Context) ([]StaffMember, error) {
	var raw json.RawMessage
	if err := s.api.Call(ctx, http.MethodGet, "/v1/staff-members", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[StaffMember](raw, "staff_members")
}

func (s *restService) TrainingsToday(ctx context.Context) ([]Training, error) {
	var raw json.RawMessage
	if err := s.api.Call(ctx, http.MethodGet, "/v1/trainings/today", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[Training](raw, "trainings")
}

// decodeList accepts the two envelope shapes the list endpoints are known to
// return: a bare JSON array, or an object wrapping the array under key.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	inner, ok := wrapped[key]
	if !ok {
		// Neither shape matched; callers treat this as an empty list
		return []T{}, nil
	}
	if err := json.Unmarshal(inner, &items); err != nil {
		return nil, err
	}
	return items, nil
}
