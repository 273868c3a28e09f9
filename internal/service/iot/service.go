package iot

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"time"

	"github.com/google/uuid"

	"buildsite-be/internal/repository"
)

var ErrProjectNotFound = errors.New("project not found")

// Mock telemetry service: readings are synthetic, seeded by project id
// and the current hour so dashboards look alive without any devices.

type SensorReading struct {
	SensorID   string    `json:"sensor_id"`
	Kind       string    `json:"kind"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
}

type Service interface {
	Readings(ctx context.Context, companyID, projectID uuid.UUID) ([]SensorReading, error)
}

type service struct {
	projectRepo repository.ProjectRepository
}

func NewService(projectRepo repository.ProjectRepository) Service {
	return &service{projectRepo: projectRepo}
}

func (s *service) Readings(ctx context.Context, companyID, projectID uuid.UUID) ([]SensorReading, error) {
	project, err := s.projectRepo.GetByID(ctx, companyID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	now := time.Now()
	seed := seedFor(projectID, now)

	return []SensorReading{
		{
			SensorID:   "temp-01",
			Kind:       "temperature",
			Value:      round1(18 + 12*wave(seed)),
			Unit:       "celsius",
			RecordedAt: now,
		},
		{
			SensorID:   "hum-01",
			Kind:       "humidity",
			Value:      round1(40 + 35*wave(seed+1)),
			Unit:       "percent",
			RecordedAt: now,
		},
		{
			SensorID:   "dust-01",
			Kind:       "particulate",
			Value:      round1(10 + 80*wave(seed+2)),
			Unit:       "ug_m3",
			RecordedAt: now,
		},
		{
			SensorID:   "noise-01",
			Kind:       "noise",
			Value:      round1(55 + 30*wave(seed+3)),
			Unit:       "db",
			RecordedAt: now,
		},
	}, nil
}

func seedFor(projectID uuid.UUID, now time.Time) uint32 {
	h := fnv.New32a()
	h.Write([]byte(projectID.String()))
	return h.Sum32() + uint32(now.Hour())
}

// wave maps a seed onto [0,1) smoothly enough to look like a sensor.
func wave(seed uint32) float64 {
	return (math.Sin(float64(seed)) + 1) / 2
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
